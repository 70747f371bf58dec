// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/certificate-sorter/internal/model"
)

// Storage defines the contract for the run history.
type Storage interface {
	// Run operations
	SaveRun(ctx context.Context, run *model.Run, records []model.Record) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	GetRunRecords(ctx context.Context, id string) ([]model.Record, error)

	// Database management
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}
