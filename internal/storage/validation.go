// Package storage persists the history of scan runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/certificate-sorter/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRun    = errors.New("invalid run")
	ErrInvalidRecord = errors.New("invalid record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.Stats == nil {
		return fmt.Errorf("%w: missing stats", ErrInvalidRun)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	if run.FinishedAt.Before(run.StartedAt) {
		return fmt.Errorf("%w: finished before it started", ErrInvalidRun)
	}
	if strings.TrimSpace(run.Root) == "" {
		return fmt.Errorf("%w: missing root", ErrInvalidRun)
	}
	if !run.Stats.Balanced() {
		return fmt.Errorf("%w: kind counts do not add up to %d", ErrInvalidRun, run.Stats.Total)
	}
	return nil
}

func validateRecords(records []model.Record) error {
	for i, rec := range records {
		if !rec.Kind.IsValid() {
			return fmt.Errorf("%w at index %d: unknown kind %q", ErrInvalidRecord, i, rec.Kind)
		}
		if rec.Path == "" {
			return fmt.Errorf("%w at index %d: missing path", ErrInvalidRecord, i)
		}
		if rec.Kind == model.KindClassified && rec.Vendor == "" {
			return fmt.Errorf("%w at index %d: classified without vendor", ErrInvalidRecord, i)
		}
	}
	return nil
}
