package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateRun(t *testing.T) {
	now := time.Now()
	balanced := model.NewBatchStats(nil)
	balanced.Add(model.Record{Kind: model.KindUnsupported})

	tests := []struct {
		run     *model.Run
		wantErr error
		name    string
	}{
		{
			name:    "nil run",
			run:     nil,
			wantErr: ErrNilParameter,
		},
		{
			name:    "missing stats",
			run:     &model.Run{StartedAt: now, FinishedAt: now, Root: "/in"},
			wantErr: ErrInvalidRun,
		},
		{
			name:    "missing start",
			run:     &model.Run{FinishedAt: now, Root: "/in", Stats: balanced},
			wantErr: ErrInvalidRun,
		},
		{
			name:    "finished before start",
			run:     &model.Run{StartedAt: now, FinishedAt: now.Add(-time.Minute), Root: "/in", Stats: balanced},
			wantErr: ErrInvalidRun,
		},
		{
			name:    "missing root",
			run:     &model.Run{StartedAt: now, FinishedAt: now, Stats: balanced},
			wantErr: ErrInvalidRun,
		},
		{
			name:    "unbalanced stats",
			run:     &model.Run{StartedAt: now, FinishedAt: now, Root: "/in", Stats: &model.BatchStats{Total: 3}},
			wantErr: ErrInvalidRun,
		},
		{
			name: "valid",
			run:  &model.Run{StartedAt: now, FinishedAt: now, Root: "/in", Stats: balanced},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRun(tt.run)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRecords(t *testing.T) {
	assert.NoError(t, validateRecords(nil))
	assert.NoError(t, validateRecords([]model.Record{
		{Kind: model.KindClassified, Path: "/a.pdf", Vendor: "AWS"},
		{Kind: model.KindUnsupported, Path: "/b.txt"},
	}))

	assert.ErrorIs(t, validateRecords([]model.Record{{Kind: "BOGUS", Path: "/a"}}), ErrInvalidRecord)
	assert.ErrorIs(t, validateRecords([]model.Record{{Kind: model.KindExcluded}}), ErrInvalidRecord)
	assert.ErrorIs(t, validateRecords([]model.Record{{Kind: model.KindClassified, Path: "/a"}}), ErrInvalidRecord)
}

func TestValidateInputs(t *testing.T) {
	//nolint:staticcheck // exercising the nil guard
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
	assert.NoError(t, validateContext(context.Background()))
	assert.ErrorIs(t, validateString("  ", "id"), ErrEmptyString)
	assert.NoError(t, validateString("x", "id"))
}
