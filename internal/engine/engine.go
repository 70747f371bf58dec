// Package engine runs the certificate classification batch.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Veraticus/certificate-sorter/internal/archive"
	"github.com/Veraticus/certificate-sorter/internal/common"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/Veraticus/certificate-sorter/internal/pattern"
)

// Engine walks an input tree and processes every file in it.
type Engine struct {
	processor     *Processor
	progress      Progress
	vendors       []string
	skip          []string
	progressEvery int
}

// Config holds configuration options for the engine.
type Config struct {
	// Vendors seeds the per-vendor counters so vendors without matches report zero.
	Vendors []string
	// Skip lists paths the walk must not descend into, such as the output directory.
	Skip []string
	// ProgressEvery is how many files pass between progress log lines.
	ProgressEvery int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ProgressEvery: 100,
	}
}

// New creates a new engine with the default configuration.
func New(extractor Extractor, classifier pattern.Classifier, archiver archive.Archiver) *Engine {
	return NewWithConfig(extractor, classifier, archiver, DefaultConfig())
}

// NewWithConfig creates a new engine with custom configuration.
func NewWithConfig(extractor Extractor, classifier pattern.Classifier, archiver archive.Archiver, config Config) *Engine {
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = DefaultConfig().ProgressEvery
	}
	return &Engine{
		processor:     NewProcessor(extractor, classifier, archiver),
		progress:      noopProgress{},
		vendors:       config.Vendors,
		skip:          config.Skip,
		progressEvery: config.ProgressEvery,
	}
}

// SetProgress attaches a progress reporter such as a terminal progress bar.
func (e *Engine) SetProgress(p Progress) {
	if p == nil {
		p = noopProgress{}
	}
	e.progress = p
}

// Run processes every file below root. Per-file failures are logged and the
// batch continues. If ctx is cancelled the records of the files completed
// before cancellation are returned together with the context error; a file
// interrupted while being processed is left out of both records and stats.
func (e *Engine) Run(ctx context.Context, root string) (*model.BatchResult, error) {
	result := &model.BatchResult{
		StartedAt: time.Now(),
		Stats:     model.NewBatchStats(e.vendors),
	}

	docs, err := Walk(root, e.skip...)
	if err != nil {
		return nil, err
	}

	slog.Info("Found documents", "root", root, "count", len(docs))
	result.Records = make([]model.Record, 0, len(docs))

	e.progress.Start(len(docs))
	defer e.progress.Finish()

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			result.FinishedAt = time.Now()
			slog.Warn("Scan interrupted", "processed", i, "total", len(docs))
			return result, err
		}

		rec, err := e.processor.Process(ctx, doc.Path, doc.Employee)
		if ctxErr := ctx.Err(); ctxErr != nil {
			// The file was cut off mid-processing; its record would not reflect its content.
			result.FinishedAt = time.Now()
			slog.Warn("Scan interrupted", "processed", i, "total", len(docs), "path", doc.Path)
			return result, ctxErr
		}
		if err != nil {
			if errors.Is(err, common.ErrArchiveFailed) {
				result.Stats.ArchiveFailures++
			}
			common.LogError(err, "Failed to process document", common.Fields{
				"path":     doc.Path,
				"employee": doc.Employee,
			})
		}

		result.Records = append(result.Records, rec)
		result.Stats.Add(rec)
		e.progress.Advance()

		if (i+1)%e.progressEvery == 0 {
			slog.Info("Files processed", "count", i+1, "total", len(docs))
		}
	}

	result.FinishedAt = time.Now()
	return result, nil
}
