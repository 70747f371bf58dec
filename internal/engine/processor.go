package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/certificate-sorter/internal/archive"
	"github.com/Veraticus/certificate-sorter/internal/common"
	"github.com/Veraticus/certificate-sorter/internal/extract"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/Veraticus/certificate-sorter/internal/pattern"
)

// Processor turns one document into one record: extract, classify and,
// for classified documents, archive.
type Processor struct {
	extractor  Extractor
	classifier pattern.Classifier
	archiver   archive.Archiver
}

// NewProcessor creates a processor from its collaborators.
func NewProcessor(extractor Extractor, classifier pattern.Classifier, archiver archive.Archiver) *Processor {
	return &Processor{
		extractor:  extractor,
		classifier: classifier,
		archiver:   archiver,
	}
}

// Process always returns a record. The error is non-nil only when a
// classified document could not be archived; the record is still classified.
func (p *Processor) Process(ctx context.Context, path, employee string) (model.Record, error) {
	rec := model.Record{
		Employee: employee,
		FileName: filepath.Base(path),
		Path:     path,
	}

	if !extract.FormatFor(path).Supported() {
		rec.Kind = model.KindUnsupported
		return rec, nil
	}

	result := p.extractor.Extract(ctx, path)
	if !result.Format.Supported() {
		rec.Kind = model.KindUnsupported
		return rec, nil
	}

	verdict := p.classifier.Classify(result.Text)
	switch verdict.Kind {
	case model.KindExcluded:
		slog.Debug("Document excluded", "path", path, "keyword", verdict.Keyword)
		rec.Kind = model.KindExcluded
		return rec, nil
	case model.KindClassified:
	default:
		rec.Kind = model.KindUnclassified
		return rec, nil
	}

	rec.Kind = model.KindClassified
	rec.Vendor = verdict.Vendor
	rec.Text = result.Text

	dest, err := p.archiver.Archive(ctx, path, employee, verdict.Vendor)
	if err != nil {
		return rec, fmt.Errorf("%w: %s: %w", common.ErrArchiveFailed, path, err)
	}

	slog.Debug("Document archived",
		"path", path,
		"vendor", verdict.Vendor,
		"keyword", verdict.Keyword,
		"destination", dest)

	return rec, nil
}
