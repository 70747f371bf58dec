package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/certificate-sorter/internal/archive"
	"github.com/Veraticus/certificate-sorter/internal/common"
	"github.com/Veraticus/certificate-sorter/internal/config"
	"github.com/Veraticus/certificate-sorter/internal/extract"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/Veraticus/certificate-sorter/internal/pattern"
	"github.com/Veraticus/certificate-sorter/internal/service"
	"github.com/Veraticus/certificate-sorter/internal/storage"
	"github.com/spf13/viper"
)

// loadSettings resolves the settings and keyword table from v.
func loadSettings(v *viper.Viper) (*config.Settings, *model.KeywordTable, error) {
	settings, err := config.Load(v)
	if err != nil {
		return nil, nil, common.NewUserError("Invalid configuration", err)
	}

	table, err := config.LoadKeywordTable(v)
	if err != nil {
		return nil, nil, common.NewUserError("Could not load classification keywords", err)
	}

	return settings, table, nil
}

func newMatcher(table *model.KeywordTable) (*pattern.Matcher, error) {
	matcher, err := pattern.NewMatcher(table)
	if err != nil {
		return nil, common.NewUserError("Invalid classification keywords", err)
	}
	return matcher, nil
}

// initStorage opens the run history database and applies migrations.
func initStorage(ctx context.Context, dbPath string) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// buildDispatcher wires the format extractors and the OCR tools.
func buildDispatcher(s *config.Settings) *extract.Dispatcher {
	ocr := extract.NewTesseract(s.OCR.Tesseract, s.OCR.Language)

	d := extract.NewDispatcher(s.VerifyContent)
	d.Register(extract.FormatPDF, extract.NewPDF(extract.NewPoppler(s.OCR.Pdftoppm, s.OCR.DPI), ocr, s.OCRFallback))
	d.Register(extract.FormatDOCX, extract.NewDOCX())
	d.Register(extract.FormatImage, extract.NewImage(ocr, s.OCR.MaxImageDimension))
	return d
}

// buildArchiver returns the archive backend for the settings.
func buildArchiver(s *config.Settings, dryRun bool) (archive.Archiver, error) {
	if dryRun {
		return archive.NewDryRun(s.OutputDir), nil
	}

	switch s.ArchiveBackend {
	case config.BackendS3:
		s3, err := archive.NewS3(archive.S3Config{
			Endpoint:  s.S3.Endpoint,
			AccessKey: s.S3.AccessKey,
			SecretKey: s.S3.SecretKey,
			Bucket:    s.S3.Bucket,
			Region:    s.S3.Region,
			Prefix:    s.S3.Prefix,
			UseSSL:    s.S3.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return archive.NewLocal(s.OutputDir), nil
	}
}
