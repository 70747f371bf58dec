// Package report writes classification records to a CSV file.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/certificate-sorter/internal/model"
)

// Header is the report's column row.
var Header = []string{"Tipo", "Funcionario", "Arquivo", "Caminho", "Fabricante", "Texto"}

// CSV writes UTF-8 CSV reports.
type CSV struct{}

// NewCSV creates a CSV report writer.
func NewCSV() *CSV {
	return &CSV{}
}

// Write creates (or truncates) path and writes the header and one row per record.
func (c *CSV) Write(path string, records []model.Record) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // report path is user configuration
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report: %w", closeErr)
		}
	}()

	return c.Encode(f, records)
}

// Encode writes the report to w.
func (c *CSV) Encode(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

func row(rec model.Record) []string {
	return []string{
		rec.Kind.Label(),
		rec.Employee,
		rec.FileName,
		rec.Path,
		rec.Vendor,
		rec.Text,
	}
}
