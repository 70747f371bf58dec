package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/certificate-sorter/internal/common"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// SaveRun stores a run with its vendor counts and records in one transaction.
// A run without an ID is given a new one.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run, records []model.Record) (err error) {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stats := run.Stats
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, root, output_dir, report_path, started_at, finished_at,
			total, classified, excluded, unclassified, unsupported, archive_failures
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.Root, run.OutputDir, run.ReportPath, run.StartedAt, run.FinishedAt,
		stats.Total, stats.Classified, stats.Excluded, stats.Unclassified, stats.Unsupported, stats.ArchiveFailures,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: run %s", common.ErrDuplicateEntry, run.ID)
		}
		return fmt.Errorf("failed to save run: %w", err)
	}

	for i, vendor := range stats.Vendors() {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO run_vendor_counts (run_id, position, vendor, count)
			VALUES (?, ?, ?, ?)
		`, run.ID, i, vendor, stats.ByVendor[vendor]); err != nil {
			return fmt.Errorf("failed to save vendor count for %s: %w", vendor, err)
		}
	}

	if len(records) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, `
			INSERT INTO run_records (run_id, seq, kind, employee, file_name, path, vendor, text)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if prepErr != nil {
			err = prepErr
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, rec := range records {
			if _, err = stmt.ExecContext(ctx,
				run.ID, i, string(rec.Kind), rec.Employee, rec.FileName, rec.Path,
				nullString(rec.Vendor), nullString(rec.Text),
			); err != nil {
				return fmt.Errorf("failed to save record %s: %w", rec.Path, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, runColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := s.loadVendorCounts(ctx, s.db, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, runColumns+` ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan run: %w", scanErr)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	for i := range runs {
		if err := s.loadVendorCounts(ctx, s.db, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// GetRunRecords returns the records of a run in processing order.
func (s *SQLiteStorage) GetRunRecords(ctx context.Context, id string) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, employee, file_name, path, vendor, text
		FROM run_records
		WHERE run_id = ?
		ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		var (
			rec    model.Record
			kind   string
			vendor sql.NullString
			text   sql.NullString
		)
		if err := rows.Scan(&kind, &rec.Employee, &rec.FileName, &rec.Path, &vendor, &text); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Kind = model.Kind(kind)
		rec.Vendor = vendor.String
		rec.Text = text.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

const runColumns = `
	SELECT id, root, output_dir, report_path, started_at, finished_at,
		total, classified, excluded, unclassified, unsupported, archive_failures
	FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*model.Run, error) {
	run := &model.Run{Stats: model.NewBatchStats(nil)}
	err := row.Scan(
		&run.ID,
		&run.Root,
		&run.OutputDir,
		&run.ReportPath,
		&run.StartedAt,
		&run.FinishedAt,
		&run.Stats.Total,
		&run.Stats.Classified,
		&run.Stats.Excluded,
		&run.Stats.Unclassified,
		&run.Stats.Unsupported,
		&run.Stats.ArchiveFailures,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SQLiteStorage) loadVendorCounts(ctx context.Context, q queryable, run *model.Run) error {
	rows, err := q.QueryContext(ctx, `
		SELECT vendor, count
		FROM run_vendor_counts
		WHERE run_id = ?
		ORDER BY position
	`, run.ID)
	if err != nil {
		return fmt.Errorf("failed to query vendor counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		vendors []string
		counts  []int
	)
	for rows.Next() {
		var (
			vendor string
			count  int
		)
		if err := rows.Scan(&vendor, &count); err != nil {
			return fmt.Errorf("failed to scan vendor count: %w", err)
		}
		vendors = append(vendors, vendor)
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating vendor counts: %w", err)
	}

	stats := model.NewBatchStats(vendors)
	stats.Total = run.Stats.Total
	stats.Classified = run.Stats.Classified
	stats.Excluded = run.Stats.Excluded
	stats.Unclassified = run.Stats.Unclassified
	stats.Unsupported = run.Stats.Unsupported
	stats.ArchiveFailures = run.Stats.ArchiveFailures
	for i, vendor := range vendors {
		stats.ByVendor[vendor] = counts[i]
	}
	run.Stats = stats
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
