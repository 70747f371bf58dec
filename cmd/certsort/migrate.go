package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Veraticus/certificate-sorter/internal/cli"
	"github.com/Veraticus/certificate-sorter/internal/config"
	"github.com/Veraticus/certificate-sorter/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run history database migrations",
		Long: `Initialize or update the run history schema to the latest version.

Scans apply migrations on their own when history is enabled; this command is
useful to prepare the database ahead of time or to check its version.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	ctx := cmd.Context()

	if status {
		return runMigrateStatus(ctx, dbPath, cmd.OutOrStdout())
	}

	slog.Info("🗄️  Running database migrations...", "database", dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("✅ Database migrations completed successfully!")
	return nil
}

// runMigrateStatus reports the schema version without creating the database.
func runMigrateStatus(ctx context.Context, dbPath string, out io.Writer) error {
	if _, err := os.Stat(dbPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat database: %w", err)
		}
		_, err = fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No history database at %s (latest schema version %d)", dbPath, storage.ExpectedSchemaVersion)))
		return err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	slog.Info("📊 Database Migration Status",
		"database", dbPath,
		"current", current,
		"latest", storage.ExpectedSchemaVersion)
	_, err = fmt.Fprintf(out, "Schema version %d of %d (%s)\n", current, storage.ExpectedSchemaVersion, dbPath)
	return err
}
