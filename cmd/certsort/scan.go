package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/certificate-sorter/internal/cli"
	"github.com/Veraticus/certificate-sorter/internal/common"
	"github.com/Veraticus/certificate-sorter/internal/config"
	"github.com/Veraticus/certificate-sorter/internal/engine"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/Veraticus/certificate-sorter/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Sort the certificates found under a directory",
		Long: `Walk every employee folder under root, read each PDF, DOCX and image,
and copy the ones that name a known vendor to <output>/<employee>/<vendor>/.
A CSV report with one row per file is written at the end.

Examples:
  certsort scan                          # Scan ./colaboradores
  certsort scan /srv/rh/colaboradores    # Scan another directory
  certsort scan --ocr                    # OCR scanned PDFs without a text layer
  certsort scan --dry-run                # Classify without copying anything`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				viper.Set("scan.root", args[0])
			}

			settings, table, err := loadSettings(viper.GetViper())
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
				settings.Progress = false
			}

			return runScan(cmd.Context(), settings, table, dryRun, cmd.OutOrStdout())
		},
	}

	// Flags
	cmd.Flags().StringP("output", "o", "", "Directory classified certificates are copied to")
	cmd.Flags().StringP("report", "r", "", "Path of the CSV report")
	cmd.Flags().Bool("ocr", false, "OCR PDF pages when the text layer is empty")
	cmd.Flags().String("archive", "", "Archive backend (local, s3)")
	cmd.Flags().Bool("dry-run", false, "Classify and report without archiving")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("output.dir", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("report.path", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("extraction.ocr_fallback", cmd.Flags().Lookup("ocr"))
	_ = viper.BindPFlag("archive.backend", cmd.Flags().Lookup("archive"))

	return cmd
}

func runScan(ctx context.Context, s *config.Settings, table *model.KeywordTable, dryRun bool, out io.Writer) error {
	matcher, err := newMatcher(table)
	if err != nil {
		return err
	}

	archiver, err := buildArchiver(s, dryRun)
	if err != nil {
		return fmt.Errorf("failed to set up archive: %w", err)
	}

	var skip []string
	for _, p := range []string{s.OutputDir, s.ReportPath} {
		if p != "" && config.Within(s.Root, p) {
			slog.Debug("Excluding path inside the scanned root", "path", p)
			skip = append(skip, p)
		}
	}

	eng := engine.NewWithConfig(buildDispatcher(s), matcher, archiver, engine.Config{
		Vendors: table.VendorNames(),
		Skip:    skip,
	})
	if s.Progress {
		eng.SetProgress(cli.NewProgressBar(os.Stderr))
	}

	interrupt := cli.NewInterruptHandler(os.Stderr)
	ctx = interrupt.HandleInterrupts(ctx, true)
	defer interrupt.Stop()

	slog.Info("Starting certificate scan",
		"root", s.Root,
		"output", s.OutputDir,
		"backend", s.ArchiveBackend,
		"ocr_fallback", s.OCRFallback,
		"dry_run", dryRun)

	result, runErr := eng.Run(ctx, s.Root)
	if result == nil {
		return fmt.Errorf("scan failed: %w", runErr)
	}

	if result.Stats.Total == 0 {
		common.LogWarn(common.ErrNoDocuments, "Nothing to sort", common.Fields{"root": s.Root})
	}

	if err := report.NewCSV().Write(s.ReportPath, result.Records); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	slog.Info("Report written", "path", s.ReportPath, "rows", len(result.Records))

	if s.History {
		if err := saveRun(context.WithoutCancel(ctx), s, result); err != nil {
			slog.Error("Failed to record run history", "error", err)
		}
	}

	stats := result.Stats
	slog.Info("Scan complete",
		"total", stats.Total,
		"classified", stats.Classified,
		"excluded", stats.Excluded,
		"unclassified", stats.Unclassified,
		"unsupported", stats.Unsupported,
		"archive_failures", stats.ArchiveFailures)

	interrupted := interrupt.WasInterrupted()
	summary := cli.RenderSummary(stats, result.FinishedAt.Sub(result.StartedAt), s.ReportPath, interrupted)
	if _, err := fmt.Fprintln(out, summary); err != nil {
		slog.Warn("Failed to write summary", "error", err)
	}

	return scanExit(runErr, interrupted)
}

// scanExit decides the command's result. A scan stopped by the user's
// interrupt has already written its partial report and exits cleanly.
func scanExit(runErr error, interrupted bool) error {
	if interrupted && errors.Is(runErr, context.Canceled) {
		slog.Warn("Scan interrupted", "hint", "run certsort scan again to sort the remaining files")
		return nil
	}
	return runErr
}

func saveRun(ctx context.Context, s *config.Settings, result *model.BatchResult) error {
	store, err := initStorage(ctx, s.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := &model.Run{
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Stats:      result.Stats,
		Root:       s.Root,
		OutputDir:  s.OutputDir,
		ReportPath: s.ReportPath,
	}
	if err := store.SaveRun(ctx, run, result.Records); err != nil {
		return err
	}

	slog.Info("Run recorded", "id", run.ID)
	return nil
}
