package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/certificate-sorter/internal/cli"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous scans",
		Long: `List the scans recorded in the history database. Runs are only
recorded when history.enabled is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runHistoryList(cmd.Context(), viper.GetString("database.path"), limit, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of runs to show (0 = all)")

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List previous scans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runHistoryList(cmd.Context(), viper.GetString("database.path"), limit, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of runs to show (0 = all)")
	return cmd
}

func historyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the summary and files of one scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			return runHistoryShow(cmd.Context(), viper.GetString("database.path"), args[0], model.Kind(kind), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("kind", "", "Only list files of this kind (CLASSIFIED, EXCLUDED, UNCLASSIFIED, UNSUPPORTED)")
	return cmd
}

func runHistoryList(ctx context.Context, dbPath string, limit int, out io.Writer) error {
	store, err := initStorage(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, cli.RenderRuns(runs))
	return err
}

func runHistoryShow(ctx context.Context, dbPath, id string, kind model.Kind, out io.Writer) error {
	if kind != "" && !kind.IsValid() {
		return fmt.Errorf("unknown kind %q", kind)
	}

	store, err := initStorage(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}

	records, err := store.GetRunRecords(ctx, id)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Run %s (%s)", run.ID, run.Root))); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, cli.RenderSummary(run.Stats, run.FinishedAt.Sub(run.StartedAt), run.ReportPath, false)); err != nil {
		return err
	}

	for _, rec := range records {
		if kind != "" && rec.Kind != kind {
			continue
		}
		line := fmt.Sprintf("%-16s %-20s %s", rec.Kind.Label(), rec.Employee, rec.FileName)
		if rec.Vendor != "" {
			line += "  → " + cli.VendorStyle.Render(rec.Vendor)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
