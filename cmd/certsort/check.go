package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/certificate-sorter/internal/cli"
	"github.com/Veraticus/certificate-sorter/internal/config"
	"github.com/Veraticus/certificate-sorter/internal/extract"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/Veraticus/certificate-sorter/internal/pattern"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Classify a single file without archiving it",
		Long: `Extract the text of one document and show which vendor it would be
filed under. Nothing is copied and no report is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, table, err := loadSettings(viper.GetViper())
			if err != nil {
				return err
			}

			if ocr, _ := cmd.Flags().GetBool("ocr"); ocr {
				settings.OCRFallback = true
			}
			showText, _ := cmd.Flags().GetBool("text")

			return runCheck(cmd.Context(), settings, table, args[0], showText, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("ocr", false, "OCR PDF pages when the text layer is empty")
	cmd.Flags().Bool("text", false, "Print the extracted text")

	return cmd
}

func runCheck(ctx context.Context, s *config.Settings, table *model.KeywordTable, path string, showText bool, out io.Writer) error {
	matcher, err := newMatcher(table)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, use scan instead", path)
	}

	if !extract.FormatFor(path).Supported() {
		_, err := fmt.Fprintln(out, cli.RenderVerdict(path, pattern.Verdict{Kind: model.KindUnsupported}, ""))
		return err
	}

	result := buildDispatcher(s).Extract(ctx, path)
	if result.Err != nil {
		if _, err := fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Extraction failed (%s); classifying empty text", extract.ReasonOf(result.Err)))); err != nil {
			return err
		}
	}

	verdict := matcher.Classify(result.Text)
	if _, err := fmt.Fprintln(out, cli.RenderVerdict(path, verdict, result.Text)); err != nil {
		return err
	}

	if showText && result.Text != "" {
		if _, err := fmt.Fprintln(out, "\n"+result.Text); err != nil {
			return err
		}
	}
	return nil
}
