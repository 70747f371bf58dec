package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/Veraticus/certificate-sorter/internal/pattern"
	"github.com/charmbracelet/lipgloss"
)

// RenderSummary renders the end-of-scan summary with per-vendor counts in
// configuration order.
func RenderSummary(stats *model.BatchStats, duration time.Duration, reportPath string, interrupted bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-18s %d\n", "Files processed:", stats.Total)
	for _, kind := range model.Kinds {
		fmt.Fprintf(&b, "  %-16s %d\n", kind.Label()+":", stats.Count(kind))
	}

	if stats.ArchiveFailures > 0 {
		b.WriteString(FormatWarning(fmt.Sprintf("%d classified files could not be archived", stats.ArchiveFailures)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(BoldStyle.Render("Certificates by vendor"))
	b.WriteString("\n")
	for _, vendor := range stats.Vendors() {
		fmt.Fprintf(&b, "  %-16s %d\n", vendor+":", stats.ByVendor[vendor])
	}

	if reportPath != "" {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("Report: %s", reportPath)))
	}
	if duration > 0 {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("Duration: %s", duration.Round(time.Millisecond))))
	}

	title := ChartIcon + " Scan summary"
	if interrupted {
		title = WarningIcon + " Scan summary (interrupted)"
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// RenderVerdict renders the outcome of checking a single file.
func RenderVerdict(path string, verdict pattern.Verdict, text string) string {
	var headline string
	switch verdict.Kind {
	case model.KindClassified:
		headline = FormatSuccess(fmt.Sprintf("%s → %s", path, VendorStyle.Render(verdict.Vendor)))
	case model.KindExcluded:
		headline = FormatWarning(fmt.Sprintf("%s is excluded", path))
	case model.KindUnsupported:
		headline = FormatError(fmt.Sprintf("%s has an unsupported format", path))
	default:
		headline = FormatInfo(fmt.Sprintf("%s matched no vendor", path))
	}

	lines := []string{headline}
	if verdict.Keyword != "" {
		lines = append(lines, SubtleStyle.Render(fmt.Sprintf("Matched keyword: %q", verdict.Keyword)))
	}
	if verdict.Kind != model.KindUnsupported {
		lines = append(lines, SubtleStyle.Render(fmt.Sprintf("Extracted %d characters", len([]rune(text)))))
	}
	return strings.Join(lines, "\n")
}

// RenderKeywordTable lists vendors in evaluation order followed by the exclusions.
func RenderKeywordTable(table *model.KeywordTable) string {
	var b strings.Builder
	for i, vendor := range table.Vendors {
		fmt.Fprintf(&b, "%d. %s  %s\n", i+1, VendorStyle.Render(vendor.Name), SubtleStyle.Render(strings.Join(vendor.Keywords, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(WarningStyle.Render("Exclusions: "))
	b.WriteString(strings.Join(table.Exclusions, ", "))

	return RenderBox(CertIcon+" Vendors", b.String())
}

// RenderRuns renders a table of past runs, newest first.
func RenderRuns(runs []model.Run) string {
	if len(runs) == 0 {
		return FormatInfo("No runs recorded yet")
	}

	headers := []string{"ID", "Started", "Root", "Total", "Classified", "Excluded", "Unclassified", "Unsupported"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Root,
			fmt.Sprint(run.Stats.Total),
			fmt.Sprint(run.Stats.Classified),
			fmt.Sprint(run.Stats.Excluded),
			fmt.Sprint(run.Stats.Unclassified),
			fmt.Sprint(run.Stats.Unsupported),
		})
	}
	return renderTable(headers, rows)
}

func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = TableCellStyle.Width(widths[i] + 2).Render(h)
	}
	lines := []string{TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))}

	for _, row := range rows {
		for i, cell := range row {
			cells[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}
