// package formatter renders sync reports and metric windows to various formats (plain text, table, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/syruplabs/syrup/internal/models"
	"github.com/syruplabs/syrup/internal/tasks"
)

// Summary renders a job report as a short plain-text block.
//
// This is the body of the sync trigger's HTTP 200 response, so it stays
// terse and greppable.
func Summary(report *tasks.JobReport) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "sync complete: %d artists in %s\n", report.Total, report.Duration.Round(10e6))
	fmt.Fprintf(&buf, "  succeeded:   %d\n", report.Succeeded)
	fmt.Fprintf(&buf, "  fallen back: %d\n", report.FallenBack)
	fmt.Fprintf(&buf, "  failed:      %d\n", report.Failed)
	fmt.Fprintf(&buf, "  skipped:     %d\n", report.Skipped)

	for _, outcome := range report.Outcomes {
		if outcome.Err != nil {
			fmt.Fprintf(&buf, "  ! %s: %v\n", outcome.ArtistName, outcome.Err)
		}
	}

	return buf.String()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ReportTable renders a job report as a bordered table for CLI output.
func ReportTable(report *tasks.JobReport) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ARTIST", "SOURCE", "RECORDS", "STATUS")

	for _, outcome := range report.Outcomes {
		t.Row(outcome.ArtistName, outcome.SourceUsed.String(), strconv.Itoa(outcome.RecordsWritten), outcomeStatus(outcome))
	}

	summary := fmt.Sprintf("%d synced, %d fallen back, %d failed, %d skipped (%s)",
		report.Succeeded, report.FallenBack, report.Failed, report.Skipped, report.Duration.Round(10e6))

	return t.String() + "\n" + summary + "\n"
}

func outcomeStatus(outcome tasks.SyncOutcome) string {
	switch {
	case outcome.Skipped:
		return "skipped"
	case outcome.Err != nil:
		return failStyle.Render("failed")
	case outcome.SourceUsed == "":
		return "no data"
	case outcome.FellBack:
		return "fallback"
	default:
		return "ok"
	}
}

// MetricsToCSV converts a metric window to CSV with columns: Date, Source, Streams
func MetricsToCSV(metrics []models.DailyMetric) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Date", "Source", "Streams"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range metrics {
		record := []string{
			m.Day(),
			m.Source.String(),
			strconv.FormatInt(m.Streams, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// MetricsToMarkdown converts a metric window to a Markdown document
func MetricsToMarkdown(artist *models.Artist, metrics []models.DailyMetric) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", artist.Name))
	if artist.LastSyncedAt != nil {
		buf.WriteString(fmt.Sprintf("**Last synced**: %s\n", artist.LastSyncedAt.UTC().Format("2006-01-02 15:04")))
	}
	buf.WriteString(fmt.Sprintf("**Rows**: %d\n\n", len(metrics)))

	buf.WriteString("| Date | Source | Streams |\n")
	buf.WriteString("|------|--------|---------|\n")
	for _, m := range metrics {
		buf.WriteString(fmt.Sprintf("| %s | %s | %d |\n", m.Day(), m.Source, m.Streams))
	}

	return buf.Bytes(), nil
}
