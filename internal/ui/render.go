package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"benchdata/internal/benchmark"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// maxSubject keeps history rows on one line.
const maxSubject = 40

// RenderHistory renders the entries of a suite, oldest first, with one column
// per bench of the newest entry.
func RenderHistory(suite string, entries []benchmark.Entry, now time.Time) string {
	if len(entries) == 0 {
		return headerStyle.Render(suite) + "\n\nNo entries recorded.\n"
	}

	benches := entries[len(entries)-1].Benches
	headers := []string{"DATE", "COMMIT", "MESSAGE"}
	for _, b := range benches {
		headers = append(headers, strings.ToUpper(b.Name))
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{
			FormatDate(e.Date, now),
			e.Commit.ShortID(),
			truncate(e.Commit.Subject(), maxSubject),
		}
		for _, b := range benches {
			if v, ok := e.Bench(b.Name); ok {
				row = append(row, FormatValue(v.Value, v.Unit))
			} else {
				row = append(row, "-")
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(baseStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return labelStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	return fmt.Sprintf("%s\n%s\n%s\n",
		headerStyle.Render(suite),
		t.Render(),
		footerStyle.Render(fmt.Sprintf("%d entries", len(entries))))
}

// RenderComparison renders comparisons between two entries. Rows whose ratio
// exceeds threshold are highlighted as regressions.
func RenderComparison(prev, curr benchmark.Entry, comparisons []benchmark.Comparison, threshold float64) string {
	if len(comparisons) == 0 {
		return "No benches in common between the two entries.\n"
	}

	rows := make([][]string, 0, len(comparisons))
	for _, c := range comparisons {
		rows = append(rows, []string{
			c.Name,
			FormatValue(c.Prev.Value, c.Prev.Unit),
			FormatValue(c.Curr.Value, c.Curr.Unit),
			FormatPercent(c.DiffPercent),
			formatRatio(c.Ratio),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(baseStyle).
		Headers("BENCH", "PREVIOUS "+prev.Commit.ShortID(), "CURRENT "+curr.Commit.ShortID(), "CHANGE", "RATIO").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(comparisons) {
				return labelStyle.Padding(0, 1)
			}
			c := comparisons[row]
			switch {
			case c.Ratio > threshold:
				return regressedStyle.Padding(0, 1)
			case c.Improved():
				return improvedStyle.Padding(0, 1)
			default:
				return unchangedStyle.Padding(0, 1)
			}
		})

	alerts := benchmark.Alerts(comparisons, threshold)
	summary := fmt.Sprintf("%d benches compared, %d over threshold %g", len(comparisons), len(alerts), threshold)
	if len(alerts) > 0 {
		summary = regressedStyle.Render(summary)
	} else {
		summary = footerStyle.Render(summary)
	}
	return t.Render() + "\n" + summary + "\n"
}

// RenderMarkdown renders markdown for the terminal. plain disables colors,
// which is what non-interactive output wants.
func RenderMarkdown(md string, width int, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}

// RenderError formats an error for terminal output.
func RenderError(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

func formatRatio(r float64) string {
	if math.IsInf(r, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", r)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
