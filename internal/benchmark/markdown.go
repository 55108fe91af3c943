package benchmark

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ComparisonMarkdown renders a comparison table between two entries.
func ComparisonMarkdown(suite string, prev, curr Entry, comparisons []Comparison) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", suite)
	writeTable(&sb, prev, curr, comparisons)
	return sb.String()
}

// AlertMarkdown renders the regression report sent to notifiers.
func AlertMarkdown(suite string, prev, curr Entry, alerts []Comparison, threshold float64) string {
	var sb strings.Builder
	sb.WriteString("# :warning: **Performance Alert** :warning:\n\n")
	fmt.Fprintf(&sb, "Possible performance regression was detected for benchmark **'%s'**.\n", suite)
	fmt.Fprintf(&sb, "Benchmark result of this commit is worse than the previous benchmark result exceeding threshold `%s`.\n\n", formatNumber(threshold))
	writeTable(&sb, prev, curr, alerts)
	if curr.Commit.URL != "" {
		fmt.Fprintf(&sb, "\nCommit: %s\n", curr.Commit.URL)
	}
	return sb.String()
}

func writeTable(sb *strings.Builder, prev, curr Entry, comparisons []Comparison) {
	fmt.Fprintf(sb, "| Benchmark | Current: %s | Previous: %s | Ratio |\n", curr.Commit.ShortID(), prev.Commit.ShortID())
	sb.WriteString("|-|-|-|-|\n")
	for _, c := range comparisons {
		fmt.Fprintf(sb, "| `%s` | `%s` %s | `%s` %s | `%s` |\n",
			c.Name,
			formatNumber(c.Curr.Value), c.Curr.Unit,
			formatNumber(c.Prev.Value), c.Prev.Unit,
			formatRatio(c.Ratio))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRatio(r float64) string {
	if math.IsInf(r, 1) {
		return "inf"
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}
