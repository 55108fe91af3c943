package main

import (
	"fmt"

	"benchdata/internal/benchmark"
	"benchdata/internal/ui"

	"github.com/spf13/cobra"
)

var (
	compareMarkdown bool
	compareRaw      bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [BASE HEAD]",
	Short: "Compare two entries of a suite",
	Long: `Compares the newest entry of the suite with the one before it, or the
two given commits (full ids or prefixes of at least 7 characters).`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or BASE and HEAD commits, got %d", len(args))
		}
		return nil
	},
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().BoolVar(&compareMarkdown, "markdown", false, "render a markdown report")
	compareCmd.Flags().BoolVar(&compareRaw, "raw", false, "with --markdown, print the markdown source")
	addAlertFlags(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	threshold, err := thresholdFlag(cmd)
	if err != nil {
		return err
	}

	_, d, err := loadDataset()
	if err != nil {
		return err
	}
	suite, entries, err := suiteEntries(d)
	if err != nil {
		return err
	}

	var prev, curr *benchmark.Entry
	if len(args) == 2 {
		if prev, err = d.FindCommit(suite, args[0]); err != nil {
			return err
		}
		if curr, err = d.FindCommit(suite, args[1]); err != nil {
			return err
		}
	} else {
		if len(entries) < 2 {
			return fmt.Errorf("suite %q needs at least two entries to compare, has %d", suite, len(entries))
		}
		prev, _ = d.Previous(suite)
		curr, _ = d.Latest(suite)
	}

	comparisons := benchmark.Compare(*prev, *curr)
	alerts := benchmark.Alerts(comparisons, threshold)

	if compareMarkdown {
		var md string
		if len(alerts) > 0 {
			md = benchmark.AlertMarkdown(suite, *prev, *curr, alerts, threshold)
		} else {
			md = benchmark.ComparisonMarkdown(suite, *prev, *curr, comparisons)
		}
		if compareRaw {
			fmt.Fprint(out, md)
		} else {
			rendered, err := ui.RenderMarkdown(md, 100, false)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
	} else {
		fmt.Fprint(out, ui.RenderComparison(*prev, *curr, comparisons, threshold))
	}

	if len(alerts) > 0 && failOnAlertFlag(cmd) {
		return fmt.Errorf("performance regression in %d bench(es) exceeding threshold %g", len(alerts), threshold)
	}
	return nil
}
