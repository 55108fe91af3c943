package main

import (
	"benchdata/internal/config"
	"benchdata/internal/ui"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the history of a suite interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		return ui.StartHistoryTUI(suite, entries, threshold)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().Float64("alert-threshold", config.DefaultAlertThreshold, "ratio above which a change is highlighted")
}
