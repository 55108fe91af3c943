package main

import (
	"fmt"

	"benchdata/internal/ui"

	"github.com/spf13/cobra"
)

var showLimit int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the history of a suite",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, d, err := loadDataset()
		if err != nil {
			return err
		}
		suite, entries, err := suiteEntries(d)
		if err != nil {
			return err
		}
		if showLimit > 0 && len(entries) > showLimit {
			entries = entries[len(entries)-showLimit:]
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderHistory(suite, entries, now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 20, "show only the newest N entries (0 for all)")
}
