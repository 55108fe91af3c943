package main

import (
	"fmt"
	"os"

	"benchdata/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history of a suite as JSON or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
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

		if exportOutput == "" || exportOutput == "-" {
			return export.Write(cmd.OutOrStdout(), format, suite, entries)
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		if err := export.Write(f, format, suite, entries); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries of %q to %s\n", len(entries), suite, exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}
