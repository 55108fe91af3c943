package main

import (
	"errors"
	"fmt"

	"benchdata/internal/benchmark"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the data file for structural problems",
	Long: `Loads the data file and checks every suite: commit ids present and
unique, known tools, dates in ascending order, bench names unique and values
finite. Every problem is listed; the command fails if there is any.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := viper.GetString("data_file")

	_, d, err := loadDataset()
	if err != nil {
		return err
	}

	if err := benchmark.Validate(d); err != nil {
		problems := []error{err}
		var merr *multierror.Error
		if errors.As(err, &merr) {
			problems = merr.Errors
		}
		for _, p := range problems {
			fmt.Fprintf(out, "✗ %v\n", p)
		}
		return fmt.Errorf("%s: %d problem(s) found", path, len(problems))
	}

	total := 0
	for _, s := range d.Suites() {
		entries, _ := d.Entries.Get(s)
		total += len(entries)
	}
	fmt.Fprintf(out, "✓ %s is valid (%d suites, %d entries)\n", path, d.Entries.Len(), total)
	return nil
}
