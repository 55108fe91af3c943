package main

import (
	"errors"
	"fmt"

	"benchdata/internal/benchmark"
	"benchdata/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadDataset opens the configured data file.
func loadDataset() (benchmark.Store, *benchmark.Dataset, error) {
	cfg := config.Current()
	store, err := storeFactory(cfg.DataFile, cfg.RepoURL)
	if err != nil {
		return nil, nil, err
	}
	d, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", cfg.DataFile, err)
	}
	return store, d, nil
}

// suiteEntries returns the entries of the configured suite.
func suiteEntries(d *benchmark.Dataset) (string, []benchmark.Entry, error) {
	suite := viper.GetString("suite")
	entries, err := d.Suite(suite)
	if err != nil {
		if errors.Is(err, benchmark.ErrUnknownSuite) && len(d.Suites()) > 0 {
			return suite, nil, fmt.Errorf("%w (available: %q)", err, d.Suites())
		}
		return suite, nil, err
	}
	return suite, entries, nil
}

// thresholdFlag returns the --alert-threshold flag when set, else the
// configured value.
func thresholdFlag(cmd *cobra.Command) (float64, error) {
	v := viper.GetFloat64("alert_threshold")
	if f := cmd.Flags().Lookup("alert-threshold"); f != nil && f.Changed {
		v, _ = cmd.Flags().GetFloat64("alert-threshold")
	}
	if v <= 1 {
		return 0, fmt.Errorf("alert threshold must be greater than 1, got %v", v)
	}
	return v, nil
}

// failOnAlertFlag returns --fail-on-alert when set, else the configured value.
func failOnAlertFlag(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("fail-on-alert"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("fail-on-alert")
		return v
	}
	return viper.GetBool("fail_on_alert")
}

func addAlertFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("alert-threshold", config.DefaultAlertThreshold, "ratio above which a change counts as a regression")
	cmd.Flags().Bool("fail-on-alert", false, "exit non-zero when a regression exceeds the threshold")
}
