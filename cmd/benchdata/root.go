package main

import (
	"fmt"
	"os"

	"benchdata/internal/config"
	"benchdata/internal/telemetry"
	"benchdata/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// closeLog releases the log file opened by initConfig.
var closeLog = func() error { return nil }

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchdata",
	Short: "Maintain a github-action-benchmark style data.js history",
	Long: `benchdata records benchmark results per commit in a data.js file
(window.BENCHMARK_DATA) that a static chart page can plot. It appends new
entries, validates and compares them, exports history, mirrors it into SQL
and serves it over HTTP.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError(err))
		exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", config.DefaultDataFile, "data.js file holding the benchmark history")
	rootCmd.PersistentFlags().StringP("suite", "s", config.DefaultSuite, "benchmark suite name")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")

	viper.BindPFlag("data_file", rootCmd.PersistentFlags().Lookup("file"))
	viper.BindPFlag("suite", rootCmd.PersistentFlags().Lookup("suite"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables, validates them and
// sets up logging.
func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.Load(cfgFile); err != nil {
		return err
	}
	if err := config.ValidateConfig(); err != nil {
		return err
	}

	closer, err := telemetry.InitLogger(telemetry.Options{
		Debug:  viper.GetBool("verbose"),
		File:   viper.GetString("log.file"),
		Format: viper.GetString("log.format"),
	})
	if err != nil {
		return err
	}
	closeLog = closer
	return nil
}
