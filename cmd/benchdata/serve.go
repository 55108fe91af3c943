package main

import (
	"os"
	"os/signal"
	"syscall"

	"benchdata/internal/benchmark"
	"benchdata/internal/config"
	"benchdata/internal/metrics"
	"benchdata/internal/telemetry"
	"benchdata/internal/web"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dataset over HTTP",
	Long: `Serves data.js, a JSON API over the suites and Prometheus metrics on
127.0.0.1. With server.watch enabled the dataset is reloaded whenever the data
file changes.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "port to listen on")
	serveCmd.Flags().Bool("watch", true, "reload the dataset when the file changes")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.watch", serveCmd.Flags().Lookup("watch"))
}

func runServe(cmd *cobra.Command, args []string) error {
	path := viper.GetString("data_file")
	store, err := storeFactory(path, viper.GetString("repo_url"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(store, metrics.NewMetrics(), viper.GetInt("server.port"))
	srv.AlertThreshold = viper.GetFloat64("alert_threshold")

	if viper.GetBool("server.watch") {
		if fs, ok := store.(*benchmark.FileStore); ok {
			path = fs.Path()
		}
		go func() {
			if err := srv.Watch(ctx, path, web.DefaultDebounce); err != nil {
				telemetry.LogError("file watcher stopped", err)
			}
		}()
	}

	return runServer(ctx, srv)
}
