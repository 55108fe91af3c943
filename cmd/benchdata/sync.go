package main

import (
	"fmt"

	"benchdata/internal/db"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the data file into the configured database",
	Long: `Writes every entry of every suite into the database configured by
db.type (sqlite or postgres) and db.dsn. Entries already present are skipped,
so running sync repeatedly is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, d, err := loadDataset()
		if err != nil {
			return err
		}

		dbType := viper.GetString("db.type")
		store, err := dbFactory(db.StoreConfig{
			Type:             dbType,
			ConnectionString: viper.GetString("db.dsn"),
		})
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		written, err := db.Sync(store, d)
		if err != nil {
			return fmt.Errorf("sync failed after %d entries: %w", written, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Synced %d new entries to %s store\n", written, dbType)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
