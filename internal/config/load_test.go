package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	defer viper.Reset()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		require.NoError(t, Load(""))

		cfg := Current()
		assert.Equal(t, DefaultDataFile, cfg.DataFile)
		assert.Equal(t, "Performance Metrics", cfg.Suite)
		assert.Equal(t, "customSmallerIsBetter", cfg.Tool)
		assert.Equal(t, 2.0, cfg.AlertThreshold)
		assert.Equal(t, 8080, cfg.Port)
		assert.True(t, cfg.Watch)
		assert.Equal(t, "sqlite", cfg.DBType)
	})

	t.Run("Load From Env", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())
		t.Setenv("BENCHDATA_SUITE", "Nightly")
		t.Setenv("BENCHDATA_DB_DSN", "postgres://localhost/bench")

		require.NoError(t, Load(""))
		assert.Equal(t, "Nightly", Current().Suite)
		assert.Equal(t, "postgres://localhost/bench", Current().DBDSN)
	})

	t.Run("Load From File", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		t.Chdir(dir)
		content := "repo_url: https://github.com/npequeux/rtop\nmax_items: 50\nserver:\n  port: 9090\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

		require.NoError(t, Load(""))
		cfg := Current()
		assert.Equal(t, "https://github.com/npequeux/rtop", cfg.RepoURL)
		assert.Equal(t, 50, cfg.MaxItems)
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("Explicit Missing File", func(t *testing.T) {
		viper.Reset()
		err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
