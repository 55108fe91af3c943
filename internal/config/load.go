package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// BENCHDATA_DATA_FILE or BENCHDATA_DB_DSN.
const EnvPrefix = "BENCHDATA"

// Defaults for every configuration key.
const (
	DefaultDataFile       = "dev/bench/data.js"
	DefaultSuite          = "Performance Metrics"
	DefaultTool           = "customSmallerIsBetter"
	DefaultAlertThreshold = 2.0
	DefaultDBType         = "sqlite"
	DefaultDBDSN          = ".benchdata.db"
	DefaultPort           = 8080
	DefaultLogFormat      = "json"
)

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("data_file", DefaultDataFile)
	viper.SetDefault("suite", DefaultSuite)
	viper.SetDefault("repo_url", "")
	viper.SetDefault("tool", DefaultTool)
	viper.SetDefault("max_items", 0)
	viper.SetDefault("alert_threshold", DefaultAlertThreshold)
	viper.SetDefault("fail_on_alert", false)
	viper.SetDefault("db.type", DefaultDBType)
	viper.SetDefault("db.dsn", DefaultDBDSN)
	viper.SetDefault("server.port", DefaultPort)
	viper.SetDefault("server.watch", true)
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.format", DefaultLogFormat)
	viper.SetDefault("verbose", false)
	viper.SetDefault("notifications.slack.webhook_url", "")
	viper.SetDefault("notifications.discord.webhook_url", "")
}

// Load initializes the configuration from file and environment variables.
// A missing config.yaml in the working directory is not an error; a missing
// or unreadable file named explicitly is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			slog.Debug("no config file found, using defaults")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	slog.Debug("using config file", "path", viper.ConfigFileUsed())
	return nil
}

// Config is a typed snapshot of the loaded configuration.
type Config struct {
	DataFile       string
	Suite          string
	RepoURL        string
	Tool           string
	MaxItems       int
	AlertThreshold float64
	FailOnAlert    bool
	DBType         string
	DBDSN          string
	Port           int
	Watch          bool
	LogFile        string
	LogFormat      string
	Verbose        bool
	SlackWebhook   string
	DiscordWebhook string
}

// Current reads the configuration from viper.
func Current() Config {
	return Config{
		DataFile:       viper.GetString("data_file"),
		Suite:          viper.GetString("suite"),
		RepoURL:        viper.GetString("repo_url"),
		Tool:           viper.GetString("tool"),
		MaxItems:       viper.GetInt("max_items"),
		AlertThreshold: viper.GetFloat64("alert_threshold"),
		FailOnAlert:    viper.GetBool("fail_on_alert"),
		DBType:         viper.GetString("db.type"),
		DBDSN:          viper.GetString("db.dsn"),
		Port:           viper.GetInt("server.port"),
		Watch:          viper.GetBool("server.watch"),
		LogFile:        viper.GetString("log.file"),
		LogFormat:      viper.GetString("log.format"),
		Verbose:        viper.GetBool("verbose"),
		SlackWebhook:   viper.GetString("notifications.slack.webhook_url"),
		DiscordWebhook: viper.GetString("notifications.discord.webhook_url"),
	}
}
