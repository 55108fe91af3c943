package config

import (
	"fmt"
	"strings"

	"benchdata/internal/benchmark"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if viper.GetString("data_file") == "" {
		errors = append(errors, "data_file must not be empty")
	}

	if viper.GetString("suite") == "" {
		errors = append(errors, "suite must not be empty")
	}

	if tool := viper.GetString("tool"); !benchmark.Tool(tool).Valid() {
		errors = append(errors, fmt.Sprintf("tool %q is not supported", tool))
	}

	// The threshold is a ratio; 1.0 would flag every regression however small.
	if threshold := viper.GetFloat64("alert_threshold"); threshold <= 1 {
		errors = append(errors, fmt.Sprintf("alert_threshold must be greater than 1, got: %v", threshold))
	}

	if maxItems := viper.GetInt("max_items"); maxItems < 0 {
		errors = append(errors, fmt.Sprintf("max_items must not be negative, got: %d", maxItems))
	}

	if port := viper.GetInt("server.port"); port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port must be between 1 and 65535, got: %d", port))
	}

	switch strings.ToLower(viper.GetString("db.type")) {
	case "sqlite", "sqlite3", "postgres", "postgresql":
	default:
		errors = append(errors, fmt.Sprintf("db.type %q is not supported", viper.GetString("db.type")))
	}

	switch viper.GetString("log.format") {
	case "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("log.format must be json or text, got: %q", viper.GetString("log.format")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
