// Package config loads engine configuration from a JSON file via viper and
// provides typed accessors. All knobs have defaults so the bot runs without
// a config file present.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// not an error; defaults apply.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("logDir", "")

	viper.SetDefault("search.timeBudgetMs", 85)
	viper.SetDefault("search.maxDepth", 6)
	viper.SetDefault("search.exploration", 1.4)
	viper.SetDefault("search.minRandomVisits", 8)
	viper.SetDefault("search.maxIterations", 10000)
	viper.SetDefault("search.seed", 0)

	viper.SetDefault("rules.wetnessSlowsMovement", true)

	viper.SetDefault("engine.searchMinAgents", 2)
	viper.SetDefault("engine.searchMinTurn", 3)
	viper.SetDefault("engine.cacheEnabled", false)
	viper.SetDefault("engine.cacheMaxEntries", 4096)

	viper.SetDefault("record.sink", "slog")
	viper.SetDefault("record.memoryCapacity", 64)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "soakbot")
	viper.SetDefault("db.sqlitePath", "./soakbot.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "soakbot-metrics")
	viper.SetDefault("influx.bucket", "bot_performance")
	viper.SetDefault("influx.backupPath", "./soakbot_metrics.gz")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "soakbot")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", false)
	viper.SetDefault("otel.logFile", "./soakbot_otel.log")

	viper.SetConfigName("soakbot.config.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// SearchBudget returns the wall-clock budget for one search invocation.
func SearchBudget() time.Duration {
	return time.Duration(viper.GetInt("search.timeBudgetMs")) * time.Millisecond
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
	LogFile      string
}

// GetOTelConfig returns the OTel settings with defaults applied.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
		LogFile:      viper.GetString("otel.logFile"),
	}
}
