package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	PostgresURL            string `mapstructure:"POSTGRES_URL"`
	RedisAddr              string `mapstructure:"REDIS_ADDR"`
	ServerPort             string `mapstructure:"SERVER_PORT"`
	IngestWorkers          int    `mapstructure:"INGEST_WORKERS"`
	FetchTimeout           int    `mapstructure:"FETCH_TIMEOUT"`
	FetchMode              string `mapstructure:"FETCH_MODE"`
	UserAgent              string `mapstructure:"USER_AGENT"`
	PolitenessMinutes      int    `mapstructure:"POLITENESS_MINUTES"`
	RefreshIntervalMinutes int    `mapstructure:"REFRESH_INTERVAL_MINUTES"`
	DropWindowHours        int    `mapstructure:"DROP_WINDOW_HOURS"`
	DropThresholdPct       string `mapstructure:"DROP_THRESHOLD_PCT"`
	AlertDedupHours        int    `mapstructure:"ALERT_DEDUP_HOURS"`
	SlackWebhookURL        string `mapstructure:"SLACK_WEBHOOK_URL"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = viper.ReadInConfig()

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("INGEST_WORKERS", 4)
	viper.SetDefault("FETCH_TIMEOUT", 20) // in seconds
	viper.SetDefault("FETCH_MODE", "http")
	viper.SetDefault("USER_AGENT", "its-on-sale-tracker/0.1")
	viper.SetDefault("POLITENESS_MINUTES", 30)
	viper.SetDefault("REFRESH_INTERVAL_MINUTES", 0) // 0 disables the scheduler
	viper.SetDefault("DROP_WINDOW_HOURS", 12)
	viper.SetDefault("DROP_THRESHOLD_PCT", "0")
	viper.SetDefault("ALERT_DEDUP_HOURS", 24)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
