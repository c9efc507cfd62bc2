package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	FramesRateLimitAllowedPerMin int           `toml:"frames_rate_limit_allowed_per_min"`
	ReportCacheSizeMB            int           `toml:"report_cache_size_mb"`
	ReportCacheTTL               time.Duration `toml:"report_cache_ttl"`
	MaxRequestBodyKB             int           `toml:"max_request_body_kb"`

	// posereplay cli
	HistoryDBPath string `toml:"history_db_path"`
	ServerURL     string `toml:"server_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load reads the TOML file at path and returns the section of env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9100
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.FramesRateLimitAllowedPerMin == 0 {
		c.FramesRateLimitAllowedPerMin = 1800
	}
	if c.ReportCacheSizeMB <= 0 {
		c.ReportCacheSizeMB = 32
	}
	if c.ReportCacheTTL <= 0 {
		c.ReportCacheTTL = time.Hour
	}
	if c.MaxRequestBodyKB <= 0 {
		c.MaxRequestBodyKB = 4096
	}
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:9100"
	}
}
