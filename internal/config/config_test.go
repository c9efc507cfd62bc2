package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/2beens/posecoach/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToml = `
[development]
environment = "development"
host = "localhost"
port = 9100
log_level = "trace"
log_to_stdout = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "posecoach"
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
frames_rate_limit_allowed_per_min = 600
report_cache_ttl = "15m"
history_db_path = "/tmp/posecoach/history.db"

[production]
environment = "production"
host = "0.0.0.0"
port = 9000
log_level = "info"
logs_path = "/var/log/posecoach/service"
sentry_enabled = true
postgres_host = "db"
postgres_port = "5432"
postgres_db_name = "posecoach"
postgres_user = "posecoach"
redis_host = "redis"
redis_port = "6379"
report_cache_size_mb = 128
log_max_size_mb = 20
log_max_backups = 7
max_request_body_kb = 512
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testToml), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := config.Load("dev", writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "5432", cfg.PostgresPort)
	assert.Equal(t, "postgres", cfg.PostgresUser)
	assert.Equal(t, "2112", cfg.PrometheusMetricsPort)
	assert.Equal(t, 600, cfg.FramesRateLimitAllowedPerMin)
	assert.Equal(t, 15*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, 32, cfg.ReportCacheSizeMB)
	assert.Equal(t, "/tmp/posecoach/history.db", cfg.HistoryDBPath)
	assert.Equal(t, "http://localhost:9100", cfg.ServerURL)
	assert.Equal(t, 4096, cfg.MaxRequestBodyKB)
	assert.Zero(t, cfg.LogMaxSizeMB)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := config.Load("production", writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.True(t, cfg.SentryEnabled)
	assert.Equal(t, "posecoach", cfg.PostgresUser)
	assert.Equal(t, 128, cfg.ReportCacheSizeMB)
	assert.Equal(t, time.Hour, cfg.ReportCacheTTL)
	assert.Equal(t, 1800, cfg.FramesRateLimitAllowedPerMin)
	assert.Equal(t, 512, cfg.MaxRequestBodyKB)
	assert.Equal(t, 20, cfg.LogMaxSizeMB)
	assert.Equal(t, 7, cfg.LogMaxBackups)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load("staging", writeConfig(t))
	assert.ErrorContains(t, err, "unknown env")

	_, err = config.Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "partial.toml")
	require.NoError(t, os.WriteFile(path, []byte("[development]\nport = 1\n"), 0o600))
	_, err = config.Load("prod", path)
	assert.ErrorContains(t, err, "no config section")
}
