package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

const sampleConfig = `
[server]
http_port = 9090

[storage]
driver = "postgres"

[database]
host = "db"
port = 6432
user = "svc"
password = "secret"
dbname = "lectures"

[series]
confirmation_threshold = 10

[[courses]]
id = "c1"
title = "Campus lecture tour"

[[courses]]
id = "c2"
title = "Corporate motivation session"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "host=db port=6432 user=svc password=secret dbname=lectures sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 10, cfg.Series.ConfirmationThreshold)
	// значения по умолчанию сохраняются для незаданных ключей
	assert.Equal(t, 4, cfg.Series.InsertConcurrency)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)

	courses := cfg.CourseCatalog()
	require.Len(t, courses, 2)
	assert.Equal(t, domain.Course{ID: "c1", Title: "Campus lecture tour"}, courses[0])
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_HTTP_PORT", "7070")
	t.Setenv("OPERATOR_TOKEN", "from-env")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Auth.OperatorToken)
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.RabbitMQ.Enabled())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, domain.SeriesConfirmationThreshold, cfg.Series.ConfirmationThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"zero threshold", func(c *Config) { c.Series.ConfirmationThreshold = 0 }},
		{"zero concurrency", func(c *Config) { c.Series.InsertConcurrency = 0 }},
		{"rate limit without burst", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.Burst = 0
		}},
		{"unknown category key", func(c *Config) { c.Reports.CategoryKey = "city" }},
		{"duplicate course", func(c *Config) {
			c.Courses = []CourseConfig{{ID: "c1"}, {ID: "c1"}}
		}},
		{"empty course id", func(c *Config) { c.Courses = []CourseConfig{{Title: "x"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}
