package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8000"
database:
  host: db
  user: app
  password: secret
  name: fleet
redis:
  addr: "redis:6379"
kafka:
  brokers: ["kafka:9092"]
  airplanes_topic: airplanes
fleet:
  max_airplanes: 3
  list_cache_ttl_seconds: 30
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, 3, cfg.Fleet.MaxAirplanes)
	assert.Equal(t, 30, cfg.Fleet.ListCacheSeconds)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=fleet sslmode=disable", cfg.Database.DSN())
	assert.False(t, cfg.Database.InMemory())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Fleet.MaxAirplanes)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.True(t, cfg.Database.InMemory())
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(writeConfig(t, "database:\n  host: localhost\n"))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = LoadConfig(writeConfig(t, "http: ["))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = LoadConfig(writeConfig(t, "fleet:\n  max_airplanes: -1\n"))
	assert.ErrorContains(t, err, "max_airplanes")

	_, err = LoadConfig(writeConfig(t, "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "unknown log format")
}
