package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0644))
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"logLevel": "debug",
		"storage": { "type": "sqlite" },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "sqlite", viper.GetString("storage.type"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./logs", viper.GetString("logsDir"))
	assert.Equal(t, 32, viper.GetInt("log.maxSizeMB"))
	assert.Equal(t, 1, viper.GetInt("log.maxBackups"))
	assert.Equal(t, "file", viper.GetString("storage.type"))
	assert.Equal(t, "5s", viper.GetString("storage.writeTimeout"))
	assert.Equal(t, "./state", viper.GetString("storage.file.dir"))
	assert.Equal(t, "./companion.db", viper.GetString("storage.sqlite.path"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "postgres", viper.GetString("db.username"))
	assert.Equal(t, "postgres", viper.GetString("db.password"))
	assert.Equal(t, "companion", viper.GetString("db.database"))
	assert.Equal(t, 256, viper.GetInt("surface.cacheSize"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetInt(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testInt", 42)
	assert.Equal(t, 42, GetInt("testInt"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetStorageConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)
	require.NoError(t, Load(dir))

	cfg := GetStorageConfig()
	assert.Equal(t, "file", cfg.Type)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "./state", cfg.File.Dir)
	assert.Equal(t, "./companion.db", cfg.SQLite.Path)
	assert.Equal(t, PostgresConfig{
		Host:     "localhost",
		Port:     "5432",
		Username: "postgres",
		Password: "postgres",
		Database: "companion",
	}, cfg.Postgres)
}

func TestGetStorageConfig_WithoutLoad(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg := GetStorageConfig()
	assert.Equal(t, "file", cfg.Type)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"storage": {
			"type": "postgres",
			"writeTimeout": "250ms",
			"file": { "dir": "/tmp/state" },
			"sqlite": { "path": "/tmp/c.db" }
		},
		"db": { "host": "db.internal", "database": "profiles" }
	}`)
	require.NoError(t, Load(dir))

	sc := GetStorageConfig()
	assert.Equal(t, "postgres", sc.Type)
	assert.Equal(t, 250*time.Millisecond, sc.WriteTimeout)
	assert.Equal(t, "/tmp/state", sc.File.Dir)
	assert.Equal(t, "/tmp/c.db", sc.SQLite.Path)
	assert.Equal(t, "db.internal", sc.Postgres.Host)
	assert.Equal(t, "profiles", sc.Postgres.Database)
	assert.Equal(t, "5432", sc.Postgres.Port)
}

func TestGetLoggingConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"logLevel": "warn",
		"logsDir": "/var/log/companion",
		"log": { "maxSizeMB": 8, "maxBackups": 3 }
	}`)
	require.NoError(t, Load(dir))

	lc := GetLoggingConfig()
	assert.Equal(t, LoggingConfig{Level: "warn", Dir: "/var/log/companion", MaxSizeMB: 8, MaxBackups: 3}, lc)
}

func TestGetSurfaceConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	assert.Equal(t, 256, GetSurfaceConfig().CacheSize)

	viper.Set("surface.cacheSize", 16)
	assert.Equal(t, 16, GetSurfaceConfig().CacheSize)
}

func TestGetOTelConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	assert.Equal(t, OTelConfig{ServiceName: "companion", ExportInterval: 30 * time.Second}, GetOTelConfig())

	dir := t.TempDir()
	writeConfig(t, dir, `{"otel": {"enabled": true, "exportInterval": "5s"}}`)
	require.NoError(t, Load(dir))

	oc := GetOTelConfig()
	assert.True(t, oc.Enabled)
	assert.Equal(t, 5*time.Second, oc.ExportInterval)
}
