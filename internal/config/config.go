package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is looked up in the directory passed to Load.
const ConfigFileName = "companion.cfg.json"

// FileConfig holds settings for the JSON-file storage backend.
type FileConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// SQLiteConfig holds settings for the SQLite storage backend.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// PostgresConfig holds connection settings for the Postgres storage backend.
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// StorageConfig selects and configures the durable storage backend.
type StorageConfig struct {
	Type         string
	WriteTimeout time.Duration
	File         FileConfig
	SQLite       SQLiteConfig
	Postgres     PostgresConfig
}

// LoggingConfig holds log level and file rotation settings.
type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
}

// OTelConfig holds metric export settings.
type OTelConfig struct {
	Enabled        bool
	ServiceName    string
	ExportInterval time.Duration
}

// SurfaceConfig holds surface colour resolver settings.
type SurfaceConfig struct {
	CacheSize int
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("log.maxSizeMB", 32)
	viper.SetDefault("log.maxBackups", 1)

	viper.SetDefault("storage.type", "file")
	viper.SetDefault("storage.writeTimeout", "5s")
	viper.SetDefault("storage.file.dir", "./state")
	viper.SetDefault("storage.sqlite.path", "./companion.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "companion")

	viper.SetDefault("surface.cacheSize", 256)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "companion")
	viper.SetDefault("otel.exportInterval", "30s")
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

// GetStorageConfig returns the storage section, falling back to defaults for
// anything not set. Safe to call when Load failed.
func GetStorageConfig() StorageConfig {
	setDefaults()
	return StorageConfig{
		Type:         viper.GetString("storage.type"),
		WriteTimeout: viper.GetDuration("storage.writeTimeout"),
		File: FileConfig{
			Dir: viper.GetString("storage.file.dir"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetLoggingConfig returns the logging section.
func GetLoggingConfig() LoggingConfig {
	setDefaults()
	return LoggingConfig{
		Level:      viper.GetString("logLevel"),
		Dir:        viper.GetString("logsDir"),
		MaxSizeMB:  viper.GetInt("log.maxSizeMB"),
		MaxBackups: viper.GetInt("log.maxBackups"),
	}
}

// GetSurfaceConfig returns the surface section.
func GetSurfaceConfig() SurfaceConfig {
	setDefaults()
	return SurfaceConfig{
		CacheSize: viper.GetInt("surface.cacheSize"),
	}
}

// GetOTelConfig returns the otel section.
func GetOTelConfig() OTelConfig {
	setDefaults()
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		ExportInterval: viper.GetDuration("otel.exportInterval"),
	}
}
