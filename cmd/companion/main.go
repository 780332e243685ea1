// Command companion inspects and edits the state of the flight simulator
// companion from a terminal: surface colours, favorites, procedure paths
// and the current store snapshots.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/flightdeck/companion/internal/config"
	"github.com/flightdeck/companion/internal/logging"
	intOtel "github.com/flightdeck/companion/internal/otel"
)

// BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "companion"
)

var (
	// SessionID tags every log line written by this process.
	SessionID        = uuid.New()
	SessionStartTime = time.Now()

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider exports the store metrics when enabled in config
	OTelProvider *intOtel.Provider
)

// app carries what the subcommands need.
type app struct {
	out        io.Writer
	logger     *slog.Logger
	dbLogger   zerolog.Logger
	storageCfg config.StorageConfig
	surfaceCfg config.SurfaceConfig
}

func main() {
	configDir := os.Getenv("COMPANION_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}

	a := setup(configDir)
	err := run(context.Background(), a, os.Args[1:])
	if err != nil {
		Logger.Error("Command failed", "args", os.Args[1:], "error", err)
	}
	shutdown()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("Failed to shut down OTel provider", "error", err)
		}
	}
	_ = SlogManager.Close()
}

func setup(configDir string) *app {
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, "warn", nil)
	Logger = SlogManager.Logger()

	if err := config.Load(configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	}

	logCfg := config.GetLoggingConfig()
	if err := os.MkdirAll(logCfg.Dir, 0755); err != nil {
		Logger.Warn("Failed to create logs dir, logging to stdout", "dir", logCfg.Dir, "error", err)
	} else {
		path := SlogManager.SetupFile(logCfg, AppName, SessionStartTime, sessionAttrs)
		Logger = SlogManager.Logger()
		Logger.Info("Starting up...",
			"version", CurrentVersion,
			"buildDate", BuildDate,
			"logFile", filepath.Clean(path),
			"configDir", configDir,
		)
	}

	initOTel()

	return &app{
		out:        os.Stdout,
		logger:     Logger,
		dbLogger:   logging.NewZerolog(SlogManager.Writer(), logCfg.Level),
		storageCfg: config.GetStorageConfig(),
		surfaceCfg: config.GetSurfaceConfig(),
	}
}

func sessionAttrs() []slog.Attr {
	return []slog.Attr{slog.String("session", SessionID.String())}
}

func initOTel() {
	cfg := config.GetOTelConfig()
	provider, err := intOtel.New(intOtel.Config{
		Enabled:        cfg.Enabled,
		ServiceName:    cfg.ServiceName,
		ExportInterval: cfg.ExportInterval,
		Writer:         SlogManager.Writer(),
	})
	if err != nil {
		Logger.Warn("Failed to set up OTel, metrics disabled", "error", err)
		return
	}
	provider.Install()
	OTelProvider = provider
	if cfg.Enabled {
		Logger.Info("OTel metrics enabled", "interval", cfg.ExportInterval)
	}
}
