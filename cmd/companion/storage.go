package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/flightdeck/companion/internal/config"
	"github.com/flightdeck/companion/internal/storage"
	"github.com/flightdeck/companion/internal/storage/file"
	"github.com/flightdeck/companion/internal/storage/memory"
	pgstorage "github.com/flightdeck/companion/internal/storage/postgres"
	sqlitestorage "github.com/flightdeck/companion/internal/storage/sqlite"
)

// openStorage creates the configured backend and initialises it.
func (a *app) openStorage() (storage.Backend, error) {
	backend, err := createStorageBackend(a.storageCfg, a.dbLogger)
	if err != nil {
		a.logger.Error("Failed to create storage backend", "error", err)
		return nil, err
	}
	if err := initStorage(backend); err != nil {
		a.logger.Error("Failed to initialize storage backend", "type", a.storageCfg.Type, "error", err)
		return nil, err
	}
	return backend, nil
}

// initStorage runs Init and releases whatever New already opened when it
// fails.
func initStorage(backend storage.Backend) error {
	if err := backend.Init(); err != nil {
		if cerr := backend.Close(); cerr != nil {
			return errors.Join(err, fmt.Errorf("failed to close storage backend: %w", cerr))
		}
		return err
	}
	return nil
}

func createStorageBackend(storageCfg config.StorageConfig, dbLogger zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		return pgstorage.New(pgstorage.Dependencies{
			Config: storageCfg.Postgres,
			Logger: dbLogger,
		}), nil

	case "sqlite":
		backend, err := sqlitestorage.New(sqlitestorage.Config{
			Path: storageCfg.SQLite.Path,
		}, dbLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		return backend, nil

	case "file", "":
		return file.New(file.Config{Dir: storageCfg.File.Dir}), nil

	case "memory":
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownType, storageCfg.Type)
	}
}
