// Package postgres implements the storage.Backend interface on PostgreSQL,
// for users who share one profile between machines.
package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/flightdeck/companion/internal/config"
	"github.com/flightdeck/companion/internal/database"
	"github.com/flightdeck/companion/internal/storage"
	gormstorage "github.com/flightdeck/companion/internal/storage/gorm"
)

// Dependencies holds all dependencies for the Postgres storage backend.
type Dependencies struct {
	DB     *gorm.DB // optional; opened from Config on Init when nil
	Config config.PostgresConfig
	Logger zerolog.Logger
}

// Backend wraps the GORM backend for Postgres.
type Backend struct {
	*gormstorage.Backend
	deps Dependencies
}

// New creates a Postgres backend. No connection is made until Init.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// Init connects if no DB was injected, then migrates the schema.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		db, err := database.NewManager(b.deps.Logger).GetPostgresDB(b.deps.Config)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		b.deps.DB = db
	}

	b.Backend = gormstorage.New(b.deps.DB)
	return b.Backend.Init()
}

// Close closes the connection. It is a no-op before Init.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	return b.Backend.Close()
}

// Load returns storage.ErrNotInitialized before Init.
func (b *Backend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if b.Backend == nil {
		return nil, false, storage.ErrNotInitialized
	}
	return b.Backend.Load(ctx, key)
}

// Save returns storage.ErrNotInitialized before Init.
func (b *Backend) Save(ctx context.Context, key string, value []byte) error {
	if b.Backend == nil {
		return storage.ErrNotInitialized
	}
	return b.Backend.Save(ctx, key, value)
}
