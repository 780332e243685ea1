// Package sqlitestorage implements the storage.Backend interface on a local
// SQLite database file.
// It wraps the GORM backend via composition; the only SQLite-specific
// concern is opening the database.
package sqlitestorage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/flightdeck/companion/internal/database"
	gormstorage "github.com/flightdeck/companion/internal/storage/gorm"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	Path string // empty for an in-memory database
}

// Backend wraps the GORM backend for SQLite.
type Backend struct {
	*gormstorage.Backend
	cfg Config
}

// New opens the SQLite database at cfg.Path.
func New(cfg Config, log zerolog.Logger) (*Backend, error) {
	db, err := database.NewManager(log).GetSqliteDB(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(db),
		cfg:     cfg,
	}, nil
}

// Path returns the database file path.
func (b *Backend) Path() string {
	return b.cfg.Path
}
