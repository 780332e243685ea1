// Package file implements storage.Backend as one JSON file per key inside a
// directory, typically the user's config directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Config holds configuration for the file storage backend.
type Config struct {
	Dir string
}

// Backend writes each key to <Dir>/<key>.json.
type Backend struct {
	cfg Config
}

// New creates a new file backend.
func New(cfg Config) *Backend {
	return &Backend{cfg: cfg}
}

// Init creates the storage directory.
func (b *Backend) Init() error {
	if b.cfg.Dir == "" {
		return errors.New("file storage directory not set")
	}
	if err := os.MkdirAll(b.cfg.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}
	return nil
}

// Close is a no-op; files are closed after every write.
func (b *Backend) Close() error {
	return nil
}

// Path returns the file a key is stored in.
func (b *Backend) Path(key string) string {
	return filepath.Join(b.cfg.Dir, sanitizeKey(key)+".json")
}

// Load reads the file for key.
func (b *Backend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(b.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Save writes value to a temporary file in the same directory and renames
// it over the previous one, so the file on disk is always either the old or
// the new value.
func (b *Backend) Save(ctx context.Context, key string, value []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := b.Path(key)
	tmp, err := os.CreateTemp(b.cfg.Dir, filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", key, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// sanitizeKey keeps keys from escaping the storage directory.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.Trim(key, "."))
}
