// Package memory implements storage.Backend in process memory. Nothing
// survives a restart; it backs tests and the "memory" storage type.
package memory

import (
	"bytes"
	"context"
	"sync"
)

// Backend stores values in a map.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
	saves  int
}

// New creates a new memory backend.
func New() *Backend {
	return &Backend{
		values: make(map[string][]byte),
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// Load returns a copy of the value under key.
func (b *Backend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

// Save stores a copy of value under key.
func (b *Backend) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = bytes.Clone(value)
	b.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (b *Backend) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}
