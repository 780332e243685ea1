// Package storage defines the durable key/value store that mirrors the
// parts of application state which survive a restart.
package storage

import (
	"context"
	"errors"
)

// ErrUnknownType is returned when the configured backend type is not
// recognised.
var ErrUnknownType = errors.New("unknown storage type")

// ErrNotInitialized is returned by backends that are used before Init.
var ErrNotInitialized = errors.New("storage backend not initialized")

// Backend is the interface all storage implementations must satisfy.
// Values are opaque JSON documents addressed by a namespace key.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Load returns the value stored under key. ok is false when nothing has
	// been stored yet.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Save replaces the value under key. A reader never observes a partially
	// written value.
	Save(ctx context.Context, key string, value []byte) error
}
