// Package gormstorage implements storage.Backend as a key/value table on
// any gorm dialect. The sqlite and postgres backends wrap it.
package gormstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one stored value.
type Record struct {
	Key       string         `gorm:"column:record_key;primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt time.Time
}

// TableName overrides the gorm default.
func (Record) TableName() string {
	return "kv_records"
}

// Backend stores values in the kv_records table.
type Backend struct {
	db *gorm.DB
}

// New creates a backend on an open connection. Init must run before use.
func New(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Init migrates the kv_records table.
func (b *Backend) Init() error {
	if b.db == nil {
		return errors.New("no database connection")
	}
	if err := b.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

// Load returns the value stored under key.
func (b *Backend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var records []Record
	err := b.db.WithContext(ctx).
		Where("record_key = ?", key).
		Limit(1).
		Find(&records).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return []byte(records[0].Value), true, nil
}

// Save upserts value under key in a single statement.
func (b *Backend) Save(ctx context.Context, key string, value []byte) error {
	rec := Record{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
