package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionBlob is the single table backing the relational store: one row
// per collection key, the value being the JSON-encoded collection.
type CollectionBlob struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value []byte `gorm:"type:longblob"`
}

// GormStore implements the key-value contract on top of a relational
// database. Writes upsert the row for the key, which keeps single-key
// atomicity and nothing more.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the blob table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&CollectionBlob{}); err != nil {
		return nil, fmt.Errorf("migrate collection blobs: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get returns the stored value for key, or found=false when no row exists.
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var blob CollectionBlob
	err := s.db.WithContext(ctx).First(&blob, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read collection %s: %w", key, err)
	}
	return blob.Value, true, nil
}

// Set replaces the stored value for key.
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	blob := CollectionBlob{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&blob).Error
	if err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	return nil
}
