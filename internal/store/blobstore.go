// Package store persists opaque state blobs in sqlite. Each blob is one
// row keyed by a fixed namespace; a save replaces the whole row, so a
// reader never observes a partial write.
package store

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Blob namespaces. One row per namespace.
const (
	KeyUserState     = "user_state"
	KeyCardOverrides = "card_overrides"
	KeyGlobalAssets  = "global_assets"
	KeyTradeOffers   = "trade_offers"
)

var (
	// ErrNotFound means nothing has been persisted under the key yet.
	ErrNotFound = errors.New("blob not found")

	// ErrStorageFailure wraps sqlite errors. The last successfully persisted
	// blob stays the durable truth when a write fails.
	ErrStorageFailure = errors.New("storage failure")
)

type StateBlob struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

type BlobStore struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path and migrates the schema.
func Open(path string) (*BlobStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageFailure, path, err)
	}
	if err := db.AutoMigrate(&StateBlob{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorageFailure, err)
	}
	log.Printf("Blob store ready at %s", path)
	return &BlobStore{db: db}, nil
}

// Get returns the blob stored under key, or ErrNotFound.
func (s *BlobStore) Get(key string) (string, error) {
	var blob StateBlob
	err := s.db.First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: get %s: %v", ErrStorageFailure, key, err)
	}
	return blob.Value, nil
}

// Set stores value under key, replacing any previous blob in one upsert.
func (s *BlobStore) Set(key, value string) error {
	blob := StateBlob{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStorageFailure, key, err)
	}
	return nil
}

// Delete removes the blob under key. Missing keys are not an error.
func (s *BlobStore) Delete(key string) error {
	if err := s.db.Delete(&StateBlob{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorageFailure, key, err)
	}
	return nil
}
