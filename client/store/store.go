package store

import (
	"encoding/json"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// kvRecord is one durable key/value row. Values are JSON-serialized.
type kvRecord struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"type:text"`
	UpdatedAt string
}

func (kvRecord) TableName() string { return "kv_records" }

// Store is the client's local persistent store: per-key JSON values that
// survive restarts, standing in for the browser's local storage. Writes
// are synchronous; there is no expiry and no size limit beyond what
// callers impose on their own values.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the store at path. ":memory:" gives an
// ephemeral store, which guest sessions and tests use.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get unmarshals the value under key into out, reporting whether the key
// existed. out is untouched when it did not.
func (s *Store) Get(key string, out interface{}) bool {
	var rec kvRecord
	if err := s.db.Where("key = ?", key).First(&rec).Error; err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(rec.Value), out); err != nil {
		return false
	}
	return true
}

// Set stores value under key, overwriting any previous value.
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	rec := kvRecord{
		Key:       key,
		Value:     string(raw),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return s.db.Save(&rec).Error
}

// Delete removes one key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&kvRecord{}).Error
}

// DeletePrefix removes every key with the given prefix. Keys are plain
// identifiers, no LIKE wildcards.
func (s *Store) DeletePrefix(prefix string) error {
	return s.db.Where("key LIKE ?", prefix+"%").Delete(&kvRecord{}).Error
}

// Keys lists stored keys with the given prefix.
func (s *Store) Keys(prefix string) []string {
	var keys []string
	s.db.Model(&kvRecord{}).
		Where("key LIKE ?", prefix+"%").
		Order("key ASC").
		Pluck("key", &keys)
	return keys
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
