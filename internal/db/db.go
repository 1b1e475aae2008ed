package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/workclock/internal/models"
)

// StorageError reports a failed open, read, write or schema operation on the ledger file
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err wraps a *StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Store owns the worktime table. One Store per process.
type Store struct {
	db   *gorm.DB
	path string
}

// Open sets up the database connection and creates the schema if needed
func Open(path string) (*Store, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, storageErr("open", fmt.Errorf("create data directory: %w", err))
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, storageErr("open", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, storageErr("open", fmt.Errorf("create schema: %w", err))
	}

	return s, nil
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	return s.db.AutoMigrate(&models.WorkSession{})
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return storageErr("close", err)
	}
	return storageErr("close", sqlDB.Close())
}
