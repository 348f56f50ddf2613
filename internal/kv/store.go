// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package kv provides durable key-value record storage for client-local
// state.
package kv

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/docuai/docuai-cli/internal/util"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a durable key-value record store. One key holds one whole record;
// Set overwrites it completely (no partial updates, no transactions beyond
// the single record).
type Store interface {
	// Get returns the record stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Set overwrites the record stored under key.
	Set(key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrKeyNotFound is returned when a key has no stored record.
// Use errors.Is(err, ErrKeyNotFound) to check for this error.
var ErrKeyNotFound = &StoreError{Message: "key not found"}

// StoreError represents a storage-related error.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing store errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore keeps each record in its own file under a base directory,
// written atomically so a crash never leaves a half-written record.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a file-backed store rooted at baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Get returns the record stored under key.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set overwrites the record stored under key.
func (s *FileStore) Set(key string, value []byte) error {
	return util.AtomicWriteFile(s.keyPath(key), value, 0644)
}

// Close implements Store. File stores hold no open resources.
func (s *FileStore) Close() error {
	return nil
}

// keyPath maps a key to its file, sanitizing characters that are invalid in
// filenames. Dots are preserved so dotted keys stay readable on disk.
func (s *FileStore) keyPath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return filepath.Join(s.baseDir, b.String()+".json")
}
