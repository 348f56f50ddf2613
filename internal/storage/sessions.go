// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package storage persists chat sessions through a kv.Store backend.
package storage

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/docuai/docuai-cli/internal/kv"
	"github.com/docuai/docuai-cli/internal/model"
)

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionsKey is the single record under which every chat session lives.
const SessionsKey = "docuai.chatSessions"

// SessionStore reads and writes the full session list as one JSON record.
type SessionStore struct {
	store kv.Store
}

// NewSessionStore wraps a kv.Store with session persistence.
func NewSessionStore(store kv.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Load returns every persisted session. Loading never fails: a missing
// record, unreadable data, or malformed JSON yields nil so the caller starts
// fresh. A corrupt record is logged but left in place until the next Save
// overwrites it.
func (s *SessionStore) Load() []model.ChatSession {
	data, err := s.store.Get(SessionsKey)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			log.Printf("storage: failed to read sessions: %v", err)
		}
		return nil
	}

	var sessions []model.ChatSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		log.Printf("storage: discarding corrupt session record: %v", err)
		return nil
	}
	if len(sessions) == 0 {
		return nil
	}
	return sessions
}

// Save overwrites the persisted session list.
func (s *SessionStore) Save(sessions []model.ChatSession) error {
	if sessions == nil {
		sessions = []model.ChatSession{}
	}
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return err
	}
	return s.store.Set(SessionsKey, data)
}

// Close closes the underlying store.
func (s *SessionStore) Close() error {
	return s.store.Close()
}
