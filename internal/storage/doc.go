// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package storage persists chat sessions through a kv.Store backend.
//
// The whole session list is stored as a single JSON record under
// SessionsKey. Every save serializes the complete list; every load returns
// the complete list or nil. There is no per-session addressing at this
// layer, which keeps the on-disk shape identical between the file and
// SQLite backends.
//
// Load is deliberately infallible: corrupt or missing data means an empty
// history, never a startup failure.
package storage
