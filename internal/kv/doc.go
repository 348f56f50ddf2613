// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package kv provides durable key-value record storage for client-local
// state.
//
// Two backends implement the same Store interface: FileStore writes one
// atomically-replaced JSON file per key, and SQLiteStore keeps records in an
// embedded SQLite database. The session store layers on top of either; which
// one is used is a configuration choice.
package kv
