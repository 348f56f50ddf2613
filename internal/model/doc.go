// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package model contains the data structures for chat sessions and messages.
//
// # Key Types
//
//   - ChatSession: one independent transcript with title and timestamps
//   - Message: single message with sender, content, and timestamp
//   - Sender: message origin enumeration (user, ai, system)
//
// Sessions are value types. AppendMessage and friends return updated copies,
// so state holders replace whole values instead of mutating shared ones:
//
//	sess := model.NewSession()
//	sess = sess.AppendMessage(model.NewUserMessage("Hello!"))
//
// The first user message names the session (clipped to TitleMaxRunes) and
// the title is never rewritten afterwards.
package model
