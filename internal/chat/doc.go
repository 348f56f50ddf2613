// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package chat coordinates sessions, persistence, and the DocuAI service.
//
// The Orchestrator is the single owner of the session list. Every visible
// transition (question appended, answer recorded, session created or
// cleared) is persisted immediately, so the transcript on disk always
// matches what the user has seen. Each session answers one question at a
// time; concurrent questions go to different sessions or wait.
package chat
