// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package model contains the data structures for chat sessions and messages.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/docuai/docuai-cli/internal/util"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAI     Sender = "ai"
	SenderSystem Sender = "system"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns the label used for transcripts and exports.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAI:
		return "DocuAI"
	case SenderSystem:
		return "System"
	default:
		return string(s)
	}
}

// Role returns the role name used in outbound request history. The assistant
// service speaks the conventional user/assistant/system vocabulary, so the
// local "ai" sender maps to "assistant".
func (s Sender) Role() string {
	if s == SenderAI {
		return "assistant"
	}
	return string(s)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a chat session.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a new message with a generated ID and the current time.
func NewMessage(sender Sender, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(SenderUser, content)
}

// NewAIMessage creates a new assistant message.
func NewAIMessage(content string) Message {
	return NewMessage(SenderAI, content)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) Message {
	return NewMessage(SenderSystem, content)
}

// Preview returns a truncated single-line preview of the message content.
func (m Message) Preview(maxLen int) string {
	return util.TruncateString(util.CollapseWhitespace(m.Content), maxLen)
}

// IsEmpty returns true if the message has no content.
func (m Message) IsEmpty() bool {
	return len(m.Content) == 0
}
