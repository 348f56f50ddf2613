// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package model

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuai/docuai-cli/internal/rag"
	"github.com/docuai/docuai-cli/internal/util"
)

// DefaultTitle is the placeholder title a session carries until the first
// user message names it.
const DefaultTitle = "New chat"

// TitleMaxRunes is how much of the first user message becomes the title.
const TitleMaxRunes = 60

// WelcomeMessage is the synthesized assistant greeting every new session
// starts with.
const WelcomeMessage = "Hello! I'm DocuAI, your company's AI assistant. " +
	"I can help you find information from your internal documents, policies, " +
	"and knowledge base. What would you like to know?"

// =============================================================================
// CHAT SESSION TYPE
// =============================================================================

// ChatSession holds one independent chat transcript with its metadata.
//
// Sessions are value types: mutations return an updated copy so callers can
// apply read-modify-write against the latest session list snapshot without
// aliasing surprises.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Messages  []Message `json:"messages"`
}

// NewSession creates a new session containing the welcome message.
func NewSession() ChatSession {
	now := time.Now().UTC()
	welcome := NewAIMessage(WelcomeMessage)
	welcome.Timestamp = now
	return ChatSession{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []Message{welcome},
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AppendMessage returns a copy of the session with msg appended.
//
// Append order is enforced monotonic: a message stamped earlier than the tail
// of the transcript is clamped to the tail's timestamp, so sorting and export
// can rely on chronological order. UpdatedAt always follows the appended
// message. The title is set exactly once, from the first user message,
// clipped to TitleMaxRunes; later user messages never rename the session.
func (s ChatSession) AppendMessage(msg Message) ChatSession {
	if last, ok := s.LastMessage(); ok && msg.Timestamp.Before(last.Timestamp) {
		msg.Timestamp = last.Timestamp
	}

	messages := make([]Message, len(s.Messages), len(s.Messages)+1)
	copy(messages, s.Messages)
	messages = append(messages, msg)

	updated := s
	updated.Messages = messages
	updated.UpdatedAt = msg.Timestamp

	if msg.Sender == SenderUser && !s.HasUserMessage() {
		title := util.ClipString(util.CollapseWhitespace(msg.Content), TitleMaxRunes)
		if title != "" {
			updated.Title = title
		}
	}

	return updated
}

// LastMessage returns the most recent message, if any.
func (s ChatSession) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// HasUserMessage reports whether the session contains any user message.
func (s ChatSession) HasUserMessage() bool {
	for _, msg := range s.Messages {
		if msg.Sender == SenderUser {
			return true
		}
	}
	return false
}

// MessageCount returns the number of messages.
func (s ChatSession) MessageCount() int {
	return len(s.Messages)
}

// Preview returns a short preview of the latest message for session lists.
func (s ChatSession) Preview(maxLen int) string {
	last, ok := s.LastMessage()
	if !ok {
		return ""
	}
	return last.Preview(maxLen)
}

// FilterMessages returns the messages whose content contains term,
// case-insensitively. An empty term returns the full transcript. The result
// is a view; the session is not mutated.
func (s ChatSession) FilterMessages(term string) []Message {
	if term == "" {
		return s.Messages
	}
	lower := strings.ToLower(term)
	var out []Message
	for _, msg := range s.Messages {
		if strings.Contains(strings.ToLower(msg.Content), lower) {
			out = append(out, msg)
		}
	}
	return out
}

// =============================================================================
// REQUEST HISTORY
// =============================================================================

// HistoryPayload converts the transcript to the wire history format: system
// messages are dropped, the ai sender becomes the assistant role, and order
// is preserved.
func (s ChatSession) HistoryPayload() []rag.ChatMessage {
	history := make([]rag.ChatMessage, 0, len(s.Messages))
	for _, msg := range s.Messages {
		if msg.Sender == SenderSystem {
			continue
		}
		history = append(history, rag.ChatMessage{
			Role:    msg.Sender.Role(),
			Content: msg.Content,
		})
	}
	return history
}

// =============================================================================
// SESSION LIST HELPERS
// =============================================================================

// SelectActive resolves the session a requested id refers to. A stale or
// unknown id falls back to the first session; an empty list yields no session.
// Callers re-run this whenever the list changes so the active id never
// dangles after a clear-history.
func SelectActive(sessions []ChatSession, requestedID string) (ChatSession, bool) {
	for _, sess := range sessions {
		if sess.ID == requestedID {
			return sess, true
		}
	}
	if len(sessions) > 0 {
		return sessions[0], true
	}
	return ChatSession{}, false
}

// SortByRecency returns a copy of sessions stably sorted by descending
// UpdatedAt (most recent first).
func SortByRecency(sessions []ChatSession) []ChatSession {
	out := make([]ChatSession, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// ReplaceSession returns a copy of sessions with the session matching
// updated.ID replaced. If no session matches, the list is returned unchanged.
func ReplaceSession(sessions []ChatSession, updated ChatSession) []ChatSession {
	out := make([]ChatSession, len(sessions))
	copy(out, sessions)
	for i, sess := range out {
		if sess.ID == updated.ID {
			out[i] = updated
			break
		}
	}
	return out
}
