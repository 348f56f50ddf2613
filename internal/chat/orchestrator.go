// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package chat coordinates sessions, persistence, and the DocuAI service.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/docuai/docuai-cli/internal/export"
	"github.com/docuai/docuai-cli/internal/model"
	"github.com/docuai/docuai-cli/internal/rag"
	"github.com/docuai/docuai-cli/internal/storage"
)

// SuggestedQuestions are shown when a session has no user messages yet.
var SuggestedQuestions = []string{
	"What's the company's refund policy?",
	"How do I submit an expense report?",
	"What are the vacation day policies?",
	"Where can I find the employee handbook?",
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrSessionBusy is returned when a session already has a question in flight.
var ErrSessionBusy = &StateError{Message: "a response is already pending for this session"}

// ErrNoSession is returned when an operation needs a session and none exists.
var ErrNoSession = &StateError{Message: "no active session"}

// StateError represents an orchestrator state violation.
type StateError struct {
	Message string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return e.Message
}

// Is implements errors.Is support.
func (e *StateError) Is(target error) bool {
	t, ok := target.(*StateError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// NOTIFIER
// =============================================================================

// Notifier receives orchestrator events. The CLI prints them; tests record
// them.
type Notifier interface {
	// SessionUpdated is called after a session's transcript changes.
	SessionUpdated(sess model.ChatSession)

	// RequestFailed is called when a question could not be answered. The
	// message is user-facing text, already normalized.
	RequestFailed(sessionID, message string)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) SessionUpdated(model.ChatSession) {}
func (NopNotifier) RequestFailed(string, string)     {}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator owns the session list and drives the ask flow: append the
// question, call the service, append the answer, persist at each visible
// transition.
//
// Each session is either idle or awaiting one response. A second question on
// a busy session is rejected with ErrSessionBusy; other sessions stay
// available. Methods are safe for concurrent use.
type Orchestrator struct {
	mu       sync.Mutex
	store    *storage.SessionStore
	client   *rag.Client
	notifier Notifier

	sessions []model.ChatSession
	activeID string
	pending  map[string]bool
}

// New creates an orchestrator over persisted history. If no sessions exist
// (first run or unreadable history), a fresh session is created and saved.
// The most recently updated session becomes active.
func New(store *storage.SessionStore, client *rag.Client, notifier Notifier) *Orchestrator {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	o := &Orchestrator{
		store:    store,
		client:   client,
		notifier: notifier,
		pending:  make(map[string]bool),
	}

	sessions := model.SortByRecency(store.Load())
	if len(sessions) == 0 {
		sessions = []model.ChatSession{model.NewSession()}
		if err := store.Save(sessions); err != nil {
			log.Printf("chat: failed to save initial session: %v", err)
		}
	}

	o.sessions = sessions
	o.activeID = sessions[0].ID
	return o
}

// =============================================================================
// SESSION MANAGEMENT
// =============================================================================

// Sessions returns all sessions, most recently updated first.
func (o *Orchestrator) Sessions() []model.ChatSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	return model.SortByRecency(o.sessions)
}

// ActiveSession returns the currently active session.
func (o *Orchestrator) ActiveSession() model.ChatSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	sess, _ := model.SelectActive(o.sessions, o.activeID)
	return sess
}

// SetActive switches the active session. Unknown ids fall back to the most
// recent session rather than failing; the returned session is the one that
// actually became active.
func (o *Orchestrator) SetActive(id string) model.ChatSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	sess, ok := model.SelectActive(o.sessions, id)
	if ok {
		o.activeID = sess.ID
	}
	return sess
}

// NewSession creates a fresh session, makes it active, and persists it.
func (o *Orchestrator) NewSession() model.ChatSession {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess := model.NewSession()
	o.sessions = append([]model.ChatSession{sess}, o.sessions...)
	o.activeID = sess.ID
	o.persistLocked()
	return sess
}

// ClearHistory discards every session and starts over with a single fresh
// one, which becomes active.
func (o *Orchestrator) ClearHistory() model.ChatSession {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess := model.NewSession()
	o.sessions = []model.ChatSession{sess}
	o.activeID = sess.ID
	o.pending = make(map[string]bool)
	o.persistLocked()
	return sess
}

// SearchMessages returns the active session's messages whose content
// contains term, case-insensitively.
func (o *Orchestrator) SearchMessages(term string) []model.Message {
	return o.ActiveSession().FilterMessages(term)
}

// =============================================================================
// SEND FLOW
// =============================================================================

// SendMessage asks the service a question in the context of the given
// session and returns the updated session once the answer (or failure) has
// been recorded.
//
// The user message is appended and persisted before the request is sent, so
// a crash or failure never loses what the user typed. The history sent to
// the service is the transcript as it was before this question. On failure
// the transcript keeps the question and the notifier receives the
// user-facing error text.
func (o *Orchestrator) SendMessage(ctx context.Context, sessionID, text string) (model.ChatSession, error) {
	if strings.TrimSpace(text) == "" {
		return model.ChatSession{}, rag.ErrEmptyQuestion
	}

	o.mu.Lock()
	sess, ok := model.SelectActive(o.sessions, sessionID)
	if !ok {
		o.mu.Unlock()
		return model.ChatSession{}, ErrNoSession
	}
	if o.pending[sess.ID] {
		o.mu.Unlock()
		return model.ChatSession{}, ErrSessionBusy
	}

	history := sess.HistoryPayload()

	sess = sess.AppendMessage(model.NewUserMessage(text))
	o.sessions = model.ReplaceSession(o.sessions, sess)
	o.pending[sess.ID] = true
	o.persistLocked()
	o.mu.Unlock()

	o.notifier.SessionUpdated(sess)

	resp, err := o.client.Ask(ctx, text, history)

	o.mu.Lock()
	delete(o.pending, sess.ID)

	current, ok := model.SelectActive(o.sessions, sess.ID)
	if !ok || current.ID != sess.ID {
		// Session was cleared while the request was in flight; drop the
		// late result.
		o.mu.Unlock()
		return model.ChatSession{}, ErrNoSession
	}

	if err != nil {
		o.mu.Unlock()
		o.notifier.RequestFailed(sess.ID, rag.UserMessage(err))
		return current, err
	}

	answer := model.NewAIMessage(resp.Answer)
	current = current.AppendMessage(answer)

	if len(resp.Sources) > 0 {
		sources := model.NewSystemMessage(formatSources(resp.Sources))
		sources.Timestamp = answer.Timestamp
		current = current.AppendMessage(sources)
	}

	o.sessions = model.ReplaceSession(o.sessions, current)
	o.persistLocked()
	o.mu.Unlock()

	o.notifier.SessionUpdated(current)
	return current, nil
}

// formatSources renders the service's source records as a transcript block,
// one bullet per record, verbatim.
func formatSources(sources []json.RawMessage) string {
	var sb strings.Builder
	sb.WriteString("Sources consulted:")
	for _, src := range sources {
		sb.WriteString("\n• ")
		sb.Write(src)
	}
	return sb.String()
}

// =============================================================================
// DOCUMENT UPLOAD
// =============================================================================

// UploadDocument sends a document to the service and records a system
// message in the active session noting that the file is now queryable.
// Returns the server's confirmation message.
func (o *Orchestrator) UploadDocument(ctx context.Context, file io.Reader, filename, category, tags string) (string, error) {
	confirmation, err := o.client.UploadDocument(ctx, file, filename, category, tags)
	if err != nil {
		return "", err
	}

	note := fmt.Sprintf("File %q has been uploaded. You can now ask questions about it.", filename)

	o.mu.Lock()
	sess, ok := model.SelectActive(o.sessions, o.activeID)
	if ok {
		sess = sess.AppendMessage(model.NewSystemMessage(note))
		o.sessions = model.ReplaceSession(o.sessions, sess)
		o.persistLocked()
	}
	o.mu.Unlock()

	if ok {
		o.notifier.SessionUpdated(sess)
	}
	return confirmation, nil
}

// =============================================================================
// EXPORT AND CLIPBOARD
// =============================================================================

// ExportTranscript writes the active session to a file in the given format
// ("text", "markdown", or "json") and returns the output path.
func (o *Orchestrator) ExportTranscript(format string, opts *export.Options) (string, error) {
	exporter, err := export.ExporterFor(format)
	if err != nil {
		return "", err
	}

	sess := o.ActiveSession()
	if sess.ID == "" {
		return "", ErrNoSession
	}
	return export.ExportToFile(sess, exporter, opts)
}

// CopyMessage copies a message's content to the system clipboard. A missing
// clipboard (headless machines) is reported, not fatal.
func (o *Orchestrator) CopyMessage(messageID string) error {
	sess := o.ActiveSession()
	for _, msg := range sess.Messages {
		if msg.ID == messageID {
			if err := clipboard.WriteAll(msg.Content); err != nil {
				return fmt.Errorf("clipboard unavailable: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("no message with id %q", messageID)
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// persistLocked saves the session list. Callers hold o.mu. Persistence
// failures are logged, not propagated: the in-memory transcript is still
// valid and the next save retries the whole list.
func (o *Orchestrator) persistLocked() {
	if err := o.store.Save(o.sessions); err != nil {
		log.Printf("chat: failed to persist sessions: %v", err)
	}
}
