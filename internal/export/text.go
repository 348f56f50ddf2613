// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"strings"

	"github.com/docuai/docuai-cli/internal/model"
)

// TimestampFormat is the per-message timestamp format in text transcripts.
const TimestampFormat = "2006-01-02 15:04:05"

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextExporter renders a session as a plain-text transcript. Each message
// becomes one block of the form
//
//	[2025-03-14 09:26:53] You: What is the vacation policy?
//
// with a blank line between blocks. All messages are included, system
// messages too, in transcript order.
type TextExporter struct{}

// NewTextExporter creates a plain-text exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export renders the transcript.
func (e *TextExporter) Export(sess model.ChatSession) ([]byte, error) {
	return []byte(Transcript(sess)), nil
}

// FileExtension returns ".txt".
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// Transcript renders the session's messages as the plain-text transcript
// string, without writing it anywhere. Useful for clipboard copies and
// tests.
func Transcript(sess model.ChatSession) string {
	lines := make([]string, 0, len(sess.Messages))
	for _, msg := range sess.Messages {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s",
			msg.Timestamp.Format(TimestampFormat),
			msg.Sender.DisplayName(),
			msg.Content))
	}
	return strings.Join(lines, "\n\n")
}
