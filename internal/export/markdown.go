// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/docuai/docuai-cli/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a session as a Markdown document with a metadata
// header and one section per message.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export renders the session.
func (e *MarkdownExporter) Export(sess model.ChatSession) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(sess.Title)))

	sb.WriteString(fmt.Sprintf("- **Created**: %s\n", sess.CreatedAt.Format(TimestampFormat)))
	sb.WriteString(fmt.Sprintf("- **Last Updated**: %s\n", sess.UpdatedAt.Format(TimestampFormat)))
	sb.WriteString(fmt.Sprintf("- **Messages**: %d\n", len(sess.Messages)))
	sb.WriteString("\n---\n\n")

	for i, msg := range sess.Messages {
		sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
			msg.Sender.DisplayName(),
			msg.Timestamp.Format(TimestampFormat)))
		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")
		if i < len(sess.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n*Exported from DocuAI on %s*\n",
		time.Now().Format("January 2, 2006")))

	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// escapeMarkdown escapes characters that would break formatting in headings.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}
