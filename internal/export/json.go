// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package export

import (
	"encoding/json"

	"github.com/docuai/docuai-cli/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the session record itself, in the same shape it is
// persisted in. Useful for moving a conversation between machines.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export renders the session as indented JSON.
func (e *JSONExporter) Export(sess model.ChatSession) ([]byte, error) {
	return json.MarshalIndent(sess, "", "  ")
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
