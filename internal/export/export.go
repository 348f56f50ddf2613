// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package export writes chat session transcripts to files in plain text,
// Markdown, and JSON formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docuai/docuai-cli/internal/model"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a session to one output format.
type Exporter interface {
	// Export renders the session transcript in the target format.
	Export(sess model.ChatSession) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where exported files are written.
	// Default: current working directory.
	OutputDir string

	// Now supplies the date used in generated filenames. Nil means
	// time.Now; tests pin it.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: "."}
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders the session with the given exporter and writes it to
// a date-stamped file (docuai-chat-2006-01-02 plus the exporter's
// extension). Returns the output file path.
func ExportToFile(sess model.ChatSession, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(sess)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("docuai-chat-%s%s", opts.now().Format("2006-01-02"), exporter.FileExtension())

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}

// ExportText writes the plain-text transcript.
func ExportText(sess model.ChatSession, opts *Options) (string, error) {
	return ExportToFile(sess, NewTextExporter(), opts)
}

// ExportMarkdown writes the Markdown transcript.
func ExportMarkdown(sess model.ChatSession, opts *Options) (string, error) {
	return ExportToFile(sess, NewMarkdownExporter(), opts)
}

// ExportJSON writes the raw session record.
func ExportJSON(sess model.ChatSession, opts *Options) (string, error) {
	return ExportToFile(sess, NewJSONExporter(), opts)
}

// ExporterFor maps a format name to its exporter. Supported formats are
// "text", "markdown" (or "md"), and "json".
func ExporterFor(format string) (Exporter, error) {
	switch format {
	case "", "text", "txt":
		return NewTextExporter(), nil
	case "markdown", "md":
		return NewMarkdownExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}
}
