// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docuai/docuai-cli/internal/model"
)

func sampleSession() model.ChatSession {
	t1 := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	t2 := t1.Add(4 * time.Second)
	return model.ChatSession{
		ID:        "s1",
		Title:     "What is the vacation policy?",
		CreatedAt: t1,
		UpdatedAt: t2,
		Messages: []model.Message{
			{ID: "m1", Content: "What is the vacation policy?", Sender: model.SenderUser, Timestamp: t1},
			{ID: "m2", Content: "Twenty days per year.", Sender: model.SenderAI, Timestamp: t2},
		},
	}
}

func TestTranscriptFormat(t *testing.T) {
	want := "[2025-03-14 09:26:53] You: What is the vacation policy?\n\n" +
		"[2025-03-14 09:26:57] DocuAI: Twenty days per year."

	if got := Transcript(sampleSession()); got != want {
		t.Errorf("Transcript() =\n%q\nwant\n%q", got, want)
	}
}

func TestTranscriptIncludesSystemMessages(t *testing.T) {
	sess := sampleSession()
	sys := model.Message{
		ID:        "m3",
		Content:   `File "handbook.pdf" has been uploaded. You can now ask questions about it.`,
		Sender:    model.SenderSystem,
		Timestamp: sess.UpdatedAt.Add(time.Second),
	}
	sess.Messages = append(sess.Messages, sys)

	got := Transcript(sess)
	if !strings.Contains(got, "System: File \"handbook.pdf\"") {
		t.Errorf("transcript missing system message:\n%s", got)
	}
}

func TestTranscriptEmptySession(t *testing.T) {
	if got := Transcript(model.ChatSession{}); got != "" {
		t.Errorf("Transcript(empty) = %q, want empty", got)
	}
}

func TestExportToFileNaming(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{
		OutputDir: dir,
		Now:       func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) },
	}

	path, err := ExportText(sampleSession(), opts)
	if err != nil {
		t.Fatalf("ExportText() error = %v", err)
	}
	if filepath.Base(path) != "docuai-chat-2025-03-14.txt" {
		t.Errorf("filename = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != Transcript(sampleSession()) {
		t.Errorf("file content =\n%s", data)
	}
}

func TestExportMarkdown(t *testing.T) {
	exporter := NewMarkdownExporter()
	data, err := exporter.Export(sampleSession())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	md := string(data)

	if !strings.HasPrefix(md, "# What is the vacation policy?") {
		t.Errorf("markdown missing title heading:\n%s", md)
	}
	if !strings.Contains(md, "### You <sub>2025-03-14 09:26:53</sub>") {
		t.Errorf("markdown missing user section:\n%s", md)
	}
	if !strings.Contains(md, "Twenty days per year.") {
		t.Errorf("markdown missing answer:\n%s", md)
	}
}

func TestExportMarkdownEscapesTitle(t *testing.T) {
	sess := sampleSession()
	sess.Title = "rates *are* #1 [really]"

	data, err := NewMarkdownExporter().Export(sess)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(string(data), `# rates \*are\* \#1 \[really\]`) {
		t.Errorf("title not escaped:\n%s", data)
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	data, err := NewJSONExporter().Export(sampleSession())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got model.ChatSession
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.ID != "s1" || len(got.Messages) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestExporterFor(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
	}{
		{"", ".txt"},
		{"text", ".txt"},
		{"txt", ".txt"},
		{"markdown", ".md"},
		{"md", ".md"},
		{"json", ".json"},
	}
	for _, tc := range tests {
		exp, err := ExporterFor(tc.format)
		if err != nil {
			t.Errorf("ExporterFor(%q) error = %v", tc.format, err)
			continue
		}
		if exp.FileExtension() != tc.wantExt {
			t.Errorf("ExporterFor(%q).FileExtension() = %q, want %q", tc.format, exp.FileExtension(), tc.wantExt)
		}
	}

	if _, err := ExporterFor("pdf"); err == nil {
		t.Error("ExporterFor(pdf) should fail")
	}
}
