// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// STRING HELPER TESTS
// =============================================================================

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero length", "hello", 0, ""},
		{"tiny max", "hello", 2, "he"},
		{"unicode not split", "héllo wörld", 8, "héllo..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateString(tc.input, tc.maxLen); got != tc.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestClipString(t *testing.T) {
	if got := ClipString("what is the refund policy", 10); got != "what is th" {
		t.Errorf("ClipString() = %q", got)
	}
	if got := ClipString("short", 60); got != "short" {
		t.Errorf("ClipString() = %q, want unchanged", got)
	}
	// No ellipsis marker ever.
	if got := ClipString("abcdef", 3); got != "abc" {
		t.Errorf("ClipString() = %q, want %q", got, "abc")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("a\r\nb\nc\rd"); got != "a b c d" {
		t.Errorf("CollapseWhitespace() = %q", got)
	}
	if got := CollapseWhitespace("  spaced\t\tout   runs  "); got != "spaced out runs" {
		t.Errorf("CollapseWhitespace() = %q", got)
	}
	if got := CollapseWhitespace("   "); got != "" {
		t.Errorf("CollapseWhitespace(blank) = %q, want empty", got)
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("content = %q, want %q", data, "first")
	}

	// Overwrite replaces the whole file.
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content after overwrite = %q, want %q", data, "second")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file in dir, got %d", len(entries))
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "data.json")

	if err := AtomicWriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}
