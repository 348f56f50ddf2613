// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package rag

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(url string) *Client {
	return NewClient(Config{BaseURL: url, RequestsPerSecond: -1})
}

func TestAskSuccess(t *testing.T) {
	var gotBody askRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ask" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"answer":"Twenty days.","sources":[{"file":"handbook.pdf","page":3}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	history := []ChatMessage{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}

	resp, err := client.Ask(context.Background(), "How many vacation days?", history)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Answer != "Twenty days." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 1 {
		t.Errorf("got %d sources, want 1", len(resp.Sources))
	}

	if gotBody.Question != "How many vacation days?" {
		t.Errorf("sent question = %q", gotBody.Question)
	}
	if len(gotBody.History) != 2 || gotBody.History[1].Role != "assistant" {
		t.Errorf("sent history = %+v", gotBody.History)
	}
}

func TestAskEmptyQuestionFailsBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := client.Ask(context.Background(), q, nil)
		if !errors.Is(err, ErrEmptyQuestion) {
			t.Errorf("Ask(%q) error = %v, want ErrEmptyQuestion", q, err)
		}
	}
	if called {
		t.Error("blank question reached the server")
	}
}

func TestAskNilHistorySentAsEmptyList(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, `{"answer":"ok"}`)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Ask(context.Background(), "q", nil); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if string(raw["history"]) != "[]" {
		t.Errorf("history field = %s, want []", raw["history"])
	}
}

func TestAskServerErrorMessageSurfaced(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail field", http.StatusBadGateway, `{"detail":"upstream timeout"}`, "upstream timeout"},
		{"error field", http.StatusInternalServerError, `{"error":"index unavailable"}`, "index unavailable"},
		{"message field", http.StatusServiceUnavailable, `{"message":"maintenance window"}`, "maintenance window"},
		{"detail preferred over error", http.StatusBadRequest, `{"error":"b","detail":"a"}`, "a"},
		{"non-string field ignored", http.StatusBadRequest, `{"detail":42}`, "Request failed"},
		{"non-json body", http.StatusBadGateway, `<html>bad gateway</html>`, "Request failed"},
		{"empty body", http.StatusInternalServerError, ``, "Request failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Ask(context.Background(), "q", nil)
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("Ask() error = %v, want *RequestError", err)
			}
			if reqErr.Status != tc.status {
				t.Errorf("Status = %d, want %d", reqErr.Status, tc.status)
			}
			if reqErr.Message != tc.want {
				t.Errorf("Message = %q, want %q", reqErr.Message, tc.want)
			}
			if UserMessage(err) != tc.want {
				t.Errorf("UserMessage() = %q, want %q", UserMessage(err), tc.want)
			}
		})
	}
}

func TestUploadDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "handbook.pdf" {
			t.Errorf("filename = %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "pdf bytes" {
			t.Errorf("file content = %q", content)
		}
		if got := r.FormValue("category"); got != "hr" {
			t.Errorf("category = %q", got)
		}
		if got := r.FormValue("tags"); got != "policies,benefits" {
			t.Errorf("tags = %q", got)
		}
		io.WriteString(w, `{"message":"Indexed handbook.pdf","fileName":"handbook.pdf"}`)
	}))
	defer server.Close()

	msg, err := newTestClient(server.URL).UploadDocument(
		context.Background(), strings.NewReader("pdf bytes"), "handbook.pdf", "hr", "policies,benefits")
	if err != nil {
		t.Fatalf("UploadDocument() error = %v", err)
	}
	if msg != "Indexed handbook.pdf" {
		t.Errorf("message = %q", msg)
	}
}

func TestUploadDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("category"); got != DefaultCategory {
			t.Errorf("category = %q, want %q", got, DefaultCategory)
		}
		// Confirmation message omitted by the server.
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	msg, err := newTestClient(server.URL).UploadDocument(
		context.Background(), strings.NewReader("x"), "a.txt", "  ", "")
	if err != nil {
		t.Fatalf("UploadDocument() error = %v", err)
	}
	if msg != "File uploaded successfully" {
		t.Errorf("message = %q", msg)
	}
}

func TestSetBaseURL(t *testing.T) {
	client := NewClient(Config{})
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want default", client.BaseURL())
	}

	client.SetBaseURL("http://docs.internal:9000/")
	if client.BaseURL() != "http://docs.internal:9000" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", client.BaseURL())
	}

	// Blank updates are ignored.
	client.SetBaseURL("   ")
	if client.BaseURL() != "http://docs.internal:9000" {
		t.Errorf("BaseURL() = %q after blank update", client.BaseURL())
	}
}

func TestValidationErrorText(t *testing.T) {
	if got := ErrEmptyQuestion.Error(); got != "Question is required" {
		t.Errorf("ErrEmptyQuestion = %q", got)
	}
	if got := UserMessage(ErrEmptyQuestion); got != "Question is required" {
		t.Errorf("UserMessage(ErrEmptyQuestion) = %q", got)
	}
}
