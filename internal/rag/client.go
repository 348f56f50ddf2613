// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package rag provides the HTTP client for the DocuAI retrieval-augmented
// generation service.
//
// The service exposes two operations: POST /ask answers a question against
// the indexed company documents, and POST /upload adds a document to the
// index. Everything interesting (vector search, embedding, generation)
// happens on the service side; this client only shapes requests and
// normalizes responses.
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the DocuAI service API.
const (
	// DefaultBaseURL is the base URL used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every request. The service contract specifies
	// no timeout; this is the defensive client-side policy.
	DefaultTimeout = 60 * time.Second

	// DefaultRequestsPerSecond throttles outbound calls.
	DefaultRequestsPerSecond = 4

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// DefaultCategory is the upload category used when none is given.
	DefaultCategory = "general"

	// fallbackErrorMessage is used when an error body is not parseable
	// JSON or carries none of the conventional error fields.
	fallbackErrorMessage = "Request failed"

	// defaultUploadMessage is returned when the service omits a
	// confirmation message.
	defaultUploadMessage = "File uploaded successfully"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatMessage is one entry of the conversation history sent with a question.
type ChatMessage struct {
	Role    string `json:"role"`    // "user", "assistant", or "system"
	Content string `json:"content"` // The message content
}

// askRequest is the body of POST /ask.
type askRequest struct {
	Question string        `json:"question"`
	History  []ChatMessage `json:"history"`
}

// AskResponse is the answer to a question. Sources are opaque records
// describing the retrieved snippets that informed the answer; they are kept
// raw and rendered verbatim.
type AskResponse struct {
	Answer  string            `json:"answer"`
	Sources []json.RawMessage `json:"sources,omitempty"`
}

// uploadResponse is the body of a successful POST /upload.
type uploadResponse struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Config holds the explicit client configuration. There is no package-level
// cached client; construct one and pass it where it is needed.
type Config struct {
	// BaseURL is the service root, e.g. "http://localhost:8000".
	BaseURL string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero means
	// DefaultRequestsPerSecond; negative disables throttling.
	RequestsPerSecond float64
}

// Client talks to the DocuAI service.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client from cfg, applying defaults for zero values.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	switch {
	case cfg.RequestsPerSecond > 0:
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	case cfg.RequestsPerSecond == 0:
		limiter = rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: limiter,
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL updates the service root. Used by config hot-reload; safe for
// concurrent use with in-flight requests (they keep the URL they started
// with).
func (c *Client) SetBaseURL(url string) {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	if url == "" {
		return
	}
	c.mu.Lock()
	c.baseURL = url
	c.mu.Unlock()
}

// =============================================================================
// ASK
// =============================================================================

// Ask sends a question plus prior conversation history to the service and
// returns the generated answer with any source records.
//
// A blank question fails fast with ErrEmptyQuestion before any network I/O.
// Non-2xx responses become a *RequestError carrying the server-supplied
// message.
func (c *Client) Ask(ctx context.Context, question string, history []ChatMessage) (*AskResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	if history == nil {
		history = []ChatMessage{}
	}

	bodyBytes, err := json.Marshal(askRequest{Question: question, History: history})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+"/ask", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var askResp AskResponse
	if err := json.Unmarshal(body, &askResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &askResp, nil
}

// =============================================================================
// UPLOAD
// =============================================================================

// UploadDocument sends a document to the service as a multipart form with
// category and tags metadata. It returns the server's confirmation message,
// or a generic one when the server omits it. An empty category defaults to
// DefaultCategory; tags may be empty.
func (c *Client) UploadDocument(ctx context.Context, file io.Reader, filename, category, tags string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	if err := writer.WriteField("category", category); err != nil {
		return "", fmt.Errorf("failed to write category field: %w", err)
	}
	if err := writer.WriteField("tags", tags); err != nil {
		return "", fmt.Errorf("failed to write tags field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var upResp uploadResponse
	if err := json.Unmarshal(body, &upResp); err != nil || upResp.Message == "" {
		return defaultUploadMessage, nil
	}
	return upResp.Message, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// wait blocks on the rate limiter, if one is configured.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// do executes a request and returns the response body on success, or an
// error for transport failures and non-2xx statuses. Bodies are read with a
// size limit so a misbehaving server cannot exhaust memory.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("docuai service: %s %s -> %d (%v)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{
			Status:  resp.StatusCode,
			Message: extractErrorMessage(body),
		}
	}
	return body, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// extractErrorMessage pulls the server-supplied error text out of an error
// body. The service's conventional field names are tried in order of
// preference; unparseable bodies and unknown shapes fall back to a generic
// message.
func extractErrorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, field := range []string{"detail", "error", "message"} {
			if text, ok := payload[field].(string); ok && text != "" {
				return text
			}
		}
	}
	return fallbackErrorMessage
}
