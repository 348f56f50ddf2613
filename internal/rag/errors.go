// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

package rag

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

// ValidationError indicates a request was rejected locally before any
// network call was made.
type ValidationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Reason
}

// Is implements errors.Is support so callers can match against the sentinel
// values below.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Reason == t.Reason
}

// ErrEmptyQuestion is returned when Ask is called with a blank question.
// Use errors.Is(err, ErrEmptyQuestion) to check for this error.
var ErrEmptyQuestion = &ValidationError{Reason: "Question is required"}

// RequestError represents a non-success HTTP response from the DocuAI
// service. Message carries the server-supplied error text and is what should
// be surfaced to the user; Status is the HTTP status code.
type RequestError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("docuai service error (HTTP %d): %s", e.Status, e.Message)
}

// UserMessage extracts the message to surface for err. Request errors yield
// the server-supplied text verbatim; anything else falls back to Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return err.Error()
}
