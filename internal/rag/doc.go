// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package rag provides the HTTP client for the DocuAI retrieval-augmented
// generation service.
//
// # Key Types
//
//   - Client: HTTP client for the ask and upload endpoints
//   - ChatMessage: one history entry sent alongside a question
//   - AskResponse: generated answer plus opaque source records
//   - RequestError: non-2xx response with the server-supplied message
//   - ValidationError: request rejected locally before any network call
//
// # Usage
//
// Create a client and ask a question:
//
//	client := rag.NewClient(rag.Config{BaseURL: "http://localhost:8000"})
//	resp, err := client.Ask(ctx, "What is the refund policy?", history)
//
// Upload a document:
//
//	msg, err := client.UploadDocument(ctx, f, "handbook.pdf", "hr", "policies")
//
// Errors from the service carry the server's own message; use
// rag.UserMessage(err) to get the text to show the user.
package rag
