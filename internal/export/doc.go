// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package export writes chat session transcripts to files.
//
// Three formats are supported: plain text (the canonical transcript format,
// also used for clipboard copies), Markdown, and raw JSON. Exported files
// are named docuai-chat-<date> with the format's extension, e.g.
// docuai-chat-2025-03-14.txt.
package export
