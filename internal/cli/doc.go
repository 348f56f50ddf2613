// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package cli implements the docuai command-line interface: argument
// parsing, command dispatch, the interactive chat REPL, and the one-shot
// ask, upload, sessions, and config commands.
//
// Commands share a Runtime that wires the config file, the session storage
// backend, the service client, and the chat orchestrator together.
package cli
