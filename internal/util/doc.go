// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package util provides small shared helpers for the docuai CLI.
package util
