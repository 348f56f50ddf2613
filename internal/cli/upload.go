// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// upload.go - Document upload command handler.
//
// Handles "docuai upload FILE" which adds a document to the DocuAI
// knowledge base. A system message noting the upload is recorded in the
// active session.
//
// Examples:
//
//	docuai upload handbook.pdf
//	docuai upload q3-report.pdf --category finance --tags "quarterly,2025"
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// HandleUploadCommand handles the "upload" command.
func HandleUploadCommand(args Args) error {
	if args.File == "" {
		return fmt.Errorf("usage: docuai upload FILE [--category NAME] [--tags LIST]")
	}

	f, err := os.Open(args.File)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args.File, err)
	}
	defer f.Close()

	rt, err := NewRuntime(args, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	confirmation, err := rt.Orch.UploadDocument(
		context.Background(), f, filepath.Base(args.File), args.Category, args.Tags)
	if err != nil {
		return err
	}

	fmt.Println(confirmation)
	return nil
}
