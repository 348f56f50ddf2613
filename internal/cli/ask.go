// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// ask.go - One-shot question command handler.
//
// Handles "docuai ask" which sends a single question in the active session
// and prints the answer. The exchange is recorded in chat history like any
// interactive question.
package cli

import (
	"context"
	"fmt"

	"github.com/docuai/docuai-cli/internal/model"
	"github.com/docuai/docuai-cli/internal/rag"
)

// HandleAskCommand handles the "ask" command.
func HandleAskCommand(args Args) error {
	if args.Query == "" {
		return fmt.Errorf("usage: docuai ask \"question\"")
	}

	rt, err := NewRuntime(args, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	sess := rt.Orch.ActiveSession()
	updated, err := rt.Orch.SendMessage(context.Background(), sess.ID, args.Query)
	if err != nil {
		return fmt.Errorf("%s", rag.UserMessage(err))
	}

	// Print the answer and, verbose only, the sources block.
	last, _ := updated.LastMessage()
	if last.Sender == model.SenderSystem {
		if args.Verbose {
			fmt.Println(last.Content)
			fmt.Println()
		}
		msgs := updated.Messages
		last = msgs[len(msgs)-2]
	}
	fmt.Println(last.Content)
	return nil
}
