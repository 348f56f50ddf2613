// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// sessions.go - Session management command handler.
//
// Handles "docuai sessions" subcommands:
//
//	docuai sessions list
//	docuai sessions show <n>
//	docuai sessions export <n> [--format text|markdown|json] [--output DIR]
//	docuai sessions search <term>
//	docuai sessions clear --confirm
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docuai/docuai-cli/internal/export"
	"github.com/docuai/docuai-cli/internal/model"
)

// HandleSessionsCommand handles the "sessions" command.
func HandleSessionsCommand(args Args) error {
	rt, err := NewRuntime(args, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	parser := NewArgParser(args.Raw)

	switch args.Subcommand {
	case "", "list", "ls":
		printSessionList(rt.Orch.Sessions(), rt.Orch.ActiveSession().ID)
		return nil

	case "show":
		sess, err := sessionByNumber(rt, parser.Positional(1))
		if err != nil {
			return err
		}
		printTranscript(sess)
		return nil

	case "export":
		sess, err := sessionByNumber(rt, parser.Positional(1))
		if err != nil {
			return err
		}
		return exportSession(rt, sess, args.Format, parser.Flag("output"))

	case "search":
		term := JoinPositionalArgs(parser, 1)
		if term == "" {
			return fmt.Errorf("usage: docuai sessions search <term>")
		}
		return searchAllSessions(rt, term)

	case "clear":
		if !parser.HasFlag("confirm") {
			return fmt.Errorf("this deletes all saved sessions; re-run with --confirm")
		}
		rt.Orch.ClearHistory()
		fmt.Println("All sessions deleted.")
		return nil

	default:
		return fmt.Errorf("unknown sessions subcommand: %s", args.Subcommand)
	}
}

// sessionByNumber resolves a 1-based session number from the list view.
func sessionByNumber(rt *Runtime, arg string) (model.ChatSession, error) {
	sessions := rt.Orch.Sessions()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(sessions) {
		return model.ChatSession{}, fmt.Errorf("no session %q (run `docuai sessions list`)", arg)
	}
	return sessions[n-1], nil
}

// exportSession writes a single session transcript to disk.
func exportSession(rt *Runtime, sess model.ChatSession, format, outputDir string) error {
	exporter, err := export.ExporterFor(format)
	if err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = rt.Config.Export.OutputDir
	}
	path, err := export.ExportToFile(sess, exporter, &export.Options{OutputDir: outputDir})
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// searchAllSessions prints matches across every saved session.
func searchAllSessions(rt *Runtime, term string) error {
	found := 0
	for _, sess := range rt.Orch.Sessions() {
		matches := sess.FilterMessages(term)
		if len(matches) == 0 {
			continue
		}
		found += len(matches)
		fmt.Printf("\n%s\n%s\n", sess.Title, strings.Repeat("─", 20))
		for _, msg := range matches {
			fmt.Printf("[%s] %s: %s\n",
				msg.Timestamp.Local().Format(export.TimestampFormat),
				msg.Sender.DisplayName(),
				msg.Preview(100))
		}
	}
	if found == 0 {
		fmt.Println("No matches.")
		return nil
	}
	fmt.Printf("\n%d match(es).\n", found)
	return nil
}
