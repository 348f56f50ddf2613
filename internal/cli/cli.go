// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// cli.go - CLI parsing and command dispatch for the DocuAI client.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdChat Command = iota
	CmdAsk
	CmdUpload
	CmdSessions
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	URL     string // Override service URL

	// Command-specific
	Query      string
	File       string
	Category   string
	Tags       string
	Format     string
	Subcommand string

	// Raw args (remaining after the command word)
	Raw []string
}

const usageText = `docuai - ask your company's documents

DocuAI answers questions from your internal documents, policies, and
knowledge base, and keeps the conversation history on this machine.

Usage:
  docuai                         Start interactive chat (default)
  docuai chat                    Start interactive chat
  docuai ask "question"          Ask a single question
  docuai upload FILE             Upload a document to the knowledge base
  docuai sessions [subcommand]   Manage saved chat sessions
  docuai config [show|set|path]  Configuration
  docuai version                 Show version
  docuai help                    Show this help

Upload options:
  docuai upload handbook.pdf --category hr --tags "policies,benefits"
    --category NAME   Document category (default: general)
    --tags LIST       Comma-separated tags

Session commands:
  docuai sessions list           List all saved sessions
  docuai sessions show <n>       Show a session transcript
  docuai sessions export <n>     Export a session transcript
    --format text|markdown|json  Export format (default: text)
    --output DIR                 Output directory
  docuai sessions search <term>  Search messages across sessions
  docuai sessions clear          Delete all sessions
    --confirm                    Required confirmation flag

Config commands:
  docuai config show             Show current configuration
  docuai config set KEY VALUE    Set a value (service.url, storage.backend, ...)
  docuai config path             Print the config file path

Interactive commands (during chat):
  /new                Start a new session
  /sessions           List sessions
  /switch <n>         Switch to session n
  /search <term>      Search the current session
  /upload <file>      Upload a document
  /export [format]    Export the current transcript
  /copy               Copy the last answer to the clipboard
  /clear              Delete all sessions and start over
  /help               Show commands
  /quit               Exit

Global flags:
  --url URL           Override the DocuAI service URL
  -q, --quiet         Minimal output
  -v, --verbose       Debug output

Environment:
  DOCUAI_SERVICE_URL, DOCUAI_TIMEOUT_SECS, DOCUAI_STORAGE_BACKEND,
  DOCUAI_STORAGE_DIR, DOCUAI_EXPORT_DIR override the config file.

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("docuai version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	raw := os.Args[1:]

	remaining, parsed := parseGlobalFlags(raw)

	if len(remaining) == 0 {
		return CmdChat, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "chat":
		return CmdChat, parsed

	case "ask":
		parser := NewArgParser(remaining)
		parsed.Query = JoinPositionalArgs(parser, 0)
		return CmdAsk, parsed

	case "upload":
		parser := NewArgParser(remaining)
		parsed.File = parser.Positional(0)
		parsed.Category = parser.Flag("category")
		parsed.Tags = parser.Flag("tags")
		return CmdUpload, parsed

	case "sessions", "session":
		parser := NewArgParser(remaining)
		parsed.Subcommand = parser.Subcommand()
		parsed.Format = parser.Flag("format")
		return CmdSessions, parsed

	case "config":
		parser := NewArgParser(remaining)
		parsed.Subcommand = parser.Subcommand()
		return CmdConfig, parsed

	case "version", "--version":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		// Unknown word: treat the whole line as a question, matching the
		// muscle memory of `docuai how do I ...`.
		parsed.Query = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAsk, parsed
	}
}

// parseGlobalFlags extracts global flags, returning the remaining args.
func parseGlobalFlags(raw []string) ([]string, Args) {
	var args Args
	remaining := make([]string, 0, len(raw))

	i := 0
	for i < len(raw) {
		switch raw[i] {
		case "-q", "--quiet":
			args.Quiet = true
			i++
		case "-v", "--verbose":
			args.Verbose = true
			i++
		case "--url":
			if i+1 < len(raw) {
				args.URL = raw[i+1]
				i += 2
			} else {
				i++
			}
		default:
			if strings.HasPrefix(raw[i], "--url=") {
				args.URL = strings.TrimPrefix(raw[i], "--url=")
				i++
				continue
			}
			remaining = append(remaining, raw[i])
			i++
		}
	}

	return remaining, args
}
