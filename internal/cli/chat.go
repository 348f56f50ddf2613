// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// chat.go - Interactive chat command handler.
//
// Handles the "docuai chat" command (and the bare "docuai" invocation),
// an interactive REPL against the DocuAI service.
//
// Interactive Commands (during chat):
//   /new                Start a new session
//   /sessions           List sessions
//   /switch <n>         Switch to session n
//   /search <term>      Search the current session
//   /upload <file>      Upload a document
//   /export [format]    Export the current transcript
//   /copy               Copy the last answer to the clipboard
//   /clear              Delete all sessions and start over
//   /help, /h           Show commands
//   /quit, /q           Exit
//   Ctrl+D              Exit
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/docuai/docuai-cli/internal/chat"
	"github.com/docuai/docuai-cli/internal/config"
	"github.com/docuai/docuai-cli/internal/export"
	"github.com/docuai/docuai-cli/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatInput provides input history and line editing for interactive chat.
type ChatInput struct {
	line        *liner.State
	historyFile string
}

// NewChatInput creates a ChatInput with persistent input history.
func NewChatInput() *ChatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	ci := &ChatInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	ci.loadHistory()
	return ci
}

func (c *ChatInput) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt. Non-empty lines are
// added to history.
func (c *ChatInput) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *ChatInput) saveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0755); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatInput) Close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// NOTIFIER
// =============================================================================

// printNotifier prints orchestrator events to the terminal.
type printNotifier struct{}

func (printNotifier) SessionUpdated(model.ChatSession) {}

func (printNotifier) RequestFailed(sessionID, message string) {
	fmt.Fprintf(os.Stderr, "[Error] %s\n", message)
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand handles the "chat" command.
func HandleChatCommand(args Args) error {
	rt, err := NewRuntime(args, printNotifier{})
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.WatchConfig()

	input := NewChatInput()
	defer input.Close()

	if !args.Quiet {
		printWelcome(rt)
	}

	for {
		line, err := input.ReadInput("docuai> ")
		if err != nil {
			// Ctrl+C aborts the prompt, Ctrl+D signals EOF; both exit.
			fmt.Println()
			fmt.Println("Goodbye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			keepGoing, err := handleSlashCommand(rt, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[Error] %v\n", err)
			}
			if !keepGoing {
				fmt.Println("Goodbye!")
				return nil
			}
			continue
		}

		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			fmt.Println("Goodbye!")
			return nil
		}

		askInChat(rt, line)
	}
}

// askInChat sends a question in the active session and prints the answer.
func askInChat(rt *Runtime, question string) {
	sess := rt.Orch.ActiveSession()

	updated, err := rt.Orch.SendMessage(context.Background(), sess.ID, question)
	if err != nil {
		// The notifier already printed the failure for server errors;
		// local validation errors are printed here.
		if updated.ID == "" {
			fmt.Fprintf(os.Stderr, "[Error] %v\n", err)
		}
		return
	}

	printLatestAnswer(updated)
}

// printLatestAnswer prints the answer (and sources block, if any) recorded
// by the last exchange.
func printLatestAnswer(sess model.ChatSession) {
	msgs := sess.Messages
	// The tail is either ...user,ai or ...user,ai,system(sources).
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Sender == model.SenderUser {
			for _, msg := range msgs[i+1:] {
				fmt.Println()
				fmt.Println(msg.Content)
			}
			fmt.Println()
			return
		}
	}
}

// printWelcome prints the session banner and suggested questions.
func printWelcome(rt *Runtime) {
	sess := rt.Orch.ActiveSession()

	fmt.Println()
	fmt.Println("DocuAI interactive chat")
	fmt.Println(strings.Repeat("─", 30))
	fmt.Printf("Service:  %s\n", rt.Client.BaseURL())
	fmt.Printf("Session:  %s\n", sess.Title)
	fmt.Println()
	fmt.Println(model.WelcomeMessage)
	fmt.Println()

	if !sess.HasUserMessage() {
		fmt.Println("Suggested questions:")
		for _, q := range chat.SuggestedQuestions {
			fmt.Printf("  - %s\n", q)
		}
		fmt.Println()
	}

	fmt.Println("Type your question and press Enter. Commands: /help, /quit")
	fmt.Println()
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands. Returns (keepGoing, error)
// where keepGoing=false means exit.
func handleSlashCommand(rt *Runtime, cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true, nil
	}

	command := strings.ToLower(parts[0])
	rest := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		printChatHelp()
		return true, nil

	case "/new", "/n":
		sess := rt.Orch.NewSession()
		fmt.Printf("[New session] %s\n", sess.Title)
		return true, nil

	case "/sessions", "/ls":
		printSessionList(rt.Orch.Sessions(), rt.Orch.ActiveSession().ID)
		return true, nil

	case "/switch", "/sw":
		if len(rest) == 0 {
			return true, fmt.Errorf("usage: /switch <n>")
		}
		return true, switchSession(rt, rest[0])

	case "/search":
		if len(rest) == 0 {
			return true, fmt.Errorf("usage: /search <term>")
		}
		printSearchResults(rt.Orch.SearchMessages(strings.Join(rest, " ")))
		return true, nil

	case "/upload", "/up":
		if len(rest) == 0 {
			return true, fmt.Errorf("usage: /upload <file>")
		}
		return true, uploadFromChat(rt, rest[0])

	case "/export", "/e":
		format := ""
		if len(rest) > 0 {
			format = rest[0]
		}
		path, err := rt.Orch.ExportTranscript(format, &export.Options{OutputDir: rt.Config.Export.OutputDir})
		if err != nil {
			return true, err
		}
		fmt.Printf("[Exported] %s\n", path)
		return true, nil

	case "/copy":
		return true, copyLastAnswer(rt)

	case "/clear", "/c":
		rt.Orch.ClearHistory()
		fmt.Println("[History cleared]")
		return true, nil

	case "/history":
		printTranscript(rt.Orch.ActiveSession())
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
}

// switchSession resolves a 1-based session number and activates it.
func switchSession(rt *Runtime, arg string) error {
	sessions := rt.Orch.Sessions()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(sessions) {
		return fmt.Errorf("no session %q (run /sessions for the list)", arg)
	}
	sess := rt.Orch.SetActive(sessions[n-1].ID)
	fmt.Printf("[Switched] %s\n", sess.Title)
	return nil
}

// uploadFromChat uploads a local file with default metadata.
func uploadFromChat(rt *Runtime, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	confirmation, err := rt.Orch.UploadDocument(context.Background(), f, filepath.Base(path), "", "")
	if err != nil {
		return err
	}
	fmt.Printf("[Upload] %s\n", confirmation)
	return nil
}

// copyLastAnswer copies the most recent assistant message to the clipboard.
func copyLastAnswer(rt *Runtime) error {
	sess := rt.Orch.ActiveSession()
	for i := len(sess.Messages) - 1; i >= 0; i-- {
		if sess.Messages[i].Sender == model.SenderAI {
			if err := rt.Orch.CopyMessage(sess.Messages[i].ID); err != nil {
				return err
			}
			fmt.Println("[Copied]")
			return nil
		}
	}
	return fmt.Errorf("no answer to copy yet")
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printChatHelp prints available interactive commands.
func printChatHelp() {
	fmt.Println()
	fmt.Println("Available Commands")
	fmt.Println(strings.Repeat("─", 20))

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/new", "Start a new session"},
		{"/sessions", "List sessions"},
		{"/switch <n>", "Switch to session n"},
		{"/search <term>", "Search the current session"},
		{"/upload <file>", "Upload a document"},
		{"/export [format]", "Export transcript (text, markdown, json)"},
		{"/copy", "Copy the last answer to the clipboard"},
		{"/history", "Show the current transcript"},
		{"/clear", "Delete all sessions and start over"},
		{"/quit", "Exit"},
	}
	for _, c := range commands {
		fmt.Printf("  %-18s %s\n", c.cmd, c.desc)
	}
	fmt.Println()
}

// printSessionList prints sessions, most recent first, marking the active one.
func printSessionList(sessions []model.ChatSession, activeID string) {
	fmt.Println()
	for i, sess := range sessions {
		marker := " "
		if sess.ID == activeID {
			marker = "*"
		}
		fmt.Printf("%s %2d. %-40s  %s (%d messages)\n",
			marker, i+1, sess.Title,
			sess.UpdatedAt.Local().Format("2006-01-02 15:04"),
			sess.MessageCount())
	}
	fmt.Println()
}

// printSearchResults prints matching messages in transcript form.
func printSearchResults(msgs []model.Message) {
	if len(msgs) == 0 {
		fmt.Println("[No matches]")
		return
	}
	fmt.Println()
	for _, msg := range msgs {
		fmt.Printf("[%s] %s: %s\n",
			msg.Timestamp.Local().Format(export.TimestampFormat),
			msg.Sender.DisplayName(),
			msg.Preview(100))
	}
	fmt.Println()
}

// printTranscript prints the full transcript of a session.
func printTranscript(sess model.ChatSession) {
	fmt.Println()
	fmt.Println(export.Transcript(sess))
	fmt.Println()
}
