// docuai - Ask your company's documents from the terminal.
//
// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/docuai/docuai-cli/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdChat:
		err = cli.HandleChatCommand(args)
	case cli.CmdAsk:
		err = cli.HandleAskCommand(args)
	case cli.CmdUpload:
		err = cli.HandleUploadCommand(args)
	case cli.CmdSessions:
		err = cli.HandleSessionsCommand(args)
	case cli.CmdConfig:
		err = cli.HandleConfigCommand(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		err = cli.HandleChatCommand(args)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
