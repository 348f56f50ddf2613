// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// configcmd.go - Configuration command handler.
//
// Handles "docuai config" subcommands:
//
//	docuai config show
//	docuai config set KEY VALUE
//	docuai config path
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docuai/docuai-cli/internal/config"
)

// HandleConfigCommand handles the "config" command.
func HandleConfigCommand(args Args) error {
	parser := NewArgParser(args.Raw)

	switch args.Subcommand {
	case "", "show":
		return showConfig()

	case "set":
		key := parser.Positional(1)
		value := parser.Positional(2)
		if key == "" || value == "" {
			return fmt.Errorf("usage: docuai config set KEY VALUE")
		}
		return setConfigValue(key, value)

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand: %s", args.Subcommand)
	}
}

// showConfig prints the effective configuration after file, env, and defaults.
func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Current configuration:")
	fmt.Printf("  service.url           = %s\n", cfg.Service.URL)
	fmt.Printf("  service.timeout_secs  = %d\n", cfg.Service.TimeoutSecs)
	fmt.Printf("  service.requests_per_second = %g\n", cfg.Service.RequestsPerSecond)
	fmt.Printf("  storage.backend       = %s\n", cfg.Storage.Backend)
	if cfg.Storage.Dir != "" {
		fmt.Printf("  storage.dir           = %s\n", cfg.Storage.Dir)
	}
	fmt.Printf("  export.output_dir     = %s\n", cfg.Export.OutputDir)
	return nil
}

// setConfigValue updates a single key in the config file, creating the file
// with defaults if it does not exist yet.
func setConfigValue(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch strings.ToLower(key) {
	case "service.url":
		cfg.Service.URL = value
	case "service.timeout_secs":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %q", key, value)
		}
		cfg.Service.TimeoutSecs = secs
	case "service.requests_per_second":
		rps, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %q", key, value)
		}
		cfg.Service.RequestsPerSecond = rps
	case "storage.backend":
		cfg.Storage.Backend = strings.ToLower(value)
	case "storage.dir":
		cfg.Storage.Dir = value
	case "export.output_dir":
		cfg.Export.OutputDir = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}
