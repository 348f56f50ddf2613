// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// runtime.go - Shared wiring between CLI commands: config, storage backend,
// service client, and orchestrator construction.
package cli

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/docuai/docuai-cli/internal/chat"
	"github.com/docuai/docuai-cli/internal/config"
	"github.com/docuai/docuai-cli/internal/kv"
	"github.com/docuai/docuai-cli/internal/rag"
	"github.com/docuai/docuai-cli/internal/storage"
)

// Runtime bundles the long-lived pieces a command needs.
type Runtime struct {
	Config *config.Config
	Client *rag.Client
	Orch   *chat.Orchestrator

	store   *storage.SessionStore
	watcher *config.Watcher
}

// NewRuntime loads config and wires up storage, the service client, and the
// orchestrator. Global flag overrides from args take precedence over config.
func NewRuntime(args Args, notifier chat.Notifier) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if args.URL != "" {
		cfg.Service.URL = args.URL
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	client := rag.NewClient(rag.Config{
		BaseURL:           cfg.Service.URL,
		Timeout:           cfg.ServiceTimeout(),
		RequestsPerSecond: cfg.Service.RequestsPerSecond,
	})

	return &Runtime{
		Config: cfg,
		Client: client,
		Orch:   chat.New(store, client, notifier),
		store:  store,
	}, nil
}

// openStore opens the configured session storage backend.
func openStore(cfg *config.Config) (*storage.SessionStore, error) {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}

	var backend kv.Store
	switch cfg.Storage.Backend {
	case "sqlite":
		backend, err = kv.NewSQLiteStore(filepath.Join(dataDir, "docuai.db"))
	default:
		backend, err = kv.NewFileStore(filepath.Join(dataDir, "sessions"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	return storage.NewSessionStore(backend), nil
}

// WatchConfig starts hot-reloading the config file. Currently only the
// service URL is applied live; storage changes need a restart.
func (r *Runtime) WatchConfig() {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return
	}

	watcher, err := config.NewWatcher(path, 500*time.Millisecond, func(cfg *config.Config) {
		r.Client.SetBaseURL(cfg.Service.URL)
	})
	if err != nil {
		log.Printf("config watch unavailable: %v", err)
		return
	}
	if err := watcher.Watch(); err != nil {
		log.Printf("config watch unavailable: %v", err)
		watcher.Close()
		return
	}
	r.watcher = watcher
}

// Close releases storage and watcher resources.
func (r *Runtime) Close() {
	if r.watcher != nil {
		r.watcher.Close()
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			log.Printf("failed to close session store: %v", err)
		}
	}
}
