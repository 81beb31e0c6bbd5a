// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

// Package client assembles the application: configuration, crypto core,
// sqlite storage, and services, with a single teardown path that locks the
// session before the process exits.
package client

import (
	"context"
	"fmt"

	"github.com/abdelwahed/go-task-keeper/internal/agent"
	"github.com/abdelwahed/go-task-keeper/internal/config"
	"github.com/abdelwahed/go-task-keeper/internal/crypto"
	"github.com/abdelwahed/go-task-keeper/internal/logger"
	"github.com/abdelwahed/go-task-keeper/internal/service"
	"github.com/abdelwahed/go-task-keeper/internal/store"
)

// App owns every long-lived component of a task keeper process. One App is
// built per invocation; Close must run on every exit path so key material
// never outlives the process.
type App struct {
	cfg *config.StructuredConfig
	log *logger.Logger

	db       *store.DB
	keys     *crypto.KeyManager
	services *service.Services
}

// NewApp wires the full component graph from an already validated config:
// master secret, key manager with idle auto-lock, sqlite store (migrated on
// open), and the services over both.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	masterSecret, err := cfg.App.MasterKeyBytes()
	if err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}

	deriver, err := crypto.NewKeyDeriver(masterSecret)
	if err != nil {
		return nil, fmt.Errorf("create key deriver: %w", err)
	}

	hasher := crypto.NewPasswordHasher()
	keys := crypto.NewKeyManager(hasher, deriver, cfg.App.IdleLockTimeout)
	cryptoSvc := crypto.NewCryptoService(keys, log)

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repos := store.NewRepositories(db)
	services := service.NewServices(repos, db, keys, hasher, cryptoSvc)

	return &App{
		cfg:      cfg,
		log:      log,
		db:       db,
		keys:     keys,
		services: services,
	}, nil
}

// Services returns the wired application services.
func (a *App) Services() *service.Services {
	return a.services
}

// NewAgent builds the AI agent over the app's task and note services.
// Fails with [agent.ErrNotConfigured] when no API key is set.
func (a *App) NewAgent() (*agent.Agent, error) {
	return agent.New(a.cfg.Agent, a.services.Tasks, a.services.Notes)
}

// Close locks the session, wipes resident key material, and closes the
// database. Safe to call when nothing was ever unlocked.
func (a *App) Close() error {
	a.services.Auth.Logout()
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
