// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package config

import (
	"encoding/base64"
	"time"
)

// StructuredConfig is the top-level configuration container for
// go-task-keeper. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line overrides, and
// an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings, most importantly the master
	// secret at the root of the key-derivation hierarchy.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local sqlite database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Agent holds settings for the AI agent mode.
	Agent Agent `envPrefix:"AGENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from the environment and command-line overrides.
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// MasterKey is the base64-encoded process-wide master secret, the
	// root of the key hierarchy. Must decode to exactly 32 bytes. The
	// application refuses to start without it.
	// Env: APP_MASTER_KEY
	MasterKey string `env:"MASTER_KEY"`

	// IdleLockTimeout locks the active session after this long without
	// key use (e.g. "15m"). Zero disables idle auto-lock.
	// Env: APP_IDLE_LOCK_TIMEOUT
	IdleLockTimeout time.Duration `env:"IDLE_LOCK_TIMEOUT"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local sqlite database.
type DB struct {
	// DSN is the sqlite database file path (e.g. "taskkeeper.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Agent holds settings for the OpenAI-compatible chat endpoint driving the
// agent mode.
type Agent struct {
	// APIURL is the base URL of the chat-completions API.
	// Env: AGENT_API_URL
	APIURL string `env:"API_URL"`

	// APIKey is the bearer token for the API. Confidential.
	// Env: AGENT_API_KEY
	APIKey string `env:"API_KEY"`

	// Model is the model identifier requested for completions.
	// Env: AGENT_MODEL
	Model string `env:"MODEL"`

	// RequestTimeout bounds a single completion round trip.
	// Env: AGENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// MasterKeyBytes decodes the base64 master secret. The decoded length is
// checked by [StructuredConfig.validate]; callers get raw key bytes here.
func (a App) MasterKeyBytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.MasterKey)
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Command-line overrides
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//
// overrides may be nil when no command-line values apply. Returns a fully
// populated *StructuredConfig or an error if any source fails to load or
// the final config fails validation.
func GetStructuredConfig(overrides *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withOverrides(overrides).
		withEnv().
		withJSON().
		build()
}
