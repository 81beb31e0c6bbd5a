// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package config

import (
	"encoding/base64"
	"strings"

	"github.com/abdelwahed/go-task-keeper/internal/crypto"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants. The master secret is the hard requirement: without a
// well-formed one no session can ever be created, so the process must
// refuse to start rather than fail later at login.
//
// Returns nil if the configuration is valid, or a descriptive sentinel
// error otherwise.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.App.MasterKey) == "" {
		return ErrMasterKeyMissing
	}

	key, err := base64.StdEncoding.DecodeString(cfg.App.MasterKey)
	if err != nil || len(key) != crypto.MasterKeySize {
		return ErrMasterKeyMalformed
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
