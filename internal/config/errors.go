package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration is incomplete or malformed. All of them abort startup.
var (
	// ErrMasterKeyMissing indicates that no master secret was supplied via
	// environment, flag, or JSON file.
	ErrMasterKeyMissing = errors.New("master key is not configured")
	// ErrMasterKeyMalformed indicates a master secret that is not valid
	// base64 or does not decode to exactly 32 bytes.
	ErrMasterKeyMalformed = errors.New("master key must be base64 of exactly 32 bytes")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database path after defaulting).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
