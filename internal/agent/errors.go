package agent

import "errors"

var (
	ErrNotConfigured = errors.New("agent api key is not configured")
	ErrNoCompletion  = errors.New("model returned no completion")
	ErrToolLoop      = errors.New("tool call limit exceeded")
)
