package tui

import (
	"github.com/abdelwahed/go-task-keeper/internal/crypto"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the active page in [RootModel]. Payload, when set, is
// re-delivered to the target page after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// AuthResult is produced by the login page when an unlock attempt finishes.
// A nil Err means the session key is resident and the auth flow is done.
type AuthResult struct {
	Session crypto.Session
	Err     error
}

// RegisterNotice is delivered to the menu page after a successful
// registration so it can show a confirmation line.
type RegisterNotice struct {
	Username string
}
