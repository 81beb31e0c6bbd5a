// Package tui implements the interactive terminal mode: an auth flow
// (menu, sign in, create account) followed by the task list main loop.
package tui

import (
	"context"
	"errors"

	"github.com/abdelwahed/go-task-keeper/internal/crypto"
	"github.com/abdelwahed/go-task-keeper/internal/logger"
	"github.com/abdelwahed/go-task-keeper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUserQuit is returned when the user exits the program instead of
// completing a flow.
var ErrUserQuit = errors.New("quit by user")

type TUI struct {
	services *service.Services
	log      *logger.Logger
}

func New(services *service.Services, log *logger.Logger) *TUI {
	return &TUI{services: services, log: log}
}

// LoginFlow runs the auth pages until a session is unlocked or the user
// quits. The returned session is already active inside the key manager.
func (t *TUI) LoginFlow(ctx context.Context) (crypto.Session, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.Auth),
		"register": NewRegisterModel(ctx, t.services.Auth),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return crypto.Session{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return crypto.Session{}, tea.ErrProgramKilled
	}
	if result.quitByUser || !result.authed {
		return crypto.Session{}, ErrUserQuit
	}

	t.log.Info().Str("username", result.session.Username).Msg("session unlocked")
	return result.session, nil
}

// MainLoop runs the task list screen until the user quits or logs out.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
