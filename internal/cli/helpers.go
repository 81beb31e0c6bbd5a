// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abdelwahed/go-task-keeper/internal/client"
	"github.com/abdelwahed/go-task-keeper/internal/config"
	"github.com/abdelwahed/go-task-keeper/internal/logger"
)

// bootstrap loads config and builds the app. Interactive modes own the
// terminal, so the logger writes to a file next to the executable; the
// returned context carries it for logger.FromContext down the stack.
func bootstrap(ctx context.Context) (context.Context, *client.App, *logger.Logger, error) {
	log := logger.NewFileLogger("cli")
	ctx = log.WithContext(ctx)

	cfg, err := config.GetStructuredConfig(flagOverrides())
	if err != nil {
		return ctx, nil, nil, err
	}

	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		return ctx, nil, nil, err
	}
	return ctx, app, log, nil
}

// promptUsername returns the --user flag value or asks on the terminal.
func promptUsername() (string, error) {
	if username != "" {
		return username, nil
	}
	fmt.Print("Username: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read username: %w", err)
	}
	name := strings.TrimSpace(line)
	if name == "" {
		return "", fmt.Errorf("username is required")
	}
	return name, nil
}

// promptPassword reads a password without echo.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

// withSession is the frame of every one-shot data command: build the app,
// prompt for credentials, unlock, run fn, and tear everything down so the
// session never outlives the command.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, app *client.App) error) error {
	ctx, app, _, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	name, err := promptUsername()
	if err != nil {
		return err
	}
	pass, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	if _, err = app.Services().Auth.Login(ctx, name, pass); err != nil {
		return err
	}

	return fn(ctx, app)
}
