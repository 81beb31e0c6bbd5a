// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the full-screen interactive mode",
	Long: `Runs the terminal UI: sign in or create an account, then browse, add,
complete, and annotate tasks. Logging out returns to the auth screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, app, log, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		ui := tui.New(app.Services(), log)
		for {
			if _, err = ui.LoginFlow(ctx); err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}

			logout, err := ui.MainLoop(ctx)
			if err != nil {
				return err
			}
			if !logout {
				return nil
			}
			// Logout relocks the session and drops back to the auth screen.
			app.Services().Auth.Logout()
		}
	},
}
