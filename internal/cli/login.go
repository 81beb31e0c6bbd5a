// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and work with tasks interactively",
	Long: `Prompts for credentials, unlocks the session key, and opens the
interactive task screen. The session is locked again when the screen exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, app, log, err := bootstrap(cmd.Context())
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

		session, err := app.Services().Auth.Login(ctx, name, pass)
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s.\n", session.Username)

		ui := tui.New(app.Services(), log)
		if _, err = ui.MainLoop(ctx); err != nil {
			return err
		}
		return nil
	},
}
