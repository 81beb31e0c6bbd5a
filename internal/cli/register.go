// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Creates an account with a salted password hash and a fresh key-derivation
salt. Registration does not sign you in; run 'taskkeeper login' afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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
		confirm, err := promptPassword("Repeat password: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passwords do not match")
		}

		user, err := app.Services().Auth.Register(ctx, name, pass)
		if err != nil {
			return err
		}

		fmt.Printf("Account %q created. Run 'taskkeeper login' to sign in.\n", user.Username)
		return nil
	},
}
