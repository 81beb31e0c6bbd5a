// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Long: `Verifies the current password, then re-encrypts every task and note
under the key derived from the new one. The old password stops working
immediately.`,
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
		oldPass, err := promptPassword("Current password: ")
		if err != nil {
			return err
		}

		if _, err = app.Services().Auth.Login(ctx, name, oldPass); err != nil {
			return err
		}

		newPass, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Repeat new password: ")
		if err != nil {
			return err
		}
		if newPass != confirm {
			return fmt.Errorf("passwords do not match")
		}

		if err = app.Services().Auth.ChangePassword(ctx, oldPass, newPass); err != nil {
			return err
		}

		fmt.Println("Password changed. All data re-encrypted under the new key.")
		return nil
	},
}
