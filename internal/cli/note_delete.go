// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/client"
)

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}

		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			if err := app.Services().Notes.DeleteNote(ctx, noteID); err != nil {
				return err
			}
			fmt.Printf("Note %d deleted.\n", noteID)
			return nil
		})
	},
}
