// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/client"
)

var noteEditCmd = &cobra.Command{
	Use:   "edit <note-id> <content>",
	Short: "Replace the content of a note",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		noteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}
		content := strings.Join(args[1:], " ")

		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			note, err := app.Services().Notes.EditNote(ctx, noteID, content)
			if err != nil {
				return err
			}
			fmt.Printf("Note %d updated.\n", note.NoteID)
			return nil
		})
	},
}
