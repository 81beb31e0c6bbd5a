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

var noteAddCmd = &cobra.Command{
	Use:   "add <task-id> <content>",
	Short: "Attach a note to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}
		content := strings.Join(args[1:], " ")

		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			note, err := app.Services().Notes.AddNote(ctx, taskID, content)
			if err != nil {
				return err
			}
			fmt.Printf("Note %d added to task %d.\n", note.NoteID, taskID)
			return nil
		})
	},
}
