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

var noteListCmd = &cobra.Command{
	Use:   "list <task-id>",
	Short: "List the notes of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			notes, err := app.Services().Notes.ListNotes(ctx, taskID)
			if err != nil {
				return err
			}
			fmt.Print(renderNotes(notes))
			return nil
		})
	},
}
