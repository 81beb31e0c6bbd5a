// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/client"
)

var showCopy bool

func init() {
	taskShowCmd.Flags().BoolVar(&showCopy, "copy", false, "copy the title to the clipboard instead of printing")
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task with its notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			task, err := app.Services().Tasks.GetTask(ctx, taskID)
			if err != nil {
				return err
			}

			if showCopy {
				if err = clipboard.WriteAll(task.Title); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Println("Title copied to clipboard.")
				return nil
			}

			fmt.Print(renderTask(task))

			notes, err := app.Services().Notes.ListNotes(ctx, taskID)
			if err != nil {
				return err
			}
			if len(notes) > 0 {
				fmt.Println()
				fmt.Print(renderNotes(notes))
			}
			return nil
		})
	},
}
