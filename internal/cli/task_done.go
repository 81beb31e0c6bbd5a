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

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			task, err := app.Services().Tasks.MarkDone(ctx, taskID)
			if err != nil {
				return err
			}
			fmt.Printf("Task %d (%s) completed.\n", task.TaskID, task.Title)
			return nil
		})
	},
}
