// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/client"
	"github.com/abdelwahed/go-task-keeper/models"
)

var (
	editTitle       string
	editDescription string
	editDueDate     string
	editCategory    string
	editPriority    string
	editStatus      string
)

func init() {
	taskEditCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	taskEditCmd.Flags().StringVarP(&editDescription, "description", "d", "", "new description (empty string clears it)")
	taskEditCmd.Flags().StringVar(&editDueDate, "due", "", "new due date (YYYY-MM-DD)")
	taskEditCmd.Flags().StringVarP(&editCategory, "category", "c", "", "new category label")
	taskEditCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "new priority: LOW, MEDIUM, or HIGH")
	taskEditCmd.Flags().StringVarP(&editStatus, "status", "s", "", "new status: PENDING or COMPLETED")
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long:  `Changes only the fields given by flags; everything else stays as is.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		update := models.TaskUpdate{}
		changed := false
		if cmd.Flags().Changed("title") {
			update.Title = &editTitle
			changed = true
		}
		if cmd.Flags().Changed("description") {
			update.Description = &editDescription
			changed = true
		}
		if cmd.Flags().Changed("due") {
			update.DueDate = &editDueDate
			changed = true
		}
		if cmd.Flags().Changed("category") {
			update.Category = &editCategory
			changed = true
		}
		if cmd.Flags().Changed("priority") {
			priority := models.ParsePriority(editPriority)
			update.Priority = &priority
			changed = true
		}
		if cmd.Flags().Changed("status") {
			status := models.TaskStatus(editStatus)
			if status != models.StatusPending && status != models.StatusCompleted {
				return fmt.Errorf("invalid status %q", editStatus)
			}
			update.Status = &status
			changed = true
		}
		if !changed {
			return fmt.Errorf("nothing to change, pass at least one field flag")
		}

		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			task, err := app.Services().Tasks.EditTask(ctx, taskID, update)
			if err != nil {
				return err
			}
			fmt.Print(renderTask(task))
			return nil
		})
	},
}
