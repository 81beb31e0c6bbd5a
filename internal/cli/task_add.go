// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/client"
	"github.com/abdelwahed/go-task-keeper/internal/service"
	"github.com/abdelwahed/go-task-keeper/models"
)

var (
	addDescription string
	addDueDate     string
	addCategory    string
	addPriority    string
)

func init() {
	taskAddCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	taskAddCmd.Flags().StringVar(&addDueDate, "due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category label")
	taskAddCmd.Flags().StringVarP(&addPriority, "priority", "p", "MEDIUM", "priority: LOW, MEDIUM, or HIGH")
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			input := service.TaskInput{
				Title:       strings.Join(args, " "),
				Description: addDescription,
				DueDate:     addDueDate,
				Category:    addCategory,
				Priority:    models.ParsePriority(addPriority),
			}

			task, err := app.Services().Tasks.CreateTask(ctx, input)
			if err != nil {
				return err
			}

			fmt.Printf("Task %d added.\n", task.TaskID)
			return nil
		})
	},
}
