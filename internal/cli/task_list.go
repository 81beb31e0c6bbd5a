// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdelwahed/go-task-keeper/internal/client"
	"github.com/abdelwahed/go-task-keeper/models"
)

var (
	listAll      bool
	listCategory string
)

func init() {
	taskListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include completed tasks")
	taskListCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only tasks in this category")
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `Lists pending tasks by default; --all includes completed ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			tasks, err := app.Services().Tasks.ListTasks(ctx)
			if err != nil {
				return err
			}

			filtered := tasks[:0]
			for _, t := range tasks {
				if !listAll && t.Status == models.StatusCompleted {
					continue
				}
				if listCategory != "" && t.Category != listCategory {
					continue
				}
				filtered = append(filtered, t)
			}

			fmt.Print(renderTaskTable(filtered))
			return nil
		})
	},
}
