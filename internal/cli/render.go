// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdelwahed/go-task-keeper/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func dash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func truncate(v string, max int) string {
	if len(v) <= max {
		return v
	}
	return v[:max-3] + "..."
}

// renderTaskTable prints tasks as a fixed-layout table. Completed tasks
// are dimmed.
func renderTaskTable(tasks []models.TaskView) string {
	if len(tasks) == 0 {
		return "No tasks.\n"
	}

	titleWidth := lipgloss.Width("Title")
	for _, t := range tasks {
		if w := lipgloss.Width(truncate(t.Title, 40)); w > titleWidth {
			titleWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s  %-*s  %-9s  %-8s  %-10s  %s",
		"ID", titleWidth, "Title", "Status", "Priority", "Due", "Category")))
	b.WriteString("\n")

	for _, t := range tasks {
		line := fmt.Sprintf("%-6d  %-*s  %-9s  %-8s  %-10s  %s",
			t.TaskID, titleWidth, truncate(t.Title, 40), t.Status, t.Priority, dash(t.DueDate), dash(t.Category))
		if t.Status == models.StatusCompleted {
			line = faintStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderTask prints the full decrypted view of a single task.
func renderTask(task models.TaskView) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %d\n", headerStyle.Render("ID:"), task.TaskID))
	b.WriteString(fmt.Sprintf("%s  %s\n", headerStyle.Render("Title:"), task.Title))
	b.WriteString(fmt.Sprintf("%s  %s\n", headerStyle.Render("Description:"), dash(task.Description)))
	b.WriteString(fmt.Sprintf("%s  %s\n", headerStyle.Render("Status:"), task.Status))
	b.WriteString(fmt.Sprintf("%s  %s\n", headerStyle.Render("Priority:"), task.Priority))
	b.WriteString(fmt.Sprintf("%s  %s\n", headerStyle.Render("Due date:"), dash(task.DueDate)))
	b.WriteString(fmt.Sprintf("%s  %s\n", headerStyle.Render("Category:"), dash(task.Category)))
	b.WriteString(fmt.Sprintf("%s  %s\n", headerStyle.Render("Created:"), task.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("%s  %s\n", headerStyle.Render("Updated:"), task.UpdatedAt.Format("2006-01-02 15:04")))
	return b.String()
}

// renderNotes prints a task's notes with ids and timestamps.
func renderNotes(notes []models.TaskNoteView) string {
	if len(notes) == 0 {
		return "No notes.\n"
	}

	var b strings.Builder
	for _, note := range notes {
		b.WriteString(headerStyle.Render(fmt.Sprintf("[%d]", note.NoteID)))
		b.WriteString(faintStyle.Render(" " + note.CreatedAt.Format("2006-01-02 15:04")))
		b.WriteString("\n")
		b.WriteString(note.Content)
		b.WriteString("\n")
	}
	return b.String()
}
