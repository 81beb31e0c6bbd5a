// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package agent

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/abdelwahed/go-task-keeper/internal/service"
	"github.com/abdelwahed/go-task-keeper/models"
)

// taskPayload is the task shape handed to the model. Decrypted fields only,
// never the stored blobs.
type taskPayload struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
	Category    string `json:"category,omitempty"`
}

type notePayload struct {
	ID      int64  `json:"id"`
	TaskID  int64  `json:"task_id"`
	Content string `json:"content"`
}

func taskToPayload(t models.TaskView) taskPayload {
	return taskPayload{
		ID:          t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Category:    t.Category,
	}
}

func noteToPayload(n models.TaskNoteView) notePayload {
	return notePayload{ID: n.NoteID, TaskID: n.TaskID, Content: n.Content}
}

func toolSpecs() []toolSpec {
	fn := func(name, desc, params string) toolSpec {
		return toolSpec{
			Type: "function",
			Function: functionSpec{
				Name:        name,
				Description: desc,
				Parameters:  json.RawMessage(params),
			},
		}
	}

	return []toolSpec{
		fn("list_tasks",
			"List the current user's tasks, pending before completed, high priority first. Optional case-insensitive filters by priority (LOW, MEDIUM, HIGH) and status (PENDING, COMPLETED).",
			`{"type":"object","properties":{"priority":{"type":"string"},"status":{"type":"string"}}}`),
		fn("find_tasks",
			"Find the current user's tasks whose title contains the given keyword, case-insensitive. Read only.",
			`{"type":"object","properties":{"query":{"type":"string"}},"required":["query"]}`),
		fn("get_task",
			"Fetch a single task by its integer id, including the description.",
			`{"type":"object","properties":{"task_id":{"type":"integer"}},"required":["task_id"]}`),
		fn("add_task",
			"Create a task with the given title. Optional description and priority (LOW, MEDIUM, HIGH; defaults to MEDIUM). New tasks start as PENDING.",
			`{"type":"object","properties":{"title":{"type":"string"},"description":{"type":"string"},"priority":{"type":"string"}},"required":["title"]}`),
		fn("mark_task_done",
			"Mark the task with the given id as COMPLETED.",
			`{"type":"object","properties":{"task_id":{"type":"integer"}},"required":["task_id"]}`),
		fn("delete_task",
			"Delete the task with the given id together with its notes.",
			`{"type":"object","properties":{"task_id":{"type":"integer"}},"required":["task_id"]}`),
		fn("list_notes",
			"List the notes attached to the task with the given id.",
			`{"type":"object","properties":{"task_id":{"type":"integer"}},"required":["task_id"]}`),
		fn("add_note",
			"Attach a note with the given content to the task with the given id.",
			`{"type":"object","properties":{"task_id":{"type":"integer"},"content":{"type":"string"}},"required":["task_id","content"]}`),
	}
}

type toolResult struct {
	OK      bool          `json:"ok"`
	Error   string        `json:"error,omitempty"`
	Tasks   []taskPayload `json:"tasks,omitempty"`
	Task    *taskPayload  `json:"task,omitempty"`
	Notes   []notePayload `json:"notes,omitempty"`
	Note    *notePayload  `json:"note,omitempty"`
	Message string        `json:"message,omitempty"`
}

func (r toolResult) encode() string {
	raw, err := json.Marshal(r)
	if err != nil {
		return `{"ok":false,"error":"result encoding failed"}`
	}
	return string(raw)
}

func toolError(err error) string {
	return toolResult{OK: false, Error: err.Error()}.encode()
}

type toolArgs struct {
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Query       string `json:"query"`
	TaskID      int64  `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

func (a *Agent) dispatchTool(ctx context.Context, call toolCall) string {
	var args toolArgs
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return toolResult{OK: false, Error: "malformed tool arguments: " + err.Error()}.encode()
		}
	}

	switch call.Function.Name {
	case "list_tasks":
		return a.toolListTasks(ctx, args)
	case "find_tasks":
		return a.toolFindTasks(ctx, args)
	case "get_task":
		return a.toolGetTask(ctx, args)
	case "add_task":
		return a.toolAddTask(ctx, args)
	case "mark_task_done":
		return a.toolMarkDone(ctx, args)
	case "delete_task":
		return a.toolDeleteTask(ctx, args)
	case "list_notes":
		return a.toolListNotes(ctx, args)
	case "add_note":
		return a.toolAddNote(ctx, args)
	default:
		return toolResult{OK: false, Error: "unknown tool: " + call.Function.Name}.encode()
	}
}

func (a *Agent) toolListTasks(ctx context.Context, args toolArgs) string {
	tasks, err := a.tasks.ListTasks(ctx)
	if err != nil {
		return toolError(err)
	}

	priority := strings.ToUpper(strings.TrimSpace(args.Priority))
	status := strings.ToUpper(strings.TrimSpace(args.Status))

	payloads := make([]taskPayload, 0, len(tasks))
	for _, t := range tasks {
		if priority != "" && string(t.Priority) != priority {
			continue
		}
		if status != "" && string(t.Status) != status {
			continue
		}
		payloads = append(payloads, taskToPayload(t))
	}
	sortTasks(payloads)

	return toolResult{OK: true, Tasks: payloads}.encode()
}

func (a *Agent) toolFindTasks(ctx context.Context, args toolArgs) string {
	query := strings.ToLower(strings.TrimSpace(args.Query))
	if query == "" {
		return toolResult{OK: false, Error: "empty query"}.encode()
	}

	tasks, err := a.tasks.ListTasks(ctx)
	if err != nil {
		return toolError(err)
	}

	matches := make([]taskPayload, 0)
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), query) {
			matches = append(matches, taskToPayload(t))
		}
	}
	sortTasks(matches)

	return toolResult{OK: true, Tasks: matches}.encode()
}

func (a *Agent) toolGetTask(ctx context.Context, args toolArgs) string {
	task, err := a.tasks.GetTask(ctx, args.TaskID)
	if err != nil {
		return toolError(err)
	}
	payload := taskToPayload(task)
	return toolResult{OK: true, Task: &payload}.encode()
}

func (a *Agent) toolAddTask(ctx context.Context, args toolArgs) string {
	input := service.TaskInput{
		Title:       args.Title,
		Description: args.Description,
		Priority:    models.ParsePriority(args.Priority),
	}
	task, err := a.tasks.CreateTask(ctx, input)
	if err != nil {
		return toolError(err)
	}
	payload := taskToPayload(task)
	return toolResult{OK: true, Task: &payload, Message: "task created"}.encode()
}

func (a *Agent) toolMarkDone(ctx context.Context, args toolArgs) string {
	task, err := a.tasks.MarkDone(ctx, args.TaskID)
	if err != nil {
		return toolError(err)
	}
	payload := taskToPayload(task)
	return toolResult{OK: true, Task: &payload, Message: "task completed"}.encode()
}

func (a *Agent) toolDeleteTask(ctx context.Context, args toolArgs) string {
	if err := a.tasks.DeleteTask(ctx, args.TaskID); err != nil {
		return toolError(err)
	}
	return toolResult{OK: true, Message: "task deleted"}.encode()
}

func (a *Agent) toolListNotes(ctx context.Context, args toolArgs) string {
	notes, err := a.notes.ListNotes(ctx, args.TaskID)
	if err != nil {
		return toolError(err)
	}
	payloads := make([]notePayload, 0, len(notes))
	for _, n := range notes {
		payloads = append(payloads, noteToPayload(n))
	}
	return toolResult{OK: true, Notes: payloads}.encode()
}

func (a *Agent) toolAddNote(ctx context.Context, args toolArgs) string {
	note, err := a.notes.AddNote(ctx, args.TaskID, args.Content)
	if err != nil {
		return toolError(err)
	}
	payload := noteToPayload(note)
	return toolResult{OK: true, Note: &payload, Message: "note added"}.encode()
}

// sortTasks orders pending before completed, then by priority, then by id.
func sortTasks(tasks []taskPayload) {
	rank := map[string]int{"HIGH": 0, "MEDIUM": 1, "LOW": 2}
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Status != b.Status {
			return a.Status == string(models.StatusPending)
		}
		if rank[a.Priority] != rank[b.Priority] {
			return rank[a.Priority] < rank[b.Priority]
		}
		return a.ID < b.ID
	})
}
