// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdelwahed/go-task-keeper/internal/service"
	"github.com/abdelwahed/go-task-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tasksLoadedMsg struct {
	tasks []models.TaskView
	err   error
}

type notesLoadedMsg struct {
	notes []models.TaskNoteView
	err   error
}

type taskMutatedMsg struct {
	status string
	err    error
}

type noteSavedMsg struct {
	err error
}

// mainLoopModel is the authenticated screen: a task list with a detail
// overlay (task fields plus notes), an inline add-task form, and an inline
// add-note prompt. All service calls run as async commands so the UI never
// blocks on SQLite or crypto.
type mainLoopModel struct {
	ctx      context.Context
	services *service.Services

	tasks   []models.TaskView
	idx     int
	loading bool
	status  string
	errMsg  string

	detail bool
	notes  []models.TaskNoteView

	adding    bool
	addInputs []textinput.Model
	addFocus  int
	addSaving bool

	noting     bool
	noteInput  textinput.Model
	noteSaving bool

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.Services) mainLoopModel {
	return mainLoopModel{
		ctx:      ctx,
		services: services,
		loading:  true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadTasks()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.tasks = msg.tasks
		if m.idx >= len(m.tasks) {
			m.idx = len(m.tasks) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case notesLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.notes = msg.notes
		return m, nil
	case taskMutatedMsg:
		m.addSaving = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.adding = false
		m.status = msg.status
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadTasks()
	case noteSavedMsg:
		m.noteSaving = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.noting = false
		m.status = "Note added"
		m.errMsg = ""
		if task, ok := m.current(); ok {
			return m, m.cmdLoadNotes(task.TaskID)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.adding {
			return m.updateAddForm(msg)
		}
		if m.noting {
			return m.updateNotePrompt(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.adding {
		return m.updateAddForm(msg)
	}
	if m.noting {
		return m.updateNotePrompt(msg)
	}
	if m.detail {
		return m.updateDetail(keyMsg)
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.tasks)-1 {
			m.idx++
		}
	case "a":
		m.startAddForm()
		return m, textinput.Blink
	case "enter":
		task, ok := m.current()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		m.detail = true
		m.notes = nil
		return m, m.cmdLoadNotes(task.TaskID)
	case "d":
		task, ok := m.current()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		return m, m.cmdMarkDone(task.TaskID)
	case "ctrl+d":
		task, ok := m.current()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		return m, m.cmdDelete(task.TaskID)
	case "r":
		m.loading = true
		m.status = ""
		return m, m.cmdLoadTasks()
	case "l":
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		m.detail = false
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		m.detail = false
		m.notes = nil
	case "n":
		m.startNotePrompt()
		return m, textinput.Blink
	case "c":
		if err := clipboard.WriteAll(task.Title); err != nil {
			m.errMsg = fmt.Sprintf("clipboard: %v", err)
			return m, nil
		}
		m.status = "Title copied"
	case "d":
		m.detail = false
		m.notes = nil
		return m, m.cmdMarkDone(task.TaskID)
	case "ctrl+d":
		m.detail = false
		m.notes = nil
		return m, m.cmdDelete(task.TaskID)
	}
	return m, nil
}

// Add-task form: title, description, due date, category, priority.

func (m *mainLoopModel) startAddForm() {
	labels := []string{"title", "description", "due date (YYYY-MM-DD)", "category", "priority (LOW/MEDIUM/HIGH)"}
	m.addInputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 256
		in.Width = 40
		m.addInputs[i] = in
	}
	m.addInputs[0].Focus()
	m.addFocus = 0
	m.adding = true
	m.status = ""
	m.errMsg = ""
}

func (m mainLoopModel) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.adding = false
			m.errMsg = ""
			return m, nil
		case "tab", "down":
			m.addInputs[m.addFocus].Blur()
			m.addFocus = (m.addFocus + 1) % len(m.addInputs)
			m.addInputs[m.addFocus].Focus()
			return m, nil
		case "shift+tab", "up":
			m.addInputs[m.addFocus].Blur()
			m.addFocus = (m.addFocus - 1 + len(m.addInputs)) % len(m.addInputs)
			m.addInputs[m.addFocus].Focus()
			return m, nil
		case "enter":
			if m.addSaving {
				return m, nil
			}
			title := strings.TrimSpace(m.addInputs[0].Value())
			if title == "" {
				m.errMsg = "title is required"
				return m, nil
			}
			m.errMsg = ""
			m.addSaving = true
			input := service.TaskInput{
				Title:       title,
				Description: strings.TrimSpace(m.addInputs[1].Value()),
				DueDate:     strings.TrimSpace(m.addInputs[2].Value()),
				Category:    strings.TrimSpace(m.addInputs[3].Value()),
				Priority:    models.ParsePriority(strings.TrimSpace(m.addInputs[4].Value())),
			}
			return m, m.cmdCreate(input)
		}
	}

	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	return m, cmd
}

// Add-note prompt: a single input attached to the task open in detail.

func (m *mainLoopModel) startNotePrompt() {
	in := textinput.New()
	in.Placeholder = "note"
	in.CharLimit = 1024
	in.Width = 48
	in.Focus()
	m.noteInput = in
	m.noting = true
	m.status = ""
	m.errMsg = ""
}

func (m mainLoopModel) updateNotePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.noting = false
			m.errMsg = ""
			return m, nil
		case "enter":
			if m.noteSaving {
				return m, nil
			}
			content := strings.TrimSpace(m.noteInput.Value())
			if content == "" {
				m.errMsg = "note content is required"
				return m, nil
			}
			task, ok := m.current()
			if !ok {
				m.noting = false
				return m, nil
			}
			m.errMsg = ""
			m.noteSaving = true
			return m, m.cmdAddNote(task.TaskID, content)
		}
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m mainLoopModel) View() string {
	if m.adding {
		return m.viewAddForm()
	}
	if m.noting {
		return m.viewNotePrompt()
	}
	if m.detail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.status != "" {
		b.WriteString(statusStyle.Render("OK: " + m.status))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString("loading...")
	} else if len(m.tasks) == 0 {
		b.WriteString("No tasks yet. Press 'a' to add one.")
	} else {
		titleColWidth := lipgloss.Width("Title")
		for _, t := range m.tasks {
			if w := lipgloss.Width(fitText(t.Title, 32)); w > titleColWidth {
				titleColWidth = w
			}
		}

		b.WriteString(fmt.Sprintf("  %-5s │ %-*s │ %-9s │ %-8s │ %s\n", "ID", titleColWidth, "Title", "Status", "Priority", "Due"))
		b.WriteString("  ")
		b.WriteString(strings.Repeat("─", 50))
		b.WriteString("\n")

		for i, t := range m.tasks {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			line := fmt.Sprintf("%s %-5d │ %-*s │ %-9s │ %-8s │ %s",
				cursor, t.TaskID, titleColWidth, fitText(t.Title, 32), t.Status, t.Priority, valueOrDash(t.DueDate))
			switch {
			case i == m.idx:
				line = selectedStyle.Render(line)
			case t.Status == models.StatusCompleted:
				line = doneStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(errorLine(m.errMsg))

	return renderPage("Tasks", b.String(),
		"↑/↓: move  enter: open  a: add  d: done  ctrl+d: delete  r: reload  l: logout  q: quit")
}

func (m mainLoopModel) viewDetail() string {
	task, ok := m.current()
	if !ok {
		return m.viewList()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("ID          │ %d\n", task.TaskID))
	b.WriteString(fmt.Sprintf("Title       │ %s\n", task.Title))
	b.WriteString(fmt.Sprintf("Description │ %s\n", valueOrDash(task.Description)))
	b.WriteString(fmt.Sprintf("Status      │ %s\n", task.Status))
	b.WriteString(fmt.Sprintf("Priority    │ %s\n", task.Priority))
	b.WriteString(fmt.Sprintf("Due date    │ %s\n", valueOrDash(task.DueDate)))
	b.WriteString(fmt.Sprintf("Category    │ %s\n", valueOrDash(task.Category)))
	b.WriteString(fmt.Sprintf("Created     │ %s\n", task.CreatedAt.Format("2006-01-02 15:04")))

	b.WriteString("\nNotes:\n")
	if len(m.notes) == 0 {
		b.WriteString("  -\n")
	}
	for _, note := range m.notes {
		b.WriteString(fmt.Sprintf("  [%d] %s\n", note.NoteID, note.Content))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("OK: " + m.status))
	}
	b.WriteString(errorLine(m.errMsg))

	return renderPage("Task", b.String(), "n: add note  c: copy title  d: done  ctrl+d: delete  esc: back")
}

func (m mainLoopModel) viewAddForm() string {
	labels := []string{"Title", "Description", "Due date", "Category", "Priority"}

	var b strings.Builder
	b.WriteString("Field       │ Value\n")
	b.WriteString("────────────┼────────────────────────────────────────\n")
	for i, label := range labels {
		b.WriteString(fmt.Sprintf("%-11s │ [", label))
		b.WriteString(m.addInputs[i].View())
		b.WriteString("]\n")
	}

	if m.addSaving {
		b.WriteString("\nsaving...")
	}
	b.WriteString(errorLine(m.errMsg))

	return renderPage("New task", b.String(), "tab: next field  enter: save  esc: cancel")
}

func (m mainLoopModel) viewNotePrompt() string {
	var b strings.Builder
	b.WriteString("Note │ [")
	b.WriteString(m.noteInput.View())
	b.WriteString("]\n")

	if m.noteSaving {
		b.WriteString("\nsaving...")
	}
	b.WriteString(errorLine(m.errMsg))

	return renderPage("New note", b.String(), "enter: save  esc: cancel")
}

func (m mainLoopModel) current() (models.TaskView, bool) {
	if len(m.tasks) == 0 || m.idx < 0 || m.idx >= len(m.tasks) {
		return models.TaskView{}, false
	}
	return m.tasks[m.idx], true
}

func (m mainLoopModel) cmdLoadTasks() tea.Cmd {
	ctx, tasks := m.ctx, m.services.Tasks
	return func() tea.Msg {
		views, err := tasks.ListTasks(ctx)
		return tasksLoadedMsg{tasks: views, err: err}
	}
}

func (m mainLoopModel) cmdLoadNotes(taskID int64) tea.Cmd {
	ctx, notes := m.ctx, m.services.Notes
	return func() tea.Msg {
		views, err := notes.ListNotes(ctx, taskID)
		return notesLoadedMsg{notes: views, err: err}
	}
}

func (m mainLoopModel) cmdCreate(input service.TaskInput) tea.Cmd {
	ctx, tasks := m.ctx, m.services.Tasks
	return func() tea.Msg {
		_, err := tasks.CreateTask(ctx, input)
		return taskMutatedMsg{status: "Task added", err: err}
	}
}

func (m mainLoopModel) cmdMarkDone(taskID int64) tea.Cmd {
	ctx, tasks := m.ctx, m.services.Tasks
	return func() tea.Msg {
		_, err := tasks.MarkDone(ctx, taskID)
		return taskMutatedMsg{status: "Task completed", err: err}
	}
}

func (m mainLoopModel) cmdDelete(taskID int64) tea.Cmd {
	ctx, tasks := m.ctx, m.services.Tasks
	return func() tea.Msg {
		err := tasks.DeleteTask(ctx, taskID)
		return taskMutatedMsg{status: "Task deleted", err: err}
	}
}

func (m mainLoopModel) cmdAddNote(taskID int64, content string) tea.Cmd {
	ctx, notes := m.ctx, m.services.Notes
	return func() tea.Msg {
		_, err := notes.AddNote(ctx, taskID, content)
		return noteSavedMsg{err: err}
	}
}
