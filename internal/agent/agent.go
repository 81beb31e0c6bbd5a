// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

// Package agent drives the natural-language mode: it forwards the user's
// request to an OpenAI-compatible chat model and lets the model operate on
// tasks and notes through a fixed tool set. All data access goes through the
// regular services, so the model only ever sees decrypted views the unlocked
// session is entitled to.
package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abdelwahed/go-task-keeper/internal/config"
	"github.com/abdelwahed/go-task-keeper/internal/logger"
	"github.com/abdelwahed/go-task-keeper/internal/service"
)

const systemPrompt = `You are the assistant of a personal CLI task keeper.

Rules:
- Use tools for every read or write. Never invent tasks, notes or ids.
- When the user asks to list or show tasks, call list_tasks immediately.
- When the user names a task by title or keyword, call find_tasks first and
  use the returned id.
- When a tool returns ok=false, report the error and stop.
- Keep answers short and plain. No tutorials, no code, no raw JSON.`

// maxToolRounds bounds one Ask exchange. The model gets this many chances to
// call tools before the conversation is cut off.
const maxToolRounds = 6

type Agent struct {
	client *chatClient
	tasks  service.TaskService
	notes  service.NoteService

	conversationID string
	history        []chatMessage
}

func New(cfg config.Agent, tasks service.TaskService, notes service.NoteService) (*Agent, error) {
	client, err := newChatClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Agent{
		client:         client,
		tasks:          tasks,
		notes:          notes,
		conversationID: uuid.NewString(),
		history:        []chatMessage{{Role: "system", Content: systemPrompt}},
	}, nil
}

// ConversationID identifies this chat for log correlation.
func (a *Agent) ConversationID() string {
	return a.conversationID
}

// Reset drops the accumulated history and starts a fresh conversation.
func (a *Agent) Reset() {
	a.conversationID = uuid.NewString()
	a.history = []chatMessage{{Role: "system", Content: systemPrompt}}
}

// Ask sends one user utterance through the tool loop and returns the model's
// final reply. History is kept across calls so follow-ups can reference
// earlier turns.
func (a *Agent) Ask(ctx context.Context, line string) (string, error) {
	log := logger.FromContext(ctx)
	a.history = append(a.history, chatMessage{Role: "user", Content: line})

	tools := toolSpecs()
	for round := 0; round < maxToolRounds; round++ {
		reply, err := a.client.Complete(ctx, a.history, tools)
		if err != nil {
			return "", fmt.Errorf("agent turn: %w", err)
		}
		a.history = append(a.history, reply)

		if len(reply.ToolCalls) == 0 {
			return reply.Content, nil
		}

		for _, call := range reply.ToolCalls {
			log.Debug().
				Str("func", "Agent.Ask").
				Str("conversation_id", a.conversationID).
				Str("tool", call.Function.Name).
				Msg("executing tool call")

			a.history = append(a.history, chatMessage{
				Role:       "tool",
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    a.dispatchTool(ctx, call),
			})
		}
	}

	log.Warn().
		Str("func", "Agent.Ask").
		Str("conversation_id", a.conversationID).
		Msg("tool call limit exceeded")

	return "", ErrToolLoop
}
