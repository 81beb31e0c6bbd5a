// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/abdelwahed/go-task-keeper/internal/config"
)

// Wire types for the OpenAI-compatible chat completions endpoint.
// Groq serves the same shape, so one client covers both.

type chatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

type toolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function functionCall `json:"function"`
}

type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolSpec struct {
	Type     string       `json:"type"`
	Function functionSpec `json:"function"`
}

type functionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Tools    []toolSpec    `json:"tools,omitempty"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type apiError struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error"`
}

type chatClient struct {
	client *resty.Client
	model  string
}

func newChatClient(cfg config.Agent) (*chatClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey)

	return &chatClient{client: cli, model: cfg.Model}, nil
}

func (c *chatClient) Complete(ctx context.Context, messages []chatMessage, tools []toolSpec) (chatMessage, error) {
	body := chatRequest{Model: c.model, Messages: messages, Tools: tools}

	var out chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return chatMessage{}, fmt.Errorf("chat completion request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return chatMessage{}, fmt.Errorf("chat completion: %s (status %d)", out.Error.Message, resp.StatusCode())
		}
		return chatMessage{}, fmt.Errorf("chat completion: unexpected status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return chatMessage{}, ErrNoCompletion
	}

	return out.Choices[0].Message, nil
}
