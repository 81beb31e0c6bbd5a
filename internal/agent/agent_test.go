package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/abdelwahed/go-task-keeper/internal/config"
	"github.com/abdelwahed/go-task-keeper/models"
)

// fakeModel scripts the chat endpoint: each Ask round pops the next
// response. Received requests are recorded for assertions.
type fakeModel struct {
	t         *testing.T
	responses []chatResponse
	requests  []chatRequest
}

func (f *fakeModel) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.t.Helper()

		require.Equal(f.t, "/chat/completions", r.URL.Path)
		require.Equal(f.t, "Bearer gsk_test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		f.requests = append(f.requests, req)

		require.NotEmpty(f.t, f.responses, "model called more times than scripted")
		resp := f.responses[0]
		f.responses = f.responses[1:]

		w.Header().Set("Content-Type", "application/json")
		require.NoError(f.t, json.NewEncoder(w).Encode(resp))
	}
}

func contentResponse(content string) chatResponse {
	return chatResponse{Choices: []chatChoice{{
		Message:      chatMessage{Role: "assistant", Content: content},
		FinishReason: "stop",
	}}}
}

func toolCallResponse(id, name, arguments string) chatResponse {
	return chatResponse{Choices: []chatChoice{{
		Message: chatMessage{
			Role: "assistant",
			ToolCalls: []toolCall{{
				ID:       id,
				Type:     "function",
				Function: functionCall{Name: name, Arguments: arguments},
			}},
		},
		FinishReason: "tool_calls",
	}}}
}

func newTestAgent(t *testing.T, model *fakeModel, tasks *MockTaskService, notes *MockNoteService) *Agent {
	t.Helper()

	srv := httptest.NewServer(model.handler())
	t.Cleanup(srv.Close)

	a, err := New(config.Agent{
		APIURL: srv.URL,
		APIKey: "gsk_test",
		Model:  "llama-3.3-70b-versatile",
	}, tasks, notes)
	require.NoError(t, err)
	return a
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(config.Agent{APIURL: "https://example.invalid"}, nil, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAgent_Ask_DirectAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	model := &fakeModel{t: t, responses: []chatResponse{contentResponse("Hello!")}}
	agent := newTestAgent(t, model, NewMockTaskService(ctrl), NewMockNoteService(ctrl))

	answer, err := agent.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", answer)

	require.Len(t, model.requests, 1)
	req := model.requests[0]
	assert.Equal(t, "llama-3.3-70b-versatile", req.Model)
	require.GreaterOrEqual(t, len(req.Messages), 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[len(req.Messages)-1].Role)
	assert.NotEmpty(t, req.Tools, "tool specs must accompany every request")
}

func TestAgent_Ask_ToolRound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := NewMockTaskService(ctrl)
	tasks.EXPECT().ListTasks(gomock.Any()).Return([]models.TaskView{
		{TaskID: 1, Title: "Buy milk", Status: models.StatusPending, Priority: models.PriorityHigh},
		{TaskID: 2, Title: "Call dentist", Status: models.StatusCompleted, Priority: models.PriorityLow},
	}, nil)

	model := &fakeModel{t: t, responses: []chatResponse{
		toolCallResponse("call_1", "list_tasks", `{}`),
		contentResponse("You have one pending task: Buy milk."),
	}}
	agent := newTestAgent(t, model, tasks, NewMockNoteService(ctrl))

	answer, err := agent.Ask(context.Background(), "what's on my list?")
	require.NoError(t, err)
	assert.Equal(t, "You have one pending task: Buy milk.", answer)

	// The second request must carry the tool result back to the model.
	require.Len(t, model.requests, 2)
	second := model.requests[1]
	last := second.Messages[len(second.Messages)-1]
	assert.Equal(t, "tool", last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)

	var result toolResult
	require.NoError(t, json.Unmarshal([]byte(last.Content), &result))
	assert.True(t, result.OK)
	require.Len(t, result.Tasks, 2)
	assert.Equal(t, "Buy milk", result.Tasks[0].Title, "pending tasks sort first")
}

func TestAgent_Ask_ToolErrorReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := NewMockTaskService(ctrl)
	tasks.EXPECT().GetTask(gomock.Any(), int64(404)).Return(models.TaskView{}, errors.New("task not found"))

	model := &fakeModel{t: t, responses: []chatResponse{
		toolCallResponse("call_1", "get_task", `{"task_id":404}`),
		contentResponse("That task does not exist."),
	}}
	agent := newTestAgent(t, model, tasks, NewMockNoteService(ctrl))

	_, err := agent.Ask(context.Background(), "show task 404")
	require.NoError(t, err)

	var result toolResult
	second := model.requests[1]
	last := second.Messages[len(second.Messages)-1]
	require.NoError(t, json.Unmarshal([]byte(last.Content), &result))
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "task not found")
}

func TestAgent_Ask_ToolLoopBounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := NewMockTaskService(ctrl)
	tasks.EXPECT().ListTasks(gomock.Any()).Return(nil, nil).Times(maxToolRounds)

	responses := make([]chatResponse, 0, maxToolRounds)
	for i := 0; i < maxToolRounds; i++ {
		responses = append(responses, toolCallResponse("call_n", "list_tasks", `{}`))
	}
	model := &fakeModel{t: t, responses: responses}
	agent := newTestAgent(t, model, tasks, NewMockNoteService(ctrl))

	_, err := agent.Ask(context.Background(), "loop forever")
	assert.ErrorIs(t, err, ErrToolLoop)
}

func TestAgent_Ask_UnknownTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	model := &fakeModel{t: t, responses: []chatResponse{
		toolCallResponse("call_1", "drop_database", `{}`),
		contentResponse("I can't do that."),
	}}
	agent := newTestAgent(t, model, NewMockTaskService(ctrl), NewMockNoteService(ctrl))

	_, err := agent.Ask(context.Background(), "try something undefined")
	require.NoError(t, err)

	var result toolResult
	second := model.requests[1]
	last := second.Messages[len(second.Messages)-1]
	require.NoError(t, json.Unmarshal([]byte(last.Content), &result))
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "unknown tool")
}

func TestAgent_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	model := &fakeModel{t: t, responses: []chatResponse{contentResponse("first")}}
	agent := newTestAgent(t, model, NewMockTaskService(ctrl), NewMockNoteService(ctrl))

	_, err := agent.Ask(context.Background(), "hello")
	require.NoError(t, err)

	before := agent.ConversationID()
	agent.Reset()
	assert.NotEqual(t, before, agent.ConversationID())
}
