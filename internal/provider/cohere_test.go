package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskchat/agent/internal/config"
	"github.com/taskchat/agent/internal/domain"
)

func testConfig(mode, apiKey string) *config.Config {
	return &config.Config{
		ProviderMode:    mode,
		CohereBaseURL:   "https://api.cohere.ai",
		CohereAPIKey:    apiKey,
		CohereModel:     "command-r",
		Temperature:     0.7,
		ProviderTimeout: 5 * time.Second,
	}
}

func testMessages() []domain.Message {
	return []domain.Message{
		{Role: domain.RoleSystem, Content: "You are a task assistant."},
		{Role: domain.RoleUser, Content: "add milk"},
		{Role: domain.RoleAssistant, Content: "Done."},
		{Role: domain.RoleUser, Content: "show my tasks"},
	}
}

func TestCohereChatNormalizesToolCalls(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "",
			"finish_reason": "TOOL_CALLS",
			"tool_calls": [{"name": "list_tasks", "parameters": {"user_id": 7, "status": "pending"}}]
		}`))
	}))
	defer server.Close()

	p := NewCohereProvider(server.URL, "test-key", "command-r", 0.3, 5*time.Second)
	tools := []domain.ToolDefinition{{
		Name:        "list_tasks",
		Description: "List tasks",
		Parameters: map[string]domain.ParameterDefinition{
			"user_id": {Type: "int", Required: true},
			"status":  {Type: "str"},
		},
	}}

	result, err := p.Chat(context.Background(), testMessages(), tools)
	require.NoError(t, err)

	assert.Equal(t, domain.FinishReasonToolCalls, result.FinishReason)
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "list_tasks", result.ToolCalls[0].Name)
	assert.Equal(t, "pending", result.ToolCalls[0].Arguments["status"])
	assert.Equal(t, float64(7), result.ToolCalls[0].Arguments["user_id"])

	// The last message goes out as the current turn, the rest as history with
	// the Cohere role vocabulary.
	assert.Equal(t, "show my tasks", captured.Message)
	require.Len(t, captured.ChatHistory, 3)
	assert.Equal(t, "SYSTEM", captured.ChatHistory[0].Role)
	assert.Equal(t, "USER", captured.ChatHistory[1].Role)
	assert.Equal(t, "CHATBOT", captured.ChatHistory[2].Role)

	require.Len(t, captured.Tools, 1)
	assert.Equal(t, "list_tasks", captured.Tools[0].Name)
	assert.Equal(t, "int", captured.Tools[0].ParameterDefinitions["user_id"].Type)
	assert.True(t, captured.Tools[0].ParameterDefinitions["user_id"].Required)
}

func TestCohereChatPlainTextReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "You have 3 tasks."}`))
	}))
	defer server.Close()

	p := NewCohereProvider(server.URL, "test-key", "command-r", 0.3, 5*time.Second)
	result, err := p.Chat(context.Background(), testMessages(), nil)
	require.NoError(t, err)

	assert.Equal(t, "You have 3 tasks.", result.Text)
	assert.Equal(t, domain.FinishReasonComplete, result.FinishReason)
	assert.Empty(t, result.ToolCalls)
}

func TestCohereChatBackendErrorIsFolded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "model overloaded"}`))
	}))
	defer server.Close()

	p := NewCohereProvider(server.URL, "test-key", "command-r", 0.3, 5*time.Second)
	result, err := p.Chat(context.Background(), testMessages(), nil)
	require.NoError(t, err)

	assert.Equal(t, ErrorText, result.Text)
	assert.Equal(t, domain.FinishReasonError, result.FinishReason)
	assert.Empty(t, result.ToolCalls)
}

func TestCohereChatTransportFailureIsFolded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	p := NewCohereProvider(server.URL, "test-key", "command-r", 0.3, time.Second)
	result, err := p.Chat(context.Background(), testMessages(), nil)
	require.NoError(t, err)

	assert.Equal(t, ErrorText, result.Text)
	assert.Equal(t, domain.FinishReasonError, result.FinishReason)
}

func TestCohereChatMalformedBodyIsFolded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	p := NewCohereProvider(server.URL, "test-key", "command-r", 0.3, 5*time.Second)
	result, err := p.Chat(context.Background(), testMessages(), nil)
	require.NoError(t, err)

	assert.Equal(t, ErrorText, result.Text)
	assert.Equal(t, domain.FinishReasonError, result.FinishReason)
}

func TestNewCompletionProviderSelection(t *testing.T) {
	// Covered selections: explicit fallback mode, placeholder key, real key.
	fallbackByMode := NewCompletionProvider(testConfig("fallback", "real-key"))
	_, ok := fallbackByMode.(*FallbackProvider)
	assert.True(t, ok, "explicit fallback mode should select the fallback provider")

	fallbackByKey := NewCompletionProvider(testConfig("", PlaceholderAPIKey))
	_, ok = fallbackByKey.(*FallbackProvider)
	assert.True(t, ok, "placeholder key should select the fallback provider")

	live := NewCompletionProvider(testConfig("", "real-key"))
	_, ok = live.(*CohereProvider)
	assert.True(t, ok, "real key should select the live provider")
}
