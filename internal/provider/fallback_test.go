package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskchat/agent/internal/domain"
)

func TestFallbackCategories(t *testing.T) {
	p := NewFallbackProvider()

	tests := []struct {
		message  string
		category string
	}{
		{"hello there", "greeting"},
		{"good morning", "greeting"},
		{"what can you do", "help"},
		{"add a new todo", "add"},
		{"create a task for tomorrow", "add"},
		{"show my tasks", "list"},
		{"mark it done", "complete"},
		{"edit the title", "update"},
		{"remove the last one", "delete"},
		{"", "empty"},
		{"   ", "empty"},
		{"banana", "single-word"},
		{"walk the dog tonight", "echo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.category, p.Category(tt.message), "message: %q", tt.message)
	}
}

func TestFallbackRuleOrdering(t *testing.T) {
	p := NewFallbackProvider()

	// Greeting wins over help even when both keywords are present.
	assert.Equal(t, "greeting", p.Category("hi, can you help me"))
	// Add wins over list when both keywords are present.
	assert.Equal(t, "add", p.Category("add a task to my list"))
	// "add" without a task/todo word is not an add intent.
	assert.Equal(t, "echo", p.Category("add more butter please"))
}

func TestFallbackChatNeverEmitsToolCalls(t *testing.T) {
	p := NewFallbackProvider()

	tools := []domain.ToolDefinition{{Name: "add_task"}}
	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: "system prompt"},
		{Role: domain.RoleUser, Content: "add a task to buy groceries"},
	}

	result, err := p.Chat(context.Background(), messages, tools)
	require.NoError(t, err)
	assert.Empty(t, result.ToolCalls)
	assert.Equal(t, domain.FinishReasonComplete, result.FinishReason)
	assert.NotEmpty(t, result.Text)
}

func TestFallbackEchoQuotesOriginalCasing(t *testing.T) {
	p := NewFallbackProvider()

	reply := p.Classify("Walk The Dog Tonight")
	assert.Contains(t, reply, "'Walk The Dog Tonight'")
}
