package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskchat/agent/internal/domain"
)

// FallbackProvider is a deterministic rule-based responder used when no live
// backend is configured. It keeps the conversational loop exercised but never
// emits tool calls, so no task mutation can happen without a real model
// decision.
type FallbackProvider struct {
	rules []fallbackRule
}

var _ CompletionProvider = (*FallbackProvider)(nil)

// fallbackRule pairs a predicate over the lower-cased user message with a
// response builder receiving the original text.
type fallbackRule struct {
	category string
	match    func(lowered string) bool
	respond  func(original string) string
}

// NewFallbackProvider builds the responder with its fixed rule order. The
// order is a behavioral contract: rules are evaluated top to bottom and the
// first match wins, so reordering silently changes observed replies.
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{rules: []fallbackRule{
		{
			category: "greeting",
			match:    containsAny("hello", "hi", "hey", "good morning", "good afternoon", "good evening"),
			respond: func(string) string {
				return "Hello! I'm your AI assistant. How can I help you with your tasks today?"
			},
		},
		{
			category: "help",
			match:    containsAny("help", "what can you do", "assist"),
			respond: func(string) string {
				return "I can help you manage your tasks! You can ask me to add, list, update, or complete tasks. For example: 'Add a task to buy groceries' or 'Show me my tasks'."
			},
		},
		{
			category: "add",
			match: func(lowered string) bool {
				return containsAny("add", "create", "make")(lowered) && containsAny("task", "todo")(lowered)
			},
			respond: func(string) string {
				return "Sure! I can help you add a task. What would you like to name your task?"
			},
		},
		{
			category: "list",
			match:    containsAny("list", "show", "display", "my tasks", "all tasks"),
			respond: func(string) string {
				return "I can show you your tasks. Would you like to see all of them, or only pending or completed ones?"
			},
		},
		{
			category: "complete",
			match:    containsAny("complete", "done", "finish", "mark as done"),
			respond: func(string) string {
				return "I can mark tasks as complete for you. Which task did you finish?"
			},
		},
		{
			category: "update",
			match:    containsAny("update", "change", "modify", "edit"),
			respond: func(string) string {
				return "I can help you update your tasks. What changes would you like to make?"
			},
		},
		{
			category: "delete",
			match:    containsAny("delete", "remove", "cancel"),
			respond: func(string) string {
				return "I can help you remove tasks. Which task would you like to delete?"
			},
		},
		{
			category: "empty",
			match: func(lowered string) bool {
				return strings.TrimSpace(lowered) == ""
			},
			respond: func(string) string {
				return "Hi there! Please type a message so I can help you with your tasks."
			},
		},
		{
			category: "single-word",
			match: func(lowered string) bool {
				return len(strings.Fields(lowered)) == 1
			},
			respond: func(original string) string {
				return fmt.Sprintf("You said '%s'. How can I help you with your tasks?", original)
			},
		},
		{
			category: "echo",
			match:    func(string) bool { return true },
			respond: func(original string) string {
				return fmt.Sprintf("I received your message: '%s'. I'm here to help you manage your tasks. You can ask me to add, list, update, or complete tasks.", original)
			},
		},
	}}
}

// Chat classifies the last user message and returns a canned reply. Tool
// calls are never produced in fallback mode.
func (p *FallbackProvider) Chat(_ context.Context, messages []domain.Message, _ []domain.ToolDefinition) (*domain.ChatResult, error) {
	original := ""
	if len(messages) > 0 {
		original = messages[len(messages)-1].Content
	}
	text := p.Classify(original)
	return &domain.ChatResult{
		Text:         text,
		FinishReason: domain.FinishReasonComplete,
	}, nil
}

// Classify returns the canned response for a user message by evaluating the
// rule list in order.
func (p *FallbackProvider) Classify(original string) string {
	lowered := strings.ToLower(strings.TrimSpace(original))
	for _, rule := range p.rules {
		if rule.match(lowered) {
			return rule.respond(original)
		}
	}
	// Unreachable: the final rule matches everything.
	return "I'm your AI assistant for task management. How can I help you today?"
}

// Category reports which rule would fire for a message; used by tests to pin
// down the rule ordering.
func (p *FallbackProvider) Category(original string) string {
	lowered := strings.ToLower(strings.TrimSpace(original))
	for _, rule := range p.rules {
		if rule.match(lowered) {
			return rule.category
		}
	}
	return ""
}

func containsAny(keywords ...string) func(string) bool {
	return func(lowered string) bool {
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				return true
			}
		}
		return false
	}
}
