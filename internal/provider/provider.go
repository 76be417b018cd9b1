// Package provider abstracts the language-model backend behind a single chat
// contract and normalizes its replies.
package provider

import (
	"context"

	"github.com/taskchat/agent/internal/domain"
)

// CompletionProvider is the contract for one completion cycle. The last
// message in messages is the current turn; everything before it is history.
//
// Implementations are the single point where backend and transport failures
// are caught: they fold failures into a ChatResult with FinishReason ERROR
// rather than returning an error. A non-nil error therefore signals a broken
// implementation, which the orchestrator treats as an unexpected failure.
type CompletionProvider interface {
	Chat(ctx context.Context, messages []domain.Message, tools []domain.ToolDefinition) (*domain.ChatResult, error)
}

// ErrorText is the safe default reply used when the backend call fails.
const ErrorText = "Sorry, I encountered an error processing your request. Please try again."
