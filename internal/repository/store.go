// Package repository defines the storage interface and implementations.
package repository

import (
	"context"

	"github.com/taskchat/agent/internal/domain"
)

// Store defines the interface for data persistence. Every task operation is
// scoped by the owning user; a task belonging to another user is
// indistinguishable from a missing one.
type Store interface {
	// Task operations
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error)
	ListTasks(ctx context.Context, userID int64, status string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) (bool, error)
	SetTaskCompleted(ctx context.Context, userID, taskID int64, completed bool) (*domain.Task, error)

	// Conversation operations
	CreateConversation(ctx context.Context, conversation *domain.Conversation) error
	GetConversation(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetLatestMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
