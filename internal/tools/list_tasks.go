package tools

import (
	"context"
	"fmt"

	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/repository"
)

// ListTasksTool lists tasks from the user's list with optional status filtering.
type ListTasksTool struct{}

func (ListTasksTool) Name() string { return "list_tasks" }

func (ListTasksTool) Description() string {
	return "List tasks from the user's task list with optional filtering"
}

func (ListTasksTool) Parameters() map[string]ParamSpec {
	return map[string]ParamSpec{
		"user_id": {Type: domain.ParamTypeInteger, Required: true, Description: "ID of the user whose tasks to list"},
		"status":  {Type: domain.ParamTypeString, Description: "Status filter: 'all', 'pending', or 'completed'"},
	}
}

func (t ListTasksTool) Execute(ctx context.Context, args map[string]any, store repository.Store) (domain.ToolResult, error) {
	if err := validateArgs(args, t.Parameters()); err != nil {
		return invalidArgs(err), nil
	}
	userID, _ := intArg(args, "user_id")

	status := domain.StatusAll
	if raw, ok := stringArg(args, "status"); ok {
		switch raw {
		case domain.StatusAll, domain.StatusPending, domain.StatusCompleted:
			status = raw
		}
		// Anything else silently falls back to "all".
	}

	tasks, err := store.ListTasks(ctx, userID, status)
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	taskList := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		entry := map[string]any{
			"id":        task.ID,
			"title":     task.Title,
			"completed": task.Completed,
			"priority":  task.Priority,
		}
		if task.Description != "" {
			entry["description"] = task.Description
		}
		if task.DueDate != nil {
			entry["due_date"] = task.DueDate.Format("2006-01-02")
		}
		taskList = append(taskList, entry)
	}

	return domain.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Found %d %s tasks", len(taskList), status),
		Data: map[string]any{
			"task_count":    len(taskList),
			"status_filter": status,
			"tasks":         taskList,
		},
	}, nil
}
