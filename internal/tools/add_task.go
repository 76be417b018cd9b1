package tools

import (
	"context"
	"fmt"

	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/repository"
)

// AddTaskTool creates a new task on the user's list.
type AddTaskTool struct{}

func (AddTaskTool) Name() string { return "add_task" }

func (AddTaskTool) Description() string {
	return "Add a new task to the user's task list"
}

func (AddTaskTool) Parameters() map[string]ParamSpec {
	return map[string]ParamSpec{
		"user_id":     {Type: domain.ParamTypeInteger, Required: true, Description: "ID of the user who owns the task"},
		"title":       {Type: domain.ParamTypeString, Required: true, Description: "Title of the task"},
		"description": {Type: domain.ParamTypeString, Description: "Optional longer description of the task"},
		"priority":    {Type: domain.ParamTypeString, Description: "Priority of the task: low, medium or high"},
		"due_date":    {Type: domain.ParamTypeString, Description: "Optional due date in ISO format (YYYY-MM-DD)"},
	}
}

func (t AddTaskTool) Execute(ctx context.Context, args map[string]any, store repository.Store) (domain.ToolResult, error) {
	if err := validateArgs(args, t.Parameters()); err != nil {
		return invalidArgs(err), nil
	}
	userID, _ := intArg(args, "user_id")
	title, _ := stringArg(args, "title")

	task := &domain.Task{
		UserID:   userID,
		Title:    title,
		Priority: domain.PriorityMedium,
	}
	if desc, ok := stringArg(args, "description"); ok {
		task.Description = desc
	}
	if prio, ok := stringArg(args, "priority"); ok {
		switch prio {
		case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
			task.Priority = prio
		default:
			return invalidArgs(fmt.Errorf("invalid priority %q: expected low, medium or high", prio)), nil
		}
	}
	if raw, ok := stringArg(args, "due_date"); ok && raw != "" {
		due, err := parseDueDate(raw)
		if err != nil {
			return invalidArgs(err), nil
		}
		task.DueDate = &due
	}

	if err := store.CreateTask(ctx, task); err != nil {
		return domain.ToolResult{}, fmt.Errorf("failed to create task: %w", err)
	}

	return domain.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Task '%s' has been added successfully", task.Title),
		Data: map[string]any{
			"task_id":  task.ID,
			"title":    task.Title,
			"priority": task.Priority,
		},
	}, nil
}
