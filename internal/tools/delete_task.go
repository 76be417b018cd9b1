package tools

import (
	"context"
	"fmt"

	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/repository"
)

// DeleteTaskTool removes a task from the user's list.
type DeleteTaskTool struct{}

func (DeleteTaskTool) Name() string { return "delete_task" }

func (DeleteTaskTool) Description() string {
	return "Delete a task from the user's task list"
}

func (DeleteTaskTool) Parameters() map[string]ParamSpec {
	return map[string]ParamSpec{
		"user_id": {Type: domain.ParamTypeInteger, Required: true, Description: "ID of the user who owns the task"},
		"task_id": {Type: domain.ParamTypeInteger, Required: true, Description: "ID of the task to delete"},
	}
}

func (t DeleteTaskTool) Execute(ctx context.Context, args map[string]any, store repository.Store) (domain.ToolResult, error) {
	if err := validateArgs(args, t.Parameters()); err != nil {
		return invalidArgs(err), nil
	}
	userID, _ := intArg(args, "user_id")
	taskID, _ := intArg(args, "task_id")

	deleted, err := store.DeleteTask(ctx, userID, taskID)
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return notFound(taskID, "delete"), nil
	}

	return domain.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Task with ID %d has been deleted successfully", taskID),
		Data: map[string]any{
			"task_id": taskID,
		},
	}, nil
}
