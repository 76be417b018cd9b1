package tools

import (
	"context"
	"fmt"

	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/repository"
)

// CompleteTaskTool marks a task as completed or pending.
type CompleteTaskTool struct{}

func (CompleteTaskTool) Name() string { return "complete_task" }

func (CompleteTaskTool) Description() string {
	return "Mark a task as completed or pending"
}

func (CompleteTaskTool) Parameters() map[string]ParamSpec {
	return map[string]ParamSpec{
		"user_id":   {Type: domain.ParamTypeInteger, Required: true, Description: "ID of the user who owns the task"},
		"task_id":   {Type: domain.ParamTypeInteger, Required: true, Description: "ID of the task to complete/incomplete"},
		"completed": {Type: domain.ParamTypeBoolean, Description: "Whether to mark the task completed (true) or pending (false); defaults to true"},
	}
}

func (t CompleteTaskTool) Execute(ctx context.Context, args map[string]any, store repository.Store) (domain.ToolResult, error) {
	if err := validateArgs(args, t.Parameters()); err != nil {
		return invalidArgs(err), nil
	}
	userID, _ := intArg(args, "user_id")
	taskID, _ := intArg(args, "task_id")
	completed := true
	if v, ok := boolArg(args, "completed"); ok {
		completed = v
	}

	task, err := store.SetTaskCompleted(ctx, userID, taskID, completed)
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("failed to update task completion: %w", err)
	}
	if task == nil {
		return notFound(taskID, "modify"), nil
	}

	statusText := "completed"
	if !completed {
		statusText = "pending"
	}
	return domain.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Task '%s' has been marked as %s", task.Title, statusText),
		Data: map[string]any{
			"task_id":   task.ID,
			"title":     task.Title,
			"completed": task.Completed,
		},
	}, nil
}
