package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/repository"
)

// UpdateTaskTool changes properties of an existing task.
type UpdateTaskTool struct{}

func (UpdateTaskTool) Name() string { return "update_task" }

func (UpdateTaskTool) Description() string {
	return "Update properties of an existing task"
}

func (UpdateTaskTool) Parameters() map[string]ParamSpec {
	return map[string]ParamSpec{
		"user_id":     {Type: domain.ParamTypeInteger, Required: true, Description: "ID of the user who owns the task"},
		"task_id":     {Type: domain.ParamTypeInteger, Required: true, Description: "ID of the task to update"},
		"title":       {Type: domain.ParamTypeString, Description: "New title for the task"},
		"description": {Type: domain.ParamTypeString, Description: "New description for the task"},
		"priority":    {Type: domain.ParamTypeString, Description: "New priority for the task (low, medium, high)"},
		"due_date":    {Type: domain.ParamTypeString, Description: "New due date in ISO format (YYYY-MM-DD)"},
	}
}

func (t UpdateTaskTool) Execute(ctx context.Context, args map[string]any, store repository.Store) (domain.ToolResult, error) {
	if err := validateArgs(args, t.Parameters()); err != nil {
		return invalidArgs(err), nil
	}
	userID, _ := intArg(args, "user_id")
	taskID, _ := intArg(args, "task_id")

	var update domain.TaskUpdate
	var updatedFields []string
	if title, ok := stringArg(args, "title"); ok {
		update.Title = &title
		updatedFields = append(updatedFields, "title")
	}
	if desc, ok := stringArg(args, "description"); ok {
		update.Description = &desc
		updatedFields = append(updatedFields, "description")
	}
	if prio, ok := stringArg(args, "priority"); ok {
		switch prio {
		case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
			update.Priority = &prio
			updatedFields = append(updatedFields, "priority")
		default:
			return invalidArgs(fmt.Errorf("invalid priority %q: expected low, medium or high", prio)), nil
		}
	}
	if raw, ok := stringArg(args, "due_date"); ok && raw != "" {
		due, err := parseDueDate(raw)
		if err != nil {
			return invalidArgs(err), nil
		}
		update.DueDate = &due
		updatedFields = append(updatedFields, "due_date")
	}

	if update.IsEmpty() {
		return domain.ToolResult{
			Success: false,
			Message: "No fields provided to update",
		}, nil
	}

	task, err := store.UpdateTask(ctx, userID, taskID, update)
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("failed to update task: %w", err)
	}
	if task == nil {
		return notFound(taskID, "update"), nil
	}

	sort.Strings(updatedFields)
	return domain.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Task '%s' has been updated successfully", task.Title),
		Data: map[string]any{
			"task_id":        task.ID,
			"title":          task.Title,
			"updated_fields": updatedFields,
		},
	}, nil
}
