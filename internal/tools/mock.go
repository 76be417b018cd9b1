package tools

import (
	"fmt"

	"github.com/taskchat/agent/internal/domain"
)

// MockResult maps a tool call to a plausible canned result. It is a pure
// function with no hidden state, used only when real execution hits an
// infrastructure failure and development mode is enabled; masking failures
// like this is never acceptable in production, which is why the caller gates
// it behind an explicit flag.
func MockResult(toolName string, args map[string]any) domain.ToolResult {
	switch toolName {
	case "add_task":
		title, _ := stringArg(args, "title")
		if title == "" {
			title = "Mock Task"
		}
		return domain.ToolResult{
			Success: true,
			Message: fmt.Sprintf("Task '%s' has been added successfully (mock response)", title),
			Data:    map[string]any{"task_id": int64(999), "title": title},
		}
	case "list_tasks":
		status, ok := stringArg(args, "status")
		if !ok {
			status = domain.StatusAll
		}
		return domain.ToolResult{
			Success: true,
			Message: "Found 2 tasks (mock response)",
			Data: map[string]any{
				"task_count":    2,
				"status_filter": status,
				"tasks": []map[string]any{
					{"id": int64(1), "title": "Sample Task 1", "completed": false, "priority": domain.PriorityMedium},
					{"id": int64(2), "title": "Sample Task 2", "completed": true, "priority": domain.PriorityHigh},
				},
			},
		}
	case "complete_task":
		taskID, ok := intArg(args, "task_id")
		if !ok {
			taskID = 1
		}
		completed := true
		if v, ok := boolArg(args, "completed"); ok {
			completed = v
		}
		statusText := "completed"
		if !completed {
			statusText = "pending"
		}
		return domain.ToolResult{
			Success: true,
			Message: fmt.Sprintf("Task %d marked as %s (mock response)", taskID, statusText),
			Data:    map[string]any{"task_id": taskID, "completed": completed},
		}
	case "delete_task":
		taskID, ok := intArg(args, "task_id")
		if !ok {
			taskID = 1
		}
		return domain.ToolResult{
			Success: true,
			Message: fmt.Sprintf("Task %d has been deleted successfully (mock response)", taskID),
			Data:    map[string]any{"task_id": taskID},
		}
	case "update_task":
		taskID, ok := intArg(args, "task_id")
		if !ok {
			taskID = 1
		}
		return domain.ToolResult{
			Success: true,
			Message: fmt.Sprintf("Task %d has been updated successfully (mock response)", taskID),
			Data:    map[string]any{"task_id": taskID},
		}
	}
	return domain.ToolResult{
		Success: false,
		Message: fmt.Sprintf("Unknown tool: %s", toolName),
		Error:   fmt.Sprintf("unknown tool: %s", toolName),
	}
}
