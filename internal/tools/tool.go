// Package tools implements the task-management tools the model can invoke.
package tools

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/repository"
)

// ParamSpec declares one tool parameter using the generic type vocabulary.
type ParamSpec struct {
	Type        domain.ParamType
	Required    bool
	Description string
}

// Tool is the contract every task-management tool implements. Execute performs
// exactly one operation; the error return is reserved for infrastructure
// failures (storage down). Validation failures and not-found outcomes are
// expressed as a ToolResult with Success false.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]ParamSpec
	Execute(ctx context.Context, args map[string]any, store repository.Store) (domain.ToolResult, error)
}

// validateArgs checks args against the declared parameter specs. Unknown
// arguments are tolerated (the model occasionally invents extras); missing
// required arguments and type mismatches are not.
func validateArgs(args map[string]any, params map[string]ParamSpec) error {
	for name, spec := range params {
		val, ok := args[name]
		if !ok || val == nil {
			if spec.Required {
				return fmt.Errorf("missing required argument: %s", name)
			}
			continue
		}
		switch spec.Type {
		case domain.ParamTypeString:
			if _, ok := val.(string); !ok {
				return fmt.Errorf("argument %s: expected string, got %T", name, val)
			}
		case domain.ParamTypeInteger:
			if _, ok := toInt64(val); !ok {
				return fmt.Errorf("argument %s: expected integer, got %T", name, val)
			}
		case domain.ParamTypeBoolean:
			if _, ok := toBool(val); !ok {
				return fmt.Errorf("argument %s: expected boolean, got %T", name, val)
			}
		}
	}
	return nil
}

// toInt64 coerces JSON-decoded values into an int64. Providers deliver numbers
// as float64 and occasionally as numeric strings.
func toInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func toBool(val any) (bool, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

func stringArg(args map[string]any, name string) (string, bool) {
	v, ok := args[name].(string)
	return v, ok
}

func intArg(args map[string]any, name string) (int64, bool) {
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	return toInt64(v)
}

func boolArg(args map[string]any, name string) (bool, bool) {
	v, ok := args[name]
	if !ok {
		return false, false
	}
	return toBool(v)
}

// parseDueDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due_date %q: expected YYYY-MM-DD or RFC3339", raw)
	}
	return t, nil
}

func invalidArgs(err error) domain.ToolResult {
	return domain.ToolResult{
		Success: false,
		Message: "Invalid arguments. Please check your input and try again.",
		Error:   err.Error(),
	}
}

func notFound(taskID int64, action string) domain.ToolResult {
	return domain.ToolResult{
		Success: false,
		Message: fmt.Sprintf("Task with ID %d not found or you don't have permission to %s it", taskID, action),
	}
}
