package policy

import (
	"context"
	"testing"
)

func TestDefaultPolicyAllowsByDefault(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	decision, _, err := engine.Evaluate(ctx, map[string]interface{}{
		"tool_name": "add_task",
		"user_id":   int64(1),
		"read_only": false,
		"args":      map[string]interface{}{"title": "x"},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "allow" {
		t.Errorf("expected allow, got %q", decision)
	}
}

func TestDefaultPolicyReadOnlyBlocksMutations(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	for _, tool := range []string{"add_task", "complete_task", "delete_task", "update_task"} {
		decision, _, err := engine.Evaluate(ctx, map[string]interface{}{
			"tool_name": tool,
			"user_id":   int64(1),
			"read_only": true,
		})
		if err != nil {
			t.Fatalf("Evaluate %s failed: %v", tool, err)
		}
		if decision != "block" {
			t.Errorf("expected %s blocked in read-only mode, got %q", tool, decision)
		}
	}

	decision, _, err := engine.Evaluate(ctx, map[string]interface{}{
		"tool_name": "list_tasks",
		"user_id":   int64(1),
		"read_only": true,
	})
	if err != nil {
		t.Fatalf("Evaluate list_tasks failed: %v", err)
	}
	if decision != "allow" {
		t.Errorf("expected list_tasks allowed in read-only mode, got %q", decision)
	}
}

func TestEngineRejectsBrokenPolicy(t *testing.T) {
	if _, err := NewEngine(context.Background(), "package task_tools\n\ndecision = {"); err == nil {
		t.Fatalf("expected parse error for broken policy")
	}
}
