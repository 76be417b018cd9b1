package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/repository"
)

// Registry is the fixed mapping from tool name to implementation. It is built
// once at process start and never mutated afterwards.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry builds the registry with the complete task-management tool set.
func NewRegistry() *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range []Tool{
		AddTaskTool{},
		ListTasksTool{},
		CompleteTaskTool{},
		DeleteTaskTool{},
		UpdateTaskTool{},
	} {
		if _, exists := r.tools[t.Name()]; exists {
			panic(fmt.Sprintf("duplicate tool registered: %s", t.Name()))
		}
		r.order = append(r.order, t.Name())
		r.tools[t.Name()] = t
	}
	return r
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Definitions derives the provider-facing tool definitions from each tool's
// declared schema, translating the generic type vocabulary into the provider
// dialect. Pure and cheap; recomputed per request.
func (r *Registry) Definitions() []domain.ToolDefinition {
	defs := make([]domain.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		params := make(map[string]domain.ParameterDefinition)
		for paramName, spec := range t.Parameters() {
			params[paramName] = domain.ParameterDefinition{
				Type:        ProviderParamType(spec.Type),
				Required:    spec.Required,
				Description: spec.Description,
			}
		}
		defs = append(defs, domain.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  params,
		})
	}
	return defs
}

// ProviderParamType maps the generic parameter type vocabulary onto the
// provider's schema dialect.
func ProviderParamType(t domain.ParamType) string {
	switch t {
	case domain.ParamTypeString:
		return "str"
	case domain.ParamTypeInteger:
		return "int"
	case domain.ParamTypeBoolean:
		return "bool"
	}
	return "str"
}

// Dispatch looks up and executes a tool by name. An unknown tool yields a
// structured failure result, never an error; the error return carries only
// infrastructure failures surfaced by the tool itself.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any, store repository.Store) (domain.ToolResult, error) {
	t, ok := r.tools[name]
	if !ok {
		log.Printf("WARN: dispatch of unknown tool %q", name)
		return domain.ToolResult{
			Success: false,
			Message: fmt.Sprintf("Unknown tool: %s", name),
			Error:   fmt.Sprintf("unknown tool: %s", name),
		}, nil
	}
	return t.Execute(ctx, args, store)
}
