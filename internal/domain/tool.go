package domain

// ParameterDefinition describes one tool parameter in the provider's schema
// dialect (the type token has already been translated by the registry).
type ParameterDefinition struct {
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// ToolDefinition is the provider-facing description of a tool. Derived from a
// tool's declared schema at call time, never persisted.
type ToolDefinition struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	Parameters  map[string]ParameterDefinition `json:"parameter_definitions"`
}

// ToolCall is a model-issued request to invoke a named tool.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResult is the outcome of one tool execution. It is always populated,
// including on failure; tools never raise past the registry boundary.
type ToolResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ToolExecution pairs a dispatched tool call with its result.
type ToolExecution struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
	Result    ToolResult     `json:"result"`
}

// ChatResult is the normalized provider reply.
type ChatResult struct {
	Text         string       `json:"text"`
	ToolCalls    []ToolCall   `json:"tool_calls,omitempty"`
	FinishReason FinishReason `json:"finish_reason"`
}
