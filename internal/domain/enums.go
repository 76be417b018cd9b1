// Package domain defines the core domain models for the agent.
package domain

// Role represents the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// FinishReason represents why a completion ended.
type FinishReason string

const (
	FinishReasonComplete  FinishReason = "COMPLETE"
	FinishReasonToolCalls FinishReason = "TOOL_CALLS"
	FinishReasonError     FinishReason = "ERROR"
)

// ParamType is the generic parameter type vocabulary used by tool schemas.
// The registry translates these into the provider's dialect.
type ParamType string

const (
	ParamTypeString  ParamType = "string"
	ParamTypeInteger ParamType = "integer"
	ParamTypeBoolean ParamType = "boolean"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task status filters accepted by list_tasks.
const (
	StatusAll       = "all"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)
