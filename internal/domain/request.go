package domain

// AgentResponse is the structured result of one orchestrator invocation.
// ResponseText is never empty and ConversationID is never zero.
type AgentResponse struct {
	ResponseText     string          `json:"response_text"`
	ToolResults      []ToolExecution `json:"tool_results"`
	HasToolsExecuted bool            `json:"has_tools_executed"`
	ConversationID   int64           `json:"conversation_id"`
	// MessageID is the persisted assistant message id; set only when the turn
	// was stored.
	MessageID *int64 `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ChatRequest is the transport-level chat request body.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID int64  `json:"conversation_id,omitempty"`
}

// NewConversationRequest starts a new conversation with an initial message.
type NewConversationRequest struct {
	Message string `json:"message"`
	Title   string `json:"title,omitempty"`
}

// ChatResponse is the transport-level chat response body.
type ChatResponse struct {
	ConversationID   int64           `json:"conversation_id"`
	Response         string          `json:"response"`
	HasToolsExecuted bool            `json:"has_tools_executed"`
	ToolResults      []ToolExecution `json:"tool_results"`
	MessageID        *int64          `json:"message_id,omitempty"`
}
