package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/tools"
)

// systemPrompt is prepended to every conversation context.
const systemPrompt = `You are an AI assistant for a todo application. Your purpose is to help users manage their tasks through natural language.

You can:
1. Add new tasks using the add_task tool
2. List existing tasks using the list_tasks tool
3. Mark tasks as completed or pending using the complete_task tool
4. Delete tasks using the delete_task tool
5. Update task details using the update_task tool

Always be helpful, friendly, and confirm actions with users.`

// fallbackConversationID is the last-resort conversation id used when the
// store cannot create a conversation. The response contract requires a
// non-zero id even then.
const fallbackConversationID = 1

// ProcessMessage runs one conversational turn for the authenticated user.
// It never returns an error: every failure mode is folded into a well-formed
// AgentResponse with non-empty text and a non-zero conversation id.
func (s *Service) ProcessMessage(ctx context.Context, userMessage string, userID, conversationID int64) (resp *domain.AgentResponse) {
	reqID := "chat_" + uuid.New().String()[:8]

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: [%s] unexpected panic in ProcessMessage: %v", reqID, r)
			resp = s.failureResponse(userMessage, conversationID, fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	conversationID = s.ensureConversation(ctx, reqID, userID, conversationID, userMessage)

	messages := s.buildContext(ctx, reqID, userMessage, conversationID)

	chatResult, err := s.provider.Chat(ctx, messages, s.registry.Definitions())
	if err != nil || chatResult == nil {
		log.Printf("ERROR: [%s] provider returned an error instead of a result: %v", reqID, err)
		return s.failureResponse(userMessage, conversationID, fmt.Sprintf("completion failed: %v", err))
	}

	executions := make([]domain.ToolExecution, 0, len(chatResult.ToolCalls))
	for _, call := range chatResult.ToolCalls {
		args := make(map[string]any, len(call.Arguments)+1)
		for k, v := range call.Arguments {
			args[k] = v
		}
		// The authenticated identity always wins; a model-supplied user_id is
		// never trusted.
		args["user_id"] = userID

		result := s.executeToolCall(ctx, reqID, call.Name, args)
		executions = append(executions, domain.ToolExecution{
			ToolName:  call.Name,
			Arguments: args,
			Result:    result,
		})
	}

	responseText := strings.TrimSpace(chatResult.Text)
	if responseText == "" {
		responseText = cannedReply(userMessage)
	}

	return &domain.AgentResponse{
		ResponseText:     responseText,
		ToolResults:      executions,
		HasToolsExecuted: len(executions) > 0,
		ConversationID:   conversationID,
	}
}

// RunConversation creates a conversation (when needed), processes the message
// against it, and persists both turns. The stored assistant content carries a
// textual rendering of each tool result so history is self-describing.
func (s *Service) RunConversation(ctx context.Context, userMessage string, userID int64, title string) *domain.AgentResponse {
	if title == "" {
		title = "Conversation with " + truncate(userMessage, 30) + "..."
	}

	conversation := &domain.Conversation{UserID: userID, Title: title}
	if err := s.store.CreateConversation(ctx, conversation); err != nil {
		log.Printf("ERROR: failed to create conversation: %v", err)
		return s.ProcessMessage(ctx, userMessage, userID, 0)
	}

	resp := s.ProcessMessage(ctx, userMessage, userID, conversation.ID)
	resp.ConversationID = conversation.ID

	userMsg := &domain.Message{
		ConversationID: conversation.ID,
		Role:           domain.RoleUser,
		Content:        userMessage,
	}
	if err := s.store.CreateMessage(ctx, userMsg); err != nil {
		log.Printf("ERROR: failed to save user message: %v", err)
	}

	assistantContent := resp.ResponseText
	if len(resp.ToolResults) > 0 {
		assistantContent += "\n\nTool Results: " + renderToolSummaries(resp.ToolResults)
	}
	assistantMsg := &domain.Message{
		ConversationID: conversation.ID,
		Role:           domain.RoleAssistant,
		Content:        assistantContent,
	}
	if err := s.store.CreateMessage(ctx, assistantMsg); err != nil {
		log.Printf("ERROR: failed to save assistant message: %v", err)
	} else {
		resp.MessageID = &assistantMsg.ID
	}

	return resp
}

// ensureConversation resolves the conversation the turn belongs to, creating
// one when the caller did not supply an id or supplied one the user does not
// own. Falls back to the default id when even creation fails.
func (s *Service) ensureConversation(ctx context.Context, reqID string, userID, conversationID int64, userMessage string) int64 {
	if conversationID != 0 {
		conversation, err := s.store.GetConversation(ctx, userID, conversationID)
		if err != nil {
			log.Printf("WARN: [%s] failed to load conversation %d: %v", reqID, conversationID, err)
		}
		if conversation != nil {
			return conversation.ID
		}
		// Unknown id or another user's conversation: both get a fresh one.
	}

	conversation := &domain.Conversation{UserID: userID, Title: "New Chat"}
	if err := s.store.CreateConversation(ctx, conversation); err != nil {
		log.Printf("ERROR: [%s] failed to create conversation: %v", reqID, err)
		return fallbackConversationID
	}
	return conversation.ID
}

// buildContext assembles the provider message list: system prompt, up to
// HistoryLimit prior turns in chronological order, then the current user
// message last.
func (s *Service) buildContext(ctx context.Context, reqID, userMessage string, conversationID int64) []domain.Message {
	messages := []domain.Message{{Role: domain.RoleSystem, Content: systemPrompt}}

	if conversationID != 0 {
		history, err := s.store.GetLatestMessages(ctx, conversationID, s.config.HistoryLimit)
		if err != nil {
			log.Printf("WARN: [%s] failed to load history for conversation %d: %v", reqID, conversationID, err)
		}
		for _, msg := range history {
			role := domain.RoleAssistant
			if msg.Role == domain.RoleUser {
				role = domain.RoleUser
			}
			messages = append(messages, domain.Message{Role: role, Content: msg.Content})
		}
	}

	return append(messages, domain.Message{Role: domain.RoleUser, Content: userMessage})
}

// executeToolCall applies the tool policy and dispatches one tool call.
// Failures never propagate: each produces a structured failure result.
func (s *Service) executeToolCall(ctx context.Context, reqID, name string, args map[string]any) domain.ToolResult {
	userID, _ := args["user_id"].(int64)
	decision, reason, err := s.policyEngine.Evaluate(ctx, map[string]any{
		"tool_name": name,
		"user_id":   userID,
		"read_only": s.config.ReadOnly,
		"args":      args,
	})
	if err != nil {
		log.Printf("ERROR: [%s] policy evaluation for %s failed: %v", reqID, name, err)
		return domain.ToolResult{
			Success: false,
			Message: fmt.Sprintf("Tool %s could not be executed", name),
			Error:   fmt.Sprintf("policy evaluation failed: %v", err),
		}
	}
	if decision == "block" {
		if reason == "" {
			reason = "blocked by policy"
		}
		log.Printf("INFO: [%s] tool %s blocked: %s", reqID, name, reason)
		return domain.ToolResult{
			Success: false,
			Message: fmt.Sprintf("Tool %s is not allowed here", name),
			Error:   reason,
		}
	}

	result, err := s.registry.Dispatch(ctx, name, args, s.store)
	if err != nil {
		log.Printf("ERROR: [%s] tool %s execution failed: %v", reqID, name, err)
		if s.config.DevMode {
			// Development-only: substitute a canned result so the loop stays
			// usable without working storage. Gated behind an explicit flag
			// because it masks genuine failures.
			return tools.MockResult(name, args)
		}
		return domain.ToolResult{
			Success: false,
			Message: fmt.Sprintf("Tool execution failed: %v. Please try again.", err),
			Error:   err.Error(),
		}
	}
	return result
}

// failureResponse is the single top-level conversion of unexpected failures
// into a coherent reply.
func (s *Service) failureResponse(userMessage string, conversationID int64, errDetail string) *domain.AgentResponse {
	text := "I'm sorry, I encountered an error processing your request."
	lowered := strings.ToLower(strings.TrimSpace(userMessage))
	switch {
	case lowered == "":
		text = "Hi there! Please let me know how I can help you with your tasks."
	case containsGreeting(lowered):
		text = "Hello! I'm your AI assistant. How can I help you with your tasks today?"
	}

	if conversationID == 0 {
		conversationID = fallbackConversationID
	}
	return &domain.AgentResponse{
		ResponseText:     text,
		ToolResults:      []domain.ToolExecution{},
		HasToolsExecuted: false,
		ConversationID:   conversationID,
		Error:            errDetail,
	}
}

// cannedReply substitutes a context-sensitive acknowledgment when the
// provider returned blank text.
func cannedReply(userMessage string) string {
	switch strings.ToLower(strings.TrimSpace(userMessage)) {
	case "hello", "hi", "hey":
		return "Hello! I'm your AI assistant. How can I help you with your tasks today?"
	}
	return "I received your message. How can I help you with your tasks?"
}

func containsGreeting(lowered string) bool {
	for _, greeting := range []string{"hello", "hi", "hey"} {
		if strings.Contains(lowered, greeting) {
			return true
		}
	}
	return false
}

// renderToolSummaries renders executed tool calls as
// "name({args}): message" entries joined by "; ". Arguments are serialized as
// JSON with sorted keys, so the rendering is deterministic.
func renderToolSummaries(executions []domain.ToolExecution) string {
	parts := make([]string, 0, len(executions))
	for _, exec := range executions {
		args, err := json.Marshal(exec.Arguments)
		if err != nil {
			args = []byte("{}")
		}
		parts = append(parts, fmt.Sprintf("%s(%s): %s", exec.ToolName, args, exec.Result.Message))
	}
	return strings.Join(parts, "; ")
}

// truncate shortens s to at most maxLen runes without splitting a multibyte
// character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
