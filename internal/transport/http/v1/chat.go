package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskchat/agent/internal/domain"
)

// Chat processes one conversational turn.
// POST /v1/users/:user_id/chat
func (h *Handler) Chat(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
	}

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	result := h.service.ProcessMessage(ctx, req.Message, userID, req.ConversationID)

	return c.JSON(http.StatusOK, toChatResponse(result))
}

// NewConversation creates a conversation and processes its first message.
// POST /v1/users/:user_id/conversations
func (h *Handler) NewConversation(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
	}

	var req domain.NewConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	ctx := c.Request().Context()
	result := h.service.RunConversation(ctx, req.Message, userID, req.Title)

	return c.JSON(http.StatusOK, toChatResponse(result))
}

// GetConversationMessages retrieves messages for a conversation.
// GET /v1/users/:user_id/conversations/:conversation_id/messages
func (h *Handler) GetConversationMessages(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
	}
	conversationID, err := strconv.ParseInt(c.Param("conversation_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid conversation_id"})
	}
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	ctx := c.Request().Context()

	conversation, err := h.store.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if conversation == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}

	messages, err := h.store.GetLatestMessages(ctx, conversationID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversation_id": conversationID,
		"messages":        messages,
	})
}

// ListConversations lists the user's conversations.
// GET /v1/users/:user_id/conversations
func (h *Handler) ListConversations(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
	}

	conversations, err := h.store.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": conversations,
	})
}

// ListTasks lists the user's tasks.
// GET /v1/users/:user_id/tasks
func (h *Handler) ListTasks(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
	}
	status := c.QueryParam("status")

	tasks, err := h.store.ListTasks(c.Request().Context(), userID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}

func userIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("user_id"), 10, 64)
}

// toChatResponse converts an orchestrator result into the wire response. The
// conversation id fallback is re-applied here as a final safety net.
func toChatResponse(result *domain.AgentResponse) domain.ChatResponse {
	conversationID := result.ConversationID
	if conversationID == 0 {
		conversationID = 1
	}
	toolResults := result.ToolResults
	if toolResults == nil {
		toolResults = []domain.ToolExecution{}
	}
	return domain.ChatResponse{
		ConversationID:   conversationID,
		Response:         result.ResponseText,
		HasToolsExecuted: result.HasToolsExecuted,
		ToolResults:      toolResults,
		MessageID:        result.MessageID,
	}
}
