package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskchat/agent/internal/config"
	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/provider"
	"github.com/taskchat/agent/internal/repository"
	"github.com/taskchat/agent/internal/service"
	"github.com/taskchat/agent/internal/tools"
	"github.com/taskchat/agent/policy"
	"github.com/taskchat/agent/tests/helpers"
)

func newTestServer(t *testing.T) (*echo.Echo, *repository.SQLiteStore) {
	t.Helper()

	store := helpers.NewTestSQLiteStore(t)

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	svc := service.New(store, provider.NewFallbackProvider(), tools.NewRegistry(),
		engine, &config.Config{HistoryLimit: 10})

	e := echo.New()
	NewHandler(svc, store).RegisterRoutes(e)
	return e, store
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/users/1/chat", `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Response)
	assert.NotZero(t, resp.ConversationID)
	assert.False(t, resp.HasToolsExecuted)
	assert.NotNil(t, resp.ToolResults)
}

func TestChatEndpointInvalidUserID(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/users/abc/chat", `{"message": "hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewConversationEndpoint(t *testing.T) {
	e, store := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/users/1/conversations",
		`{"message": "add a task to buy milk", "title": "shopping"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ConversationID)

	conversation, err := store.GetConversation(context.Background(), 1, resp.ConversationID)
	require.NoError(t, err)
	require.NotNil(t, conversation)
	assert.Equal(t, "shopping", conversation.Title)

	messages, err := store.GetLatestMessages(context.Background(), resp.ConversationID, 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	require.NotNil(t, resp.MessageID)
	assert.Equal(t, messages[1].ID, *resp.MessageID)
}

func TestNewConversationRequiresMessage(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/users/1/conversations", `{"title": "empty"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetConversationMessagesOwnership(t *testing.T) {
	e, store := newTestServer(t)
	ctx := context.Background()

	conversation := &domain.Conversation{UserID: 1, Title: "mine"}
	require.NoError(t, store.CreateConversation(ctx, conversation))
	require.NoError(t, store.CreateMessage(ctx, &domain.Message{
		ConversationID: conversation.ID, Role: domain.RoleUser, Content: "hi",
	}))

	rec := doJSON(e, http.MethodGet, "/v1/users/1/conversations/1/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ConversationID int64            `json:"conversation_id"`
		Messages       []domain.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Messages, 1)

	// Another user gets 404, not someone else's history.
	rec = doJSON(e, http.MethodGet, "/v1/users/2/conversations/1/messages", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTasksEndpoint(t *testing.T) {
	e, store := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, store.CreateTask(ctx, &domain.Task{UserID: 1, Title: "pending"}))
	require.NoError(t, store.CreateTask(ctx, &domain.Task{UserID: 1, Title: "done", Completed: true}))

	rec := doJSON(e, http.MethodGet, "/v1/users/1/tasks?status=completed", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tasks []domain.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Tasks, 1)
	assert.Equal(t, "done", body.Tasks[0].Title)
}

func TestListConversationsEndpoint(t *testing.T) {
	e, store := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, store.CreateConversation(ctx, &domain.Conversation{UserID: 1, Title: "first"}))
	require.NoError(t, store.CreateConversation(ctx, &domain.Conversation{UserID: 2, Title: "other user"}))

	rec := doJSON(e, http.MethodGet, "/v1/users/1/conversations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Conversations []domain.Conversation `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Conversations, 1)
	assert.Equal(t, "first", body.Conversations[0].Title)
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
