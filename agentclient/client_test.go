package agentclient

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskchat/agent/internal/config"
	"github.com/taskchat/agent/internal/domain"
	"github.com/taskchat/agent/internal/provider"
	"github.com/taskchat/agent/internal/repository"
	"github.com/taskchat/agent/internal/service"
	"github.com/taskchat/agent/internal/tools"
	transporthttp "github.com/taskchat/agent/internal/transport/http"
	"github.com/taskchat/agent/policy"
	"github.com/taskchat/agent/tests/helpers"
)

func newTestAgent(t *testing.T) (*Client, *repository.SQLiteStore) {
	t.Helper()

	store := helpers.NewTestSQLiteStore(t)

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	svc := service.New(store, provider.NewFallbackProvider(), tools.NewRegistry(),
		engine, &config.Config{HistoryLimit: 10})

	server := httptest.NewServer(transporthttp.NewServer(svc, store))
	t.Cleanup(server.Close)

	return NewClient(server.URL), store
}

func TestClientChatRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestAgent(t)

	require.NoError(t, client.Health(ctx))

	resp, err := client.StartConversation(ctx, 1, "hello", "first chat")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Response)
	require.NotZero(t, resp.ConversationID)

	// Continue the same conversation.
	followUp, err := client.Chat(ctx, 1, "show my tasks", resp.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, resp.ConversationID, followUp.ConversationID)

	conversations, err := client.ListConversations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, "first chat", conversations[0].Title)

	messages, err := client.GetMessages(ctx, 1, resp.ConversationID, 10)
	require.NoError(t, err)
	assert.Len(t, messages, 2) // StartConversation persists both turns
}

func TestClientListTasks(t *testing.T) {
	ctx := context.Background()
	client, store := newTestAgent(t)

	require.NoError(t, store.CreateTask(ctx, &domain.Task{UserID: 1, Title: "pending"}))
	require.NoError(t, store.CreateTask(ctx, &domain.Task{UserID: 1, Title: "done", Completed: true}))

	tasks, err := client.ListTasks(ctx, 1, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "pending", tasks[0].Title)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestAgent(t)

	_, err := client.GetMessages(ctx, 1, 999, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClientForeignConversationHidden(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestAgent(t)

	resp, err := client.StartConversation(ctx, 1, "hello", "mine")
	require.NoError(t, err)

	_, err = client.GetMessages(ctx, 2, resp.ConversationID, 0)
	require.Error(t, err)
}
