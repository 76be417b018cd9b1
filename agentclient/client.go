// Package agentclient provides a Go client for the agent's HTTP API.
package agentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taskchat/agent/internal/domain"
)

// Client is an HTTP client for the agent service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the agent at the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute, // completions can be slow
		},
	}
}

// Chat sends one message on behalf of a user. A zero conversationID starts a
// fresh conversation.
func (c *Client) Chat(ctx context.Context, userID int64, message string, conversationID int64) (*domain.ChatResponse, error) {
	req := domain.ChatRequest{Message: message, ConversationID: conversationID}
	var resp domain.ChatResponse
	if err := c.post(ctx, fmt.Sprintf("/v1/users/%d/chat", userID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartConversation creates a conversation with an initial message and
// optional title, persisting both sides of the exchange.
func (c *Client) StartConversation(ctx context.Context, userID int64, message, title string) (*domain.ChatResponse, error) {
	req := domain.NewConversationRequest{Message: message, Title: title}
	var resp domain.ChatResponse
	if err := c.post(ctx, fmt.Sprintf("/v1/users/%d/conversations", userID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListConversations retrieves the user's conversations, newest first.
func (c *Client) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	var resp struct {
		Conversations []domain.Conversation `json:"conversations"`
	}
	if err := c.get(ctx, fmt.Sprintf("/v1/users/%d/conversations", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// GetMessages retrieves the most recent messages of a conversation in
// chronological order. A limit of 0 uses the server default.
func (c *Client) GetMessages(ctx context.Context, userID, conversationID int64, limit int) ([]domain.Message, error) {
	path := fmt.Sprintf("/v1/users/%d/conversations/%d/messages", userID, conversationID)
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var resp struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// ListTasks retrieves the user's tasks, optionally filtered by status
// ("pending" or "completed").
func (c *Client) ListTasks(ctx context.Context, userID int64, status string) ([]domain.Task, error) {
	path := fmt.Sprintf("/v1/users/%d/tasks", userID)
	if status != "" {
		path += "?status=" + status
	}
	var resp struct {
		Tasks []domain.Task `json:"tasks"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Health checks whether the agent is up.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", &struct{}{})
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(httpReq, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("agent returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
