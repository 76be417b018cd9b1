package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/taskchat/agent/internal/domain"
)

// CohereProvider talks to the Cohere chat API.
type CohereProvider struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

var _ CompletionProvider = (*CohereProvider)(nil)

// NewCohereProvider creates a live Cohere-backed provider.
func NewCohereProvider(baseURL, apiKey, model string, temperature float64, timeout time.Duration) *CohereProvider {
	return &CohereProvider{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chatRequest is the Cohere chat request body.
type chatRequest struct {
	Message     string         `json:"message"`
	ChatHistory []historyEntry `json:"chat_history,omitempty"`
	Model       string         `json:"model"`
	Temperature float64        `json:"temperature"`
	Tools       []toolSchema   `json:"tools,omitempty"`
}

type historyEntry struct {
	Role    string `json:"role"` // SYSTEM, USER or CHATBOT
	Message string `json:"message"`
}

type toolSchema struct {
	Name                 string                                `json:"name"`
	Description          string                                `json:"description,omitempty"`
	ParameterDefinitions map[string]domain.ParameterDefinition `json:"parameter_definitions,omitempty"`
}

// chatResponse is the Cohere chat response body.
type chatResponse struct {
	Text         string          `json:"text"`
	FinishReason string          `json:"finish_reason,omitempty"`
	ToolCalls    []nativeCall    `json:"tool_calls,omitempty"`
	Meta         json.RawMessage `json:"meta,omitempty"`
}

type nativeCall struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Chat forwards the context and tool schema to Cohere and normalizes the
// reply. Transport and backend failures never escape: they are folded into a
// ChatResult with FinishReason ERROR.
func (p *CohereProvider) Chat(ctx context.Context, messages []domain.Message, tools []domain.ToolDefinition) (*domain.ChatResult, error) {
	if len(messages) == 0 {
		return errorResult(), nil
	}

	current := messages[len(messages)-1]
	history := make([]historyEntry, 0, len(messages)-1)
	for _, msg := range messages[:len(messages)-1] {
		history = append(history, historyEntry{Role: cohereRole(msg.Role), Message: msg.Content})
	}

	req := chatRequest{
		Message:     current.Content,
		ChatHistory: history,
		Model:       p.model,
		Temperature: p.temperature,
	}
	for _, def := range tools {
		req.Tools = append(req.Tools, toolSchema{
			Name:                 def.Name,
			Description:          def.Description,
			ParameterDefinitions: def.Parameters,
		})
	}

	resp, err := p.send(ctx, &req)
	if err != nil {
		log.Printf("ERROR: cohere chat failed: %v", err)
		return errorResult(), nil
	}

	result := &domain.ChatResult{
		Text:         resp.Text,
		FinishReason: domain.FinishReasonComplete,
	}
	if resp.FinishReason != "" {
		result.FinishReason = domain.FinishReason(resp.FinishReason)
	}
	for _, call := range resp.ToolCalls {
		args := call.Parameters
		if args == nil {
			args = map[string]any{}
		}
		result.ToolCalls = append(result.ToolCalls, domain.ToolCall{
			Name:      call.Name,
			Arguments: args,
		})
	}
	if len(result.ToolCalls) > 0 && resp.FinishReason == "" {
		result.FinishReason = domain.FinishReasonToolCalls
	}
	return result, nil
}

func (p *CohereProvider) send(ctx context.Context, req *chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("cohere API error [%d]: %s", resp.StatusCode, errResp.Message)
		}
		return nil, fmt.Errorf("cohere API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

func cohereRole(role domain.Role) string {
	switch role {
	case domain.RoleSystem:
		return "SYSTEM"
	case domain.RoleAssistant:
		return "CHATBOT"
	}
	return "USER"
}

func errorResult() *domain.ChatResult {
	return &domain.ChatResult{
		Text:         ErrorText,
		FinishReason: domain.FinishReasonError,
	}
}
