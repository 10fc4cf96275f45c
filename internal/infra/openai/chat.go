package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"food-assistant/internal/application"
	"food-assistant/internal/infra"
)

// ChatClient talks to the chat-completions endpoint. Errors propagate to the
// caller: a model failure is a hard failure of the turn.
type ChatClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	model      string
}

func NewChatClient(apiKey, model string) *ChatClient {
	return NewChatClientWithURL(apiKey, model, "https://api.openai.com/v1")
}

func NewChatClientWithURL(apiKey, model, baseURL string) *ChatClient {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &ChatClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *ChatClient) Complete(ctx context.Context, messages []application.Message) (string, error) {
	reqBody := chatRequest{Model: c.model, Messages: make([]chatMessage, len(messages))}
	for i, m := range messages {
		reqBody.Messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var result chatResponse
	retryErr := infra.WithRetry(ctx, infra.DefaultRetryConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return fmt.Errorf("chat API error %d: %s (retryable)", resp.StatusCode, string(respBody))
			}
			return fmt.Errorf("chat API error %d: %s", resp.StatusCode, string(respBody))
		}

		if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return nil
	})

	if retryErr != nil {
		return "", retryErr
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty response from chat model")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
