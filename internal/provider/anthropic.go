package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ignite/campaignforge/internal/config"
)

// AnthropicClient speaks the Anthropic Messages API.
type AnthropicClient struct {
	cfg    config.ChatAPIConfig
	client *http.Client
}

// NewAnthropic returns a ChatClient backed by the Anthropic API.
func NewAnthropic(cfg config.ChatAPIConfig) *AnthropicClient {
	return &AnthropicClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *AnthropicClient) Name() string { return "anthropic" }

func (c *AnthropicClient) Available() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *AnthropicClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if !c.Available() {
		return "", notConfigured(c.Name())
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	payload := anthropicRequest{
		Model:     c.cfg.Model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  []anthropicMessage{{Role: "user", Content: req.User}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", invalidResponse(c.Name(), "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", invalidResponse(c.Name(), "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", transportError(c.Name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(c.Name(), err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError(c.Name(), resp.StatusCode, string(respBody))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", invalidResponse(c.Name(), "failed to decode response", err)
	}
	if len(parsed.Content) == 0 {
		return "", &Error{Provider: c.Name(), Kind: KindInvalidResponse, Detail: "no content blocks in response"}
	}

	return finishChat(c.Name(), parsed.Content[0].Text, req)
}
