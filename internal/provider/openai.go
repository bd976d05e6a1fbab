package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ignite/campaignforge/internal/config"
)

// openAIWireClient speaks the OpenAI chat-completions wire format. OpenAI and
// Groq share it verbatim; only the base URL, model and key differ.
type openAIWireClient struct {
	name   string
	cfg    config.ChatAPIConfig
	client *http.Client
}

// NewOpenAI returns a ChatClient backed by the OpenAI API.
func NewOpenAI(cfg config.ChatAPIConfig) ChatClient {
	return &openAIWireClient{
		name:   "openai",
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// NewGroq returns a ChatClient backed by the Groq API, which is
// OpenAI-compatible.
func NewGroq(cfg config.ChatAPIConfig) ChatClient {
	return &openAIWireClient{
		name:   "groq",
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *openAIWireClient) Name() string { return c.name }

func (c *openAIWireClient) Available() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIWireClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if !c.Available() {
		return "", notConfigured(c.name)
	}

	messages := make([]openAIMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.User})

	payload := openAIRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", invalidResponse(c.name, "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", invalidResponse(c.name, "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", transportError(c.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(c.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError(c.name, resp.StatusCode, string(respBody))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", invalidResponse(c.name, "failed to decode response", err)
	}
	if len(parsed.Choices) == 0 {
		return "", &Error{Provider: c.name, Kind: KindInvalidResponse, Detail: "no choices in response"}
	}

	return finishChat(c.name, parsed.Choices[0].Message.Content, req)
}
