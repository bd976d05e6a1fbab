package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/config"
)

// StabilityClient generates images with the Stability AI REST API.
type StabilityClient struct {
	cfg    config.ImageAPIConfig
	client *http.Client
}

// NewStability returns an ImageClient backed by Stability AI.
func NewStability(cfg config.ImageAPIConfig) *StabilityClient {
	return &StabilityClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *StabilityClient) Name() string { return "stability" }

func (c *StabilityClient) Available() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

type stabilityRequest struct {
	TextPrompts []stabilityPrompt `json:"text_prompts"`
	CfgScale    float64           `json:"cfg_scale"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Samples     int               `json:"samples"`
	Steps       int               `json:"steps"`
}

type stabilityPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

func (c *StabilityClient) Generate(ctx context.Context, prompt campaign.ImagePrompt) (ImageResult, error) {
	if !c.Available() {
		return ImageResult{}, notConfigured(c.Name())
	}

	payload := stabilityRequest{
		TextPrompts: []stabilityPrompt{
			{Text: prompt.PromptText, Weight: 1.0},
		},
		CfgScale: 7,
		Width:    1024,
		Height:   1024,
		Samples:  1,
		Steps:    30,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return ImageResult{}, invalidResponse(c.Name(), "failed to encode request", err)
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.cfg.BaseURL, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return ImageResult{}, invalidResponse(c.Name(), "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return ImageResult{}, transportError(c.Name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ImageResult{}, transportError(c.Name(), err)
	}
	if resp.StatusCode != http.StatusOK {
		return ImageResult{}, statusError(c.Name(), resp.StatusCode, string(respBody))
	}

	var parsed stabilityResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return ImageResult{}, invalidResponse(c.Name(), "failed to decode response", err)
	}
	if len(parsed.Artifacts) == 0 || parsed.Artifacts[0].Base64 == "" {
		return ImageResult{}, &Error{Provider: c.Name(), Kind: KindInvalidResponse, Detail: "no artifacts in response"}
	}

	return ImageResult{URLOrData: "data:image/png;base64," + parsed.Artifacts[0].Base64}, nil
}
