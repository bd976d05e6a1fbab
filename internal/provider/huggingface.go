package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/config"
)

// HuggingFaceClient generates images with the Hugging Face inference API,
// which answers with raw image bytes rather than JSON.
type HuggingFaceClient struct {
	cfg    config.ImageAPIConfig
	client *http.Client
}

// NewHuggingFace returns an ImageClient backed by the Hugging Face
// inference API.
func NewHuggingFace(cfg config.ImageAPIConfig) *HuggingFaceClient {
	return &HuggingFaceClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *HuggingFaceClient) Name() string { return "huggingface" }

func (c *HuggingFaceClient) Available() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

type huggingFaceRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		NegativePrompt    string `json:"negative_prompt,omitempty"`
		NumInferenceSteps int    `json:"num_inference_steps,omitempty"`
	} `json:"parameters"`
}

func (c *HuggingFaceClient) Generate(ctx context.Context, prompt campaign.ImagePrompt) (ImageResult, error) {
	if !c.Available() {
		return ImageResult{}, notConfigured(c.Name())
	}

	payload := huggingFaceRequest{Inputs: prompt.PromptText}
	payload.Parameters.NegativePrompt = "blurry, low quality, distorted, watermark, text"
	payload.Parameters.NumInferenceSteps = 25
	body, err := json.Marshal(payload)
	if err != nil {
		return ImageResult{}, invalidResponse(c.Name(), "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/models/"+c.cfg.Model, bytes.NewReader(body))
	if err != nil {
		return ImageResult{}, invalidResponse(c.Name(), "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
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

	// A JSON body here is an error report (usually "model is loading"),
	// not an image.
	contentType := resp.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") || len(respBody) == 0 {
		return ImageResult{}, &Error{Provider: c.Name(), Kind: KindInvalidResponse, Detail: "no image bytes in response"}
	}
	if contentType == "" {
		contentType = "image/png"
	}

	encoded := base64.StdEncoding.EncodeToString(respBody)
	return ImageResult{URLOrData: "data:" + contentType + ";base64," + encoded}, nil
}
