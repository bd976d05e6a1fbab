package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/config"
)

// ReplicateClient generates images with the Replicate predictions API. A
// prediction is created, then polled until it settles or the deadline runs
// out.
type ReplicateClient struct {
	cfg    config.ImageAPIConfig
	client *http.Client
	// pollInterval is shortened in tests.
	pollInterval time.Duration
}

// NewReplicate returns an ImageClient backed by Replicate.
func NewReplicate(cfg config.ImageAPIConfig) *ReplicateClient {
	return &ReplicateClient{
		cfg:          cfg,
		client:       &http.Client{Timeout: 30 * time.Second},
		pollInterval: 2 * time.Second,
	}
}

func (c *ReplicateClient) Name() string { return "replicate" }

func (c *ReplicateClient) Available() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

type replicateCreateRequest struct {
	Version string         `json:"version"`
	Input   replicateInput `json:"input"`
}

type replicateInput struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type replicatePrediction struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Output any    `json:"output"`
	Error  string `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func (c *ReplicateClient) Generate(ctx context.Context, prompt campaign.ImagePrompt) (ImageResult, error) {
	if !c.Available() {
		return ImageResult{}, notConfigured(c.Name())
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	payload := replicateCreateRequest{
		Version: c.cfg.Model,
		Input:   replicateInput{Prompt: prompt.PromptText, Width: 1024, Height: 1024},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return ImageResult{}, invalidResponse(c.Name(), "failed to encode request", err)
	}

	pred, provErr := c.roundTrip(ctx, "POST", c.cfg.BaseURL+"/predictions", bytes.NewReader(body))
	if provErr != nil {
		return ImageResult{}, provErr
	}

	for {
		switch pred.Status {
		case "succeeded":
			return predictionResult(c.Name(), pred)
		case "failed", "canceled":
			return ImageResult{}, &Error{Provider: c.Name(), Kind: KindInvalidResponse, Detail: "prediction " + pred.Status + ": " + pred.Error}
		}
		if pred.URLs.Get == "" {
			return ImageResult{}, &Error{Provider: c.Name(), Kind: KindInvalidResponse, Detail: "prediction has no poll URL"}
		}

		select {
		case <-ctx.Done():
			return ImageResult{}, transportError(c.Name(), ctx.Err())
		case <-time.After(c.pollInterval):
		}

		pred, provErr = c.roundTrip(ctx, "GET", pred.URLs.Get, nil)
		if provErr != nil {
			return ImageResult{}, provErr
		}
	}
}

func (c *ReplicateClient) roundTrip(ctx context.Context, method, url string, body io.Reader) (*replicatePrediction, *Error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, invalidResponse(c.Name(), "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(c.Name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(c.Name(), err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, statusError(c.Name(), resp.StatusCode, string(respBody))
	}

	var pred replicatePrediction
	if err := json.Unmarshal(respBody, &pred); err != nil {
		return nil, invalidResponse(c.Name(), "failed to decode prediction", err)
	}
	return &pred, nil
}

// predictionResult extracts the first output URL. Replicate models emit
// either a list of URLs or a single URL string.
func predictionResult(name string, pred *replicatePrediction) (ImageResult, error) {
	switch out := pred.Output.(type) {
	case string:
		if out != "" {
			return ImageResult{URLOrData: out}, nil
		}
	case []any:
		for _, item := range out {
			if s, ok := item.(string); ok && s != "" {
				return ImageResult{URLOrData: s}, nil
			}
		}
	}
	return ImageResult{}, &Error{Provider: name, Kind: KindInvalidResponse, Detail: "prediction succeeded with no output URL"}
}
