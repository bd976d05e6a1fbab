package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ignite/campaignforge/internal/config"
)

// PixabayClient searches licensed stock photos on Pixabay. Unlike the other
// search providers the key travels as a query parameter.
type PixabayClient struct {
	cfg    config.SearchAPIConfig
	client *http.Client
}

// NewPixabay returns a SearchClient backed by Pixabay.
func NewPixabay(cfg config.SearchAPIConfig) *PixabayClient {
	return &PixabayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *PixabayClient) Name() string { return "pixabay" }

func (c *PixabayClient) Available() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

type pixabayResponse struct {
	Hits []struct {
		WebformatURL string `json:"webformatURL"`
		PreviewURL   string `json:"previewURL"`
		Tags         string `json:"tags"`
		ImageWidth   int    `json:"imageWidth"`
		ImageHeight  int    `json:"imageHeight"`
		User         string `json:"user"`
	} `json:"hits"`
}

func (c *PixabayClient) Search(ctx context.Context, query string) ([]Reference, error) {
	if !c.Available() {
		return nil, notConfigured(c.Name())
	}

	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("per_page", strconv.Itoa(searchPageSize))
	params.Set("safesearch", "true")

	req, err := http.NewRequestWithContext(ctx, "GET", c.cfg.BaseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, invalidResponse(c.Name(), "failed to build request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(c.Name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(c.Name(), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(c.Name(), resp.StatusCode, string(respBody))
	}

	var parsed pixabayResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, invalidResponse(c.Name(), "failed to decode response", err)
	}

	refs := make([]Reference, 0, len(parsed.Hits))
	for _, hit := range parsed.Hits {
		if hit.WebformatURL == "" {
			continue
		}
		refs = append(refs, Reference{
			URL:          hit.WebformatURL,
			Thumbnail:    hit.PreviewURL,
			Title:        hit.Tags,
			Width:        hit.ImageWidth,
			Height:       hit.ImageHeight,
			Source:       c.Name(),
			Photographer: hit.User,
			SearchTerm:   query,
		})
	}
	return refs, nil
}
