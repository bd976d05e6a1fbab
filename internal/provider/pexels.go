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

// PexelsClient searches licensed stock photos on Pexels.
type PexelsClient struct {
	cfg    config.SearchAPIConfig
	client *http.Client
}

// NewPexels returns a SearchClient backed by Pexels.
func NewPexels(cfg config.SearchAPIConfig) *PexelsClient {
	return &PexelsClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *PexelsClient) Name() string { return "pexels" }

func (c *PexelsClient) Available() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

type pexelsResponse struct {
	Photos []struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Alt    string `json:"alt"`
		Src    struct {
			Large  string `json:"large"`
			Medium string `json:"medium"`
		} `json:"src"`
		Photographer string `json:"photographer"`
	} `json:"photos"`
}

func (c *PexelsClient) Search(ctx context.Context, query string) ([]Reference, error) {
	if !c.Available() {
		return nil, notConfigured(c.Name())
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(searchPageSize))
	params.Set("orientation", "square")

	req, err := http.NewRequestWithContext(ctx, "GET", c.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, invalidResponse(c.Name(), "failed to build request", err)
	}
	req.Header.Set("Authorization", c.cfg.APIKey)

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

	var parsed pexelsResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, invalidResponse(c.Name(), "failed to decode response", err)
	}

	refs := make([]Reference, 0, len(parsed.Photos))
	for _, photo := range parsed.Photos {
		if photo.Src.Large == "" {
			continue
		}
		refs = append(refs, Reference{
			URL:          photo.Src.Large,
			Thumbnail:    photo.Src.Medium,
			Title:        photo.Alt,
			Width:        photo.Width,
			Height:       photo.Height,
			Source:       c.Name(),
			Photographer: photo.Photographer,
			SearchTerm:   query,
		})
	}
	return refs, nil
}

// searchPageSize is how many photos each search provider is asked for per
// query.
const searchPageSize = 10
