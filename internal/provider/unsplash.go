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

// UnsplashClient searches licensed stock photos on Unsplash.
type UnsplashClient struct {
	cfg    config.SearchAPIConfig
	client *http.Client
}

// NewUnsplash returns a SearchClient backed by Unsplash.
func NewUnsplash(cfg config.SearchAPIConfig) *UnsplashClient {
	return &UnsplashClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *UnsplashClient) Name() string { return "unsplash" }

func (c *UnsplashClient) Available() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

type unsplashResponse struct {
	Results []struct {
		Width          int    `json:"width"`
		Height         int    `json:"height"`
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

func (c *UnsplashClient) Search(ctx context.Context, query string) ([]Reference, error) {
	if !c.Available() {
		return nil, notConfigured(c.Name())
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(searchPageSize))

	req, err := http.NewRequestWithContext(ctx, "GET", c.cfg.BaseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, invalidResponse(c.Name(), "failed to build request", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.cfg.APIKey)

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

	var parsed unsplashResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, invalidResponse(c.Name(), "failed to decode response", err)
	}

	refs := make([]Reference, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		if result.URLs.Regular == "" {
			continue
		}
		title := result.Description
		if title == "" {
			title = result.AltDescription
		}
		refs = append(refs, Reference{
			URL:          result.URLs.Regular,
			Thumbnail:    result.URLs.Small,
			Title:        title,
			Width:        result.Width,
			Height:       result.Height,
			Source:       c.Name(),
			Photographer: result.User.Name,
			SearchTerm:   query,
		})
	}
	return refs, nil
}
