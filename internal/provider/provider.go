// Package provider contains thin clients for the external AI and image
// services the pipeline can call. Every client makes exactly one attempt per
// call, enforces its own timeout, and reports failures as a typed *Error so
// the stage executor can treat a timeout, a rate limit and a malformed
// response uniformly.
package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ignite/campaignforge/internal/campaign"
)

// ChatRequest is a single chat-completion request.
type ChatRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	// WantJSON asks the client to strip markdown fences from the reply and
	// verify it parses as JSON; anything else is an InvalidResponse.
	WantJSON bool
}

// ChatClient is a chat-completion provider (analysis, copywriting and
// image-prompt writing all go through this capability).
type ChatClient interface {
	Name() string
	Available() bool
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ImageClient is a text-to-image provider.
type ImageClient interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt campaign.ImagePrompt) (ImageResult, error)
}

// ImageResult is the output of one image generation call.
type ImageResult struct {
	// URLOrData is an http(s) URL or a base64 data URI.
	URLOrData string
}

// SearchClient is a licensed-photo search provider.
type SearchClient interface {
	Name() string
	Available() bool
	Search(ctx context.Context, query string) ([]Reference, error)
}

// Reference is one photo found by an image-search provider.
type Reference struct {
	URL          string `json:"url"`
	Thumbnail    string `json:"thumbnail"`
	Title        string `json:"title"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Source       string `json:"source"`
	Photographer string `json:"photographer"`
	SearchTerm   string `json:"search_term"`
	Score        int    `json:"score"`
}

// CleanJSON strips markdown code fences that chat models wrap around JSON
// payloads despite being asked not to.
func CleanJSON(content string) string {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
		return strings.TrimSpace(content)
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
		return strings.TrimSpace(content)
	}
	return content
}

// finishChat applies the WantJSON post-processing shared by all chat clients.
func finishChat(name, content string, req ChatRequest) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", &Error{Provider: name, Kind: KindInvalidResponse, Detail: "empty completion"}
	}
	if req.WantJSON {
		content = CleanJSON(content)
		if !json.Valid([]byte(content)) {
			return "", &Error{Provider: name, Kind: KindInvalidResponse, Detail: "completion is not valid JSON"}
		}
	}
	return content, nil
}
