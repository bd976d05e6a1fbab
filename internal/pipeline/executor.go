package pipeline

import (
	"context"
	"log"

	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/provider"
)

// runChat walks a chat chain in order. decode turns a completion into the
// stage payload; a decode failure counts as an invalid response and advances
// the chain like any provider error. One attempt per provider. The chain
// itself is the retry mechanism.
//
// Returns the payload and the name of the provider that produced it, or
// ok=false when the chain is exhausted and the caller must use its local
// fallback.
func runChat[T any](ctx context.Context, stage string, chain []provider.ChatClient, req provider.ChatRequest, decode func(string) (T, error)) (out T, providerName string, ok bool) {
	for _, client := range chain {
		content, err := client.Complete(ctx, req)
		if err != nil {
			log.Printf("[pipeline] %s: %s failed, trying next: %v", stage, client.Name(), err)
			continue
		}
		payload, err := decode(content)
		if err != nil {
			log.Printf("[pipeline] %s: %s returned unusable payload, trying next: %v", stage, client.Name(), err)
			continue
		}
		return payload, client.Name(), true
	}
	return out, "", false
}

// runImage walks an image chain the same way.
func runImage(ctx context.Context, chain []provider.ImageClient, prompt campaign.ImagePrompt) (provider.ImageResult, string, bool) {
	for _, client := range chain {
		result, err := client.Generate(ctx, prompt)
		if err != nil {
			log.Printf("[pipeline] image: %s failed, trying next: %v", client.Name(), err)
			continue
		}
		if result.URLOrData == "" {
			log.Printf("[pipeline] image: %s returned empty result, trying next", client.Name())
			continue
		}
		return result, client.Name(), true
	}
	return provider.ImageResult{}, "", false
}
