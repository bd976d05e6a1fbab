// Generates a campaign entirely from the local fallback tiers and prints the
// result as JSON. Useful for inspecting heuristic output without a server or
// any credentials.
//
// Usage: go run scripts/generate_mock_campaign.go "iPhone 15 Pro Max 256GB seminovo"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ignite/campaignforge/internal/config"
	"github.com/ignite/campaignforge/internal/pipeline"
)

func main() {
	prompt := "iPhone 15 Pro Max 256GB seminovo"
	if len(os.Args) > 1 {
		prompt = strings.Join(os.Args[1:], " ")
	}

	selector := pipeline.NewSelector(pipeline.Providers{}, true)
	p := pipeline.New(selector, config.PipelineConfig{
		DefaultCopyCount:  3,
		DefaultImageCount: 3,
		MaxItemCount:      10,
		ImageConcurrency:  3,
	})

	result, err := p.Run(context.Background(), prompt, 3, 3)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	// Placeholder data URIs are huge; show their size instead.
	for i := range result.Images {
		if len(result.Images[i].URLOrData) > 120 {
			result.Images[i].URLOrData = fmt.Sprintf("(data URI, %d bytes)", len(result.Images[i].URLOrData))
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}
