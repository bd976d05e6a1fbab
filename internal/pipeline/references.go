package pipeline

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/provider"
)

// maxReferences caps how many ranked photos feed the reference fallback.
const maxReferences = 8

// searchReferences collects licensed product photos from the search chain.
// Each query walks the chain until one provider answers; total failure just
// means an empty reference set, never an error.
func searchReferences(ctx context.Context, chain []provider.SearchClient, analysis campaign.ProductAnalysis) []provider.Reference {
	if len(chain) == 0 {
		return nil
	}

	queries := referenceQueries(analysis)
	var all []provider.Reference
	for _, query := range queries {
		for _, client := range chain {
			refs, err := client.Search(ctx, query)
			if err != nil {
				log.Printf("[pipeline] search: %s failed for %q, trying next: %v", client.Name(), query, err)
				continue
			}
			all = append(all, refs...)
			break
		}
	}
	return rankReferences(all, analysis)
}

func referenceQueries(analysis campaign.ProductAnalysis) []string {
	name := cleanProductName(analysis.ProductName)
	queries := []string{name}
	if analysis.ProductType != "generic" {
		queries = append(queries, analysis.ProductType+" product photography")
	}
	return queries
}

// cleanProductName strips condition and capacity noise so search engines see
// the product, not the listing.
func cleanProductName(name string) string {
	noise := []string{"seminovo", "seminova", "usado", "usada", "novo", "nova", "128gb", "256gb", "512gb", "1tb"}
	words := strings.Fields(strings.ToLower(name))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		skip := false
		for _, n := range noise {
			if w == n {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return strings.ToLower(name)
	}
	return strings.Join(kept, " ")
}

// rankReferences dedupes by URL, scores by keyword overlap with the product
// name plus resolution and source bonuses, and keeps the best few. The sort
// is stable so equal scores preserve provider order.
func rankReferences(refs []provider.Reference, analysis campaign.ProductAnalysis) []provider.Reference {
	seen := make(map[string]bool, len(refs))
	unique := make([]provider.Reference, 0, len(refs))
	for _, ref := range refs {
		if ref.URL == "" || seen[ref.URL] {
			continue
		}
		seen[ref.URL] = true
		ref.Score = scoreReference(ref, analysis)
		unique = append(unique, ref)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Score > unique[j].Score
	})
	if len(unique) > maxReferences {
		unique = unique[:maxReferences]
	}
	return unique
}

func scoreReference(ref provider.Reference, analysis campaign.ProductAnalysis) int {
	score := 0
	title := strings.ToLower(ref.Title)
	term := strings.ToLower(ref.SearchTerm)
	for _, word := range strings.Fields(cleanProductName(analysis.ProductName)) {
		if len(word) < 3 {
			continue
		}
		if strings.Contains(title, word) {
			score += 2
		}
		if strings.Contains(term, word) {
			score++
		}
	}

	if ref.Width >= 500 {
		score++
	}
	if ref.Width >= 800 {
		score++
	}

	switch ref.Source {
	case "unsplash":
		score += 2
	case "pexels":
		score++
	}
	return score
}
