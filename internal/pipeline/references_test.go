package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/provider"
)

func TestRankReferencesDedupesAndOrders(t *testing.T) {
	analysis := campaign.ProductAnalysis{ProductName: "iPhone 15 seminovo", ProductType: "smartphone"}
	refs := []provider.Reference{
		{URL: "https://a.example/1.jpg", Title: "office desk", Width: 400, Source: "pixabay"},
		{URL: "https://a.example/2.jpg", Title: "iphone 15 on table", SearchTerm: "iphone 15", Width: 1200, Source: "unsplash"},
		{URL: "https://a.example/2.jpg", Title: "duplicate", Width: 1200, Source: "unsplash"},
		{URL: "https://a.example/3.jpg", Title: "iphone close-up", SearchTerm: "iphone", Width: 600, Source: "pexels"},
		{URL: "", Title: "no url"},
	}

	ranked := rankReferences(refs, analysis)
	if len(ranked) != 3 {
		t.Fatalf("got %d references, want 3 after dedupe", len(ranked))
	}
	if ranked[0].URL != "https://a.example/2.jpg" {
		t.Errorf("best reference = %q, want the unsplash iphone match", ranked[0].URL)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("references not sorted by score: %d before %d", ranked[i-1].Score, ranked[i].Score)
		}
	}
}

func TestRankReferencesCapsAtMax(t *testing.T) {
	analysis := campaign.ProductAnalysis{ProductName: "tablet"}
	refs := make([]provider.Reference, 0, 20)
	for i := 0; i < 20; i++ {
		refs = append(refs, provider.Reference{URL: string(rune('a'+i)) + ".jpg", Title: "tablet"})
	}
	if got := rankReferences(refs, analysis); len(got) != maxReferences {
		t.Errorf("got %d references, want cap of %d", len(got), maxReferences)
	}
}

func TestCleanProductNameStripsNoise(t *testing.T) {
	got := cleanProductName("iPhone 15 Pro Max 256GB seminovo")
	if got != "iphone 15 pro max" {
		t.Errorf("got %q, want %q", got, "iphone 15 pro max")
	}
}

func TestSearchReferencesAdvancesChain(t *testing.T) {
	failing := &fakeSearch{name: "pexels", err: errors.New("down")}
	working := &fakeSearch{name: "unsplash", refs: []provider.Reference{
		{URL: "https://u.example/1.jpg", Title: "notebook", Width: 900, Source: "unsplash"},
	}}
	analysis := campaign.ProductAnalysis{ProductName: "notebook", ProductType: "notebook"}

	refs := searchReferences(context.Background(), []provider.SearchClient{failing, working}, analysis)
	if len(refs) != 1 {
		t.Fatalf("got %d references, want 1 from the second provider", len(refs))
	}
	if refs[0].Source != "unsplash" {
		t.Errorf("source = %q, want unsplash", refs[0].Source)
	}
}

func TestSearchReferencesEmptyChain(t *testing.T) {
	if refs := searchReferences(context.Background(), nil, campaign.ProductAnalysis{ProductName: "x"}); refs != nil {
		t.Errorf("expected nil references for empty chain, got %v", refs)
	}
}
