package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/config"
	"github.com/ignite/campaignforge/internal/provider"
)

type fakeChat struct {
	name    string
	reply   string
	err     error
	calls   int
	offline bool
}

func (f *fakeChat) Name() string    { return f.name }
func (f *fakeChat) Available() bool { return !f.offline }
func (f *fakeChat) Complete(ctx context.Context, req provider.ChatRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeImage struct {
	name  string
	url   string
	err   error
	calls int
}

func (f *fakeImage) Name() string    { return f.name }
func (f *fakeImage) Available() bool { return true }
func (f *fakeImage) Generate(ctx context.Context, prompt campaign.ImagePrompt) (provider.ImageResult, error) {
	f.calls++
	if f.err != nil {
		return provider.ImageResult{}, f.err
	}
	return provider.ImageResult{URLOrData: f.url}, nil
}

type fakeSearch struct {
	name string
	refs []provider.Reference
	err  error
}

func (f *fakeSearch) Name() string    { return f.name }
func (f *fakeSearch) Available() bool { return true }
func (f *fakeSearch) Search(ctx context.Context, query string) ([]provider.Reference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.refs, nil
}

func testConfig() config.PipelineConfig {
	return config.PipelineConfig{
		DefaultCopyCount:  3,
		DefaultImageCount: 3,
		MaxItemCount:      10,
		ImageConcurrency:  3,
	}
}

func TestRunAllProvidersUnavailable(t *testing.T) {
	p := New(&Selector{}, testConfig())

	result, err := p.Run(context.Background(), "iPhone 15 Pro Max 256GB seminovo", 3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Analysis.Brand != "Apple" {
		t.Errorf("brand = %q, want Apple", result.Analysis.Brand)
	}
	if result.Analysis.Condition != campaign.ConditionRefurbished {
		t.Errorf("condition = %q, want refurbished", result.Analysis.Condition)
	}
	if len(result.Copies) != 3 {
		t.Fatalf("copies = %d, want 3", len(result.Copies))
	}
	if len(result.Images) != 5 {
		t.Fatalf("images = %d, want 5", len(result.Images))
	}

	for i, c := range result.Copies {
		if c.ID != i+1 {
			t.Errorf("copy id = %d, want %d", c.ID, i+1)
		}
		if c.Text == "" || len([]rune(c.Text)) > maxCopyLength {
			t.Errorf("copy %d text invalid: %q", c.ID, c.Text)
		}
		if c.Provenance != campaign.ProvenanceTemplate {
			t.Errorf("copy %d provenance = %q, want %q", c.ID, c.Provenance, campaign.ProvenanceTemplate)
		}
	}
	for i, img := range result.Images {
		if img.ID != i+1 {
			t.Errorf("image id = %d, want %d", img.ID, i+1)
		}
		if img.URLOrData == "" {
			t.Errorf("image %d has empty URL", img.ID)
		}
		if img.Provenance != campaign.ProvenancePlaceholder {
			t.Errorf("image %d provenance = %q, want %q", img.ID, img.Provenance, campaign.ProvenancePlaceholder)
		}
	}

	stats := result.Stats
	if stats.RealAnalysis || stats.RealCopies != 0 || stats.RealImages != 0 {
		t.Errorf("stats claim real output under total failure: %+v", stats)
	}
	if stats.MockCopies != 3 || stats.MockImages != 5 {
		t.Errorf("mock counts = %d/%d, want 3/5", stats.MockCopies, stats.MockImages)
	}
}

func TestRunEmptyPrompt(t *testing.T) {
	p := New(&Selector{}, testConfig())
	if _, err := p.Run(context.Background(), "   ", 3, 3); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("err = %v, want ErrEmptyPrompt", err)
	}
}

func TestRunClampsCounts(t *testing.T) {
	p := New(&Selector{}, testConfig())

	result, err := p.Run(context.Background(), "notebook", 0, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Copies) != 3 {
		t.Errorf("zero copy count should use the default of 3, got %d", len(result.Copies))
	}
	if len(result.Images) != 10 {
		t.Errorf("image count should clamp to 10, got %d", len(result.Images))
	}
}

func TestRunPartialDegradation(t *testing.T) {
	// Copywriting works, analysis and images have nothing configured.
	copyProvider := &fakeChat{name: "groq", reply: `{"title": "Oferta", "text": "📱 iPhone em oferta, garanta o seu!"}`}
	s := &Selector{copy: []provider.ChatClient{copyProvider}}
	p := New(s, testConfig())

	result, err := p.Run(context.Background(), "iphone usado", 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.RealAnalysis {
		t.Error("analysis should be heuristic")
	}
	if result.Stats.RealCopies != 2 || result.Stats.MockCopies != 0 {
		t.Errorf("copy stats = %+v, want 2 real", result.Stats)
	}
	for _, c := range result.Copies {
		if c.Provenance != "groq" {
			t.Errorf("copy provenance = %q, want groq", c.Provenance)
		}
	}
	if result.Stats.RealImages != 0 || result.Stats.MockImages != 2 {
		t.Errorf("image stats = %+v, want 2 mock", result.Stats)
	}
}

func TestRunChainAdvancesOnFailure(t *testing.T) {
	failing := &fakeChat{name: "groq", err: &provider.Error{Provider: "groq", Kind: provider.KindRateLimited, Detail: "429"}}
	working := &fakeChat{name: "openai", reply: `{"title": "T", "text": "texto curto"}`}
	s := &Selector{copy: []provider.ChatClient{failing, working}}
	p := New(s, testConfig())

	result, err := p.Run(context.Background(), "tablet", 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failing.calls != 1 {
		t.Errorf("failing provider called %d times, want exactly 1 (no same-provider retry)", failing.calls)
	}
	if result.Copies[0].Provenance != "openai" {
		t.Errorf("provenance = %q, want openai", result.Copies[0].Provenance)
	}
}

func TestRunOverlongCopyFallsBack(t *testing.T) {
	long := &fakeChat{name: "groq", reply: `{"title": "T", "text": "` + strings.Repeat("a", 200) + `"}`}
	s := &Selector{copy: []provider.ChatClient{long}}
	p := New(s, testConfig())

	result, err := p.Run(context.Background(), "tablet", 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Copies[0].Provenance != campaign.ProvenanceTemplate {
		t.Errorf("overlong copy should fall back, got provenance %q", result.Copies[0].Provenance)
	}
}

func TestRunRealAnalysisOverlay(t *testing.T) {
	analysisProvider := &fakeChat{name: "openai", reply: `{"product_name": "iPhone 15", "product_type": "smartphone", "brand": "Apple", "price_low": 4000, "price_high": 4800, "recommended_strategy": "premium"}`}
	s := &Selector{analysis: []provider.ChatClient{analysisProvider}}
	p := New(s, testConfig())

	result, err := p.Run(context.Background(), "iphone 15", 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Stats.RealAnalysis {
		t.Error("analysis should count as real")
	}
	if result.Analysis.PriceRange.Low != 4000 || result.Analysis.PriceRange.High != 4800 {
		t.Errorf("price range = %+v, want provider values", result.Analysis.PriceRange)
	}
	if result.Analysis.RecommendedStrategy != "PREMIUM" {
		t.Errorf("strategy = %q, want PREMIUM", result.Analysis.RecommendedStrategy)
	}
	// Heuristic fields survive where the provider was silent.
	if result.Analysis.TargetAudience == "" || len(result.Analysis.SellingPoints) == 0 {
		t.Error("heuristic defaults should fill unanswered fields")
	}
}

func TestRunImagesUseReferencesBeforePlaceholders(t *testing.T) {
	search := &fakeSearch{name: "pexels", refs: []provider.Reference{
		{URL: "https://example.com/a.jpg", Title: "iphone", Width: 1000, Source: "pexels"},
		{URL: "https://example.com/b.jpg", Title: "iphone", Width: 900, Source: "pexels"},
	}}
	s := &Selector{search: []provider.SearchClient{search}}
	p := New(s, testConfig())

	result, err := p.Run(context.Background(), "iphone", 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, img := range result.Images {
		if img.Provenance != campaign.ProvenanceReference {
			t.Errorf("image provenance = %q, want %q", img.Provenance, campaign.ProvenanceReference)
		}
		if !strings.HasPrefix(img.URLOrData, "https://example.com/") {
			t.Errorf("image URL = %q, want a reference URL", img.URLOrData)
		}
	}
	if result.Stats.ReferencesFound != 2 {
		t.Errorf("references found = %d, want 2", result.Stats.ReferencesFound)
	}
}

func TestRunImageOrderingStable(t *testing.T) {
	img := &fakeImage{name: "stability", url: "data:image/png;base64,AAAA"}
	s := &Selector{image: []provider.ImageClient{img}}
	p := New(s, testConfig())

	result, err := p.Run(context.Background(), "notebook gamer", 3, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, got := range result.Images {
		if got.ID != i+1 {
			t.Fatalf("image %d has id %d, ordering not stable", i, got.ID)
		}
	}
	if img.calls != 6 {
		t.Errorf("image provider called %d times, want 6", img.calls)
	}
	if result.Stats.RealImages != 6 {
		t.Errorf("real images = %d, want 6", result.Stats.RealImages)
	}
}

func TestFallbackCopiesCoverAllStrategies(t *testing.T) {
	analysis := campaign.ProductAnalysis{ProductName: "Produto de teste com nome bastante comprido para validar o limite"}
	for _, strategy := range campaign.AllStrategies {
		c := FallbackCopy(analysis, 1, strategy)
		if c.Text == "" {
			t.Errorf("%s: empty fallback text", strategy)
		}
		if n := len([]rune(c.Text)); n > maxCopyLength {
			t.Errorf("%s: fallback text %d chars, limit %d", strategy, n, maxCopyLength)
		}
		if c.Strategy != strategy {
			t.Errorf("%s: strategy not carried", strategy)
		}
	}
}

func TestSelectStrategies(t *testing.T) {
	tests := []struct {
		name     string
		analysis campaign.ProductAnalysis
		count    int
		expected []campaign.Strategy
	}{
		{
			name:     "gaming leads with urgency",
			analysis: campaign.ProductAnalysis{UsageCategory: "gaming"},
			count:    3,
			expected: []campaign.Strategy{campaign.StrategyUrgency, campaign.StrategyPremium, campaign.StrategyLifestyle},
		},
		{
			name:     "notebook is professional",
			analysis: campaign.ProductAnalysis{ProductType: "notebook", UsageCategory: "casual"},
			count:    3,
			expected: []campaign.Strategy{campaign.StrategyProfessional, campaign.StrategyPremium, campaign.StrategyValue},
		},
		{
			name:     "premium recommendation",
			analysis: campaign.ProductAnalysis{UsageCategory: "premium", RecommendedStrategy: "PREMIUM"},
			count:    2,
			expected: []campaign.Strategy{campaign.StrategyPremium, campaign.StrategyLifestyle},
		},
		{
			name:     "default",
			analysis: campaign.ProductAnalysis{UsageCategory: "casual"},
			count:    3,
			expected: []campaign.Strategy{campaign.StrategyValue, campaign.StrategyUrgency, campaign.StrategyPremium},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectStrategies(tt.analysis, tt.count)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d strategies, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("strategy[%d] = %s, want %s", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestSelectStrategiesPadsWithoutRepeats(t *testing.T) {
	got := selectStrategies(campaign.ProductAnalysis{UsageCategory: "casual"}, 6)
	seen := make(map[campaign.Strategy]bool)
	for _, s := range got {
		if seen[s] {
			t.Errorf("strategy %s repeated within the first 6", s)
		}
		seen[s] = true
	}
	if len(got) != 6 {
		t.Errorf("got %d strategies, want 6", len(got))
	}
}
