package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ignite/campaignforge/internal/analyzer"
	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/config"
	"github.com/ignite/campaignforge/internal/imaging"
	"github.com/ignite/campaignforge/internal/provider"
)

// ErrEmptyPrompt rejects requests with nothing to analyze. It is the only
// error Run surfaces to callers.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// blankImage stands in when even the placeholder renderer fails, which
// would take an out-of-memory condition. A 1x1 transparent PNG.
const blankImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// Pipeline runs the generation stages for one request at a time.
type Pipeline struct {
	selector *Selector
	cfg      config.PipelineConfig
}

// New builds a pipeline over the given provider selection.
func New(selector *Selector, cfg config.PipelineConfig) *Pipeline {
	return &Pipeline{selector: selector, cfg: cfg}
}

// Run generates a full campaign for the prompt. Counts outside [1, max] are
// clamped; zero means the configured default. The result always carries
// exactly the requested number of copies and images, with provenance and
// stats reflecting how many came from real providers.
func (p *Pipeline) Run(ctx context.Context, prompt string, copyCount, imageCount int) (*campaign.Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	copyCount = p.clampCount(copyCount, p.cfg.DefaultCopyCount)
	imageCount = p.clampCount(imageCount, p.cfg.DefaultImageCount)

	analysis, realAnalysis := p.analyze(ctx, prompt)
	strategies := selectStrategies(analysis, copyCount)

	copies := p.generateCopies(ctx, analysis, strategies)
	prompts := p.generatePrompts(ctx, analysis, strategies, imageCount)
	refs := searchReferences(ctx, p.selector.SearchChain(), analysis)
	images := p.generateImages(ctx, analysis, prompts, refs)

	result := &campaign.Result{
		Analysis: analysis,
		Copies:   copies,
		Images:   images,
		Campaign: composeCampaign(analysis, copies, images),
		Stats:    buildStats(realAnalysis, copies, images, len(refs)),
	}
	log.Printf("[pipeline] generated campaign for %q: %d/%d real copies, %d/%d real images, %d references",
		prompt, result.Stats.RealCopies, len(copies), result.Stats.RealImages, len(images), len(refs))
	return result, nil
}

func (p *Pipeline) clampCount(n, fallback int) int {
	if n == 0 {
		n = fallback
	}
	if n < 1 {
		n = 1
	}
	max := p.cfg.MaxItemCount
	if max < 1 {
		max = 10
	}
	if n > max {
		n = max
	}
	return n
}

// analysisPayload is the JSON shape requested from analysis providers.
type analysisPayload struct {
	ProductName         string   `json:"product_name"`
	ProductType         string   `json:"product_type"`
	Brand               string   `json:"brand"`
	UsageCategory       string   `json:"usage_category"`
	Condition           string   `json:"condition"`
	PriceLow            int      `json:"price_low"`
	PriceHigh           int      `json:"price_high"`
	KeyFeatures         []string `json:"key_features"`
	TargetAudience      string   `json:"target_audience"`
	SellingPoints       []string `json:"selling_points"`
	RecommendedStrategy string   `json:"recommended_strategy"`
}

const analysisSystemPrompt = `Você é um analista de produtos para campanhas de marketing digital no Brasil.
Responda APENAS com JSON válido, sem markdown, no formato:
{"product_name": "...", "product_type": "smartphone|notebook|tablet|tv|headphones|smartwatch|speaker|generic", "brand": "...", "usage_category": "gaming|professional|premium|pet|plant|service|casual", "condition": "new|used|refurbished", "price_low": 0, "price_high": 0, "key_features": ["..."], "target_audience": "...", "selling_points": ["..."], "recommended_strategy": "URGENCY|PREMIUM|VALUE|PROFESSIONAL|COMMERCIAL|LIFESTYLE"}
Preços em reais, faixa realista do mercado atual.`

// analyze runs the analysis chain and falls back to the local classifier.
// Provider answers are overlaid on the heuristic result so partially filled
// payloads still come out complete.
func (p *Pipeline) analyze(ctx context.Context, prompt string) (campaign.ProductAnalysis, bool) {
	base := analyzer.Analyze(prompt)

	req := provider.ChatRequest{
		System:      analysisSystemPrompt,
		User:        fmt.Sprintf("Analise este produto: %s", prompt),
		Temperature: 0.3,
		MaxTokens:   800,
		WantJSON:    true,
	}
	payload, _, ok := runChat(ctx, "analysis", p.selector.AnalysisChain(), req, func(content string) (analysisPayload, error) {
		var parsed analysisPayload
		if err := json.Unmarshal([]byte(content), &parsed); err != nil {
			return parsed, err
		}
		if parsed.ProductName == "" || parsed.ProductType == "" {
			return parsed, errors.New("missing product_name or product_type")
		}
		return parsed, nil
	})
	if !ok {
		return base, false
	}

	merged := base
	merged.ProductName = payload.ProductName
	merged.ProductType = payload.ProductType
	if payload.Brand != "" {
		merged.Brand = payload.Brand
	}
	if payload.UsageCategory != "" {
		merged.UsageCategory = payload.UsageCategory
	}
	if cond := campaign.Condition(payload.Condition); cond == campaign.ConditionNew ||
		cond == campaign.ConditionUsed || cond == campaign.ConditionRefurbished {
		merged.Condition = cond
	}
	if payload.PriceLow > 0 && payload.PriceHigh > payload.PriceLow {
		merged.PriceRange = campaign.PriceRange{Low: payload.PriceLow, High: payload.PriceHigh, Currency: "BRL"}
	}
	if len(payload.KeyFeatures) > 0 {
		merged.KeyFeatures = payload.KeyFeatures
	}
	if payload.TargetAudience != "" {
		merged.TargetAudience = payload.TargetAudience
	}
	if len(payload.SellingPoints) > 0 {
		merged.SellingPoints = payload.SellingPoints
	}
	if payload.RecommendedStrategy != "" {
		merged.RecommendedStrategy = strings.ToUpper(payload.RecommendedStrategy)
	}
	return merged, true
}

// copyPayload is the JSON shape requested from copywriting providers.
type copyPayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

const copySystemPrompt = `Você é um copywriter de anúncios para o mercado brasileiro.
Responda APENAS com JSON válido, sem markdown: {"title": "...", "text": "..."}.
O campo "text" deve ter no máximo 120 caracteres, com emoji inicial e chamada para ação.`

// generateCopies produces one copy per strategy, falling back per copy so a
// single provider failure degrades only that variation.
func (p *Pipeline) generateCopies(ctx context.Context, analysis campaign.ProductAnalysis, strategies []campaign.Strategy) []campaign.CopyVariation {
	copies := make([]campaign.CopyVariation, len(strategies))
	for i, strategy := range strategies {
		id := i + 1
		req := provider.ChatRequest{
			System: copySystemPrompt,
			User: fmt.Sprintf("Produto: %s\nEstratégia: %s\nPúblico: %s\nPontos de venda: %s",
				analysis.ProductName, strategy, analysis.TargetAudience, strings.Join(analysis.SellingPoints, ", ")),
			Temperature: 0.8,
			MaxTokens:   300,
			WantJSON:    true,
		}
		payload, providerName, ok := runChat(ctx, "copy", p.selector.CopyChain(), req, func(content string) (copyPayload, error) {
			var parsed copyPayload
			if err := json.Unmarshal([]byte(content), &parsed); err != nil {
				return parsed, err
			}
			if strings.TrimSpace(parsed.Text) == "" {
				return parsed, errors.New("empty copy text")
			}
			if len([]rune(parsed.Text)) > maxCopyLength {
				return parsed, fmt.Errorf("copy text over %d chars", maxCopyLength)
			}
			return parsed, nil
		})
		if !ok {
			copies[i] = FallbackCopy(analysis, id, strategy)
			continue
		}

		title := strings.TrimSpace(payload.Title)
		if title == "" {
			title = fmt.Sprintf("Copy %s", strategy)
		}
		copies[i] = campaign.CopyVariation{
			ID:           id,
			Title:        title,
			Text:         strings.TrimSpace(payload.Text),
			Strategy:     strategy,
			Confidence:   0.9,
			EstimatedCTR: estimatedCTR(id),
			Provenance:   providerName,
		}
	}
	return copies
}

// promptPayload is the JSON shape requested from prompt-writing providers.
type promptPayload struct {
	Style       string `json:"style"`
	PromptText  string `json:"prompt_text"`
	Description string `json:"description"`
}

const promptSystemPrompt = `You write prompts for text-to-image models that produce advertising creatives.
Answer ONLY with a valid JSON array, no markdown: [{"style": "...", "prompt_text": "...", "description": "..."}].
Prompts in English, photographic, product-centered, no text overlays.`

// generatePrompts asks one provider for the whole prompt set; any failure
// falls back to the per-strategy templates. Prompts align with copy
// strategies by rotation so images and copies tell one story.
func (p *Pipeline) generatePrompts(ctx context.Context, analysis campaign.ProductAnalysis, strategies []campaign.Strategy, count int) []campaign.ImagePrompt {
	promptStrategies := make([]campaign.Strategy, count)
	for i := range promptStrategies {
		promptStrategies[i] = strategies[i%len(strategies)]
	}

	req := provider.ChatRequest{
		System: promptSystemPrompt,
		User: fmt.Sprintf("Product: %s (%s). Write %d image prompts, one per strategy: %s",
			analysis.ProductName, analysis.ProductType, count, joinStrategies(promptStrategies)),
		Temperature: 0.7,
		MaxTokens:   200 * count,
		WantJSON:    true,
	}
	payloads, _, ok := runChat(ctx, "image-prompt", p.selector.PromptChain(), req, func(content string) ([]promptPayload, error) {
		var parsed []promptPayload
		if err := json.Unmarshal([]byte(content), &parsed); err != nil {
			return nil, err
		}
		if len(parsed) == 0 {
			return nil, errors.New("empty prompt list")
		}
		for _, item := range parsed {
			if strings.TrimSpace(item.PromptText) == "" {
				return nil, errors.New("prompt with empty prompt_text")
			}
		}
		return parsed, nil
	})

	prompts := make([]campaign.ImagePrompt, count)
	for i := range prompts {
		id := i + 1
		if ok && i < len(payloads) {
			style := payloads[i].Style
			if style == "" {
				style = strategyStyle(promptStrategies[i])
			}
			prompts[i] = campaign.ImagePrompt{
				ID:          id,
				Style:       style,
				Strategy:    string(promptStrategies[i]),
				PromptText:  strings.TrimSpace(payloads[i].PromptText),
				Description: payloads[i].Description,
			}
			continue
		}
		prompts[i] = FallbackImagePrompt(analysis, id, promptStrategies[i])
	}
	return prompts
}

// generateImages runs the image chain per prompt with bounded concurrency.
// Results land by index so output order matches prompt order regardless of
// completion order. Every slot is filled: provider, then reference photo,
// then locally rendered placeholder.
func (p *Pipeline) generateImages(ctx context.Context, analysis campaign.ProductAnalysis, prompts []campaign.ImagePrompt, refs []provider.Reference) []campaign.GeneratedImage {
	images := make([]campaign.GeneratedImage, len(prompts))

	limit := p.cfg.ImageConcurrency
	if limit < 1 {
		limit = 3
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i, prompt := range prompts {
		g.Go(func() error {
			images[i] = p.generateImage(ctx, analysis, prompt, refs, i)
			return nil
		})
	}
	// Goroutines never return an error; fallback tiers are total.
	_ = g.Wait()
	return images
}

func (p *Pipeline) generateImage(ctx context.Context, analysis campaign.ProductAnalysis, prompt campaign.ImagePrompt, refs []provider.Reference, index int) campaign.GeneratedImage {
	result, providerName, ok := runImage(ctx, p.selector.ImageChain(), prompt)
	if ok {
		return campaign.GeneratedImage{
			ID:         prompt.ID,
			URLOrData:  result.URLOrData,
			Style:      prompt.Style,
			Strategy:   prompt.Strategy,
			Provenance: providerName,
			Confidence: 0.9,
		}
	}

	if len(refs) > 0 {
		ref := refs[index%len(refs)]
		return campaign.GeneratedImage{
			ID:         prompt.ID,
			URLOrData:  ref.URL,
			Style:      prompt.Style,
			Strategy:   prompt.Strategy,
			Provenance: campaign.ProvenanceReference,
			Confidence: 0.6,
		}
	}

	uri, err := imaging.Placeholder(analysis.Brand, prompt)
	if err != nil {
		log.Printf("[pipeline] image: placeholder render failed: %v", err)
		uri = blankImage
	}
	return campaign.GeneratedImage{
		ID:         prompt.ID,
		URLOrData:  uri,
		Style:      prompt.Style,
		Strategy:   prompt.Strategy,
		Provenance: campaign.ProvenancePlaceholder,
		Confidence: 0.3,
	}
}

func buildStats(realAnalysis bool, copies []campaign.CopyVariation, images []campaign.GeneratedImage, refsFound int) campaign.GenerationStats {
	stats := campaign.GenerationStats{RealAnalysis: realAnalysis, ReferencesFound: refsFound}
	for _, c := range copies {
		if campaign.IsFallbackProvenance(c.Provenance) {
			stats.MockCopies++
		} else {
			stats.RealCopies++
		}
	}
	for _, img := range images {
		if campaign.IsFallbackProvenance(img.Provenance) {
			stats.MockImages++
		} else {
			stats.RealImages++
		}
	}
	return stats
}

func joinStrategies(strategies []campaign.Strategy) string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
