package pipeline

import (
	"fmt"
	"strings"

	"github.com/osteele/liquid"

	"github.com/ignite/campaignforge/internal/campaign"
)

// maxCopyLength bounds the ad text in characters, matching the platform
// limit the copies are written for.
const maxCopyLength = 120

// copyTemplates are the per-strategy templates used when every copywriting
// provider fails. Rendered with the product name, they are always non-empty
// and under the length limit.
var copyTemplates = map[campaign.Strategy]string{
	campaign.StrategyUrgency:      "🔥 {{ produto }} - Últimas unidades! Aproveite agora!",
	campaign.StrategyPremium:      "✨ {{ produto }} - Exclusividade e qualidade premium!",
	campaign.StrategyValue:        "💰 {{ produto }} - Melhor preço do mercado!",
	campaign.StrategyProfessional: "⚡ {{ produto }} - Performance profissional!",
	campaign.StrategyCommercial:   "🛒 {{ produto }} - Oferta imperdível, compre hoje!",
	campaign.StrategyLifestyle:    "📱 {{ produto }} - Transforme seu dia a dia!",
}

// promptTemplates build the image generation prompt per strategy when the
// prompt-writing providers fail.
var promptTemplates = map[campaign.Strategy]string{
	campaign.StrategyUrgency:      "Professional product photography of {{ produto }}, vibrant red accents, dynamic composition, dramatic lighting, commercial advertising style",
	campaign.StrategyPremium:      "Professional product photography of {{ produto }}, elegant dark background, gold accents, luxury presentation, studio lighting",
	campaign.StrategyValue:        "Professional product photography of {{ produto }}, clean bright background, approachable composition, natural lighting",
	campaign.StrategyProfessional: "Professional product photography of {{ produto }}, minimal office setting, blue tones, crisp studio lighting",
	campaign.StrategyCommercial:   "Professional product photography of {{ produto }}, retail display setting, warm orange tones, attention-grabbing composition",
	campaign.StrategyLifestyle:    "Lifestyle photography of {{ produto }} in everyday use, warm natural light, aspirational mood, shallow depth of field",
}

var templateEngine = liquid.NewEngine()

// renderTemplate renders a liquid template with the product bound. Template
// errors cannot happen with the static table above, but a plain rendering of
// the product name keeps the fallback total regardless.
func renderTemplate(tmpl, productName string) string {
	out, err := templateEngine.ParseAndRenderString(tmpl, liquid.Bindings{"produto": productName})
	if err != nil {
		return productName
	}
	return out
}

// FallbackCopy builds a deterministic copy variation for the strategy.
func FallbackCopy(analysis campaign.ProductAnalysis, id int, strategy campaign.Strategy) campaign.CopyVariation {
	tmpl, ok := copyTemplates[strategy]
	if !ok {
		tmpl = "{{ produto }} - Oportunidade única!"
	}

	name := truncate(analysis.ProductName, 60)
	text := truncate(renderTemplate(tmpl, name), maxCopyLength)

	return campaign.CopyVariation{
		ID:           id,
		Title:        fmt.Sprintf("Copy %s", strategy),
		Text:         text,
		Strategy:     strategy,
		Confidence:   0.78,
		EstimatedCTR: estimatedCTR(id),
		Provenance:   campaign.ProvenanceTemplate,
	}
}

// FallbackImagePrompt builds a deterministic rendering instruction for the
// strategy.
func FallbackImagePrompt(analysis campaign.ProductAnalysis, id int, strategy campaign.Strategy) campaign.ImagePrompt {
	tmpl, ok := promptTemplates[strategy]
	if !ok {
		tmpl = promptTemplates[campaign.StrategyValue]
	}

	return campaign.ImagePrompt{
		ID:          id,
		Style:       strategyStyle(strategy),
		Strategy:    string(strategy),
		PromptText:  renderTemplate(tmpl, analysis.ProductName),
		Description: fmt.Sprintf("%s creative for %s", strategy, analysis.ProductName),
	}
}

func strategyStyle(strategy campaign.Strategy) string {
	switch strategy {
	case campaign.StrategyUrgency:
		return "dynamic"
	case campaign.StrategyPremium:
		return "luxury"
	case campaign.StrategyProfessional:
		return "corporate"
	case campaign.StrategyCommercial:
		return "retail"
	case campaign.StrategyLifestyle:
		return "lifestyle"
	}
	return "clean"
}

// estimatedCTR is a heuristic range marker, not a prediction.
func estimatedCTR(id int) string {
	return fmt.Sprintf("%.1f%%", 3.2+0.4*float64(id-1))
}

// truncate cuts s to at most n runes, keeping multi-byte text intact.
func truncate(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n])
}
