package pipeline

import (
	"strings"

	"github.com/ignite/campaignforge/internal/campaign"
)

// selectStrategies picks count copy strategies for the analyzed product.
// Gaming products lean on urgency and desire, work machines on credibility,
// premium recommendations on exclusivity. When the rule names fewer
// strategies than requested, the fixed rotation pads the tail without
// repeats.
func selectStrategies(analysis campaign.ProductAnalysis, count int) []campaign.Strategy {
	var base []campaign.Strategy

	recommended := strings.ToUpper(analysis.RecommendedStrategy)
	switch {
	case analysis.UsageCategory == "gaming":
		base = []campaign.Strategy{campaign.StrategyUrgency, campaign.StrategyPremium, campaign.StrategyLifestyle}
	case analysis.UsageCategory == "professional",
		analysis.ProductType == "notebook",
		analysis.ProductType == "tablet":
		base = []campaign.Strategy{campaign.StrategyProfessional, campaign.StrategyPremium, campaign.StrategyValue}
	case recommended == string(campaign.StrategyPremium):
		base = []campaign.Strategy{campaign.StrategyPremium, campaign.StrategyLifestyle, campaign.StrategyProfessional}
	case recommended == string(campaign.StrategyUrgency):
		base = []campaign.Strategy{campaign.StrategyUrgency, campaign.StrategyValue, campaign.StrategyLifestyle}
	default:
		base = []campaign.Strategy{campaign.StrategyValue, campaign.StrategyUrgency, campaign.StrategyPremium}
	}

	if count <= len(base) {
		return base[:count]
	}

	seen := make(map[campaign.Strategy]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range campaign.AllStrategies {
		if len(base) == count {
			break
		}
		if !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	// More copies requested than distinct strategies exist; wrap around.
	for i := 0; len(base) < count; i++ {
		base = append(base, campaign.AllStrategies[i%len(campaign.AllStrategies)])
	}
	return base
}
