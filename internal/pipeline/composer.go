package pipeline

import (
	"fmt"
	"strings"

	"github.com/ignite/campaignforge/internal/campaign"
)

// campaignDurationDays is the standard flight length for generated
// campaigns.
const campaignDurationDays = 7

// dailyBudgetByType holds the suggested daily spend in BRL per product type.
var dailyBudgetByType = map[string]int{
	"smartphone": 200,
	"notebook":   250,
	"tablet":     180,
	"tv":         220,
	"pet":        120,
	"plant":      100,
	"service":    150,
}

const defaultDailyBudget = 150

// composeCampaign derives the campaign aggregate from the generated pieces.
// Pure function of its inputs.
func composeCampaign(analysis campaign.ProductAnalysis, copies []campaign.CopyVariation, images []campaign.GeneratedImage) campaign.Campaign {
	budgetKey := analysis.ProductType
	switch analysis.UsageCategory {
	case "pet", "plant", "service":
		budgetKey = analysis.UsageCategory
	}
	daily, ok := dailyBudgetByType[budgetKey]
	if !ok {
		daily = defaultDailyBudget
	}

	return campaign.Campaign{
		Name:      fmt.Sprintf("Campanha %s", firstWord(analysis.ProductName)),
		Objective: "CONVERSIONS",
		Budget: campaign.Budget{
			Daily:        daily,
			DurationDays: campaignDurationDays,
			Total:        daily * campaignDurationDays,
		},
		Targeting: campaign.Targeting{
			Product:  analysis.ProductName,
			Type:     analysis.ProductType,
			Audience: analysis.TargetAudience,
			Strategy: analysis.RecommendedStrategy,
		},
		Creatives: campaign.Creatives{
			Copies: copies,
			Images: images,
		},
		ExpectedMetrics: campaign.ExpectedMetrics{
			CTR:        "2.8% - 4.2%",
			Conversion: "30-80 leads",
			CPM:        "R$ 12 - 20",
		},
	}
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "Produto"
	}
	return fields[0]
}
