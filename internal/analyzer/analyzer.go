// Package analyzer classifies a free-text product prompt without any
// network calls. It backs the last tier of the analysis fallback chain and
// must therefore be total: any string in, a usable ProductAnalysis out, the
// same one every time.
package analyzer

import (
	"strings"

	"github.com/ignite/campaignforge/internal/campaign"
)

// priceBand is the half-width of the reported price range in BRL.
const priceBand = 500

// minPrice keeps the low end of the range positive for cheap products.
const minPrice = 50

// Analyze derives a ProductAnalysis from the raw prompt using the keyword
// tables. Pure and deterministic.
func Analyze(rawPrompt string) campaign.ProductAnalysis {
	prompt := strings.ToLower(strings.TrimSpace(rawPrompt))

	entry := matchPattern(prompt)
	brand := detectBrand(prompt, entry)
	usage := detectUsage(prompt, brand)
	condition, multiplier := detectCondition(prompt)

	base := entry.basePrice
	for _, s := range storageIncrements {
		if strings.Contains(prompt, s.keyword) {
			base += s.increment
			break
		}
	}

	final := int(float64(base)*multiplier + 0.5)
	low := final - priceBand
	if low < minPrice {
		low = minPrice
	}

	name := strings.TrimSpace(rawPrompt)
	if name == "" {
		name = brand + " " + entry.productType
	}

	return campaign.ProductAnalysis{
		RawPrompt:     rawPrompt,
		ProductName:   name,
		ProductType:   entry.productType,
		Brand:         brand,
		UsageCategory: usage,
		Condition:     condition,
		PriceRange: campaign.PriceRange{
			Low:      low,
			High:     final + priceBand,
			Currency: "BRL",
		},
		KeyFeatures:         entry.features,
		TargetAudience:      targetAudience(brand, entry, usage),
		SellingPoints:       sellingPoints(entry, usage),
		RecommendedStrategy: recommendedStrategy(usage),
	}
}

func matchPattern(prompt string) patternEntry {
	for _, entry := range productPatterns {
		if strings.Contains(prompt, entry.phrase) {
			return entry
		}
	}
	return defaultPattern
}

// detectBrand falls back to a keyword scan when the matched pattern is
// brand-neutral, so "smart tv samsung" still reports Samsung.
func detectBrand(prompt string, entry patternEntry) string {
	if entry.brand != "Premium" {
		return entry.brand
	}
	for _, b := range brandKeywords {
		if strings.Contains(prompt, b.keyword) {
			return b.brand
		}
	}
	return entry.brand
}

func detectUsage(prompt, brand string) string {
	for _, ctx := range contextKeywords {
		for _, kw := range ctx.keywords {
			if strings.Contains(prompt, kw) {
				return ctx.context
			}
		}
	}
	if containsAny(prompt, "gamer", "gaming", "game") {
		return "gaming"
	}
	if containsAny(prompt, "profissional", "trabalho", "work", "escritório", "escritorio") {
		return "professional"
	}
	if (brand == "Apple" || brand == "Samsung") && strings.Contains(prompt, "pro") {
		return "premium"
	}
	return "casual"
}

func detectCondition(prompt string) (campaign.Condition, float64) {
	for _, c := range conditionKeywords {
		if strings.Contains(prompt, c.keyword) {
			return c.condition, c.multiplier
		}
	}
	return campaign.ConditionNew, 1.0
}

func targetAudience(brand string, entry patternEntry, usage string) string {
	switch usage {
	case "gaming":
		return "Gamers, entusiastas de tecnologia, jovens 18-35 anos"
	case "professional":
		return "Profissionais, empresários, trabalho remoto, 25-50 anos"
	case "pet":
		return "Donos de pets, famílias, amantes de animais, 20-55 anos"
	case "plant":
		return "Jardineiros urbanos, entusiastas de decoração, 25-55 anos"
	case "service":
		return "Pessoas buscando soluções práticas, 20-50 anos"
	}
	if brand == "Apple" {
		return "Usuários Apple, criativos, early adopters, classe A-B"
	}
	if entry.productType == "smartphone" {
		return "Usuários de smartphone, conectados, 20-45 anos"
	}
	return "Consumidores de eletrônicos, tech enthusiasts, 25-45 anos"
}

func sellingPoints(entry patternEntry, usage string) []string {
	if points, ok := sellingPointsByUsage[usage]; ok {
		return points
	}
	if points, ok := sellingPointsByType[entry.productType]; ok {
		return points
	}
	return defaultSellingPoints
}

func recommendedStrategy(usage string) string {
	switch usage {
	case "gaming":
		return string(campaign.StrategyUrgency)
	case "professional":
		return string(campaign.StrategyProfessional)
	case "premium":
		return string(campaign.StrategyPremium)
	}
	return string(campaign.StrategyValue)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
