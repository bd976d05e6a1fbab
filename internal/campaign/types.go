// Package campaign defines the request-scoped value objects produced by the
// generation pipeline. All types are immutable once a stage has emitted them.
package campaign

// Strategy is the fixed vocabulary of copy strategies.
type Strategy string

const (
	StrategyUrgency      Strategy = "URGENCY"
	StrategyPremium      Strategy = "PREMIUM"
	StrategyValue        Strategy = "VALUE"
	StrategyProfessional Strategy = "PROFESSIONAL"
	StrategyCommercial   Strategy = "COMMERCIAL"
	StrategyLifestyle    Strategy = "LIFESTYLE"
)

// AllStrategies lists the strategy vocabulary in rotation order. It pads the
// per-request selection when more copies are requested than the selection
// rule names.
var AllStrategies = []Strategy{
	StrategyUrgency,
	StrategyPremium,
	StrategyValue,
	StrategyProfessional,
	StrategyCommercial,
	StrategyLifestyle,
}

// Condition is the detected product condition.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

// PriceRange is an estimated market price band in a single currency.
type PriceRange struct {
	Low      int    `json:"low"`
	High     int    `json:"high"`
	Currency string `json:"currency"`
}

// ProductAnalysis is the structured result of the analyze stage. ProductType
// and UsageCategory are always set; undetected values fall back to "generic".
type ProductAnalysis struct {
	RawPrompt           string     `json:"raw_prompt"`
	ProductName         string     `json:"product_name"`
	ProductType         string     `json:"product_type"`
	Brand               string     `json:"brand"`
	UsageCategory       string     `json:"usage_category"`
	Condition           Condition  `json:"condition"`
	PriceRange          PriceRange `json:"price_range"`
	KeyFeatures         []string   `json:"key_features"`
	TargetAudience      string     `json:"target_audience"`
	SellingPoints       []string   `json:"selling_points"`
	RecommendedStrategy string     `json:"recommended_strategy"`
}

// CopyVariation is one piece of ad copy. IDs are contiguous starting at 1
// within a request.
type CopyVariation struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Text         string   `json:"text"`
	Strategy     Strategy `json:"strategy"`
	Confidence   float64  `json:"confidence"`
	EstimatedCTR string   `json:"estimated_ctr"`
	Provenance   string   `json:"provenance"`
}

// ImagePrompt is a rendering instruction for one image, aligned with a copy
// strategy when counts allow.
type ImagePrompt struct {
	ID          int    `json:"id"`
	Style       string `json:"style"`
	Strategy    string `json:"strategy"`
	PromptText  string `json:"prompt_text"`
	Description string `json:"description"`
}

// GeneratedImage is one creative image. URLOrData is never empty: it is an
// http(s) URL or an embedded data URI, falling back to a generated
// placeholder under total provider failure.
type GeneratedImage struct {
	ID         int     `json:"id"`
	URLOrData  string  `json:"url_or_data"`
	Style      string  `json:"style"`
	Strategy   string  `json:"strategy"`
	Provenance string  `json:"provenance"`
	Confidence float64 `json:"confidence"`
}

// Budget is the campaign spend plan.
type Budget struct {
	Daily        int `json:"daily"`
	DurationDays int `json:"duration_days"`
	Total        int `json:"total"`
}

// Targeting is derived from the product analysis.
type Targeting struct {
	Product  string `json:"product"`
	Type     string `json:"type"`
	Audience string `json:"audience"`
	Strategy string `json:"strategy"`
}

// Creatives holds the selected copy and image sets.
type Creatives struct {
	Copies []CopyVariation  `json:"copies"`
	Images []GeneratedImage `json:"images"`
}

// ExpectedMetrics are heuristic performance ranges, not predictions.
type ExpectedMetrics struct {
	CTR        string `json:"ctr"`
	Conversion string `json:"conversion"`
	CPM        string `json:"cpm"`
}

// Campaign is the final aggregate, purely derived from the analysis, copies
// and images of a single request.
type Campaign struct {
	Name            string          `json:"name"`
	Objective       string          `json:"objective"`
	Budget          Budget          `json:"budget"`
	Targeting       Targeting       `json:"targeting"`
	Creatives       Creatives       `json:"creatives"`
	ExpectedMetrics ExpectedMetrics `json:"expected_metrics"`
}

// GenerationStats reports how much of the result came from real providers
// versus deterministic fallbacks. An item counts as real when its provenance
// is a provider name; every fallback tier uses a fixed provenance string.
type GenerationStats struct {
	RealAnalysis    bool `json:"real_analysis"`
	RealCopies      int  `json:"real_copies"`
	MockCopies      int  `json:"mock_copies"`
	RealImages      int  `json:"real_images"`
	MockImages      int  `json:"mock_images"`
	ReferencesFound int  `json:"references_found"`
}

// Result is the full output of one pipeline run.
type Result struct {
	Analysis ProductAnalysis  `json:"analysis"`
	Copies   []CopyVariation  `json:"copies"`
	Images   []GeneratedImage `json:"images"`
	Campaign Campaign         `json:"campaign"`
	Stats    GenerationStats  `json:"generation_stats"`
}

// Fallback provenance tags. Anything else in a Provenance field is the name
// of the provider that produced the item.
const (
	ProvenanceHeuristic   = "heuristic_fallback"
	ProvenanceTemplate    = "template_fallback"
	ProvenanceReference   = "reference_mock"
	ProvenancePlaceholder = "placeholder_mock"
)

// IsFallbackProvenance reports whether the tag names a local fallback tier
// rather than a provider.
func IsFallbackProvenance(p string) bool {
	switch p {
	case ProvenanceHeuristic, ProvenanceTemplate, ProvenanceReference, ProvenancePlaceholder:
		return true
	}
	return false
}
