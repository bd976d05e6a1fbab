package analyzer

import (
	"reflect"
	"testing"

	"github.com/ignite/campaignforge/internal/campaign"
)

func TestAnalyzeIPhoneProMaxRefurbished(t *testing.T) {
	got := Analyze("iPhone 15 Pro Max 256GB seminovo")

	if got.Brand != "Apple" {
		t.Errorf("brand = %q, want Apple", got.Brand)
	}
	if got.ProductType != "smartphone" {
		t.Errorf("product type = %q, want smartphone", got.ProductType)
	}
	if got.Condition != campaign.ConditionRefurbished {
		t.Errorf("condition = %q, want refurbished", got.Condition)
	}
	// 7000 base + 400 for 256GB, times the 0.75 refurbished multiplier.
	if got.PriceRange.Low != 5050 || got.PriceRange.High != 6050 {
		t.Errorf("price range = [%d, %d], want [5050, 6050]", got.PriceRange.Low, got.PriceRange.High)
	}
	if got.PriceRange.Currency != "BRL" {
		t.Errorf("currency = %q, want BRL", got.PriceRange.Currency)
	}
}

func TestAnalyzeSpecificPatternWinsOverGeneric(t *testing.T) {
	proMax := Analyze("iphone 15 pro max novo")
	plain := Analyze("iphone novo")

	if proMax.PriceRange.Low == plain.PriceRange.Low {
		t.Error("pro max should carry a higher base price than a plain iphone")
	}
	if proMax.Brand != "Apple" || plain.Brand != "Apple" {
		t.Errorf("brands = %q, %q, want Apple for both", proMax.Brand, plain.Brand)
	}
}

func TestAnalyzeConditionMultipliers(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		condition campaign.Condition
		low       int
		high      int
	}{
		// Motorola base price is 1500.
		{"new by default", "Motorola moto g", campaign.ConditionNew, 1000, 2000},
		{"usado", "Motorola moto g usado", campaign.ConditionUsed, 400, 1400},
		{"seminovo", "Motorola moto g seminovo", campaign.ConditionRefurbished, 625, 1625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.prompt)
			if got.Condition != tt.condition {
				t.Errorf("condition = %q, want %q", got.Condition, tt.condition)
			}
			if got.PriceRange.Low != tt.low || got.PriceRange.High != tt.high {
				t.Errorf("price range = [%d, %d], want [%d, %d]",
					got.PriceRange.Low, got.PriceRange.High, tt.low, tt.high)
			}
		})
	}
}

func TestAnalyzeSeminovoNotMistakenForNovo(t *testing.T) {
	got := Analyze("galaxy seminovo")
	if got.Condition != campaign.ConditionRefurbished {
		t.Errorf("condition = %q, want refurbished", got.Condition)
	}
}

func TestAnalyzeStorageIncrements(t *testing.T) {
	tests := []struct {
		prompt string
		low    int
	}{
		{"xiaomi redmi", 1500},        // base 2000
		{"xiaomi redmi 128gb", 1700},  // +200
		{"xiaomi redmi 256gb", 1900},  // +400
		{"xiaomi redmi 512gb", 2300},  // +800
		{"xiaomi redmi 1tb", 2700},    // +1200
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			got := Analyze(tt.prompt)
			if got.PriceRange.Low != tt.low {
				t.Errorf("low = %d, want %d", got.PriceRange.Low, tt.low)
			}
		})
	}
}

func TestAnalyzeContexts(t *testing.T) {
	tests := []struct {
		prompt string
		usage  string
	}{
		{"ração premium para cachorro", "pet"},
		{"vaso para suculenta", "plant"},
		{"curso de marketing digital", "service"},
		{"notebook gamer RGB", "gaming"},
		{"notebook para trabalho remoto", "professional"},
		{"caixa de som jbl", "casual"},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			if got := Analyze(tt.prompt); got.UsageCategory != tt.usage {
				t.Errorf("usage = %q, want %q", got.UsageCategory, tt.usage)
			}
		})
	}
}

func TestAnalyzeBrandOnNeutralPattern(t *testing.T) {
	got := Analyze("Smart TV Samsung 55 polegadas 4K")
	if got.ProductType != "tv" {
		t.Errorf("product type = %q, want tv", got.ProductType)
	}
	if got.Brand != "Samsung" {
		t.Errorf("brand = %q, want Samsung", got.Brand)
	}

	unbranded := Analyze("smart tv 50 polegadas")
	if unbranded.Brand != "Premium" {
		t.Errorf("brand = %q, want Premium for unbranded tv", unbranded.Brand)
	}
}

func TestAnalyzeIsTotal(t *testing.T) {
	prompts := []string{"", "   ", "???", "produto totalmente desconhecido xyz"}
	for _, prompt := range prompts {
		got := Analyze(prompt)
		if got.ProductType == "" || got.Brand == "" || got.UsageCategory == "" {
			t.Errorf("Analyze(%q) left required fields empty: %+v", prompt, got)
		}
		if got.PriceRange.Low <= 0 || got.PriceRange.High <= got.PriceRange.Low {
			t.Errorf("Analyze(%q) produced bad price range: %+v", prompt, got.PriceRange)
		}
		if len(got.KeyFeatures) == 0 || len(got.SellingPoints) == 0 {
			t.Errorf("Analyze(%q) produced empty features or selling points", prompt)
		}
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	prompt := "Smart TV Samsung 55 polegadas usada para sala gamer"
	first := Analyze(prompt)
	for i := 0; i < 10; i++ {
		if got := Analyze(prompt); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed:\n%+v\n%+v", i, got, first)
		}
	}
}

func TestAnalyzeCheapUsedItemHasPositiveFloor(t *testing.T) {
	got := Analyze("caixa de som jbl usada")
	if got.Condition != campaign.ConditionUsed {
		t.Errorf("condition = %q, want used", got.Condition)
	}
	// 800 * 0.60 - 500 would go negative without the floor.
	if got.PriceRange.Low != minPrice {
		t.Errorf("low = %d, want the %d floor", got.PriceRange.Low, minPrice)
	}
}
