package usecase

import (
	"strings"
	"testing"
)

func TestLocateIngredients(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantSegment  string
		wantLanguage string
	}{
		{
			name:         "english declaration with trailing period",
			text:         "Ingredients: Water, Sugar, Pork Gelatin, Salt.",
			wantSegment:  "Water, Sugar, Pork Gelatin, Salt",
			wantLanguage: "en",
		},
		{
			name:         "decimal percentage does not end the segment",
			text:         "Ingredients: Sugar, Milk Fat 1.5%, Pork Gelatin, Salt",
			wantSegment:  "Sugar, Milk Fat 1.5%, Pork Gelatin, Salt",
			wantLanguage: "en",
		},
		{
			name:         "sentence break ends the segment",
			text:         "Ingredients: Water, Sugar. Store refrigerated after opening",
			wantSegment:  "Water, Sugar",
			wantLanguage: "en",
		},
		{
			name:         "english declaration stops at nutrition section",
			text:         "Ingredients: Water, Sugar Nutrition Facts Serving Size 100g",
			wantSegment:  "Water, Sugar",
			wantLanguage: "en",
		},
		{
			name:         "french declaration",
			text:         "Ingrédients: eau, sucre, sel",
			wantSegment:  "eau, sucre, sel",
			wantLanguage: "fr",
		},
		{
			name:         "arabic declaration",
			text:         "مكونات: ماء، سكر، ملح",
			wantSegment:  "ماء، سكر، ملح",
			wantLanguage: "ar",
		},
		{
			name:         "arabic declaration with definite article",
			text:         "المكونات: ماء، سكر",
			wantSegment:  "ماء، سكر",
			wantLanguage: "ar",
		},
		{
			name:         "spanish declaration",
			text:         "Ingredientes: agua, azúcar, sal",
			wantSegment:  "agua, azúcar, sal",
			wantLanguage: "es",
		},
		{
			name:         "german declaration stops at sentence break",
			text:         "Zutaten: Wasser, Zucker. Nährwertangaben pro 100g",
			wantSegment:  "Wasser, Zucker",
			wantLanguage: "de",
		},
		{
			name:         "italian declaration",
			text:         "Ingredienti: acqua, zucchero",
			wantSegment:  "acqua, zucchero",
			wantLanguage: "it",
		},
		{
			name:         "generic food keyword anchor as last resort",
			text:         "Contains water, sugar and honey for flavor",
			wantSegment:  "water, sugar and honey for flavor",
			wantLanguage: "generic",
		},
		{
			name:         "comma heuristic when no pattern matches",
			text:         "aqua, glycerin, sodium chloride, parfum extract",
			wantSegment:  "aqua, glycerin, sodium chloride, parfum extract",
			wantLanguage: "heuristic",
		},
		{
			name:         "full text fallback when nothing looks like a list",
			text:         "Net Wt 500g Best enjoyed chilled",
			wantSegment:  "Net Wt 500g Best enjoyed chilled",
			wantLanguage: "fulltext",
		},
		{
			name:         "empty input falls through to full text",
			text:         "",
			wantSegment:  "",
			wantLanguage: "fulltext",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segment, language := LocateIngredients(tt.text)
			if segment != tt.wantSegment {
				t.Errorf("segment = %q, want %q", segment, tt.wantSegment)
			}
			if language != tt.wantLanguage {
				t.Errorf("language = %q, want %q", language, tt.wantLanguage)
			}
		})
	}
}

func TestLocateIngredients_FirstMatchWins(t *testing.T) {
	// Both an English and a French declaration are present; only the
	// higher-priority English pattern may produce the segment.
	text := "Ingredients: water, sugar Ingrédients: eau, sucre"

	segment, language := LocateIngredients(text)
	if language != "en" {
		t.Fatalf("language = %q, want en", language)
	}
	if !strings.HasPrefix(segment, "water") {
		t.Errorf("segment = %q, want the English capture", segment)
	}
}
