package usecase

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestTokenizeIngredients(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		want    []string
	}{
		{
			name:    "splits on commas",
			segment: "Water, Sugar, Pork Gelatin, Salt",
			want:    []string{"Water", "Sugar", "Pork Gelatin", "Salt"},
		},
		{
			name:    "splits on semicolons",
			segment: "Water; Sugar; Salt",
			want:    []string{"Water", "Sugar", "Salt"},
		},
		{
			name:    "splits on arabic separators",
			segment: "ماء، سكر؛ ملح",
			want:    []string{"ماء", "سكر", "ملح"},
		},
		{
			name:    "strips ordinal prefixes",
			segment: "1. Water, 2) Sugar",
			want:    []string{"Water", "Sugar"},
		},
		{
			name:    "strips parenthesized and bracketed content",
			segment: "Lecithin (from soy), Color [E150d], Salt",
			want:    []string{"Lecithin", "Color", "Salt"},
		},
		{
			name:    "drops numeric and percentage artifacts",
			segment: "Water, 20, 1.5, 35 %, Sugar",
			want:    []string{"Water", "Sugar"},
		},
		{
			name:    "drops bracket artifacts",
			segment: "Water, ), [], (, Sugar",
			want:    []string{"Water", "Sugar"},
		},
		{
			name:    "drops boilerplate tokens",
			segment: "Water, and, or, with, contains, may contain, allergen, warning, note, see, www, Sugar",
			want:    []string{"Water", "Sugar"},
		},
		{
			name:    "drops single characters",
			segment: "Water, a, x, Sugar",
			want:    []string{"Water", "Sugar"},
		},
		{
			name:    "drops single arabic character",
			segment: "ماء، م، ملح",
			want:    []string{"ماء", "ملح"},
		},
		{
			name:    "drops url fragments",
			segment: "Water, visit www.example.com for details, Sugar",
			want:    []string{"Water", "Sugar"},
		},
		{
			name:    "drops label boilerplate phrases",
			segment: "Net Wt 500g. Best before 2025",
			want:    nil,
		},
		{
			name:    "drops over-long fragments",
			segment: "Water, " + strings.Repeat("x", 120) + ", Sugar",
			want:    []string{"Water", "Sugar"},
		},
		{
			name:    "trims trailing periods",
			segment: "Water, Salt.",
			want:    []string{"Water", "Salt"},
		},
		{
			name:    "empty segment yields no tokens",
			segment: "",
			want:    nil,
		},
		{
			name:    "case preserved in surviving tokens",
			segment: "Pork Gelatin, WHEY POWDER",
			want:    []string{"Pork Gelatin", "WHEY POWDER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeIngredients(tt.segment)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeIngredients(%q) = %v, want %v", tt.segment, got, tt.want)
			}
		})
	}
}

func TestTokenizeIngredients_LengthBoundsCountRunes(t *testing.T) {
	// 60 Arabic letters is 120 bytes but well under the 100-character cap;
	// the token must survive.
	longName := strings.Repeat("مك", 30)
	got := TokenizeIngredients("ماء، " + longName + "، ملح")

	want := []string{"ماء", longName, "ملح"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokenizeIngredients() = %v, want %v", got, want)
	}
}

func TestTokenizeIngredients_CapsAtMaximum(t *testing.T) {
	var parts []string
	for i := 0; i < MaxIngredients+20; i++ {
		parts = append(parts, fmt.Sprintf("ingredient%d", i))
	}

	got := TokenizeIngredients(strings.Join(parts, ", "))
	if len(got) != MaxIngredients {
		t.Fatalf("len = %d, want %d", len(got), MaxIngredients)
	}
	if got[0] != "ingredient0" || got[MaxIngredients-1] != fmt.Sprintf("ingredient%d", MaxIngredients-1) {
		t.Errorf("truncation did not preserve leading entries: first %q, last %q", got[0], got[len(got)-1])
	}
}

func TestTokenizeIngredients_PreservesOrder(t *testing.T) {
	segment := "Water, Sugar, Pork Gelatin, Salt, Citric Acid"
	tokens := TokenizeIngredients(segment)

	// Each token must appear in the segment no later than its successor
	lastIndex := -1
	for i, token := range tokens {
		idx := strings.Index(segment, token)
		if idx < lastIndex {
			t.Fatalf("token %d (%q) appears before its predecessor in the segment", i, token)
		}
		lastIndex = idx
	}
}
