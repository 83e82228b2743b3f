package color

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPairScorePrecedence(t *testing.T) {
	e := NewEvaluator(nil)

	tests := []struct {
		name   string
		c1, c2 string
		want   float64
	}{
		{"identical color", "red", "red", 0.6},
		{"identical neutral", "black", "black", 0.6},
		{"black and white", "black", "white", 0.9},
		{"white and black", "white", "black", 0.9},
		{"black white substring", "jet black", "off-white", 0.9},
		{"neutral with anything", "beige", "red", 0.8},
		{"navy counts as neutral", "navy", "orange", 0.8},
		{"complementary", "blue", "orange", 0.7},
		{"complementary reversed", "orange", "blue", 0.7},
		{"complementary pink green", "pink", "green", 0.7},
		{"analogous", "blue", "teal", 0.8},
		{"analogous red coral", "red", "coral", 0.8},
		{"triadic", "red", "yellow", 0.6},
		{"triadic purple green", "purple", "green", 0.6},
		{"same warm temperature", "pink", "peach", 0.5},
		{"same cool temperature", "mint", "lavender", 0.5},
		{"no relation", "pink", "blue", 0.3},
		{"case insensitive", "Blue", "ORANGE", 0.7},
		{"substring tolerant", "navy blue", "coral", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.PairScore(tt.c1, tt.c2)
			if !almostEqual(got, tt.want) {
				t.Errorf("PairScore(%q, %q) = %v, want %v", tt.c1, tt.c2, got, tt.want)
			}
		})
	}
}

func TestOutfitHarmony(t *testing.T) {
	e := NewEvaluator(nil)

	tests := []struct {
		name   string
		colors [][]string
		want   float64
	}{
		{"single product", [][]string{{"red"}}, 1.0},
		{"no products", [][]string{}, 1.0},
		{"no color info", [][]string{{}, {}}, 0.5},
		{"blank colors only", [][]string{{" ", ""}, {""}}, 0.5},
		{"black white pair", [][]string{{"black"}, {"white"}}, 0.9},
		{"two identical", [][]string{{"red"}, {"red"}}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.OutfitHarmony(tt.colors)
			if !almostEqual(got, tt.want) {
				t.Errorf("OutfitHarmony(%v) = %v, want %v", tt.colors, got, tt.want)
			}
		})
	}
}

func TestOutfitHarmonyIsPairwiseMean(t *testing.T) {
	e := NewEvaluator(nil)

	// 三个色：red/blue/orange
	// red-blue 0.6 (triadic), red-orange 0.8 (analogous), blue-orange 0.7 (complementary)
	got := e.OutfitHarmony([][]string{{"red"}, {"blue"}, {"orange"}})
	want := (0.6 + 0.8 + 0.7) / 3
	if !almostEqual(got, want) {
		t.Errorf("OutfitHarmony = %v, want %v", got, want)
	}
}

func TestPaletteRecommendation(t *testing.T) {
	e := NewEvaluator(nil)

	p := e.PaletteRecommendation([]string{"blue", "white"})
	if len(p.Complementary) == 0 {
		t.Fatal("expected complementary suggestions for blue")
	}
	found := false
	for _, c := range p.Complementary {
		if c == "orange" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected orange in complementary suggestions, got %v", p.Complementary)
	}
	if len(p.Neutrals) == 0 {
		t.Error("expected neutrals in palette")
	}

	empty := e.PaletteRecommendation(nil)
	if len(empty.Complementary) != 0 || len(empty.Analogous) != 0 {
		t.Error("empty colors should only suggest neutrals")
	}
	if len(empty.Neutrals) == 0 {
		t.Error("empty colors should still suggest neutrals")
	}
}

func TestRuleClassifierTemperature(t *testing.T) {
	rc := NewRuleClassifier(nil)

	if !rc.IsWarm("rust") {
		t.Error("rust should be warm")
	}
	if !rc.IsCool("turquoise") {
		t.Error("turquoise should be cool")
	}
	if !rc.IsNeutral("charcoal") {
		t.Error("charcoal should be neutral")
	}
	if rc.IsNeutral("red") {
		t.Error("red should not be neutral")
	}
}
