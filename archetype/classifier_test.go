package archetype

import (
	"math"
	"testing"

	"github.com/rushteam/outfitkit/core"
)

func TestClassifyDefaultWhenNoData(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name    string
		profile *core.UserProfile
	}{
		{"nil profile", nil},
		{"empty profile", core.NewUserProfile("u1")},
		{"zero weights", &core.UserProfile{
			UserID:           "u1",
			StylePreferences: map[string]float64{StyleCasual: 0, StyleFormal: 0},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Classify(tt.profile, nil)
			if res == nil {
				t.Fatal("classifier must never return nil")
			}
			if res.Dominant != CasualChic || res.Secondary != Klassiek {
				t.Errorf("default = %s/%s, want casual_chic/klassiek", res.Dominant, res.Secondary)
			}
			if res.MixFactor != DefaultMixFactor {
				t.Errorf("default mix = %v, want %v", res.MixFactor, DefaultMixFactor)
			}
			if res.Source != "default" {
				t.Errorf("source = %q, want default", res.Source)
			}
		})
	}
}

func TestClassifyOccasionFallback(t *testing.T) {
	c := NewClassifier()

	p := core.NewUserProfile("u1")
	p.Occasions = []string{"work", "festival"}

	res := c.Classify(p, nil)
	if res.Dominant != Klassiek {
		t.Errorf("dominant = %s, want klassiek for work occasion", res.Dominant)
	}
	if res.Secondary != Retro {
		t.Errorf("secondary = %s, want retro for festival occasion", res.Secondary)
	}
	if res.Source != "occasion" {
		t.Errorf("source = %q, want occasion", res.Source)
	}
}

func TestClassifyFromPreferences(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name          string
		prefs         map[string]float64
		wantDominant  string
		wantSecondary string
	}{
		{
			name:          "sporty leans streetstyle",
			prefs:         map[string]float64{StyleSporty: 100},
			wantDominant:  Streetstyle,
			wantSecondary: Urban,
		},
		{
			name:          "vintage leans retro",
			prefs:         map[string]float64{StyleVintage: 100},
			wantDominant:  Retro,
			wantSecondary: Luxury,
		},
		{
			name:          "casual leans casual_chic",
			prefs:         map[string]float64{StyleCasual: 100},
			wantDominant:  CasualChic,
			wantSecondary: Urban,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &core.UserProfile{UserID: "u1", StylePreferences: tt.prefs}
			res := c.Classify(p, nil)
			if res.Dominant != tt.wantDominant {
				t.Errorf("dominant = %s, want %s", res.Dominant, tt.wantDominant)
			}
			if res.Secondary != tt.wantSecondary {
				t.Errorf("secondary = %s, want %s", res.Secondary, tt.wantSecondary)
			}
			if res.Source != "profile" {
				t.Errorf("source = %q, want profile", res.Source)
			}
		})
	}
}

func TestClassifyDominanceFloor(t *testing.T) {
	c := NewClassifier()

	// formal=100 打平 klassiek 与 luxury：混合因子原始值 0.5，必须被截断
	p := &core.UserProfile{
		UserID:           "u1",
		StylePreferences: map[string]float64{StyleFormal: 100},
	}
	res := c.Classify(p, nil)
	if res.Dominant != Klassiek {
		t.Errorf("dominant = %s, want klassiek (stable tie-break)", res.Dominant)
	}
	if res.MixFactor > DefaultMaxMixFactor {
		t.Errorf("mixFactor = %v exceeds dominance floor %v", res.MixFactor, DefaultMaxMixFactor)
	}
	if !almostEqual(res.MixFactor, DefaultMaxMixFactor) {
		t.Errorf("mixFactor = %v, want clamped to %v", res.MixFactor, DefaultMaxMixFactor)
	}
}

func TestClassifyMixFactorRatio(t *testing.T) {
	c := NewClassifier()

	// vintage=100 归一化得分：retro 100 / luxury 50 / klassiek 40 /
	// streetstyle 40 / casual_chic 30 / urban 10，均值 45。
	// 去均值后 retro 55、luxury 5 → mix = 5/60
	p := &core.UserProfile{
		UserID:           "u1",
		StylePreferences: map[string]float64{StyleVintage: 100},
	}
	res := c.Classify(p, nil)
	want := 5.0 / 60.0
	if !almostEqual(res.MixFactor, want) {
		t.Errorf("mixFactor = %v, want %v", res.MixFactor, want)
	}
}

func TestClassifyLopsidedPreferenceLowMix(t *testing.T) {
	c := NewClassifier()

	// 8:1 的一边倒偏好：主导必须是 casual 系原型，
	// 且混合因子要低——共享 casual 权重抬高的 urban 不算强次级信号
	p := &core.UserProfile{
		UserID:           "u1",
		StylePreferences: map[string]float64{StyleCasual: 8, StyleFormal: 1},
	}
	res := c.Classify(p, nil)
	if res.Dominant != CasualChic {
		t.Errorf("dominant = %s, want casual_chic", res.Dominant)
	}
	if res.MixFactor >= 0.3 {
		t.Errorf("mixFactor = %v, want < 0.3 for a lopsided preference", res.MixFactor)
	}
}

func TestClassifyAdaptiveBlendShiftsDominant(t *testing.T) {
	c := NewClassifier()

	p := &core.UserProfile{
		UserID:           "u1",
		StylePreferences: map[string]float64{StyleCasual: 100},
	}

	// 无自适应权重：casual_chic 主导
	base := c.Classify(p, nil)
	if base.Dominant != CasualChic {
		t.Fatalf("baseline dominant = %s, want casual_chic", base.Dominant)
	}

	// 反馈强烈偏向 urban、压低 casual_chic：主导翻转
	adaptive := map[string]float64{CasualChic: 0, Urban: 100}
	res := c.Classify(p, adaptive)
	if res.Dominant != Urban {
		t.Errorf("adaptive dominant = %s, want urban", res.Dominant)
	}
	if res.MixFactor > DefaultMaxMixFactor {
		t.Errorf("mixFactor = %v exceeds dominance floor", res.MixFactor)
	}
}

func TestStyleMatcher(t *testing.T) {
	m := KeywordMatcher{}

	tests := []struct {
		name  string
		style string
		arch  string
		want  float64
	}{
		{"direct keyword hit", "elegant evening", Klassiek, 1.0},
		{"fuzzy prefix hit", "eleganza", Klassiek, 0.7},
		{"no relation", "grunge", Klassiek, 0.3},
		{"empty style neutral", "", Klassiek, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.style, tt.arch); !almostEqual(got, tt.want) {
				t.Errorf("Match(%q, %s) = %v, want %v", tt.style, tt.arch, got, tt.want)
			}
		})
	}
}

func TestTagScore(t *testing.T) {
	m := KeywordMatcher{}

	if got := m.TagScore(nil, Klassiek); got != 0 {
		t.Errorf("empty tags TagScore = %v, want 0", got)
	}

	// 2 of 4 tags 命中 klassiek 关键词
	tags := []string{"elegant", "formal", "grunge", "neon"}
	if got := m.TagScore(tags, Klassiek); !almostEqual(got, 0.5) {
		t.Errorf("TagScore = %v, want 0.5", got)
	}
}

func TestBlendedTagScore(t *testing.T) {
	m := KeywordMatcher{}

	tags := []string{"elegant"} // klassiek 命中 1.0，streetstyle 命中 0
	got := BlendedTagScore(m, tags, Klassiek, Streetstyle, 0.3)
	if !almostEqual(got, 0.7) {
		t.Errorf("BlendedTagScore = %v, want 0.7", got)
	}

	// 次级为空时退化为纯主导
	if got := BlendedTagScore(m, tags, Klassiek, "", 0.3); !almostEqual(got, 1.0) {
		t.Errorf("BlendedTagScore without secondary = %v, want 1.0", got)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
