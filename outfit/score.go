package outfit

import (
	"math"
	"strings"

	"github.com/rushteam/outfitkit/archetype"
	"github.com/rushteam/outfitkit/core"
)

// Weights 是匹配分各维度的权重，和应为 1.0。
type Weights struct {
	Archetype float64
	Color     float64
	Style     float64
	Season    float64
	Occasion  float64
}

// DefaultWeights 返回默认权重配比。
func DefaultWeights() Weights {
	return Weights{
		Archetype: 0.30,
		Color:     0.35,
		Style:     0.20,
		Season:    0.10,
		Occasion:  0.05,
	}
}

// 匹配分截断区间的默认值。
// 产品约定：分数永不低于 70（避免劝退）也不高于 98（避免过度自信）。
const (
	DefaultClampMin = 70
	DefaultClampMax = 98
)

// Breakdown 是匹配分的各维度拆解，均为 0-100。
// Total 是加权总分（截断后），其余是未加权的子分。
type Breakdown struct {
	Total     int
	Archetype int
	Color     int
	Style     int
	Season    int
	Occasion  int
}

// Scorer 是搭配匹配分模型。
//
// total = (archetype*wa + color*wc + style*ws + season*wn + occasion*wo) * 100
// 然后截断到 [ClampMin, ClampMax]。
type Scorer struct {
	Weights  Weights
	ClampMin int
	ClampMax int

	Matcher archetype.StyleMatcher
}

// NewScorer 返回使用默认权重与截断区间的评分器。
func NewScorer() *Scorer {
	return &Scorer{
		Weights:  DefaultWeights(),
		ClampMin: DefaultClampMin,
		ClampMax: DefaultClampMax,
		Matcher:  archetype.KeywordMatcher{},
	}
}

// Score 对一套搭配与用户画像计算匹配分拆解。
//
// userArchetype 是用户的主导原型（分类结果）；currentSeason 是当前/目标季节。
// 所有输入缺失都走软降级（中性子分），不报错。
func (s *Scorer) Score(o *core.Outfit, profile *core.UserProfile, userArchetype string, currentSeason core.Season) Breakdown {
	matcher := s.Matcher
	if matcher == nil {
		matcher = archetype.KeywordMatcher{}
	}

	archScore := archetypeMatch(matcher, o.Archetype, userArchetype)

	var palette []string
	if profile != nil {
		palette = profile.ColorPalette
	}
	colorScore := colorMatch(outfitColors(o), palette)
	styleScore := styleConsistency(o.Products)
	seasonScore := seasonMatch(o.Season, currentSeason)
	occasionScore := 0.8 // 场合子分暂为常量，场合筛选已在组合阶段完成

	weighted := archScore*s.Weights.Archetype +
		colorScore*s.Weights.Color +
		styleScore*s.Weights.Style +
		seasonScore*s.Weights.Season +
		occasionScore*s.Weights.Occasion

	total := int(math.Round(weighted * 100))
	if total < s.clampMin() {
		total = s.clampMin()
	}
	if total > s.clampMax() {
		total = s.clampMax()
	}

	return Breakdown{
		Total:     total,
		Archetype: roundPct(archScore),
		Color:     roundPct(colorScore),
		Style:     roundPct(styleScore),
		Season:    roundPct(seasonScore),
		Occasion:  roundPct(occasionScore),
	}
}

// Apply 计算匹配分并写回搭配：MatchPercentage、ScoreBreakdown、Explanation。
func (s *Scorer) Apply(o *core.Outfit, profile *core.UserProfile, userArchetype string, currentSeason core.Season) Breakdown {
	b := s.Score(o, profile, userArchetype, currentSeason)
	o.MatchPercentage = b.Total
	o.ScoreBreakdown = map[string]float64{
		"archetype": float64(b.Archetype),
		"color":     float64(b.Color),
		"style":     float64(b.Style),
		"season":    float64(b.Season),
		"occasion":  float64(b.Occasion),
	}
	o.Explanation = ExplainBreakdown(b)
	return b
}

func (s *Scorer) clampMin() int {
	if s.ClampMin <= 0 {
		return DefaultClampMin
	}
	return s.ClampMin
}

func (s *Scorer) clampMax() int {
	if s.ClampMax <= 0 {
		return DefaultClampMax
	}
	return s.ClampMax
}

func roundPct(v float64) int {
	return int(math.Round(v * 100))
}

// archetypeMatch 计算搭配风格与用户原型的匹配度。
// 同原型直接满分；否则按关键词命中（见 archetype.KeywordMatcher）。
// 任一侧缺失 → 0.5。
func archetypeMatch(m archetype.StyleMatcher, outfitStyle, userArchetype string) float64 {
	if outfitStyle == "" || userArchetype == "" {
		return 0.5
	}
	if strings.EqualFold(outfitStyle, userArchetype) {
		return 1.0
	}
	return m.Match(outfitStyle, userArchetype)
}

// normalizeColor 色名归一化：小写并去掉非字母字符（"Navy Blue" → "navyblue"）。
func normalizeColor(c string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(c) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// colorMatch 计算搭配色彩与画像色板的重合度：
// 精确命中计满分，子串部分命中计半分，上限 1。任一侧为空 → 0.5。
func colorMatch(outfitColors, userColors []string) float64 {
	if len(outfitColors) == 0 || len(userColors) == 0 {
		return 0.5
	}

	normUser := make([]string, 0, len(userColors))
	for _, c := range userColors {
		normUser = append(normUser, normalizeColor(c))
	}

	matches := 0
	partial := 0
	for _, oc := range outfitColors {
		noc := normalizeColor(oc)
		exact := false
		for _, uc := range normUser {
			if noc == uc {
				exact = true
				break
			}
		}
		if exact {
			matches++
			continue
		}
		for _, uc := range normUser {
			if uc == "" || noc == "" {
				continue
			}
			if strings.Contains(noc, uc) || strings.Contains(uc, noc) {
				partial++
				break
			}
		}
	}

	score := float64(matches)/float64(len(outfitColors)) +
		float64(partial)/float64(len(outfitColors))*0.5
	if score > 1 {
		score = 1
	}
	return score
}

// styleConsistency 计算搭配内部的风格一致性：
// 不同风格标签越多越杂。少于 2 件或无风格数据 → 0.8（中性分）。
func styleConsistency(products []*core.Product) float64 {
	if len(products) < 2 {
		return 0.8
	}

	unique := make(map[string]bool, len(products))
	for _, p := range products {
		if p == nil || len(p.StyleTags) == 0 {
			continue
		}
		unique[strings.ToLower(p.StyleTags[0])] = true
	}

	switch len(unique) {
	case 0:
		return 0.8
	case 1:
		return 1.0
	case 2:
		return 0.85
	case 3:
		return 0.65
	default:
		return 0.4
	}
}

// seasonMatch 计算搭配季节与当前季节的匹配度：
// 精确 1.0，四季通用 0.9，相邻季节 0.6，其余 0.3；搭配无季节 → 0.8。
func seasonMatch(outfitSeason, currentSeason core.Season) float64 {
	if outfitSeason == "" {
		return 0.8
	}
	if outfitSeason == currentSeason {
		return 1.0
	}
	if outfitSeason == core.SeasonAll {
		return 0.9
	}
	if core.SeasonsAdjacent(currentSeason, outfitSeason) {
		return 0.6
	}
	return 0.3
}

// outfitColors 汇总搭配内所有商品的色名。
func outfitColors(o *core.Outfit) []string {
	var out []string
	for _, p := range o.Products {
		if p != nil {
			out = append(out, p.Colors...)
		}
	}
	return out
}
