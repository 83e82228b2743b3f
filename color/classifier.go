package color

import "strings"

// Classifier 是色名分类的领域接口。
//
// 设计原则：
//   - 把"色名怎么认"与"认出来怎么打分"分离
//   - 默认实现 RuleClassifier 基于词表做子串容错匹配
//   - 宿主可以换成更强的实现（色号解析、向量最近邻等）
type Classifier interface {
	IsNeutral(color string) bool
	IsWarm(color string) bool
	IsCool(color string) bool

	// Complementary / Analogous / Triadic 判断两色是否命中对应关系（对称）
	Complementary(c1, c2 string) bool
	Analogous(c1, c2 string) bool
	Triadic(c1, c2 string) bool
}

// RuleClassifier 是基于规则表的默认实现。
// 匹配策略：双向子串（"navy blue" 命中词条 "navy"，词条 "royal blue" 命中 "royal"不成立）。
type RuleClassifier struct {
	rules *Rules
}

// NewRuleClassifier 创建默认分类器；rules 为 nil 时使用 DefaultRules。
func NewRuleClassifier(rules *Rules) *RuleClassifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &RuleClassifier{rules: rules}
}

// Normalize 归一化色名：小写 + 去首尾空白。
func Normalize(color string) string {
	return strings.ToLower(strings.TrimSpace(color))
}

func matchAny(color string, words []string) bool {
	for _, w := range words {
		if strings.Contains(color, w) || strings.Contains(w, color) {
			return true
		}
	}
	return false
}

func (rc *RuleClassifier) IsNeutral(color string) bool {
	return matchAny(Normalize(color), rc.rules.Neutrals)
}

func (rc *RuleClassifier) IsWarm(color string) bool {
	return matchAny(Normalize(color), rc.rules.Warm)
}

func (rc *RuleClassifier) IsCool(color string) bool {
	return matchAny(Normalize(color), rc.rules.Cool)
}

// matchPair 在 base→candidates 表里查两色是否命中（双向）。
func matchPair(table map[string][]string, c1, c2 string) bool {
	for base, candidates := range table {
		if strings.Contains(c1, base) && containsAny(c2, candidates) {
			return true
		}
		if strings.Contains(c2, base) && containsAny(c1, candidates) {
			return true
		}
	}
	return false
}

func containsAny(color string, words []string) bool {
	for _, w := range words {
		if strings.Contains(color, w) {
			return true
		}
	}
	return false
}

func (rc *RuleClassifier) Complementary(c1, c2 string) bool {
	return matchPair(rc.rules.Complementary, Normalize(c1), Normalize(c2))
}

func (rc *RuleClassifier) Analogous(c1, c2 string) bool {
	return matchPair(rc.rules.Analogous, Normalize(c1), Normalize(c2))
}

func (rc *RuleClassifier) Triadic(c1, c2 string) bool {
	return matchPair(rc.rules.Triadic, Normalize(c1), Normalize(c2))
}

// SuggestComplementary 返回与给定色搭配的互补色建议；
// 无命中时返回前 5 个中性色兜底。
func (rc *RuleClassifier) SuggestComplementary(color string) []string {
	return rc.suggest(rc.rules.Complementary, color)
}

// SuggestAnalogous 返回邻近色建议；无命中时返回前 5 个中性色兜底。
func (rc *RuleClassifier) SuggestAnalogous(color string) []string {
	return rc.suggest(rc.rules.Analogous, color)
}

func (rc *RuleClassifier) suggest(table map[string][]string, color string) []string {
	normalized := Normalize(color)
	for base, candidates := range table {
		if strings.Contains(normalized, base) {
			out := make([]string, len(candidates))
			copy(out, candidates)
			return out
		}
	}
	n := len(rc.rules.Neutrals)
	if n > 5 {
		n = 5
	}
	out := make([]string, n)
	copy(out, rc.rules.Neutrals[:n])
	return out
}

// Neutrals 返回中性色表的副本（调色板建议用）。
func (rc *RuleClassifier) Neutrals() []string {
	out := make([]string, len(rc.rules.Neutrals))
	copy(out, rc.rules.Neutrals)
	return out
}

var _ Classifier = (*RuleClassifier)(nil)
