package archetype

import "strings"

// StyleMatcher 是风格标签与原型的匹配策略接口。
//
// 设计原则：
//   - 把"标签怎么算命中"从评分模型里抽出来，方便替换
//     （默认子串 + 前缀模糊；宿主可换成 embedding 相似度等）
type StyleMatcher interface {
	// Match 返回风格文本与原型的匹配度：
	// 直接命中 1.0，前缀模糊命中 0.7，未命中 0.3
	Match(style, arch string) float64

	// TagScore 返回商品风格标签集与原型的命中率（0-1）：
	// 命中标签数 / 标签总数，无标签返回 0
	TagScore(styleTags []string, arch string) float64
}

// KeywordMatcher 是基于关键词表的默认实现。
type KeywordMatcher struct{}

// Match 计算风格文本与原型的匹配度。
// 规则：原型关键词是风格文本的子串 → 1.0；
// 关键词与风格文本前 4 字符相同 → 0.7（容忍词形变化，如 casual/casually）；
// 否则 0.3。
func (KeywordMatcher) Match(style, arch string) float64 {
	if style == "" || arch == "" {
		return 0.5
	}
	s := strings.ToLower(style)
	keywords := StyleKeywords(strings.ToLower(arch))

	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return 1.0
		}
	}
	if len(s) >= 4 {
		prefix := s[:4]
		for _, kw := range keywords {
			if len(kw) >= 4 && kw[:4] == prefix {
				return 0.7
			}
		}
	}
	return 0.3
}

// TagScore 计算标签集与原型的命中率（精确匹配，大小写不敏感）。
func (KeywordMatcher) TagScore(styleTags []string, arch string) float64 {
	if len(styleTags) == 0 {
		return 0
	}
	keywords := StyleKeywords(strings.ToLower(arch))
	kwSet := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kwSet[kw] = true
	}

	matched := 0
	for _, tag := range styleTags {
		if kwSet[strings.ToLower(tag)] {
			matched++
		}
	}
	return float64(matched) / float64(len(styleTags))
}

// BlendedTagScore 计算标签集与主导+次级原型组合的命中率：
// primary*(1-mix) + secondary*mix。次级为空时退化为纯主导。
func BlendedTagScore(m StyleMatcher, styleTags []string, dominant, secondary string, mix float64) float64 {
	primary := m.TagScore(styleTags, dominant)
	if secondary == "" || secondary == dominant || mix <= 0 {
		return primary
	}
	return primary*(1-mix) + m.TagScore(styleTags, secondary)*mix
}

// CombinedKeywords 按混合因子合并两个原型的关键词（目标 5 个）。
func CombinedKeywords(dominant, secondary string, mix float64) []string {
	primary := StyleKeywords(dominant)
	if secondary == "" || secondary == dominant || mix <= 0 {
		return primary
	}
	secondaryKw := StyleKeywords(secondary)

	const total = 5
	primaryCount := int(float64(total)*(1-mix) + 0.5)
	secondaryCount := total - primaryCount

	if primaryCount > len(primary) {
		primaryCount = len(primary)
	}
	out := make([]string, 0, total)
	out = append(out, primary[:primaryCount]...)

	seen := make(map[string]bool, len(primary))
	for _, kw := range primary {
		seen[kw] = true
	}
	for _, kw := range secondaryKw {
		if secondaryCount == 0 {
			break
		}
		if seen[kw] {
			continue
		}
		out = append(out, kw)
		secondaryCount--
	}
	return out
}

var _ StyleMatcher = KeywordMatcher{}
