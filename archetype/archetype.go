// Package archetype 实现风格原型识别：
// 风格偏好 → 原型得分矩阵 → 主导/次级原型 + 混合因子。
package archetype

// 内置的六个风格原型。ID 是稳定约定，存储与反馈事件都引用它。
const (
	Klassiek    = "klassiek"    // 经典：正式、永恒
	CasualChic  = "casual_chic" // 休闲优雅
	Urban       = "urban"       // 都市机能
	Streetstyle = "streetstyle" // 街头
	Retro       = "retro"       // 复古
	Luxury      = "luxury"      // 奢华
)

// All 返回全部原型 ID（固定顺序，得分打平时按此顺序稳定）。
func All() []string {
	return []string{Klassiek, CasualChic, Urban, Streetstyle, Retro, Luxury}
}

// 风格偏好类别（画像 StylePreferences 的 key）。
const (
	StyleCasual     = "casual"
	StyleFormal     = "formal"
	StyleSporty     = "sporty"
	StyleVintage    = "vintage"
	StyleMinimalist = "minimalist"
)

// weightMatrix 是风格类别 → 原型的权重矩阵。
// 原型得分 = Σ 偏好值 × 矩阵权重。矩阵内容是固定约定，改动需配套更新测试。
var weightMatrix = map[string]map[string]float64{
	Klassiek: {
		StyleFormal:     1.0,
		StyleMinimalist: 0.8,
		StyleCasual:     0.2,
		StyleSporty:     0.1,
		StyleVintage:    0.4,
	},
	CasualChic: {
		StyleCasual:     0.9,
		StyleMinimalist: 0.6,
		StyleFormal:     0.5,
		StyleSporty:     0.3,
		StyleVintage:    0.3,
	},
	Urban: {
		StyleSporty:     0.8,
		StyleCasual:     0.7,
		StyleMinimalist: 0.5,
		StyleFormal:     0.2,
		StyleVintage:    0.1,
	},
	Streetstyle: {
		StyleSporty:     1.0,
		StyleCasual:     0.7,
		StyleVintage:    0.4,
		StyleMinimalist: 0.2,
		StyleFormal:     0.1,
	},
	Retro: {
		StyleVintage:    1.0,
		StyleCasual:     0.5,
		StyleFormal:     0.4,
		StyleMinimalist: 0.3,
		StyleSporty:     0.2,
	},
	Luxury: {
		StyleFormal:     1.0,
		StyleMinimalist: 0.7,
		StyleVintage:    0.5,
		StyleCasual:     0.3,
		StyleSporty:     0.1,
	},
}

// styleKeywords 是原型 → 风格关键词表。
// 商品 StyleTags 与关键词的命中率驱动选品与匹配分。
var styleKeywords = map[string][]string{
	Klassiek:    {"elegant", "timeless", "refined", "classic", "sophisticated", "formal", "minimalist"},
	CasualChic:  {"relaxed", "comfortable", "effortless", "modern", "versatile", "casual", "minimalist"},
	Urban:       {"functional", "practical", "edgy", "modern", "city", "sporty", "casual"},
	Streetstyle: {"trendy", "bold", "authentic", "creative", "expressive", "sporty", "casual"},
	Retro:       {"vintage", "nostalgic", "unique", "timeless", "classic"},
	Luxury:      {"premium", "exclusive", "sophisticated", "quality", "refined", "formal", "minimalist"},
}

// StyleKeywords 返回原型的风格关键词；未知原型给通用兜底词。
func StyleKeywords(arch string) []string {
	if kw, ok := styleKeywords[arch]; ok {
		out := make([]string, len(kw))
		copy(out, kw)
		return out
	}
	return []string{"versatile", "timeless", "adaptable"}
}

// outfitTags 是原型 → 搭配标签表（生成搭配 Tags 用，取前几个）。
var outfitTags = map[string][]string{
	Klassiek:    {"elegant", "timeless", "refined", "classic"},
	CasualChic:  {"relaxed", "comfortable", "effortless", "modern"},
	Urban:       {"functional", "practical", "edgy", "modern"},
	Streetstyle: {"trendy", "bold", "authentic", "creative"},
	Retro:       {"vintage", "nostalgic", "unique", "timeless"},
	Luxury:      {"premium", "exclusive", "sophisticated", "quality"},
}

// OutfitTags 返回原型的搭配标签。
func OutfitTags(arch string) []string {
	if tags, ok := outfitTags[arch]; ok {
		out := make([]string, len(tags))
		copy(out, tags)
		return out
	}
	return nil
}

// occasions 是原型 → 典型场合表（每个场合生成一套搭配）。
var occasions = map[string][]string{
	Klassiek:    {"work", "formal", "business dinner"},
	CasualChic:  {"casual", "weekend", "lunch"},
	Urban:       {"city", "casual", "active"},
	Streetstyle: {"casual", "night out", "festival"},
	Retro:       {"casual", "creative", "weekend"},
	Luxury:      {"formal", "gala", "special occasion"},
}

// Occasions 返回原型的典型场合；未知原型给通用兜底。
func Occasions(arch string) []string {
	if occ, ok := occasions[arch]; ok {
		out := make([]string, len(occ))
		copy(out, occ)
		return out
	}
	return []string{"casual", "work", "formal"}
}

// complementary 是原型 → 互补原型表（次级原型兜底用，顺序即优先级）。
var complementary = map[string][]string{
	Klassiek:    {CasualChic, Luxury},
	CasualChic:  {Klassiek, Urban},
	Urban:       {Streetstyle, CasualChic},
	Streetstyle: {Urban, Retro},
	Retro:       {Streetstyle, CasualChic},
	Luxury:      {Klassiek, Retro},
}

// Complementary 返回与给定原型互补的原型列表。
func Complementary(arch string) []string {
	if c, ok := complementary[arch]; ok {
		out := make([]string, len(c))
		copy(out, c)
		return out
	}
	return All()
}

// occasionArchetype 是场合 → 原型映射（画像无风格数据时的场合兜底路径）。
var occasionArchetype = map[string]string{
	"work":     Klassiek,
	"formal":   Luxury,
	"casual":   CasualChic,
	"active":   Urban,
	"night":    Streetstyle,
	"festival": Retro,
}

// ArchetypeForOccasion 返回场合对应的原型，未映射时返回空串。
func ArchetypeForOccasion(occasion string) string {
	return occasionArchetype[occasion]
}
