// Package outfit 实现搭配组合与匹配评分：
// 按原型结构蓝图选品成套、计算完整度与品类占比、输出 0-100 匹配分与解释。
package outfit

import "github.com/rushteam/outfitkit/core"

// Structure 是一套搭配的结构蓝图。
type Structure struct {
	Required []core.Category // 必需品类，缺失会压低完整度
	Optional []core.Category // 可选品类，按变化档位概率加入
	Priority []core.Category // 季节优先品类，排在可选队列前面
	MinItems int
	MaxItems int
}

// archetypeStructures 是原型 → 结构蓝图表。
// luxury 要求配饰（min 4），其余原型统一三件套起步。
var archetypeStructures = map[string]Structure{
	"klassiek": {
		Required: []core.Category{core.CategoryTop, core.CategoryBottom, core.CategoryFootwear},
		Optional: []core.Category{core.CategoryOuterwear, core.CategoryAccessory},
		MinItems: 3,
		MaxItems: 5,
	},
	"casual_chic": {
		Required: []core.Category{core.CategoryTop, core.CategoryBottom, core.CategoryFootwear},
		Optional: []core.Category{core.CategoryAccessory, core.CategoryOuterwear},
		MinItems: 3,
		MaxItems: 5,
	},
	"urban": {
		Required: []core.Category{core.CategoryTop, core.CategoryBottom, core.CategoryFootwear},
		Optional: []core.Category{core.CategoryOuterwear, core.CategoryAccessory},
		MinItems: 3,
		MaxItems: 5,
	},
	"streetstyle": {
		Required: []core.Category{core.CategoryTop, core.CategoryBottom, core.CategoryFootwear},
		Optional: []core.Category{core.CategoryAccessory, core.CategoryOuterwear},
		MinItems: 3,
		MaxItems: 5,
	},
	"retro": {
		Required: []core.Category{core.CategoryTop, core.CategoryBottom, core.CategoryFootwear},
		Optional: []core.Category{core.CategoryAccessory, core.CategoryOuterwear},
		MinItems: 3,
		MaxItems: 5,
	},
	"luxury": {
		Required: []core.Category{core.CategoryTop, core.CategoryBottom, core.CategoryFootwear, core.CategoryAccessory},
		Optional: []core.Category{core.CategoryOuterwear},
		MinItems: 4,
		MaxItems: 6,
	},
}

var defaultStructure = Structure{
	Required: []core.Category{core.CategoryTop, core.CategoryBottom, core.CategoryFootwear},
	Optional: []core.Category{core.CategoryAccessory, core.CategoryOuterwear},
	MinItems: 3,
	MaxItems: 5,
}

// completenessCategories 是完整度的固定口径：一套能穿出门的最低构成。
// 蓝图/季节额外升格的必需品类（冬季外套、luxury 配饰）只影响选品顺序，
// 不进完整度的分母——三大件齐了完整度就是 100。
var completenessCategories = []core.Category{
	core.CategoryTop,
	core.CategoryBottom,
	core.CategoryFootwear,
}

// seasonalAdjustment 是季节对结构的修正。
type seasonalAdjustment struct {
	required []core.Category // 加入必需（已在可选里的移到必需）
	priority []core.Category // 移到可选队列最前
}

var seasonalAdjustments = map[core.Season]seasonalAdjustment{
	core.SeasonSpring: {},
	core.SeasonSummer: {
		priority: []core.Category{core.CategoryTop, core.CategoryBottom},
	},
	core.SeasonAutumn: {
		required: []core.Category{core.CategoryOuterwear},
	},
	core.SeasonWinter: {
		required: []core.Category{core.CategoryOuterwear},
		priority: []core.Category{core.CategoryOuterwear},
	},
}

// StructureFor 返回原型在指定季节的结构蓝图：
// 基础蓝图 + 季节修正（秋冬外套从可选升为必需）。
func StructureFor(arch string, season core.Season) Structure {
	base, ok := archetypeStructures[arch]
	if !ok {
		base = defaultStructure
	}

	s := Structure{
		Required: append([]core.Category(nil), base.Required...),
		Optional: append([]core.Category(nil), base.Optional...),
		MinItems: base.MinItems,
		MaxItems: base.MaxItems,
	}

	adj := seasonalAdjustments[season]
	for _, c := range adj.required {
		if containsCategory(s.Required, c) {
			continue
		}
		s.Optional = removeCategory(s.Optional, c)
		s.Required = append(s.Required, c)
	}
	s.Priority = append([]core.Category(nil), adj.priority...)
	return s
}

func containsCategory(cats []core.Category, c core.Category) bool {
	for _, cc := range cats {
		if cc == c {
			return true
		}
	}
	return false
}

func removeCategory(cats []core.Category, c core.Category) []core.Category {
	out := cats[:0]
	for _, cc := range cats {
		if cc != c {
			out = append(out, cc)
		}
	}
	return out
}

// VariationLevel 控制组合时随机性与纯分数排序之间的配比。
type VariationLevel string

const (
	VariationLow    VariationLevel = "low"
	VariationMedium VariationLevel = "medium"
	VariationHigh   VariationLevel = "high"
)

// variation 是变化档位的具体参数。
type variation struct {
	optionalProbability float64 // 每个可选品类被加入的概率
	weightVariation     float64 // 选品分数的抖动幅度
	allowSubstitutes    bool    // 允许连衣裙/连体裤替代上下装
}

var variationLevels = map[VariationLevel]variation{
	VariationLow:    {optionalProbability: 0.3, weightVariation: 0.1, allowSubstitutes: false},
	VariationMedium: {optionalProbability: 0.5, weightVariation: 0.2, allowSubstitutes: true},
	VariationHigh:   {optionalProbability: 0.7, weightVariation: 0.3, allowSubstitutes: true},
}

func variationFor(level VariationLevel) variation {
	if v, ok := variationLevels[level]; ok {
		return v
	}
	return variationLevels[VariationMedium]
}
