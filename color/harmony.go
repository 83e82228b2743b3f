package color

import "strings"

// 两两和谐分的固定档位。首个命中的规则生效。
const (
	scoreIdentical     = 0.6 // 同色：中等和谐
	scoreBlackWhite    = 0.9 // 黑白经典组合
	scoreNeutral       = 0.8 // 任一侧为中性色：百搭
	scoreComplementary = 0.7 // 互补：高对比
	scoreAnalogous     = 0.8 // 邻近：柔和
	scoreTriadic       = 0.6 // 三角：鲜明但平衡
	scoreTemperature   = 0.5 // 同色温
	scoreNoRelation    = 0.3 // 无明显关系

	// 搭配级兜底
	scoreSingleProduct = 1.0 // 单品无需配色
	scoreNoColorInfo   = 0.5 // 无色彩信息：中性分
)

// Evaluator 是色彩和谐评估器：两两打分 + 搭配级均值。
type Evaluator struct {
	classifier Classifier
}

// NewEvaluator 创建评估器；classifier 为 nil 时使用默认规则分类器。
func NewEvaluator(classifier Classifier) *Evaluator {
	if classifier == nil {
		classifier = NewRuleClassifier(nil)
	}
	return &Evaluator{classifier: classifier}
}

// PairScore 计算两个色名的和谐分，返回 [0,1]。
//
// 规则优先级（先命中先生效）：
//  1. 同色 0.6
//  2. 黑白组合 0.9
//  3. 任一侧中性色 0.8
//  4. 互补 0.7
//  5. 邻近 0.8
//  6. 三角 0.6
//  7. 同色温 0.5
//  8. 无关系 0.3
//
// 黑白在中性之前检查：两者都是中性色，先查中性会把 0.9 吞成 0.8。
func (e *Evaluator) PairScore(color1, color2 string) float64 {
	c1 := Normalize(color1)
	c2 := Normalize(color2)

	switch {
	case c1 == c2:
		return scoreIdentical
	case isBlackWhitePair(c1, c2):
		return scoreBlackWhite
	case e.classifier.IsNeutral(c1) || e.classifier.IsNeutral(c2):
		return scoreNeutral
	case e.classifier.Complementary(c1, c2):
		return scoreComplementary
	case e.classifier.Analogous(c1, c2):
		return scoreAnalogous
	case e.classifier.Triadic(c1, c2):
		return scoreTriadic
	case (e.classifier.IsWarm(c1) && e.classifier.IsWarm(c2)) ||
		(e.classifier.IsCool(c1) && e.classifier.IsCool(c2)):
		return scoreTemperature
	default:
		return scoreNoRelation
	}
}

func isBlackWhitePair(c1, c2 string) bool {
	return (strings.Contains(c1, "black") && strings.Contains(c2, "white")) ||
		(strings.Contains(c1, "white") && strings.Contains(c2, "black"))
}

// OutfitHarmony 计算整套搭配的和谐分：所有商品色彩两两打分取均值。
//
// 边界：
//   - 少于 2 件商品 → 1.0（单品无需配色）
//   - 无任何色彩信息 → 0.5（中性分，不惩罚数据缺失）
func (e *Evaluator) OutfitHarmony(productColors [][]string) float64 {
	if len(productColors) < 2 {
		return scoreSingleProduct
	}

	all := make([]string, 0, len(productColors)*2)
	for _, colors := range productColors {
		for _, c := range colors {
			if strings.TrimSpace(c) != "" {
				all = append(all, c)
			}
		}
	}
	if len(all) == 0 {
		return scoreNoColorInfo
	}

	var total float64
	pairs := 0
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			total += e.PairScore(all[i], all[j])
			pairs++
		}
	}
	if pairs == 0 {
		return scoreNoColorInfo
	}
	return total / float64(pairs)
}

// Palette 是某个商品的配色建议。
type Palette struct {
	Complementary []string
	Analogous     []string
	Neutrals      []string
}

// PaletteRecommendation 基于商品主色（第一个色名）生成配色建议。
// 无色彩信息时只给中性色。
func (e *Evaluator) PaletteRecommendation(productColors []string) *Palette {
	rc, ok := e.classifier.(*RuleClassifier)
	if !ok {
		rc = NewRuleClassifier(nil)
	}
	if len(productColors) == 0 {
		return &Palette{Neutrals: rc.Neutrals()}
	}
	primary := productColors[0]
	return &Palette{
		Complementary: rc.SuggestComplementary(primary),
		Analogous:     rc.SuggestAnalogous(primary),
		Neutrals:      rc.Neutrals(),
	}
}
