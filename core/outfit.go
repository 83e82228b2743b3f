package core

// Outfit 是一套完整搭配：若干商品 + 结构信息 + 匹配解释。
//
// 约定：
//   - Completeness 为必需品类的满足率（0-100，全满足 = 100）
//   - CategoryRatio 各品类占比（百分比，总和为 100）
//   - MatchPercentage 为匹配分模型输出（截断在配置的区间内，默认 [70, 98]）
//   - HasDuplicates 标记候选池耗尽时被迫复用的商品
type Outfit struct {
	ID          string
	Title       string
	Description string

	// 原型信息
	Archetype          string
	SecondaryArchetype string
	MixFactor          float64

	// 场景信息
	Occasion string
	Season   Season
	Weather  Weather

	// 构成
	Products          []*Product
	Structure         []Category       // 本套搭配实际使用的结构（必需 + 已填充的可选）
	CategoryRatio     map[Category]int // 品类占比（百分比，和为 100）
	Completeness      int              // 必需品类满足率 0-100
	MissingCategories []Category       // 未能填充的必需品类
	HasDuplicates     bool             // 是否含跨搭配复用的商品（池耗尽时）

	// 匹配解释
	MatchPercentage int
	ScoreBreakdown  map[string]float64 // 各维度子分（archetype/color/style/season/occasion）
	Explanation     []string           // 人类可读的匹配理由
	Tags            []string
}

// Categories 返回搭配中出现的品类集合（去重，按出现顺序）。
func (o *Outfit) Categories() []Category {
	seen := make(map[Category]bool, len(o.Products))
	out := make([]Category, 0, len(o.Products))
	for _, p := range o.Products {
		if p == nil || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// HasCategory 判断搭配是否含指定品类（计入替代品类：连衣裙占住 top+bottom）。
func (o *Outfit) HasCategory(c Category) bool {
	for _, p := range o.Products {
		if p == nil {
			continue
		}
		if p.Category == c {
			return true
		}
		for _, sub := range p.Category.SubstituteFor() {
			if sub == c {
				return true
			}
		}
	}
	return false
}

// ProductByCategory 返回搭配中第一个属于指定品类的商品，不存在时返回 nil。
func (o *Outfit) ProductByCategory(c Category) *Product {
	for _, p := range o.Products {
		if p != nil && p.Category == c {
			return p
		}
	}
	return nil
}

// TotalPrice 返回搭配总价。
func (o *Outfit) TotalPrice() float64 {
	var sum float64
	for _, p := range o.Products {
		if p != nil {
			sum += p.Price
		}
	}
	return sum
}
