package outfit

import (
	"fmt"
	"sort"

	"github.com/rushteam/outfitkit/core"
)

// 变体默认参数。
const (
	DefaultMaxVariants   = 3
	DefaultRemixMinScore = DefaultClampMin
)

// Variant 是换装变体：只替换目标品类的一件商品，其余引用原搭配。
type Variant struct {
	Outfit     *core.Outfit
	Swapped    *core.Product // 换入的商品
	Replaced   *core.Product // 被换出的商品
	ScoreDelta int           // 相对原搭配的匹配分变化
	Insight    string
}

// Remixer 生成单品类换装变体并重新评分。
//
// 使用场景：用户喜欢整体搭配但想换鞋/换包时，
// 给出若干只动一个槽位的备选，按新匹配分降序。
type Remixer struct {
	Scorer *Scorer

	// MaxVariants 返回的变体上限，默认 3
	MaxVariants int
	// MinScore 变体的匹配分下限，低于此分的变体丢弃；0 时取 DefaultRemixMinScore
	MinScore int
}

// NewRemixer 返回默认配置的变体生成器。
func NewRemixer() *Remixer {
	return &Remixer{
		Scorer:      NewScorer(),
		MaxVariants: DefaultMaxVariants,
		MinScore:    DefaultRemixMinScore,
	}
}

// Remix 针对目标品类生成变体。
//
// 原搭配不含目标品类、或候选池里没有可换商品时返回错误；
// 所有变体低于 MinScore 时返回空列表（不报错）。
// 未被替换的商品沿用原搭配的引用，保证其余槽位完全不变。
func (r *Remixer) Remix(
	o *core.Outfit,
	target core.Category,
	pool []*core.Product,
	profile *core.UserProfile,
	userArchetype string,
	currentSeason core.Season,
) ([]*Variant, error) {
	if o == nil {
		return nil, core.NewDomainError(core.ModuleOutfit, core.ErrorCodeInvalidInput, "remix: nil outfit")
	}

	replaceIdx := -1
	for i, p := range o.Products {
		if p != nil && p.Category == target {
			replaceIdx = i
			break
		}
	}
	if replaceIdx < 0 {
		return nil, core.NewDomainError(core.ModuleOutfit, core.ErrorCodeNotFound,
			fmt.Sprintf("remix: outfit has no %s to swap", target))
	}
	replaced := o.Products[replaceIdx]

	inOutfit := make(map[string]bool, len(o.Products))
	for _, p := range o.Products {
		if p != nil {
			inOutfit[p.ID] = true
		}
	}

	var alternatives []*core.Product
	for _, p := range pool {
		if p == nil || p.Category != target || inOutfit[p.ID] || !p.InStock {
			continue
		}
		alternatives = append(alternatives, p)
	}
	if len(alternatives) == 0 {
		return nil, core.NewDomainError(core.ModuleOutfit, core.ErrorCodeNotFound,
			fmt.Sprintf("remix: no alternative %s products in pool", target))
	}

	scorer := r.Scorer
	if scorer == nil {
		scorer = NewScorer()
	}
	minScore := r.MinScore
	if minScore <= 0 {
		minScore = DefaultRemixMinScore
	}

	variants := make([]*Variant, 0, len(alternatives))
	for _, alt := range alternatives {
		v := r.buildVariant(o, replaceIdx, alt, replaced, scorer, profile, userArchetype, currentSeason)
		if v.Outfit.MatchPercentage < minScore {
			continue
		}
		variants = append(variants, v)
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Outfit.MatchPercentage > variants[j].Outfit.MatchPercentage
	})

	maxVariants := r.MaxVariants
	if maxVariants <= 0 {
		maxVariants = DefaultMaxVariants
	}
	if len(variants) > maxVariants {
		variants = variants[:maxVariants]
	}
	return variants, nil
}

// buildVariant 克隆搭配并替换目标槽位，重新评分。
func (r *Remixer) buildVariant(
	o *core.Outfit,
	replaceIdx int,
	alt, replaced *core.Product,
	scorer *Scorer,
	profile *core.UserProfile,
	userArchetype string,
	currentSeason core.Season,
) *Variant {
	products := make([]*core.Product, len(o.Products))
	copy(products, o.Products)
	products[replaceIdx] = alt

	clone := *o
	clone.ID = fmt.Sprintf("%s-remix-%s", o.ID, alt.ID)
	clone.Products = products
	clone.CategoryRatio = categoryRatio(products)
	clone.HasDuplicates = o.HasDuplicates

	scorer.Apply(&clone, profile, userArchetype, currentSeason)
	delta := clone.MatchPercentage - o.MatchPercentage

	return &Variant{
		Outfit:     &clone,
		Swapped:    alt,
		Replaced:   replaced,
		ScoreDelta: delta,
		Insight:    swapInsight(alt.Category, delta),
	}
}

// swapInsight 生成换装提示文案。
func swapInsight(category core.Category, delta int) string {
	switch {
	case delta >= 10:
		return fmt.Sprintf("Great swap! The new %s lifts your match by %d points.", category, delta)
	case delta >= 5:
		return fmt.Sprintf("Nice improvement — this %s works better with the rest of your outfit (+%d).", category, delta)
	case delta > 0:
		return fmt.Sprintf("Good pick. A small harmony boost from this %s.", category)
	case delta <= -5:
		return fmt.Sprintf("This %s fits your outfit less well. Maybe try another color or style?", category)
	default:
		return "An interesting pick — the score stays about the same. Go with what you love!"
	}
}
