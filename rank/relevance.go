package rank

import (
	"context"
	"sort"

	"github.com/rushteam/outfitkit/archetype"
	"github.com/rushteam/outfitkit/color"
	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/pipeline"
	"github.com/rushteam/outfitkit/pkg/utils"
)

// 默认的单品相关性权重。
const (
	DefaultArchetypeWeight = 0.5
	DefaultColorWeight     = 0.3
	DefaultRatingWeight    = 0.2
)

// RelevanceNode 是单品相关性排序 Node。
//
// 单品分 = 原型标签命中率 * wa + 画像色板和谐分 * wc + 评分归一值 * wr
//
//   - 原型命中率按主导+次级原型混合计算（见 archetype.BlendedTagScore）
//   - 色板和谐分是商品色彩与画像色板的两两均值，任一侧无色彩信息取 0.5
//   - 评分缺失按 0.5 计，不惩罚数据缺失
//
// 更新 item.Score 并按分数降序稳定排序（同分保持召回顺序）。
// 写入 labels：rank_model
type RelevanceNode struct {
	// 为 0 时使用对应默认权重
	ArchetypeWeight float64
	ColorWeight     float64
	RatingWeight    float64

	Matcher   archetype.StyleMatcher
	Evaluator *color.Evaluator
}

func NewRelevanceNode() *RelevanceNode {
	return &RelevanceNode{
		ArchetypeWeight: DefaultArchetypeWeight,
		ColorWeight:     DefaultColorWeight,
		RatingWeight:    DefaultRatingWeight,
		Matcher:         archetype.KeywordMatcher{},
		Evaluator:       color.NewEvaluator(nil),
	}
}

func (n *RelevanceNode) Name() string        { return "rank.relevance" }
func (n *RelevanceNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *RelevanceNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	matcher := n.Matcher
	if matcher == nil {
		matcher = archetype.KeywordMatcher{}
	}
	evaluator := n.Evaluator
	if evaluator == nil {
		evaluator = color.NewEvaluator(nil)
	}
	wa, wc, wr := n.weights()

	var dominant, secondary string
	var mix float64
	if rctx != nil && rctx.Archetype != nil {
		dominant = rctx.Archetype.Dominant
		secondary = rctx.Archetype.Secondary
		mix = rctx.Archetype.MixFactor
	}
	var palette []string
	if rctx != nil && rctx.User != nil {
		palette = rctx.User.ColorPalette
	}

	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		archScore := 0.5
		if dominant != "" {
			archScore = archetype.BlendedTagScore(matcher, it.Product.StyleTags, dominant, secondary, mix)
		}
		colorScore := paletteHarmony(evaluator, it.Product.Colors, palette)
		ratingScore := 0.5
		if it.Product.Rating > 0 {
			ratingScore = it.Product.Rating / 5
			if ratingScore > 1 {
				ratingScore = 1
			}
		}

		it.Score = archScore*wa + colorScore*wc + ratingScore*wr
		it.PutLabel("rank_model", utils.Label{Value: "relevance", Source: "rank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
	return items, nil
}

func (n *RelevanceNode) weights() (wa, wc, wr float64) {
	wa, wc, wr = n.ArchetypeWeight, n.ColorWeight, n.RatingWeight
	if wa <= 0 && wc <= 0 && wr <= 0 {
		return DefaultArchetypeWeight, DefaultColorWeight, DefaultRatingWeight
	}
	return wa, wc, wr
}

// paletteHarmony 计算商品色彩与画像色板的两两和谐均值。
// 任一侧无色彩信息返回 0.5（中性分）。
func paletteHarmony(e *color.Evaluator, productColors, palette []string) float64 {
	if len(productColors) == 0 || len(palette) == 0 {
		return 0.5
	}
	var total float64
	pairs := 0
	for _, pc := range productColors {
		for _, uc := range palette {
			total += e.PairScore(pc, uc)
			pairs++
		}
	}
	if pairs == 0 {
		return 0.5
	}
	return total / float64(pairs)
}

var _ pipeline.Node = (*RelevanceNode)(nil)
