package rerank

import (
	"context"

	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/pipeline"
)

// CategoryTopNNode 按品类截断：每个品类最多保留前 N 个商品。
//
// 搭配组合按品类选品，单一品类霸榜会饿死其他品类，
// 品类级截断保证每个槽位都有候选，同时控制组合的搜索空间。
// 保持输入（排序后）顺序。
type CategoryTopNNode struct {
	// PerCategory 每个品类保留的商品数量，<= 0 时不截断
	PerCategory int
}

func (n *CategoryTopNNode) Name() string {
	return "rerank.category_topn"
}

func (n *CategoryTopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *CategoryTopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.PerCategory <= 0 || len(items) == 0 {
		return items, nil
	}

	counts := make(map[core.Category]int, 8)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		cate := it.Product.Category
		if counts[cate] >= n.PerCategory {
			continue
		}
		counts[cate]++
		out = append(out, it)
	}
	return out, nil
}

var _ pipeline.Node = (*CategoryTopNNode)(nil)
