package pipeline

import (
	"context"

	"github.com/rushteam/outfitkit/core"
)

// Pipeline 是候选商品加工的核心抽象：把召回/过滤/排序逻辑拆成可组合的 Node 链。
// 搭配组装（Composer）在 Pipeline 之后，消费排好序的候选集。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
