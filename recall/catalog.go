package recall

import (
	"context"

	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/pkg/utils"
)

// Catalog 是目录召回源：从宿主的 CatalogProvider 拉取候选商品。
// 只做粗筛（有货/性别/数量上限），精筛交给 Filter 节点。
type Catalog struct {
	Provider core.CatalogProvider

	// Limit 单次召回上限，0 表示不限制
	Limit int

	// InStockOnly 是否只召回有货商品（默认 true 更合理，由构造方决定）
	InStockOnly bool
}

func (n *Catalog) Name() string { return "recall.catalog" }

func (n *Catalog) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if n.Provider == nil {
		return nil, nil
	}

	query := &core.CatalogQuery{
		Season:  rctx.EffectiveSeason(),
		InStock: n.InStockOnly,
		Limit:   n.Limit,
	}
	if rctx.User != nil {
		query.Gender = rctx.User.Gender
	}

	products, err := n.Provider.Products(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]*core.Item, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		it := core.NewItem(p)
		it.PutLabel("recall_source", utils.Label{Value: n.Name(), Source: "recall"})
		items = append(items, it)
	}
	return items, nil
}

var _ Source = (*Catalog)(nil)
