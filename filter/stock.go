package filter

import (
	"context"

	"github.com/rushteam/outfitkit/core"
)

// StockFilter 过滤掉无货商品。硬过滤：售罄商品永远不进搭配。
type StockFilter struct{}

func (f *StockFilter) Name() string {
	return "filter.stock"
}

func (f *StockFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Product == nil {
		return true, nil
	}
	return !item.Product.InStock, nil
}

var _ Filter = (*StockFilter)(nil)
