package filter

import (
	"context"

	"github.com/rushteam/outfitkit/core"
)

// GenderFilter 按画像性别过滤商品。
// 商品或画像任一侧未标注（或 unisex）时保留。
type GenderFilter struct{}

func (f *GenderFilter) Name() string {
	return "filter.gender"
}

func (f *GenderFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Product == nil {
		return true, nil
	}
	if rctx == nil || rctx.User == nil {
		return false, nil
	}
	return !item.Product.FitsGender(rctx.User.Gender), nil
}

var _ Filter = (*GenderFilter)(nil)
