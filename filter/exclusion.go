package filter

import (
	"context"

	"github.com/rushteam/outfitkit/core"
)

// ExclusionFilter 过滤掉显式排除的商品：
// 请求级排除列表 + 画像的不喜欢列表。
type ExclusionFilter struct {
	// ProductIDs 是请求级排除的商品 ID（如"换一批"时已展示过的）
	ProductIDs []string
}

func (f *ExclusionFilter) Name() string {
	return "filter.exclusion"
}

func (f *ExclusionFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Product == nil {
		return true, nil
	}

	for _, id := range f.ProductIDs {
		if item.ID == id {
			return true, nil
		}
	}

	if rctx != nil && rctx.User != nil && rctx.User.IsExcluded(item.ID) {
		return true, nil
	}
	return false, nil
}

var _ Filter = (*ExclusionFilter)(nil)
