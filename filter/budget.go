package filter

import (
	"context"

	"github.com/rushteam/outfitkit/core"
)

// BudgetFilter 按画像的单品预算区间过滤。
// 画像无预算（上下限都为 0）时不过滤。
type BudgetFilter struct{}

func (f *BudgetFilter) Name() string {
	return "filter.budget"
}

func (f *BudgetFilter) ShouldFilter(
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

	minBudget := rctx.User.BudgetMin
	maxBudget := rctx.User.BudgetMax
	if minBudget <= 0 && maxBudget <= 0 {
		return false, nil
	}

	price := item.Product.Price
	if minBudget > 0 && price < minBudget {
		return true, nil
	}
	if maxBudget > 0 && price > maxBudget {
		return true, nil
	}
	return false, nil
}

var _ Filter = (*BudgetFilter)(nil)
