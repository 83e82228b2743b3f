package core

import "github.com/rushteam/outfitkit/pkg/utils"

// Item 是推荐链路中的统一承载结构：商品、分数、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
// Product 指针由召回源填充，链路各节点只读商品、读写分数与标签。
type Item struct {
	ID      string
	Score   float64
	Product *Product
	Labels  map[string]utils.Label
}

func NewItem(p *Product) *Item {
	if p == nil {
		return &Item{Labels: make(map[string]utils.Label)}
	}
	return &Item{
		ID:      p.ID,
		Score:   0,
		Product: p,
		Labels:  make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 获取 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	if it.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := it.Labels[key]
	return lbl, ok
}
