package store

import (
	"context"
	"sync"

	"github.com/rushteam/outfitkit/core"
)

// MemoryCatalog 是内存商品目录，实现 core.CatalogProvider。
// 适合小目录、测试与演示；大目录建议接数据库/搜索引擎。
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []*core.Product
	byID     map[string]*core.Product
}

// NewMemoryCatalog 用给定商品构建目录（保留切片顺序作为目录顺序）。
func NewMemoryCatalog(products []*core.Product) *MemoryCatalog {
	c := &MemoryCatalog{
		byID: make(map[string]*core.Product, len(products)),
	}
	for _, p := range products {
		if p == nil || p.ID == "" {
			continue
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}
	return c
}

// Add 追加或覆盖商品。
func (c *MemoryCatalog) Add(products ...*core.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range products {
		if p == nil || p.ID == "" {
			continue
		}
		if _, ok := c.byID[p.ID]; !ok {
			c.products = append(c.products, p)
		}
		c.byID[p.ID] = p
	}
}

// Products 按查询条件返回商品（目录顺序）。
func (c *MemoryCatalog) Products(_ context.Context, query *core.CatalogQuery) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if query == nil {
		query = &core.CatalogQuery{}
	}
	out := make([]*core.Product, 0, len(c.products))
	for _, p := range c.products {
		if query.InStock && !p.InStock {
			continue
		}
		if query.Gender != "" && !p.FitsGender(query.Gender) {
			continue
		}
		if query.Season != "" && len(p.Seasons) > 0 && !p.HasSeason(query.Season) {
			continue
		}
		if len(query.Categories) > 0 && !categoryIn(query.Categories, p.Category) {
			continue
		}
		out = append(out, p)
		if query.Limit > 0 && len(out) >= query.Limit {
			break
		}
	}
	return out, nil
}

// ProductsByID 按 ID 批量取商品，不存在的 ID 静默跳过。
func (c *MemoryCatalog) ProductsByID(_ context.Context, ids []string) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*core.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func categoryIn(cats []core.Category, c core.Category) bool {
	for _, cc := range cats {
		if cc == c {
			return true
		}
	}
	return false
}

var _ core.CatalogProvider = (*MemoryCatalog)(nil)
