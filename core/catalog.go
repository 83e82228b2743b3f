package core

import "context"

// CatalogProvider 是商品目录的领域接口，由宿主应用实现。
//
// 设计原则：
//   - 引擎不持久化目录，只在请求内读取候选集
//   - 返回的顺序即"目录顺序"，排序打平分时按此稳定兜底
//
// 实现建议：
//   - 小目录：内存切片（见 store.MemoryCatalog）
//   - 大目录：数据库/搜索引擎查询，按品类/库存预筛
type CatalogProvider interface {
	// Products 返回候选商品。query 的条件是提示性的：
	// 实现可以只做粗筛，精筛由 Pipeline 的 Filter 节点完成。
	Products(ctx context.Context, query *CatalogQuery) ([]*Product, error)

	// ProductsByID 按 ID 批量取商品（协同过滤召回 / Remix 用），
	// 不存在的 ID 静默跳过。
	ProductsByID(ctx context.Context, ids []string) ([]*Product, error)
}

// CatalogQuery 是目录查询条件。零值字段表示不限制。
type CatalogQuery struct {
	Categories []Category
	Season     Season
	Gender     string
	InStock    bool // true 时只要有货商品
	Limit      int
}
