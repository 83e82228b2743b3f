package recall

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/pkg/utils"
)

// SimilarUser 是一个相似用户及其相似度（0-1）。
type SimilarUser struct {
	UserID     string  `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// SimilarityProvider 计算与给定用户口味相似的用户。
// 相似度的算法归宿主所有（SQL 聚合、离线任务、向量检索均可）。
type SimilarityProvider interface {
	SimilarUsers(ctx context.Context, userID string, limit int) ([]SimilarUser, error)
}

// InteractionReader 读取用户与商品的交互历史（协同过滤的数据面）。
// store.InteractionStore 是默认实现。
type InteractionReader interface {
	// LikedProducts 返回用户喜欢过的商品 ID
	LikedProducts(ctx context.Context, userID string) ([]string, error)

	// UsersWhoLiked 返回喜欢过指定商品的用户 ID
	UsersWhoLiked(ctx context.Context, productID string) ([]string, error)

	// SeenProducts 返回用户已曝光/已交互的商品 ID（召回时排除）
	SeenProducts(ctx context.Context, userID string) ([]string, error)
}

// Recommendation 是协同过滤的单条产出（"和你口味相近的人也喜欢"）。
type Recommendation struct {
	Product       *core.Product
	LikedByCount  int
	AvgSimilarity float64
}

// 协同过滤默认参数。
const (
	DefaultSimilarUserLimit = 50
	DefaultCFLimit          = 20

	// DefaultSimilarUserCacheTTL 相似用户缓存有效期
	DefaultSimilarUserCacheTTL = 7 * 24 * time.Hour
)

// Collaborative 是基于用户的协同过滤召回源。
//
// 流程：
//  1. 取相似用户（优先走 Store 缓存，7 天过期）
//  2. 聚合相似用户喜欢的商品，排除本人已见
//  3. 按 喜欢人数 降序、平均相似度 次序 排序，取 TopN
//
// 软降级：无相似用户 / 无交互数据时返回空集，绝不报错——
// 冷启动用户由目录召回兜底。
type Collaborative struct {
	Similarity   SimilarityProvider
	Interactions InteractionReader
	Catalog      core.CatalogProvider

	// Cache 相似用户缓存；nil 时每次请求重算
	Cache    core.Store
	CacheTTL time.Duration

	MaxSimilarUsers int
	Limit           int

	Logger core.Logger
}

func (n *Collaborative) Name() string { return "recall.collaborative" }

func (n *Collaborative) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	recs, err := n.Recommendations(ctx, rctx.UserID, n.limit())
	if err != nil {
		return nil, err
	}

	items := make([]*core.Item, 0, len(recs))
	for _, rec := range recs {
		it := core.NewItem(rec.Product)
		it.Score = rec.AvgSimilarity
		it.PutLabel("recall_source", utils.Label{Value: n.Name(), Source: "recall"})
		it.PutLabel("liked_by_count", utils.Label{Value: fmt.Sprintf("%d", rec.LikedByCount), Source: "recall"})
		items = append(items, it)
	}
	return items, nil
}

// Recommendations 返回协同过滤的商品推荐（facade 的 SimilarTaste 也走这里）。
func (n *Collaborative) Recommendations(ctx context.Context, userID string, count int) ([]*Recommendation, error) {
	if userID == "" || n.Similarity == nil || n.Interactions == nil || n.Catalog == nil {
		return nil, nil
	}

	similar, err := n.similarUsers(ctx, userID)
	if err != nil {
		n.logger().Warnf("collaborative: similar users failed: %v", err)
		return nil, nil
	}
	if len(similar) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	if seenIDs, err := n.Interactions.SeenProducts(ctx, userID); err == nil {
		for _, id := range seenIDs {
			seen[id] = true
		}
	}

	simByUser := make(map[string]float64, len(similar))
	for _, su := range similar {
		simByUser[su.UserID] = su.Similarity
	}

	type agg struct {
		likedBy  map[string]bool
		totalSim float64
	}
	counts := make(map[string]*agg)

	for _, su := range similar {
		liked, err := n.Interactions.LikedProducts(ctx, su.UserID)
		if err != nil {
			continue
		}
		for _, productID := range liked {
			if seen[productID] {
				continue
			}
			entry, ok := counts[productID]
			if !ok {
				entry = &agg{likedBy: make(map[string]bool)}
				counts[productID] = entry
			}
			if !entry.likedBy[su.UserID] {
				entry.likedBy[su.UserID] = true
				entry.totalSim += simByUser[su.UserID]
			}
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}

	type ranked struct {
		productID string
		likedBy   int
		avgSim    float64
	}
	order := make([]ranked, 0, len(counts))
	for productID, entry := range counts {
		order = append(order, ranked{
			productID: productID,
			likedBy:   len(entry.likedBy),
			avgSim:    entry.totalSim / float64(len(entry.likedBy)),
		})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].likedBy != order[j].likedBy {
			return order[i].likedBy > order[j].likedBy
		}
		if order[i].avgSim != order[j].avgSim {
			return order[i].avgSim > order[j].avgSim
		}
		return order[i].productID < order[j].productID
	})
	if count > 0 && len(order) > count {
		order = order[:count]
	}

	ids := make([]string, len(order))
	for i, r := range order {
		ids[i] = r.productID
	}
	products, err := n.Catalog.ProductsByID(ctx, ids)
	if err != nil {
		n.logger().Warnf("collaborative: product lookup failed: %v", err)
		return nil, nil
	}
	byID := make(map[string]*core.Product, len(products))
	for _, p := range products {
		if p != nil {
			byID[p.ID] = p
		}
	}

	recs := make([]*Recommendation, 0, len(order))
	for _, r := range order {
		p, ok := byID[r.productID]
		if !ok {
			continue
		}
		recs = append(recs, &Recommendation{
			Product:       p,
			LikedByCount:  r.likedBy,
			AvgSimilarity: r.avgSim,
		})
	}
	return recs, nil
}

// LikedTogether 返回与指定商品"经常一起被喜欢"的商品。
func (n *Collaborative) LikedTogether(ctx context.Context, productID string, count int) ([]*core.Product, error) {
	if productID == "" || n.Interactions == nil || n.Catalog == nil {
		return nil, nil
	}
	userIDs, err := n.Interactions.UsersWhoLiked(ctx, productID)
	if err != nil || len(userIDs) == 0 {
		return nil, nil
	}

	freq := make(map[string]int)
	for _, uid := range userIDs {
		liked, err := n.Interactions.LikedProducts(ctx, uid)
		if err != nil {
			continue
		}
		for _, pid := range liked {
			if pid == productID {
				continue
			}
			freq[pid]++
		}
	}
	if len(freq) == 0 {
		return nil, nil
	}

	type ranked struct {
		productID string
		count     int
	}
	order := make([]ranked, 0, len(freq))
	for pid, c := range freq {
		order = append(order, ranked{productID: pid, count: c})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].productID < order[j].productID
	})
	if count > 0 && len(order) > count {
		order = order[:count]
	}

	ids := make([]string, len(order))
	for i, r := range order {
		ids[i] = r.productID
	}
	return n.Catalog.ProductsByID(ctx, ids)
}

// similarUsers 取相似用户：先查缓存，未命中再算并回写。
func (n *Collaborative) similarUsers(ctx context.Context, userID string) ([]SimilarUser, error) {
	limit := n.MaxSimilarUsers
	if limit <= 0 {
		limit = DefaultSimilarUserLimit
	}
	cacheKey := "cf:similar_users:" + userID

	if n.Cache != nil {
		if data, err := n.Cache.Get(ctx, cacheKey); err == nil {
			var cached []SimilarUser
			if json.Unmarshal(data, &cached) == nil {
				n.logger().Debugf("collaborative: similar users cache hit for %s", userID)
				if len(cached) > limit {
					cached = cached[:limit]
				}
				return cached, nil
			}
		}
	}

	similar, err := n.Similarity.SimilarUsers(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if n.Cache != nil && len(similar) > 0 {
		ttl := n.CacheTTL
		if ttl <= 0 {
			ttl = DefaultSimilarUserCacheTTL
		}
		if data, err := json.Marshal(similar); err == nil {
			if err := n.Cache.Set(ctx, cacheKey, data, int(ttl.Seconds())); err != nil {
				n.logger().Warnf("collaborative: cache write failed: %v", err)
			}
		}
	}
	return similar, nil
}

// InvalidateCache 清除相似用户缓存（画像大幅变化后调用）。
func (n *Collaborative) InvalidateCache(ctx context.Context, userID string) error {
	if n.Cache == nil {
		return nil
	}
	return n.Cache.Delete(ctx, "cf:similar_users:"+userID)
}

func (n *Collaborative) limit() int {
	if n.Limit > 0 {
		return n.Limit
	}
	return DefaultCFLimit
}

func (n *Collaborative) logger() core.Logger {
	if n.Logger == nil {
		return core.NopLogger{}
	}
	return n.Logger
}

var _ Source = (*Collaborative)(nil)
