package store

import (
	"context"
	"time"

	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/learn"
	"github.com/rushteam/outfitkit/recall"
)

// 交互数据的 key 布局。
const (
	likedKeyPrefix  = "cf:liked:"  // 用户 → 喜欢过的商品（score 为时间戳）
	likersKeyPrefix = "cf:likers:" // 商品 → 喜欢过它的用户
	seenKeyPrefix   = "cf:seen:"   // 用户 → 已交互的商品（召回时排除）
	likeCountKey    = "cf:like_counts"
)

// DefaultMaxRead 单次读取交互记录的上限。
const DefaultMaxRead = 200

// InteractionStore 把反馈事件落成协同过滤需要的交互视图：
// 谁喜欢了什么、什么被谁喜欢、谁见过什么。
//
// 同时实现 learn.Collector，可以和 learn.StoreCollector 并联：
// 一条反馈既进权重学习的事件流，也进协同过滤的交互索引。
// 只有正反馈会进喜欢索引；负反馈只标记"已见"。
type InteractionStore struct {
	KV core.KeyValueStore

	// MaxRead 单次读取上限，0 时取 DefaultMaxRead
	MaxRead int

	Logger core.Logger
}

// NewInteractionStore 返回基于 KeyValueStore 的交互存储。
func NewInteractionStore(kv core.KeyValueStore) *InteractionStore {
	return &InteractionStore{KV: kv}
}

// Collect 记录一条反馈事件的交互副作用。
func (s *InteractionStore) Collect(ctx context.Context, ev *core.FeedbackEvent) error {
	if ev == nil || ev.UserID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "interactions: missing user id")
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	score := float64(ts.Unix())

	for _, productID := range ev.Products {
		if productID == "" {
			continue
		}
		if err := s.KV.ZAdd(ctx, seenKeyPrefix+ev.UserID, score, productID); err != nil {
			return err
		}
		if !ev.Action.Positive() {
			continue
		}
		if err := s.KV.ZAdd(ctx, likedKeyPrefix+ev.UserID, score, productID); err != nil {
			return err
		}
		if err := s.KV.ZAdd(ctx, likersKeyPrefix+productID, score, ev.UserID); err != nil {
			return err
		}
		s.bumpLikeCount(ctx, productID)
	}
	return nil
}

func (s *InteractionStore) Close() error { return nil }

// LikedProducts 返回用户喜欢过的商品，最近的在前。
func (s *InteractionStore) LikedProducts(ctx context.Context, userID string) ([]string, error) {
	return s.KV.ZRange(ctx, likedKeyPrefix+userID, 0, int64(s.maxRead())-1)
}

// UsersWhoLiked 返回喜欢过指定商品的用户。
func (s *InteractionStore) UsersWhoLiked(ctx context.Context, productID string) ([]string, error) {
	return s.KV.ZRange(ctx, likersKeyPrefix+productID, 0, int64(s.maxRead())-1)
}

// SeenProducts 返回用户交互过的所有商品（无论正负反馈）。
func (s *InteractionStore) SeenProducts(ctx context.Context, userID string) ([]string, error) {
	return s.KV.ZRange(ctx, seenKeyPrefix+userID, 0, int64(s.maxRead())-1)
}

// LikeCount 返回商品的累计喜欢次数。
func (s *InteractionStore) LikeCount(ctx context.Context, productID string) (int, error) {
	score, err := s.KV.ZScore(ctx, likeCountKey, productID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return int(score), nil
}

// MostLiked 返回全站喜欢次数最多的前 n 个商品（热门兜底召回用）。
func (s *InteractionStore) MostLiked(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		n = s.maxRead()
	}
	return s.KV.ZRange(ctx, likeCountKey, 0, int64(n)-1)
}

// bumpLikeCount 累加喜欢计数。接口没有 ZIncrBy，读-改-写即可：
// 计数只做热门排序，轻微丢失无伤大雅。
func (s *InteractionStore) bumpLikeCount(ctx context.Context, productID string) {
	count, err := s.KV.ZScore(ctx, likeCountKey, productID)
	if err != nil && !core.IsStoreNotFound(err) {
		s.logger().Warnf("interactions: like count read failed for %s: %v", productID, err)
		return
	}
	if err := s.KV.ZAdd(ctx, likeCountKey, count+1, productID); err != nil {
		s.logger().Warnf("interactions: like count write failed for %s: %v", productID, err)
	}
}

func (s *InteractionStore) maxRead() int {
	if s.MaxRead > 0 {
		return s.MaxRead
	}
	return DefaultMaxRead
}

func (s *InteractionStore) logger() core.Logger {
	if s.Logger == nil {
		return core.NopLogger{}
	}
	return s.Logger
}

var (
	_ learn.Collector          = (*InteractionStore)(nil)
	_ recall.InteractionReader = (*InteractionStore)(nil)
)
