package learn

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rushteam/outfitkit/core"
)

// FeedbackReader 读取用户反馈统计（权重重算的数据面）。
// StoreCollector 是默认实现。
type FeedbackReader interface {
	FeedbackStats(ctx context.Context, userID string) (*core.FeedbackStats, error)
}

// 权重缓存默认参数。
const (
	// DefaultWeightMaxAge 缓存权重的有效期
	DefaultWeightMaxAge = 24 * time.Hour

	// DefaultFeedbackDelta 反馈量相对上次计算变化超过此值时强制重算
	DefaultFeedbackDelta = 5
)

const weightKeyPrefix = "learn:weights:"

// Manager 管理按用户缓存的自适应权重。
//
// 流程：
//  1. 读缓存，未过期（< 24h 且反馈量变化 ≤ 5）直接返回
//  2. 过期则用最新反馈统计重算，以上次自适应权重为起点（指数平滑）
//  3. 重算失败退回上次缓存值，再退回基础权重——权重学习绝不阻断推荐
type Manager struct {
	Learner  *Learner
	Feedback FeedbackReader

	// Cache 权重缓存；nil 时每次请求重算
	Cache core.Store

	// MaxAge 缓存有效期，0 时取 DefaultWeightMaxAge
	MaxAge time.Duration
	// Delta 反馈量变化阈值，0 时取 DefaultFeedbackDelta
	Delta int

	// Now 便于测试注入时钟
	Now func() time.Time

	Logger core.Logger
}

// NewManager 返回默认配置的权重管理器。
func NewManager(feedback FeedbackReader, cache core.Store) *Manager {
	return &Manager{
		Learner:  NewLearner(),
		Feedback: feedback,
		Cache:    cache,
	}
}

// Weights 返回用户当前的自适应权重。
// base 是画像的基础权重（原型名 → 0-100），首次学习以它为起点。
// 任何失败都软降级，最坏情况返回 base 的副本。
func (m *Manager) Weights(ctx context.Context, userID string, base map[string]float64) map[string]float64 {
	if userID == "" || m.Feedback == nil {
		return copyWeights(base)
	}

	cached := m.load(ctx, userID)

	stats, err := m.Feedback.FeedbackStats(ctx, userID)
	if err != nil {
		m.logger().Warnf("learn: feedback stats failed for %s: %v", userID, err)
		if cached != nil {
			return copyWeights(cached.Weights)
		}
		return copyWeights(base)
	}
	if stats == nil {
		stats = &core.FeedbackStats{}
	}

	if cached != nil && !cached.Stale(m.now(), m.maxAge(), stats.Total, m.delta()) {
		return copyWeights(cached.Weights)
	}

	learner := m.Learner
	if learner == nil {
		learner = NewLearner()
	}

	// 以上次自适应权重为起点，新反馈在其上做增量修正
	prior := base
	if cached != nil && len(cached.Weights) > 0 {
		prior = cached.Weights
	}
	weights := learner.ComputeWeights(stats, prior)

	m.save(ctx, &core.AdaptiveWeights{
		UserID:        userID,
		Weights:       weights,
		FeedbackCount: stats.Total,
		ComputedAt:    m.now(),
	})
	return weights
}

// Invalidate 清除用户的权重缓存（下次请求强制重算）。
func (m *Manager) Invalidate(ctx context.Context, userID string) error {
	if m.Cache == nil {
		return nil
	}
	return m.Cache.Delete(ctx, weightKeyPrefix+userID)
}

func (m *Manager) load(ctx context.Context, userID string) *core.AdaptiveWeights {
	if m.Cache == nil {
		return nil
	}
	data, err := m.Cache.Get(ctx, weightKeyPrefix+userID)
	if err != nil {
		if !core.IsStoreNotFound(err) {
			m.logger().Warnf("learn: weight cache read failed for %s: %v", userID, err)
		}
		return nil
	}
	var w core.AdaptiveWeights
	if err := json.Unmarshal(data, &w); err != nil {
		m.logger().Warnf("learn: corrupt weight cache for %s: %v", userID, err)
		return nil
	}
	return &w
}

func (m *Manager) save(ctx context.Context, w *core.AdaptiveWeights) {
	if m.Cache == nil {
		return
	}
	data, err := json.Marshal(w)
	if err != nil {
		return
	}
	// TTL 给到有效期的两倍：过期后仍可作为重算失败时的退路
	ttl := int((m.maxAge() * 2).Seconds())
	if err := m.Cache.Set(ctx, weightKeyPrefix+w.UserID, data, ttl); err != nil {
		m.logger().Warnf("learn: weight cache write failed for %s: %v", w.UserID, err)
	}
}

func (m *Manager) maxAge() time.Duration {
	if m.MaxAge > 0 {
		return m.MaxAge
	}
	return DefaultWeightMaxAge
}

func (m *Manager) delta() int {
	if m.Delta > 0 {
		return m.Delta
	}
	return DefaultFeedbackDelta
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Manager) logger() core.Logger {
	if m.Logger == nil {
		return core.NopLogger{}
	}
	return m.Logger
}

func copyWeights(w map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
