package core

import "time"

// FeedbackAction 是用户对搭配/商品的反馈动作。
type FeedbackAction string

const (
	FeedbackLike     FeedbackAction = "like"
	FeedbackDislike  FeedbackAction = "dislike"
	FeedbackSave     FeedbackAction = "save"     // 收藏，按喜欢计
	FeedbackSkip     FeedbackAction = "skip"     // 跳过，按不喜欢计
	FeedbackPurchase FeedbackAction = "purchase" // 购买，按喜欢计
)

// Positive 判断动作是否为正反馈。
func (a FeedbackAction) Positive() bool {
	switch a {
	case FeedbackLike, FeedbackSave, FeedbackPurchase:
		return true
	default:
		return false
	}
}

// FeedbackEvent 是一条用户反馈事件，是自适应权重学习的原始输入。
type FeedbackEvent struct {
	UserID    string
	OutfitID  string
	Archetype string // 被反馈搭配的主导原型
	Occasion  string // 被反馈搭配的场合，可空
	Products  []string
	Action    FeedbackAction
	Timestamp time.Time
}

// AdaptiveWeights 是自适应权重学习器的输出：按用户缓存的原型权重。
//
// Weights 的 key 是原型名，value 是学习后的权重（0-100）。
// 识别原型时与画像基础权重按 70/30 混合（基础占 70%）。
type AdaptiveWeights struct {
	UserID  string
	Weights map[string]float64

	// FeedbackCount 计算时的反馈总量，用于 Δ 检测（|新-旧| > 5 触发重算）
	FeedbackCount int

	// ComputedAt 计算时间，超过 24h 视为过期
	ComputedAt time.Time
}

// Stale 判断权重是否过期：超过 maxAge，或反馈量相对计算时变化超过 delta。
func (w *AdaptiveWeights) Stale(now time.Time, maxAge time.Duration, currentFeedback, delta int) bool {
	if w == nil {
		return true
	}
	if now.Sub(w.ComputedAt) > maxAge {
		return true
	}
	diff := currentFeedback - w.FeedbackCount
	if diff < 0 {
		diff = -diff
	}
	return diff > delta
}

// FeedbackStats 是反馈事件的聚合统计。
type FeedbackStats struct {
	Total    int
	Likes    int
	Dislikes int

	// ByArchetype 各原型的正/负反馈计数
	ByArchetype map[string]*ArchetypeStats
}

// ArchetypeStats 是单个原型的反馈计数。
type ArchetypeStats struct {
	Total int
	Likes int
}
