package learn

import (
	"math"

	"github.com/rushteam/outfitkit/core"
)

// 学习器默认参数。
const (
	// DefaultMinFeedback 低于此反馈量不学习，直接沿用基础权重
	DefaultMinFeedback = 3

	// DefaultMinLearningRate 学习率下限（反馈越多学习率越低，但不会低于此值）
	DefaultMinLearningRate = 0.05

	// DefaultConfidenceSamples 单原型达到此样本量时置信度为 1
	DefaultConfidenceSamples = 10

	// DefaultBaseWeight 原型无基础权重时的起始值
	DefaultBaseWeight = 50

	// DefaultBlendFactor 自适应权重在最终混合中的占比（基础占 70%）
	DefaultBlendFactor = 0.3
)

// Learner 根据反馈统计计算自适应原型权重。
//
// 对每个有反馈的原型：
//
//	target    = likes/total * 100
//	newWeight = current + (target - current) * learningRate * confidence
//
// learningRate = max(MinLearningRate, 1/√total) 随总反馈量衰减，
// confidence = min(1, sample/ConfidenceSamples) 随单原型样本量上升。
// 结果四舍五入并截断到 [0, 100]。
type Learner struct {
	// MinFeedback 反馈总量门槛，0 时取 DefaultMinFeedback
	MinFeedback int

	Logger core.Logger
}

// NewLearner 返回默认配置的学习器。
func NewLearner() *Learner {
	return &Learner{MinFeedback: DefaultMinFeedback}
}

// LearningRate 返回给定反馈总量下的学习率。
func (l *Learner) LearningRate(total int) float64 {
	if total <= 0 {
		return DefaultMinLearningRate
	}
	return math.Max(DefaultMinLearningRate, 1/math.Sqrt(float64(total)))
}

// ComputeWeights 计算自适应权重。
//
// 反馈量不足（< MinFeedback）时返回 base 的副本，不做任何调整。
// base 中没有反馈的原型保持原值；base 缺失的原型从 DefaultBaseWeight 起步。
func (l *Learner) ComputeWeights(stats *core.FeedbackStats, base map[string]float64) map[string]float64 {
	weights := make(map[string]float64, len(base))
	for k, v := range base {
		weights[k] = v
	}

	minFeedback := l.MinFeedback
	if minFeedback <= 0 {
		minFeedback = DefaultMinFeedback
	}
	if stats == nil || stats.Total < minFeedback {
		return weights
	}

	lr := l.LearningRate(stats.Total)
	for arch, as := range stats.ByArchetype {
		if as == nil || as.Total == 0 {
			continue
		}
		current, ok := weights[arch]
		if !ok {
			current = DefaultBaseWeight
		}
		target := float64(as.Likes) / float64(as.Total) * 100
		next := current + (target-current)*lr*confidence(as.Total)
		weights[arch] = clampWeight(math.Round(next))
	}
	return weights
}

// Blend 按 factor 混合基础权重与自适应权重（factor 为自适应占比）。
// 自适应缺失的 key 沿用基础值；factor 超出 (0,1] 时取 DefaultBlendFactor。
func Blend(base, adaptive map[string]float64, factor float64) map[string]float64 {
	if factor <= 0 || factor > 1 {
		factor = DefaultBlendFactor
	}
	out := make(map[string]float64, len(base))
	for k, b := range base {
		a, ok := adaptive[k]
		if !ok {
			out[k] = b
			continue
		}
		out[k] = b*(1-factor) + a*factor
	}
	return out
}

func confidence(samples int) float64 {
	c := float64(samples) / DefaultConfidenceSamples
	if c > 1 {
		return 1
	}
	return c
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 100 {
		return 100
	}
	return w
}
