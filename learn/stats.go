// Package learn 实现自适应权重学习：
// 根据用户的反馈历史（喜欢/不喜欢）逐步调整各原型的权重，
// 让原型识别随用户口味演化。
package learn

import (
	"math"
	"sort"

	"github.com/rushteam/outfitkit/core"
)

// BuildStats 聚合反馈事件为统计量。
// save/purchase 按喜欢计，skip 按不喜欢计（见 core.FeedbackAction.Positive）。
func BuildStats(events []*core.FeedbackEvent) *core.FeedbackStats {
	stats := &core.FeedbackStats{
		ByArchetype: make(map[string]*core.ArchetypeStats),
	}
	for _, ev := range events {
		if ev == nil {
			continue
		}
		stats.Total++
		positive := ev.Action.Positive()
		if positive {
			stats.Likes++
		} else {
			stats.Dislikes++
		}

		if ev.Archetype == "" {
			continue
		}
		as, ok := stats.ByArchetype[ev.Archetype]
		if !ok {
			as = &core.ArchetypeStats{}
			stats.ByArchetype[ev.Archetype] = as
		}
		as.Total++
		if positive {
			as.Likes++
		}
	}
	return stats
}

// Adjustment 是单个原型的权重调整明细（用于调试/可解释性）。
type Adjustment struct {
	Archetype  string  `json:"archetype"`
	Current    float64 `json:"current_weight"`
	New        float64 `json:"new_weight"`
	Adjustment float64 `json:"adjustment"` // New - Current
	Confidence float64 `json:"confidence"` // 0-1，样本量越大越可信
	SampleSize int     `json:"sample_size"`
}

// Adjustments 对比新旧权重，按调整幅度降序返回明细。
func Adjustments(stats *core.FeedbackStats, before, after map[string]float64) []Adjustment {
	if stats == nil {
		return nil
	}
	out := make([]Adjustment, 0, len(stats.ByArchetype))
	for arch, as := range stats.ByArchetype {
		current, ok := before[arch]
		if !ok {
			current = DefaultBaseWeight
		}
		next, ok := after[arch]
		if !ok {
			next = current
		}
		out = append(out, Adjustment{
			Archetype:  arch,
			Current:    current,
			New:        next,
			Adjustment: next - current,
			Confidence: confidence(as.Total),
			SampleSize: as.Total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].Adjustment), math.Abs(out[j].Adjustment)
		if ai != aj {
			return ai > aj
		}
		return out[i].Archetype < out[j].Archetype
	})
	return out
}
