package core

import "github.com/rushteam/outfitkit/pkg/utils"

// RecommendContext 承载用户/场景/实时信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string
	Scene  string // 业务场景标识（如 "home_feed", "occasion_page"）

	// User 是强类型风格画像
	User *UserProfile

	// Archetype 是本次请求的原型识别结果（引擎在召回前填充）
	Archetype *ArchetypeResult

	// 请求条件
	Season   Season  // 目标季节，空则按当前日期推断
	Weather  Weather // 天气（季节的代理信号），可空
	Occasion string  // 目标场合，可空
	Count    int     // 期望的搭配数量

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：新用户、冷启动、价格敏感等
	Labels map[string]utils.Label

	// Params 请求级上下文参数（host 自定义，RuleFilter 的 CEL 表达式可读取）
	Params map[string]any
}

// Profile 获取风格画像；User 为空时返回按 UserID 构造的空画像。
func (rctx *RecommendContext) Profile() *UserProfile {
	if rctx.User != nil {
		return rctx.User
	}
	return NewUserProfile(rctx.UserID)
}

// EffectiveSeason 返回本次请求的生效季节：
// 显式 Season > 天气代理推断 > 空（由调用方按当前日期兜底）。
func (rctx *RecommendContext) EffectiveSeason() Season {
	if rctx.Season != "" {
		return rctx.Season
	}
	if seasons := SeasonsForWeather(rctx.Weather); len(seasons) > 0 {
		return seasons[0]
	}
	return ""
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
