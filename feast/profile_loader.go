package feast

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/outfitkit/core"
)

// 用户风格特征的默认清单（user_style 特征视图）。
var DefaultProfileFeatures = []string{
	"user_style:pref_casual",
	"user_style:pref_formal",
	"user_style:pref_sporty",
	"user_style:pref_vintage",
	"user_style:pref_minimalist",
	"user_style:undertone",
	"user_style:color_palette",
	"user_style:gender",
	"user_style:budget_min",
	"user_style:budget_max",
}

// DefaultEntityKey 是用户实体的默认主键名。
const DefaultEntityKey = "user_id"

// ProfileLoader 从 Feature Store 水合用户风格画像。
//
// 特征命名约定：
//   - pref_<category>  风格偏好权重（0-100）
//   - undertone        warm / cool / neutral
//   - color_palette    逗号分隔的色名列表
//   - gender           male / female
//   - budget_min/max   单品预算区间
//
// 缺失的特征跳过，不报错；整个请求失败才返回错误，
// 由调用方决定是否降级到存量画像。
type ProfileLoader struct {
	Client Client

	// Project 项目名称（可选）
	Project string

	// Features 覆盖默认特征清单
	Features []string

	// EntityKey 用户实体主键，默认 "user_id"
	EntityKey string

	Logger core.Logger
}

// NewProfileLoader 返回默认配置的画像加载器。
func NewProfileLoader(client Client) *ProfileLoader {
	return &ProfileLoader{Client: client}
}

// Load 拉取特征并构建一个全新的画像。
func (l *ProfileLoader) Load(ctx context.Context, userID string) (*core.UserProfile, error) {
	profile := core.NewUserProfile(userID)
	if err := l.Hydrate(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Hydrate 把在线特征写进已有画像（只覆盖特征里有值的字段）。
func (l *ProfileLoader) Hydrate(ctx context.Context, profile *core.UserProfile) error {
	if l.Client == nil {
		return fmt.Errorf("feast: profile loader has no client")
	}
	if profile == nil || profile.UserID == "" {
		return fmt.Errorf("feast: missing user id")
	}

	features := l.Features
	if len(features) == 0 {
		features = DefaultProfileFeatures
	}
	entityKey := l.EntityKey
	if entityKey == "" {
		entityKey = DefaultEntityKey
	}

	resp, err := l.Client.GetOnlineFeatures(ctx, &OnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]any{{entityKey: profile.UserID}},
		Project:    l.Project,
	})
	if err != nil {
		return err
	}
	if len(resp.Vectors) == 0 {
		return nil
	}

	applied := 0
	for name, raw := range resp.Vectors[0].Values {
		if l.applyFeature(profile, featureField(name), raw) {
			applied++
		}
	}
	l.logger().Debugf("feast: hydrated %d features for %s", applied, profile.UserID)
	return nil
}

// applyFeature 把单个特征写进画像，返回是否生效。
func (l *ProfileLoader) applyFeature(profile *core.UserProfile, field string, raw any) bool {
	switch {
	case strings.HasPrefix(field, "pref_"):
		f, ok := asFloat(raw)
		if !ok {
			return false
		}
		profile.SetStylePreference(strings.TrimPrefix(field, "pref_"), f)
		return true
	case field == "undertone":
		s, ok := asString(raw)
		if !ok || s == "" {
			return false
		}
		profile.Undertone = s
		return true
	case field == "color_palette":
		s, ok := asString(raw)
		if !ok || s == "" {
			return false
		}
		profile.ColorPalette = splitPalette(s)
		return true
	case field == "gender":
		s, ok := asString(raw)
		if !ok || s == "" {
			return false
		}
		profile.Gender = s
		return true
	case field == "budget_min":
		f, ok := asFloat(raw)
		if !ok {
			return false
		}
		profile.BudgetMin = f
		return true
	case field == "budget_max":
		f, ok := asFloat(raw)
		if !ok {
			return false
		}
		profile.BudgetMax = f
		return true
	default:
		return false
	}
}

// featureField 去掉特征视图前缀："user_style:pref_casual" → "pref_casual"。
func featureField(name string) string {
	if idx := strings.LastIndex(name, ":"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func splitPalette(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(val, "%g", &f); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func (l *ProfileLoader) logger() core.Logger {
	if l.Logger == nil {
		return core.NopLogger{}
	}
	return l.Logger
}
