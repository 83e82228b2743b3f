package filter

import (
	"context"

	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/pipeline"
	"github.com/rushteam/outfitkit/pkg/utils"
)

// DefaultSeasonFloor 是季节软过滤的候选下限。
const DefaultSeasonFloor = 10

// SeasonNode 是季节软过滤节点。
//
// 与硬过滤不同：
//   - 未标注季节的商品一律保留（数据缺失不惩罚）
//   - 过滤后候选少于 Floor 时回退到完整候选集——
//     宁可给出非当季的搭配，也不给出残缺的搭配
//
// 天气存在时先按天气代理季节收紧一轮，同样遵守候选下限。
type SeasonNode struct {
	// Floor 候选下限，0 时用 DefaultSeasonFloor
	Floor int

	Logger core.Logger
}

func (n *SeasonNode) Name() string {
	return "filter.season"
}

func (n *SeasonNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *SeasonNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	season := rctx.EffectiveSeason()
	if season == "" {
		return items, nil
	}
	floor := n.Floor
	if floor <= 0 {
		floor = DefaultSeasonFloor
	}

	seasonal := n.keepSeason(items, season)

	// 天气收紧：在季节筛选结果上再按天气代理季节过滤一轮
	if weatherSeasons := core.SeasonsForWeather(rctx.Weather); len(weatherSeasons) > 0 {
		weathered := n.keepSeasons(seasonal, weatherSeasons)
		if len(weathered) >= floor {
			return weathered, nil
		}
		n.logger().Debugf("season: weather cut below floor (%d < %d), keeping seasonal pool", len(weathered), floor)
	}

	if len(seasonal) >= floor {
		return seasonal, nil
	}

	n.logger().Debugf("season: seasonal pool below floor (%d < %d), keeping full pool", len(seasonal), floor)
	for _, it := range items {
		it.PutLabel("season_fallback", utils.Label{Value: "true", Source: "filter"})
	}
	return items, nil
}

// keepSeason 保留适用指定季节的商品；未标注季节的一律保留。
func (n *SeasonNode) keepSeason(items []*core.Item, season core.Season) []*core.Item {
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		if len(it.Product.Seasons) == 0 || it.Product.HasSeason(season) {
			out = append(out, it)
		}
	}
	return out
}

func (n *SeasonNode) keepSeasons(items []*core.Item, seasons []core.Season) []*core.Item {
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		if len(it.Product.Seasons) == 0 {
			out = append(out, it)
			continue
		}
		for _, s := range seasons {
			if it.Product.HasSeason(s) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func (n *SeasonNode) logger() core.Logger {
	if n.Logger == nil {
		return core.NopLogger{}
	}
	return n.Logger
}

var _ pipeline.Node = (*SeasonNode)(nil)
