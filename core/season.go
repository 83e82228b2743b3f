package core

import (
	"strings"
	"time"
)

// Season 表示商品/搭配适用的季节。
// 统一使用小写英文；"fall" 在解析时归一化为 SeasonAutumn。
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"

	// SeasonAll 表示四季通用（all-season / transitional 均归一化到此）
	SeasonAll Season = "all-season"
)

// ParseSeason 将自由文本归一化为 Season。
// 无法识别时返回空 Season（调用方按"未知"处理，不报错）。
func ParseSeason(s string) Season {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spring", "lente":
		return SeasonSpring
	case "summer", "zomer":
		return SeasonSummer
	case "autumn", "fall", "herfst":
		return SeasonAutumn
	case "winter":
		return SeasonWinter
	case "all-season", "all season", "allseason", "transitional", "all":
		return SeasonAll
	default:
		return ""
	}
}

// CurrentSeason 根据日期返回北半球季节（3-5 春、6-8 夏、9-11 秋、12-2 冬）。
func CurrentSeason(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// adjacentSeasons 是固定的相邻季节表：冬↔秋、春↔夏。
// 相邻季节的商品在季节匹配里得 0.6 分（不是硬淘汰）。
var adjacentSeasons = map[Season]Season{
	SeasonWinter: SeasonAutumn,
	SeasonAutumn: SeasonWinter,
	SeasonSpring: SeasonSummer,
	SeasonSummer: SeasonSpring,
}

// SeasonsAdjacent 判断两个季节是否相邻（按固定表，对称）。
func SeasonsAdjacent(a, b Season) bool {
	return adjacentSeasons[a] == b
}

// Weather 是天气条件的自由文本标签（hot / warm / mild / rainy / cold / snow）。
// 引擎不接气象数据源，天气只作为季节的代理信号。
type Weather string

// SeasonsForWeather 将天气条件映射到适用季节集合（季节代理过滤用）。
// 未知天气返回 nil，表示不做季节收紧。
func SeasonsForWeather(w Weather) []Season {
	switch strings.ToLower(strings.TrimSpace(string(w))) {
	case "hot":
		return []Season{SeasonSummer}
	case "warm":
		return []Season{SeasonSummer, SeasonSpring}
	case "mild":
		return []Season{SeasonSpring, SeasonAutumn}
	case "rainy":
		return []Season{SeasonAutumn, SeasonSpring}
	case "cold":
		return []Season{SeasonWinter, SeasonAutumn}
	case "snow", "snowy":
		return []Season{SeasonWinter}
	default:
		return nil
	}
}

// TypicalWeather 返回季节的典型天气标签（生成搭配描述时用）。
func TypicalWeather(s Season) Weather {
	switch s {
	case SeasonSummer:
		return "warm"
	case SeasonWinter:
		return "cold"
	case SeasonSpring, SeasonAutumn:
		return "mild"
	default:
		return ""
	}
}
