package outfit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rushteam/outfitkit/archetype"
	"github.com/rushteam/outfitkit/core"
)

// Insight 把匹配分拆解浓缩成一句话提示。
func Insight(b Breakdown) string {
	switch {
	case b.Total >= 95:
		return "Perfect match for your style!"
	case b.Total >= 90:
		return "Excellent choice for you"
	case b.Total >= 85:
		return "Fits your profile well"
	case b.Total >= 80:
		return "Good match"
	}
	if b.Color < 70 {
		return "Consider other colors"
	}
	if b.Archetype < 70 {
		return "Not quite your usual style"
	}
	return "An experimental pick"
}

// ExplainBreakdown 生成逐维度的匹配理由，只列显著偏高/偏低的维度。
func ExplainBreakdown(b Breakdown) []string {
	var out []string

	if b.Color >= 90 {
		out = append(out, "✓ Great color combination for you")
	} else if b.Color < 70 {
		out = append(out, "⚠ Colors are not an ideal match")
	}

	if b.Archetype >= 90 {
		out = append(out, "✓ A perfect fit with your style profile")
	} else if b.Archetype < 70 {
		out = append(out, "⚠ Different from your usual style")
	}

	if b.Season >= 90 {
		out = append(out, "✓ Perfect for this season")
	} else if b.Season < 60 {
		out = append(out, "⚠ Better suited to another season")
	}

	return out
}

// archetypeTitles 是原型 → 标题候选表。
var archetypeTitles = map[string][]string{
	"klassiek":    {"Timeless Elegance", "Classic Refinement", "Sophisticated Ensemble"},
	"casual_chic": {"Effortless Chic", "Casual Sophistication", "Relaxed Elegance"},
	"urban":       {"Urban Edge", "City Essentials", "Modern Function"},
	"streetstyle": {"Street Statement", "Bold Streetwear", "Authentic Street Look"},
	"retro":       {"Vintage Revival", "Retro Charm", "Timeless Throwback"},
	"luxury":      {"Refined Luxury", "Premium Ensemble", "Exclusive Elegance"},
}

// occasionPhrases 是场合 → 标题后缀表。
var occasionPhrases = map[string]string{
	"work":             "for the Office",
	"formal":           "for Formal Events",
	"casual":           "for Everyday",
	"weekend":          "for the Weekend",
	"lunch":            "for Lunch Dates",
	"city":             "for City Days",
	"active":           "for Active Days",
	"night out":        "for Nights Out",
	"festival":         "for Festival Season",
	"creative":         "for Creative Minds",
	"gala":             "for Gala Evenings",
	"special occasion": "for Special Moments",
	"business dinner":  "for Business Dinners",
}

// Title 生成搭配标题：原型标题 + 场合后缀；
// 次级原型影响显著时（mix ≥ 0.2）混入次级关键词。
func Title(rng *rand.Rand, dominant, secondary string, mix float64, occasion string) string {
	titles := archetypeTitles[dominant]
	if len(titles) == 0 {
		titles = []string{"Styled Look"}
	}
	title := titles[rng.Intn(len(titles))]

	if secondary != "" && secondary != dominant && mix >= 0.2 {
		secTitles := archetypeTitles[secondary]
		if len(secTitles) > 0 {
			words := strings.Fields(secTitles[rng.Intn(len(secTitles))])
			title = fmt.Sprintf("%s with a %s Twist", title, words[len(words)-1])
		}
	}

	if phrase, ok := occasionPhrases[occasion]; ok {
		title = title + " " + phrase
	}
	return title
}

// Description 生成搭配描述：原型基调 + 商品清单 + 季节补充。
func Description(rng *rand.Rand, dominant string, products []*core.Product, season core.Season) string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		if p != nil && p.Name != "" {
			names = append(names, p.Name)
		}
	}
	list := joinList(names)
	if list == "" {
		list = "selected pieces"
	}

	templates := map[string][]string{
		"klassiek": {
			"A timeless combination of %s for a refined look.",
			"Elegant %s in a classic style that never goes out of fashion.",
		},
		"casual_chic": {
			"An effortless mix of %s for a relaxed yet polished look.",
			"Comfortable %s with an elegant twist.",
		},
		"urban": {
			"Functional %s built for city life.",
			"Practical %s with a modern, urban edge.",
		},
		"streetstyle": {
			"Standout %s for an authentic streetwear look.",
			"Expressive %s that shows your personality.",
		},
		"retro": {
			"Vintage-inspired %s with a modern twist.",
			"Nostalgic %s paying tribute to the past.",
		},
		"luxury": {
			"Premium %s of the finest quality for a luxurious look.",
			"Exclusive %s radiating refinement and quality.",
		},
	}

	lines, ok := templates[dominant]
	if !ok {
		lines = []string{"A stylish combination of %s."}
	}
	desc := fmt.Sprintf(lines[rng.Intn(len(lines))], list)

	switch season {
	case core.SeasonSpring:
		desc += " Light enough for changeable spring weather."
	case core.SeasonSummer:
		desc += " Airy pieces for warm summer days."
	case core.SeasonAutumn:
		desc += " Warm layers for cooler autumn days."
	case core.SeasonWinter:
		desc += " Warm, insulating pieces for cold winter days."
	}
	return desc
}

func joinList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// occasionTags 是场合 → 搭配标签表。
var occasionTags = map[string][]string{
	"work":             {"professional", "office", "business"},
	"formal":           {"formal", "elegant", "sophisticated"},
	"casual":           {"everyday", "comfortable", "relaxed"},
	"weekend":          {"relaxed", "comfortable", "versatile"},
	"lunch":            {"smart-casual", "stylish", "comfortable"},
	"city":             {"urban", "practical", "stylish"},
	"active":           {"functional", "comfortable", "practical"},
	"night out":        {"statement", "eye-catching", "trendy"},
	"festival":         {"bold", "expressive", "comfortable"},
	"creative":         {"unique", "expressive", "artistic"},
	"gala":             {"luxurious", "statement", "elegant"},
	"special occasion": {"special", "memorable", "elegant"},
	"business dinner":  {"smart", "elegant", "professional"},
}

var seasonTags = map[core.Season][]string{
	core.SeasonSpring: {"spring", "fresh", "light"},
	core.SeasonSummer: {"summer", "light", "breathable"},
	core.SeasonAutumn: {"autumn", "layered", "cozy"},
	core.SeasonWinter: {"winter", "warm", "cozy"},
}

var completenessTags = []string{"complete", "balanced", "well-rounded"}

// Tags 生成搭配标签：主次原型标签按混合因子分配（共 4 个）+
// 场合标签 + 季节标签 + 一个完整度标签，去重后返回。
func Tags(rng *rand.Rand, dominant, secondary string, mix float64, occasion string, season core.Season) []string {
	const totalArchetypeTags = 4

	primary := archetype.OutfitTags(dominant)
	var secondaryTags []string
	if secondary != "" && secondary != dominant && mix > 0 {
		secondaryTags = archetype.OutfitTags(secondary)
	}

	primaryCount := int(float64(totalArchetypeTags)*(1-mix) + 0.5)
	secondaryCount := totalArchetypeTags - primaryCount
	if primaryCount > len(primary) {
		primaryCount = len(primary)
	}

	raw := make([]string, 0, 12)
	raw = append(raw, primary[:primaryCount]...)
	for _, tag := range secondaryTags {
		if secondaryCount == 0 {
			break
		}
		if containsString(primary, tag) {
			continue
		}
		raw = append(raw, tag)
		secondaryCount--
	}
	raw = append(raw, occasionTags[occasion]...)
	raw = append(raw, seasonTags[season]...)
	raw = append(raw, completenessTags[rng.Intn(len(completenessTags))])

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
