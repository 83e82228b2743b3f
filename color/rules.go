// Package color 实现基于色彩理论的和谐度评估：
// 互补/邻近/三角/中性/冷暖规则表 + 两两打分 + 搭配级均值。
package color

// Rules 是色彩理论规则表（基于传统色轮）。
// 色名全部小写；匹配时做子串容错（"navy blue" 命中 "navy"）。
type Rules struct {
	// Complementary 互补色（色轮对侧）：高对比
	Complementary map[string][]string

	// Analogous 邻近色（色轮相邻）：柔和协调
	Analogous map[string][]string

	// Triadic 三角色（色轮等距）：鲜明但平衡
	Triadic map[string][]string

	// Neutrals 中性色：百搭
	Neutrals []string

	// Warm / Cool 冷暖色温
	Warm []string
	Cool []string
}

// DefaultRules 返回内置规则表。
// 表内容是固定约定：改动会直接改变打分，务必配套更新测试。
func DefaultRules() *Rules {
	return &Rules{
		Complementary: map[string][]string{
			"blue":     {"orange", "rust", "copper", "terracotta", "burnt orange"},
			"navy":     {"orange", "coral", "peach"},
			"teal":     {"coral", "salmon", "peach"},
			"red":      {"green", "mint", "olive", "sage", "forest"},
			"burgundy": {"forest", "hunter green", "sage"},
			"pink":     {"green", "olive", "sage"},
			"yellow":   {"purple", "lavender", "plum", "violet"},
			"gold":     {"purple", "plum"},
			"orange":   {"blue", "navy", "teal"},
			"green":    {"red", "burgundy", "pink"},
			"purple":   {"yellow", "gold", "mustard"},
		},
		Analogous: map[string][]string{
			"blue":     {"teal", "navy", "cyan", "turquoise", "cobalt"},
			"navy":     {"blue", "royal blue", "midnight"},
			"teal":     {"blue", "turquoise", "aqua"},
			"red":      {"pink", "burgundy", "orange", "coral"},
			"burgundy": {"red", "wine", "maroon"},
			"pink":     {"red", "coral", "rose"},
			"yellow":   {"gold", "mustard", "orange", "lemon"},
			"gold":     {"yellow", "bronze", "copper"},
			"orange":   {"red", "coral", "yellow", "peach"},
			"green":    {"lime", "olive", "teal", "sage", "forest"},
			"olive":    {"green", "khaki", "tan"},
			"purple":   {"violet", "plum", "lavender", "magenta"},
		},
		Triadic: map[string][]string{
			"blue":   {"red", "yellow"},
			"red":    {"blue", "yellow"},
			"yellow": {"blue", "red"},
			"green":  {"orange", "purple"},
			"orange": {"green", "purple"},
			"purple": {"green", "orange"},
		},
		Neutrals: []string{
			"black", "white", "grey", "gray", "beige", "cream", "ivory",
			"tan", "khaki", "navy", "charcoal", "stone", "sand", "taupe",
			"ecru", "off-white",
		},
		Warm: []string{
			"red", "orange", "yellow", "pink", "coral", "peach", "rust",
			"terracotta", "burgundy", "gold", "bronze", "copper", "mustard",
			"warm white", "cream",
		},
		Cool: []string{
			"blue", "green", "purple", "teal", "turquoise", "navy", "violet",
			"lavender", "mint", "sage", "forest", "cobalt", "royal blue",
			"cool white", "ice blue",
		},
	}
}
