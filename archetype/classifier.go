package archetype

import (
	"sort"

	"github.com/rushteam/outfitkit/core"
)

// 识别参数默认值。
const (
	// DefaultMixFactor 是兜底路径（场合/中性默认）的混合因子
	DefaultMixFactor = 0.3

	// DefaultMaxMixFactor 是混合因子上限：主导原型始终保持 ≥60% 权重
	DefaultMaxMixFactor = 0.4

	// DefaultAdaptiveBlend 是自适应权重在混合中的占比（画像基础权重占 70%）
	DefaultAdaptiveBlend = 0.3
)

// Classifier 将风格画像映射为主导/次级原型 + 混合因子。
//
// 设计原则：
//   - 永不返回空结果：画像无数据时走场合兜底，再无则中性默认
//   - 混合因子 = secondaryScore / (dominantScore + secondaryScore)，
//     得分先做去均值对比拉伸（风格类别喂给多个原型的共享底噪不算信号），
//     再截断到 [0, MaxMixFactor]，保证主导原型不被次级反超
//   - 自适应权重（反馈学习产物）与画像得分按 Blend 混合后再排序
type Classifier struct {
	// MaxMixFactor 混合因子上限，0 时用 DefaultMaxMixFactor
	MaxMixFactor float64

	// AdaptiveBlend 自适应权重占比，0 时用 DefaultAdaptiveBlend
	AdaptiveBlend float64

	Logger core.Logger
}

func NewClassifier() *Classifier {
	return &Classifier{
		MaxMixFactor:  DefaultMaxMixFactor,
		AdaptiveBlend: DefaultAdaptiveBlend,
		Logger:        core.NopLogger{},
	}
}

// Classify 识别用户的原型组合。
// adaptive 是按原型的自适应权重（0-100），可为 nil（冷启动/学习器未介入）。
func (c *Classifier) Classify(profile *core.UserProfile, adaptive map[string]float64) *core.ArchetypeResult {
	if profile == nil || !profile.HasStyleData() {
		if profile != nil && len(profile.Occasions) > 0 {
			if res := c.classifyByOccasion(profile.Occasions); res != nil {
				return res
			}
		}
		return c.defaultResult()
	}

	scores := c.scoreArchetypes(profile.StylePreferences, adaptive)

	type scored struct {
		arch  string
		score float64
	}
	ranked := make([]scored, 0, len(scores))
	for _, arch := range All() {
		ranked = append(ranked, scored{arch: arch, score: scores[arch]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	dominant := ranked[0]
	if dominant.score <= 0 {
		return c.defaultResult()
	}

	secondary := ranked[1]
	secondaryArch := secondary.arch
	if secondary.score <= 0 {
		// 无第二信号：先看场合映射，再取互补原型兜底
		secondaryArch = ""
		for _, occ := range profile.Occasions {
			if a := ArchetypeForOccasion(occ); a != "" && a != dominant.arch {
				secondaryArch = a
				break
			}
		}
		if secondaryArch == "" {
			secondaryArch = Complementary(dominant.arch)[0]
		}
	}

	maxMix := c.MaxMixFactor
	if maxMix <= 0 {
		maxMix = DefaultMaxMixFactor
	}

	mix := DefaultMixFactor
	if secondary.score > 0 {
		// 对比拉伸：减去全体原型的均值分再取比值。
		// casual 这类风格类别会喂高多个原型，均值以下的部分是共享底噪
		// 而非次级信号；8:1 的一边倒偏好必须落在低混合因子上。
		mean := 0.0
		for _, r := range ranked {
			mean += r.score
		}
		mean /= float64(len(ranked))

		domSignal := dominant.score - mean
		secSignal := secondary.score - mean
		switch {
		case domSignal <= 0:
			// 全员打平：无对比信号，按上限混合
			mix = maxMix
		case secSignal <= 0:
			mix = 0
		default:
			mix = secSignal / (domSignal + secSignal)
		}
	}
	if mix > maxMix {
		mix = maxMix
	}

	c.logger().Debugf("archetype: dominant=%s secondary=%s mix=%.2f", dominant.arch, secondaryArch, mix)

	return &core.ArchetypeResult{
		Dominant:  dominant.arch,
		Secondary: secondaryArch,
		MixFactor: mix,
		Scores:    scores,
		Source:    "profile",
	}
}

// scoreArchetypes 计算各原型得分：矩阵加权和，归一化到 0-100，
// 再与自适应权重按 (1-blend)/blend 混合。
func (c *Classifier) scoreArchetypes(prefs map[string]float64, adaptive map[string]float64) map[string]float64 {
	raw := make(map[string]float64, len(weightMatrix))
	maxScore := 0.0
	for _, arch := range All() {
		weights := weightMatrix[arch]
		var score float64
		for style, value := range prefs {
			score += value * weights[style]
		}
		raw[arch] = score
		if score > maxScore {
			maxScore = score
		}
	}

	scores := make(map[string]float64, len(raw))
	for arch, score := range raw {
		normalized := 0.0
		if maxScore > 0 {
			normalized = score / maxScore * 100
		}
		scores[arch] = normalized
	}

	if len(adaptive) == 0 {
		return scores
	}

	blend := c.AdaptiveBlend
	if blend <= 0 {
		blend = DefaultAdaptiveBlend
	}
	for arch := range scores {
		learned, ok := adaptive[arch]
		if !ok {
			learned = 50 // 学习器未覆盖的原型按中点处理
		}
		scores[arch] = scores[arch]*(1-blend) + learned*blend
	}
	return scores
}

// classifyByOccasion 是画像无风格数据时的场合兜底路径。
func (c *Classifier) classifyByOccasion(occs []string) *core.ArchetypeResult {
	var dominant string
	for _, occ := range occs {
		if a := ArchetypeForOccasion(occ); a != "" {
			dominant = a
			break
		}
	}
	if dominant == "" {
		return nil
	}

	secondary := ""
	for _, occ := range occs {
		if a := ArchetypeForOccasion(occ); a != "" && a != dominant {
			secondary = a
			break
		}
	}
	if secondary == "" {
		secondary = Complementary(dominant)[0]
	}

	return &core.ArchetypeResult{
		Dominant:  dominant,
		Secondary: secondary,
		MixFactor: DefaultMixFactor,
		Source:    "occasion",
	}
}

// defaultResult 是完全无信号时的中性默认画像。
func (c *Classifier) defaultResult() *core.ArchetypeResult {
	return &core.ArchetypeResult{
		Dominant:  CasualChic,
		Secondary: Klassiek,
		MixFactor: DefaultMixFactor,
		Source:    "default",
	}
}

func (c *Classifier) logger() core.Logger {
	if c.Logger == nil {
		return core.NopLogger{}
	}
	return c.Logger
}
