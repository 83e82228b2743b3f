package core

// ArchetypeResult 是风格原型识别的输出，贯穿整个 Pipeline 透传。
//
// Dominant 是主导原型，Secondary 是次级原型，MixFactor 是次级占比
// （secondary / (dominant + secondary)，截断到 [0, 0.4]，主导始终 ≥60%）。
// 画像无数据时返回文档化的中性默认值，绝不返回空结果。
type ArchetypeResult struct {
	Dominant  string
	Secondary string
	MixFactor float64

	// Scores 各原型的原始得分（解释用）
	Scores map[string]float64

	// Source 结果来源：profile（画像计算）/ occasion（场合兜底）/ default（中性默认）
	Source string
}

// Archetypes 返回主导 + 次级原型列表（次级可能为空）。
func (a *ArchetypeResult) Archetypes() []string {
	if a == nil {
		return nil
	}
	out := []string{a.Dominant}
	if a.Secondary != "" && a.Secondary != a.Dominant {
		out = append(out, a.Secondary)
	}
	return out
}
