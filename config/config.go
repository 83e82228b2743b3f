// Package config 提供引擎级配置：
// 评分权重、截断区间、原型混合、组合与学习参数，以及配置驱动的 Pipeline 构建。
//
// 所有参数都有经过验证的默认值，YAML 只需要写想覆盖的字段：
//
//	score:
//	  color_weight: 0.4
//	compose:
//	  count: 5
//	pipeline:
//	  - type: recall.fanout
//	    config: {sources: [catalog], dedup: true}
//	  - type: rank.relevance
package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/outfitkit/archetype"
	"github.com/rushteam/outfitkit/outfit"
	"github.com/rushteam/outfitkit/pipeline"
)

// Duration 是支持 YAML 字符串（"24h"、"90s"）的时长类型。
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config 是引擎的完整配置。
type Config struct {
	Score         ScoreConfig           `yaml:"score"`
	Archetype     ArchetypeConfig       `yaml:"archetype"`
	Compose       ComposeConfig         `yaml:"compose"`
	Season        SeasonConfig          `yaml:"season"`
	Learn         LearnConfig           `yaml:"learn"`
	Collaborative CFConfig              `yaml:"collaborative"`
	Pipeline      []pipeline.NodeConfig `yaml:"pipeline"`
}

// ScoreConfig 是匹配分模型的参数。
type ScoreConfig struct {
	ArchetypeWeight float64 `yaml:"archetype_weight"`
	ColorWeight     float64 `yaml:"color_weight"`
	StyleWeight     float64 `yaml:"style_weight"`
	SeasonWeight    float64 `yaml:"season_weight"`
	OccasionWeight  float64 `yaml:"occasion_weight"`

	ClampMin int `yaml:"clamp_min"`
	ClampMax int `yaml:"clamp_max"`
}

// ArchetypeConfig 是原型识别的参数。
type ArchetypeConfig struct {
	// MaxMixFactor 混合因子上限（主导原型保底占比 = 1 - MaxMixFactor）
	MaxMixFactor float64 `yaml:"max_mix_factor"`

	// AdaptiveBlend 自适应权重在识别打分中的占比
	AdaptiveBlend float64 `yaml:"adaptive_blend"`
}

// ComposeConfig 是搭配组合的默认参数。
type ComposeConfig struct {
	Count           int    `yaml:"count"`
	MaxAttempts     int    `yaml:"max_attempts"`
	MinCompleteness int    `yaml:"min_completeness"`
	Variation       string `yaml:"variation"` // low / medium / high
}

// SeasonConfig 是季节软过滤的参数。
type SeasonConfig struct {
	// Floor 过滤后的候选下限，低于它回退完整候选集
	Floor int `yaml:"floor"`
}

// LearnConfig 是自适应权重学习的参数。
type LearnConfig struct {
	MinFeedback   int      `yaml:"min_feedback"`
	WeightMaxAge  Duration `yaml:"weight_max_age"`
	FeedbackDelta int      `yaml:"feedback_delta"`
}

// CFConfig 是协同过滤的参数。
type CFConfig struct {
	MaxSimilarUsers int      `yaml:"max_similar_users"`
	Limit           int      `yaml:"limit"`
	CacheTTL        Duration `yaml:"cache_ttl"`
}

// Default 返回引擎的默认配置。
func Default() Config {
	return Config{
		Score: ScoreConfig{
			ArchetypeWeight: 0.30,
			ColorWeight:     0.35,
			StyleWeight:     0.20,
			SeasonWeight:    0.10,
			OccasionWeight:  0.05,
			ClampMin:        outfit.DefaultClampMin,
			ClampMax:        outfit.DefaultClampMax,
		},
		Archetype: ArchetypeConfig{
			MaxMixFactor:  archetype.DefaultMaxMixFactor,
			AdaptiveBlend: archetype.DefaultAdaptiveBlend,
		},
		Compose: ComposeConfig{
			Count:           outfit.DefaultCount,
			MaxAttempts:     outfit.DefaultMaxAttempts,
			MinCompleteness: outfit.DefaultMinCompleteness,
			Variation:       string(outfit.VariationMedium),
		},
		Season: SeasonConfig{
			Floor: 10,
		},
		Learn: LearnConfig{
			MinFeedback:   3,
			WeightMaxAge:  Duration(24 * time.Hour),
			FeedbackDelta: 5,
		},
		Collaborative: CFConfig{
			MaxSimilarUsers: 50,
			Limit:           20,
			CacheTTL:        Duration(7 * 24 * time.Hour),
		},
	}
}

// Load 从 YAML 文件加载配置（默认值之上做覆盖）。
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置并校验。
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 校验配置的自洽性。
func (c *Config) Validate() error {
	sum := c.Score.ArchetypeWeight + c.Score.ColorWeight + c.Score.StyleWeight +
		c.Score.SeasonWeight + c.Score.OccasionWeight
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("config: score weights must sum to 1.0, got %.3f", sum)
	}
	if c.Score.ClampMin <= 0 || c.Score.ClampMax > 100 || c.Score.ClampMin >= c.Score.ClampMax {
		return fmt.Errorf("config: invalid clamp range [%d, %d]", c.Score.ClampMin, c.Score.ClampMax)
	}
	if c.Archetype.MaxMixFactor < 0 || c.Archetype.MaxMixFactor >= 1 {
		return fmt.Errorf("config: max_mix_factor %.2f out of [0, 1)", c.Archetype.MaxMixFactor)
	}
	if c.Archetype.AdaptiveBlend <= 0 || c.Archetype.AdaptiveBlend > 1 {
		return fmt.Errorf("config: adaptive_blend %.2f out of (0, 1]", c.Archetype.AdaptiveBlend)
	}
	switch outfit.VariationLevel(c.Compose.Variation) {
	case outfit.VariationLow, outfit.VariationMedium, outfit.VariationHigh:
	default:
		return fmt.Errorf("config: unknown variation level %q", c.Compose.Variation)
	}
	if c.Compose.MinCompleteness < 0 || c.Compose.MinCompleteness > 100 {
		return fmt.Errorf("config: min_completeness %d out of [0, 100]", c.Compose.MinCompleteness)
	}
	return nil
}

// Scorer 按配置构建匹配分模型。
func (c *Config) Scorer() *outfit.Scorer {
	s := outfit.NewScorer()
	s.Weights = outfit.Weights{
		Archetype: c.Score.ArchetypeWeight,
		Color:     c.Score.ColorWeight,
		Style:     c.Score.StyleWeight,
		Season:    c.Score.SeasonWeight,
		Occasion:  c.Score.OccasionWeight,
	}
	s.ClampMin = c.Score.ClampMin
	s.ClampMax = c.Score.ClampMax
	return s
}

// Classifier 按配置构建原型识别器。
func (c *Config) Classifier() *archetype.Classifier {
	cls := archetype.NewClassifier()
	cls.MaxMixFactor = c.Archetype.MaxMixFactor
	cls.AdaptiveBlend = c.Archetype.AdaptiveBlend
	return cls
}

// ComposeOptions 按配置构建组合默认选项。
func (c *Config) ComposeOptions() outfit.Options {
	return outfit.Options{
		Count:           c.Compose.Count,
		MaxAttempts:     c.Compose.MaxAttempts,
		MinCompleteness: c.Compose.MinCompleteness,
		Variation:       outfit.VariationLevel(c.Compose.Variation),
	}
}

// BuildPipeline 按配置的 pipeline 段构建节点链。
func (c *Config) BuildPipeline(factory *pipeline.NodeFactory) (*pipeline.Pipeline, error) {
	nodes := make([]pipeline.Node, 0, len(c.Pipeline))
	for _, nc := range c.Pipeline {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("config: build node %s: %w", nc.Type, err)
		}
		nodes = append(nodes, node)
	}
	return &pipeline.Pipeline{Nodes: nodes}, nil
}
