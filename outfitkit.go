package outfitkit

import (
	"context"

	"github.com/rushteam/outfitkit/archetype"
	"github.com/rushteam/outfitkit/config"
	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/feast"
	"github.com/rushteam/outfitkit/filter"
	"github.com/rushteam/outfitkit/learn"
	"github.com/rushteam/outfitkit/outfit"
	"github.com/rushteam/outfitkit/pipeline"
	"github.com/rushteam/outfitkit/rank"
	"github.com/rushteam/outfitkit/recall"
	"github.com/rushteam/outfitkit/rerank"
)

// ProfileProvider 按用户取风格画像，由宿主实现（数据库/缓存均可）。
type ProfileProvider interface {
	Profile(ctx context.Context, userID string) (*core.UserProfile, error)
}

// EngineOptions 是引擎的装配选项。除 Catalog 外都可留空：
// 留空的部分用默认实现或直接关闭对应能力。
type EngineOptions struct {
	// Config 引擎配置，nil 时用 config.Default()
	Config *config.Config

	// Profiles 画像源；nil 时每次请求用空画像（冷启动路径）
	Profiles ProfileProvider

	// ProfileLoader Feature Store 画像水合；失败只降级不报错
	ProfileLoader *feast.ProfileLoader

	// Weights 自适应权重管理；nil 时跳过权重学习
	Weights *learn.Manager

	// Feedback 反馈收集；nil 时 SubmitFeedback 为空操作
	Feedback learn.Collector

	// Collaborative 协同过滤召回源；nil 时不启用
	Collaborative *recall.Collaborative

	// Pipeline 自定义候选加工链；nil 时用内置默认链
	Pipeline *pipeline.Pipeline

	// Seed 组合器随机种子，0 时用当前时间（测试时固定可复现）
	Seed int64

	Logger core.Logger
}

// Engine 是穿搭推荐引擎的 facade：
// 画像 → 原型识别 → 候选 Pipeline → 搭配组合 → 评分解释。
type Engine struct {
	cfg config.Config

	catalog       core.CatalogProvider
	profiles      ProfileProvider
	profileLoader *feast.ProfileLoader
	weights       *learn.Manager
	feedback      learn.Collector
	cf            *recall.Collaborative

	classifier *archetype.Classifier
	pipe       *pipeline.Pipeline
	composer   *outfit.Composer
	remixer    *outfit.Remixer

	logger core.Logger
}

// NewEngine 装配推荐引擎。catalog 是唯一必需的依赖。
func NewEngine(catalog core.CatalogProvider, opts EngineOptions) (*Engine, error) {
	if catalog == nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "engine: catalog provider is required")
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}

	e := &Engine{
		cfg:           cfg,
		catalog:       catalog,
		profiles:      opts.Profiles,
		profileLoader: opts.ProfileLoader,
		weights:       opts.Weights,
		feedback:      opts.Feedback,
		cf:            opts.Collaborative,
		logger:        logger,
	}

	e.classifier = cfg.Classifier()
	e.classifier.Logger = logger

	e.composer = outfit.NewComposer(opts.Seed)
	e.composer.Scorer = cfg.Scorer()
	e.composer.Logger = logger

	e.remixer = outfit.NewRemixer()
	e.remixer.Scorer = cfg.Scorer()

	e.pipe = opts.Pipeline
	if e.pipe == nil {
		e.pipe = e.defaultPipeline()
	}
	return e, nil
}

// defaultPipeline 是内置候选加工链：
// 召回（目录 + 可选协同过滤）→ 硬过滤 → 季节软过滤 → 相关性排序 → 品类截断。
func (e *Engine) defaultPipeline() *pipeline.Pipeline {
	sources := []recall.Source{
		&recall.Catalog{Provider: e.catalog, InStockOnly: true},
	}
	if e.cf != nil {
		sources = append(sources, e.cf)
	}

	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Fanout{Sources: sources, Dedup: true},
			&filter.FilterNode{Filters: []filter.Filter{
				&filter.StockFilter{},
				&filter.BudgetFilter{},
				&filter.GenderFilter{},
				&filter.ExclusionFilter{},
			}},
			&filter.SeasonNode{Floor: e.cfg.Season.Floor, Logger: e.logger},
			rank.NewRelevanceNode(),
			&rerank.CategoryTopNNode{PerCategory: 10},
		},
	}
}

// Request 是一次推荐请求。
type Request struct {
	UserID string
	Scene  string

	// Profile 显式画像；nil 时经 Profiles/ProfileLoader 解析
	Profile *core.UserProfile

	Season    core.Season
	Weather   core.Weather
	Occasions []string

	// Count 期望的搭配数量，0 时用配置默认
	Count int

	// ExcludeIDs 排除的商品 ID（"换一批"时传入已展示过的单品）
	ExcludeIDs []string

	// Variation 变化档位，空时用配置默认
	Variation outfit.VariationLevel

	// Params 请求级参数，规则过滤的 CEL 表达式可读取
	Params map[string]any
}

// Recommend 生成一批完整搭配。
//
// 候选集为空时返回 core.ErrEmptyCatalog；
// 画像缺失、权重学习失败、特征水合失败都走软降级，不会让请求失败。
func (e *Engine) Recommend(ctx context.Context, req *Request) ([]*core.Outfit, error) {
	if req == nil {
		req = &Request{}
	}

	profile := e.resolveProfile(ctx, req)
	res := e.classify(ctx, profile)

	rctx := &core.RecommendContext{
		UserID:    req.UserID,
		Scene:     req.Scene,
		User:      profile,
		Archetype: res,
		Season:    req.Season,
		Weather:   req.Weather,
		Count:     req.Count,
		Params:    req.Params,
	}
	if len(req.Occasions) > 0 {
		rctx.Occasion = req.Occasions[0]
	}

	items, err := e.pipe.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, core.ErrEmptyCatalog
	}

	products := make([]*core.Product, 0, len(items))
	for _, it := range items {
		if it != nil && it.Product != nil {
			products = append(products, it.Product)
		}
	}

	opts := e.cfg.ComposeOptions()
	if req.Count > 0 {
		opts.Count = req.Count
	}
	opts.ExcludeIDs = req.ExcludeIDs
	opts.Occasions = req.Occasions
	opts.Season = req.Season
	opts.Weather = req.Weather
	if req.Variation != "" {
		opts.Variation = req.Variation
	}

	return e.composer.Compose(res, profile, products, opts), nil
}

// Remix 针对已有搭配的单个品类生成换装变体。
// 候选池从目录按品类拉取（只取有货），排除搭配内已有商品。
func (e *Engine) Remix(ctx context.Context, req *Request, o *core.Outfit, target core.Category) ([]*outfit.Variant, error) {
	if o == nil {
		return nil, core.NewDomainError(core.ModuleOutfit, core.ErrorCodeInvalidInput, "remix: nil outfit")
	}
	if req == nil {
		req = &Request{}
	}

	pool, err := e.catalog.Products(ctx, &core.CatalogQuery{
		Categories: []core.Category{target},
		InStock:    true,
	})
	if err != nil {
		return nil, err
	}

	profile := e.resolveProfile(ctx, req)
	res := e.classify(ctx, profile)

	season := req.Season
	if season == "" {
		season = o.Season
	}
	return e.remixer.Remix(o, target, pool, profile, res.Dominant, season)
}

// SubmitFeedback 记录一条反馈事件。
// 反馈是尽力而为的信号：持久化失败只记日志，绝不向上抛错。
func (e *Engine) SubmitFeedback(ctx context.Context, ev *core.FeedbackEvent) {
	if e.feedback == nil || ev == nil {
		return
	}
	if err := e.feedback.Collect(ctx, ev); err != nil {
		e.logger.Warnf("engine: feedback collect failed for %s: %v", ev.UserID, err)
	}
}

// SimilarTaste 返回"和你口味相近的人也喜欢"的商品推荐。
// 协同过滤未启用或无数据时返回空列表。
func (e *Engine) SimilarTaste(ctx context.Context, userID string, count int) ([]*recall.Recommendation, error) {
	if e.cf == nil {
		return nil, nil
	}
	return e.cf.Recommendations(ctx, userID, count)
}

// LikedTogether 返回与指定商品经常一起被喜欢的商品。
func (e *Engine) LikedTogether(ctx context.Context, productID string, count int) ([]*core.Product, error) {
	if e.cf == nil {
		return nil, nil
	}
	return e.cf.LikedTogether(ctx, productID, count)
}

// Close 释放引擎持有的资源（反馈收集器等）。
func (e *Engine) Close() error {
	if e.feedback != nil {
		return e.feedback.Close()
	}
	return nil
}

// resolveProfile 解析画像：显式 > 画像源 > 空画像，再做可选的特征水合。
func (e *Engine) resolveProfile(ctx context.Context, req *Request) *core.UserProfile {
	profile := req.Profile
	if profile == nil && e.profiles != nil && req.UserID != "" {
		p, err := e.profiles.Profile(ctx, req.UserID)
		if err != nil {
			e.logger.Warnf("engine: profile lookup failed for %s: %v", req.UserID, err)
		} else {
			profile = p
		}
	}
	if profile == nil {
		profile = core.NewUserProfile(req.UserID)
	}

	if e.profileLoader != nil && profile.UserID != "" {
		if err := e.profileLoader.Hydrate(ctx, profile); err != nil {
			e.logger.Warnf("engine: feature hydration failed for %s: %v", profile.UserID, err)
		}
	}
	return profile
}

// classify 做原型识别，并在权重学习启用时套上自适应权重。
// 学习的基础权重取自无自适应的识别得分（原型空间 0-100）：
// 画像的风格偏好是风格类别维度，不能直接当原型权重用。
// 首次学习以这份基础得分为起点，之后以上次自适应权重为起点增量修正。
func (e *Engine) classify(ctx context.Context, profile *core.UserProfile) *core.ArchetypeResult {
	base := e.classifier.Classify(profile, nil)
	if e.weights == nil || profile.UserID == "" {
		return base
	}

	adaptive := e.weights.Weights(ctx, profile.UserID, base.Scores)
	if len(adaptive) == 0 {
		return base
	}
	return e.classifier.Classify(profile, adaptive)
}
