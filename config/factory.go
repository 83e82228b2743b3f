package config

import (
	"fmt"
	"time"

	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/filter"
	"github.com/rushteam/outfitkit/pipeline"
	"github.com/rushteam/outfitkit/pkg/conv"
	"github.com/rushteam/outfitkit/rank"
	"github.com/rushteam/outfitkit/recall"
	"github.com/rushteam/outfitkit/rerank"
)

// Deps 是配置驱动构建时注入的外部依赖。
// 召回源需要数据面（目录/交互），无法从纯配置凭空构建。
type Deps struct {
	Catalog       core.CatalogProvider
	Collaborative *recall.Collaborative
	Logger        core.Logger
}

// NewNodeFactory 返回注册了全部内置 Node 构建器的工厂。
//
// 支持的节点类型与配置项：
//
//	recall.fanout        sources: [catalog, collaborative], dedup, merge, timeout_ms, limit
//	filter.node          stock, budget, gender (默认开), exclude: [id...], rules: [cel...]
//	filter.season        floor
//	rank.relevance       archetype_weight, color_weight, rating_weight
//	rerank.topn          n
//	rerank.category_topn per_category
func NewNodeFactory(deps Deps) *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	f.Register("recall.fanout", func(cfg map[string]any) (pipeline.Node, error) {
		names := conv.SliceAnyToString(cfg["sources"])
		if len(names) == 0 {
			names = []string{"catalog"}
		}
		sources := make([]recall.Source, 0, len(names))
		for _, name := range names {
			switch name {
			case "catalog":
				if deps.Catalog == nil {
					return nil, fmt.Errorf("recall source %q needs a catalog provider", name)
				}
				sources = append(sources, &recall.Catalog{
					Provider:    deps.Catalog,
					Limit:       conv.ConfigGetInt(cfg, "limit", 0),
					InStockOnly: conv.ConfigGet(cfg, "in_stock_only", true),
				})
			case "collaborative":
				if deps.Collaborative == nil {
					return nil, fmt.Errorf("recall source %q is not wired", name)
				}
				sources = append(sources, deps.Collaborative)
			default:
				return nil, fmt.Errorf("unknown recall source %q", name)
			}
		}
		return &recall.Fanout{
			Sources:       sources,
			Dedup:         conv.ConfigGet(cfg, "dedup", true),
			MergeStrategy: conv.ConfigGet(cfg, "merge", "first"),
			Timeout:       time.Duration(conv.ConfigGetInt(cfg, "timeout_ms", 0)) * time.Millisecond,
			MaxConcurrent: conv.ConfigGetInt(cfg, "max_concurrent", 0),
		}, nil
	})

	f.Register("filter.node", func(cfg map[string]any) (pipeline.Node, error) {
		var filters []filter.Filter
		if conv.ConfigGet(cfg, "stock", true) {
			filters = append(filters, &filter.StockFilter{})
		}
		if conv.ConfigGet(cfg, "budget", true) {
			filters = append(filters, &filter.BudgetFilter{})
		}
		if conv.ConfigGet(cfg, "gender", true) {
			filters = append(filters, &filter.GenderFilter{})
		}
		if exclude := conv.SliceAnyToString(cfg["exclude"]); len(exclude) > 0 {
			filters = append(filters, &filter.ExclusionFilter{ProductIDs: exclude})
		}
		for _, expr := range conv.SliceAnyToString(cfg["rules"]) {
			rule, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, err
			}
			filters = append(filters, rule)
		}
		return &filter.FilterNode{Filters: filters}, nil
	})

	f.Register("filter.season", func(cfg map[string]any) (pipeline.Node, error) {
		return &filter.SeasonNode{
			Floor:  conv.ConfigGetInt(cfg, "floor", 0),
			Logger: deps.Logger,
		}, nil
	})

	f.Register("rank.relevance", func(cfg map[string]any) (pipeline.Node, error) {
		n := rank.NewRelevanceNode()
		n.ArchetypeWeight = conv.ConfigGetFloat(cfg, "archetype_weight", rank.DefaultArchetypeWeight)
		n.ColorWeight = conv.ConfigGetFloat(cfg, "color_weight", rank.DefaultColorWeight)
		n.RatingWeight = conv.ConfigGetFloat(cfg, "rating_weight", rank.DefaultRatingWeight)
		return n, nil
	})

	f.Register("rerank.topn", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
	})

	f.Register("rerank.category_topn", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.CategoryTopNNode{PerCategory: conv.ConfigGetInt(cfg, "per_category", 0)}, nil
	})

	return f
}
