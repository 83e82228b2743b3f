package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/outfitkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("product", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, err
}

// RuleFilter 是基于 CEL (Common Expression Language) 表达式的规则过滤器。
// 表达式返回 true 时商品被过滤掉。
//
// 表达式语法（CEL 标准语法）：
//   - 商品字段：product.price > 200.0 / product.brand == "acme"
//   - 数值：item.score > 0.7
//   - 逻辑：product.category == "accessory" && product.rating < 3.0
//   - 包含："wool" in product.style_tags
//   - 标签：label.recall_source == "collaborative"
//
// 表达式在构造时编译一次，Program 线程安全，可并发求值。
type RuleFilter struct {
	expr string
	prg  cel.Program
}

// NewRuleFilter 编译表达式并创建规则过滤器。
// 表达式非法时返回错误，避免在请求路径上才暴露配置问题。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	if expr == "" {
		return nil, fmt.Errorf("rule filter: empty expression")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("rule filter: cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("rule filter: compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("rule filter: program %q: %w", expr, err)
	}
	return &RuleFilter{expr: expr, prg: prg}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Product == nil {
		return true, nil
	}

	out, _, err := f.prg.Eval(buildRuleInput(rctx, item))
	if err != nil {
		// 不存在的 key 会在这里报错，用 label.key != null 检查存在性
		return false, fmt.Errorf("rule filter: eval %q: %w", f.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule filter: expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildRuleInput 构建 CEL 表达式的输入数据
func buildRuleInput(rctx *core.RecommendContext, it *core.Item) map[string]interface{} {
	labels := make(map[string]interface{}, len(it.Labels))
	labelAccessor := make(map[string]interface{}, len(it.Labels))
	for k, v := range it.Labels {
		labels[k] = map[string]interface{}{
			"value":  v.Value,
			"source": v.Source,
		}
		// label.recall_source 直接取 value，兼容简写
		labelAccessor[k] = v.Value
	}

	p := it.Product
	product := map[string]interface{}{
		"id":         p.ID,
		"name":       p.Name,
		"brand":      p.Brand,
		"price":      p.Price,
		"category":   string(p.Category),
		"colors":     p.Colors,
		"style_tags": p.StyleTags,
		"occasions":  p.Occasions,
		"gender":     p.Gender,
		"in_stock":   p.InStock,
		"rating":     p.Rating,
	}

	item := map[string]interface{}{
		"id":     it.ID,
		"score":  it.Score,
		"labels": labels,
	}

	rc := map[string]interface{}{}
	if rctx != nil {
		rc["user_id"] = rctx.UserID
		rc["scene"] = rctx.Scene
		rc["season"] = string(rctx.Season)
		rc["occasion"] = rctx.Occasion
		rc["params"] = rctx.Params
	}

	return map[string]interface{}{
		"item":    item,
		"product": product,
		"label":   labelAccessor,
		"rctx":    rc,
	}
}

var _ Filter = (*RuleFilter)(nil)
