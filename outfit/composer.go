package outfit

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rushteam/outfitkit/archetype"
	"github.com/rushteam/outfitkit/core"
)

// 组合默认参数。
const (
	// MinPoolSize 是组合的候选池下限，低于此值无法成套
	MinPoolSize = 4

	DefaultCount           = 3
	DefaultMaxAttempts     = 10
	DefaultMinCompleteness = 80
)

// Options 是一次组合请求的参数。零值字段取默认。
type Options struct {
	Count      int      // 期望的搭配数量，默认 3
	ExcludeIDs []string // 排除的商品 ID（如"换一批"时已展示过的单品）
	Occasions  []string // 偏好场合，优先于原型默认场合
	Season     core.Season
	Weather    core.Weather   // 显式指定时参与候选过滤，否则只作为元数据
	Variation  VariationLevel // 默认 medium

	MaxAttempts     int // 每套搭配的重试上限，默认 10
	MinCompleteness int // 完整度门槛，默认 80

	// EnforceCompletion true 时丢弃低于门槛的搭配。
	// 默认尽力而为：重试耗尽后返回最佳尝试，Completeness 如实反映缺口
	EnforceCompletion bool
}

// Composer 把排序后的商品池组合成完整搭配。
//
// 设计原则：
//   - 结构约束优先：必需品类 > 可选品类 > 数量上限
//   - 同一批响应内不复用商品；池耗尽时允许复用并打 HasDuplicates 标记
//   - 随机性全部来自注入的种子，测试可复现
type Composer struct {
	Matcher archetype.StyleMatcher
	Scorer  *Scorer
	Logger  core.Logger

	rng *rand.Rand
	seq int
}

// NewComposer 创建组合器。seed 为 0 时用当前时间做种子。
func NewComposer(seed int64) *Composer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Composer{
		Matcher: archetype.KeywordMatcher{},
		Scorer:  NewScorer(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Compose 生成一批搭配。
//
// 流程：
//  1. 按季节/天气过滤候选池（不足 4 件时逐级回退）
//  2. 原型的典型场合轮转，每个场合组一套
//  3. 每套在 MaxAttempts 内重试；后半程放开商品复用（宽窗口松弛）；
//     重试耗尽后返回最佳尝试而非放弃（EnforceCompletion 可改为严格丢弃）
//  4. 对每套计算匹配分、标题、描述、标签
//
// 候选池过小（< 4 件）时返回空列表，不报错。
func (c *Composer) Compose(
	res *core.ArchetypeResult,
	profile *core.UserProfile,
	products []*core.Product,
	opts Options,
) []*core.Outfit {
	pool := excludeProducts(products, opts.ExcludeIDs)
	if len(pool) < MinPoolSize {
		c.logger().Warnf("compose: pool too small (%d < %d)", len(pool), MinPoolSize)
		return nil
	}

	dominant, secondary, mix := archetypeBlend(res)

	season := opts.Season
	if season == "" {
		season = core.CurrentSeason(time.Now())
	}
	explicitWeather := opts.Weather != ""
	weather := opts.Weather
	if weather == "" {
		weather = core.TypicalWeather(season)
	}

	// 季节/天气过滤，不足时逐级回退到更宽的池
	seasonal := filterBySeason(pool, season)
	weathered := seasonal
	if explicitWeather {
		weathered = filterByWeather(seasonal, opts.Weather)
	}
	switch {
	case len(weathered) >= MinPoolSize:
		pool = weathered
	case len(seasonal) >= MinPoolSize:
		c.logger().Debugf("compose: weather pool too small, using seasonal pool (%d)", len(seasonal))
		pool = seasonal
	default:
		c.logger().Debugf("compose: seasonal pool too small, using full pool (%d)", len(pool))
	}

	occList := occasionOrder(dominant, opts.Occasions)

	count := opts.Count
	if count <= 0 {
		count = DefaultCount
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	minCompleteness := opts.MinCompleteness
	if minCompleteness <= 0 {
		minCompleteness = DefaultMinCompleteness
	}

	byCategory := groupByCategory(pool)
	used := make(map[string]bool)
	outfits := make([]*core.Outfit, 0, count)

	for i := 0; i < count; i++ {
		occ := occList[i%len(occList)]

		var best *core.Outfit
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			// 后半程允许复用已用商品：宁可重复（并打标）也不残缺
			allowReuse := attempt > maxAttempts/2
			candidate := c.buildOutfit(
				dominant, secondary, mix,
				byCategory, occ, season, weather, explicitWeather,
				variationFor(opts.Variation), used, allowReuse,
			)
			if candidate == nil {
				continue
			}
			if best == nil || betterAttempt(candidate, best) {
				best = candidate
			}
			if candidate.Completeness >= minCompleteness {
				best = candidate
				break
			}
		}

		if best == nil {
			c.logger().Warnf("compose: no outfit for occasion %q after %d attempts", occ, maxAttempts)
			continue
		}
		if best.Completeness < minCompleteness {
			if opts.EnforceCompletion {
				c.logger().Warnf("compose: dropping outfit for %q below completeness floor (%d < %d)", occ, best.Completeness, minCompleteness)
				continue
			}
			c.logger().Debugf("compose: accepting best attempt for %q below floor (%d < %d)", occ, best.Completeness, minCompleteness)
		}

		for _, p := range best.Products {
			used[p.ID] = true
		}

		c.finish(best, res, profile, dominant, secondary, mix, season)
		outfits = append(outfits, best)
	}

	return outfits
}

// buildOutfit 组一套候选搭配：先填必需品类，再按概率加可选品类。
// 失败（一个必需品类都填不上）时返回 nil。
func (c *Composer) buildOutfit(
	dominant, secondary string, mix float64,
	byCategory map[core.Category][]*core.Product,
	occasion string,
	season core.Season,
	weather core.Weather,
	explicitWeather bool,
	v variation,
	used map[string]bool,
	allowReuse bool,
) *core.Outfit {
	structure := StructureFor(dominant, season)

	var chosen []*core.Product
	selected := make(map[core.Category]bool, len(structure.Required)+len(structure.Optional))
	hasDuplicates := false

	pick := func(cat core.Category) *core.Product {
		p := c.selectProduct(byCategory[cat], dominant, secondary, mix, season, weather, explicitWeather, v, used, false)
		if p == nil && allowReuse {
			p = c.selectProduct(byCategory[cat], dominant, secondary, mix, season, weather, explicitWeather, v, used, true)
			if p != nil && used[p.ID] {
				hasDuplicates = true
			}
		}
		return p
	}

	for _, cat := range structure.Required {
		if selected[cat] {
			continue
		}
		if p := pick(cat); p != nil {
			chosen = append(chosen, p)
			selected[cat] = true
			continue
		}

		// 上装/下装缺货时尝试连衣裙/连体裤替代（一件顶两件）
		if (cat == core.CategoryTop || cat == core.CategoryBottom) &&
			v.allowSubstitutes &&
			!selected[core.CategoryDress] && !selected[core.CategoryJumpsuit] {
			for _, sub := range []core.Category{core.CategoryDress, core.CategoryJumpsuit} {
				p := pick(sub)
				if p == nil {
					continue
				}
				chosen = append(chosen, p)
				selected[sub] = true
				for _, replaced := range sub.SubstituteFor() {
					selected[replaced] = true
				}
				break
			}
		}
	}

	if len(chosen) == 0 {
		return nil
	}

	// 可选品类：季节优先品类排前，按变化档位概率加入
	optional := orderOptional(structure.Optional, structure.Priority)
	for _, cat := range optional {
		if selected[cat] || len(chosen) >= structure.MaxItems {
			continue
		}
		if c.rng.Float64() >= v.optionalProbability {
			continue
		}
		if p := c.selectProduct(byCategory[cat], dominant, secondary, mix, season, weather, explicitWeather, v, used, false); p != nil {
			chosen = append(chosen, p)
			selected[cat] = true
		}
	}

	fulfilled := 0
	var missing []core.Category
	for _, cat := range completenessCategories {
		if selected[cat] {
			fulfilled++
		} else {
			missing = append(missing, cat)
		}
	}
	completeness := int(float64(fulfilled)/float64(len(completenessCategories))*100 + 0.5)

	structureCats := make([]core.Category, 0, len(chosen))
	for _, p := range chosen {
		structureCats = append(structureCats, p.Category)
	}

	c.seq++
	return &core.Outfit{
		ID:                 fmt.Sprintf("outfit-%s-%s-%d", dominant, slug(occasion), c.seq),
		Archetype:          dominant,
		SecondaryArchetype: secondary,
		MixFactor:          mix,
		Occasion:           occasion,
		Season:             season,
		Weather:            weather,
		Products:           chosen,
		Structure:          structureCats,
		CategoryRatio:      categoryRatio(chosen),
		Completeness:       completeness,
		MissingCategories:  missing,
		HasDuplicates:      hasDuplicates,
	}
}

// selectProduct 从一个品类的候选里选最优：
// 季节/天气适配优先（逐级回退），按主次原型混合命中率排序，
// 加入变化档位的分数抖动避免永远选同一件。
func (c *Composer) selectProduct(
	candidates []*core.Product,
	dominant, secondary string, mix float64,
	season core.Season,
	weather core.Weather,
	explicitWeather bool,
	v variation,
	used map[string]bool,
	allowUsed bool,
) *core.Product {
	if !allowUsed {
		fresh := make([]*core.Product, 0, len(candidates))
		for _, p := range candidates {
			if !used[p.ID] {
				fresh = append(fresh, p)
			}
		}
		candidates = fresh
	}
	if len(candidates) == 0 {
		return nil
	}

	seasonal := filterBySeason(candidates, season)
	pool := seasonal
	if explicitWeather {
		if weathered := filterByWeather(seasonal, weather); len(weathered) > 0 {
			pool = weathered
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}

	matcher := c.Matcher
	if matcher == nil {
		matcher = archetype.KeywordMatcher{}
	}

	var best *core.Product
	var bestScore float64
	for _, p := range pool {
		score := archetype.BlendedTagScore(matcher, p.StyleTags, dominant, secondary, mix)
		if v.weightVariation > 0 {
			score += (c.rng.Float64()*2 - 1) * v.weightVariation
		}
		if best == nil || score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best
}

// finish 给已接受的搭配补齐匹配分、标题、描述、标签。
func (c *Composer) finish(
	o *core.Outfit,
	res *core.ArchetypeResult,
	profile *core.UserProfile,
	dominant, secondary string, mix float64,
	season core.Season,
) {
	scorer := c.Scorer
	if scorer == nil {
		scorer = NewScorer()
	}
	userArchetype := dominant
	if res != nil && res.Dominant != "" {
		userArchetype = res.Dominant
	}
	scorer.Apply(o, profile, userArchetype, season)

	o.Title = Title(c.rng, dominant, secondary, mix, o.Occasion)
	o.Description = Description(c.rng, dominant, o.Products, season)
	o.Tags = Tags(c.rng, dominant, secondary, mix, o.Occasion, season)
}

func (c *Composer) logger() core.Logger {
	if c.Logger == nil {
		return core.NopLogger{}
	}
	return c.Logger
}

// betterAttempt 判断新尝试是否优于当前最佳：完整度优先，其次件数。
func betterAttempt(a, b *core.Outfit) bool {
	if a.Completeness != b.Completeness {
		return a.Completeness > b.Completeness
	}
	return len(a.Products) > len(b.Products)
}

func archetypeBlend(res *core.ArchetypeResult) (dominant, secondary string, mix float64) {
	if res == nil || res.Dominant == "" {
		return archetype.CasualChic, "", 0
	}
	dominant = res.Dominant
	secondary = res.Secondary
	mix = res.MixFactor
	if secondary == "" || secondary == dominant || mix <= 0 {
		return dominant, "", 0
	}
	return dominant, secondary, mix
}

// occasionOrder 返回本次生成的场合轮转表：
// 偏好场合（原型认可的）排前，其余按原型默认顺序补齐。
func occasionOrder(dominant string, preferred []string) []string {
	base := archetype.Occasions(dominant)
	if len(preferred) == 0 {
		return base
	}

	valid := make([]string, 0, len(preferred))
	for _, occ := range preferred {
		if containsString(base, occ) {
			valid = append(valid, occ)
		}
	}
	if len(valid) == 0 {
		return base
	}
	for _, occ := range base {
		if !containsString(valid, occ) {
			valid = append(valid, occ)
		}
	}
	return valid
}

func excludeProducts(products []*core.Product, excludeIDs []string) []*core.Product {
	if len(excludeIDs) == 0 {
		return products
	}
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	out := make([]*core.Product, 0, len(products))
	for _, p := range products {
		if p != nil && !excluded[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

func filterBySeason(products []*core.Product, season core.Season) []*core.Product {
	out := make([]*core.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if len(p.Seasons) == 0 || p.HasSeason(season) {
			out = append(out, p)
		}
	}
	return out
}

func filterByWeather(products []*core.Product, weather core.Weather) []*core.Product {
	seasons := core.SeasonsForWeather(weather)
	if len(seasons) == 0 {
		return products
	}
	out := make([]*core.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if len(p.Seasons) == 0 {
			out = append(out, p)
			continue
		}
		for _, s := range seasons {
			if p.HasSeason(s) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func groupByCategory(products []*core.Product) map[core.Category][]*core.Product {
	out := make(map[core.Category][]*core.Product, 8)
	for _, p := range products {
		if p != nil {
			out[p.Category] = append(out[p.Category], p)
		}
	}
	return out
}

func orderOptional(optional, priority []core.Category) []core.Category {
	if len(priority) == 0 {
		return optional
	}
	out := make([]core.Category, 0, len(optional))
	for _, c := range priority {
		if containsCategory(optional, c) {
			out = append(out, c)
		}
	}
	for _, c := range optional {
		if !containsCategory(priority, c) {
			out = append(out, c)
		}
	}
	return out
}

func categoryRatio(products []*core.Product) map[core.Category]int {
	if len(products) == 0 {
		return nil
	}
	counts := make(map[core.Category]int, len(products))
	for _, p := range products {
		counts[p.Category]++
	}
	ratio := make(map[core.Category]int, len(counts))
	total := len(products)
	for cat, n := range counts {
		ratio[cat] = int(float64(n)/float64(total)*100 + 0.5)
	}
	return ratio
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
