package outfit

import (
	"testing"

	"github.com/rushteam/outfitkit/core"
)

func testPool() []*core.Product {
	return []*core.Product{
		{ID: "top-1", Name: "White Tee", Category: core.CategoryTop, Colors: []string{"white"}, StyleTags: []string{"casual"}, InStock: true},
		{ID: "top-2", Name: "Linen Shirt", Category: core.CategoryTop, Colors: []string{"beige"}, StyleTags: []string{"relaxed"}, InStock: true},
		{ID: "bottom-1", Name: "Blue Jeans", Category: core.CategoryBottom, Colors: []string{"blue"}, StyleTags: []string{"casual"}, InStock: true},
		{ID: "bottom-2", Name: "Chino", Category: core.CategoryBottom, Colors: []string{"khaki"}, StyleTags: []string{"versatile"}, InStock: true},
		{ID: "shoe-1", Name: "Sneaker", Category: core.CategoryFootwear, Colors: []string{"white"}, StyleTags: []string{"comfortable"}, InStock: true},
	}
}

func TestComposeSmallPoolReusesWithFlag(t *testing.T) {
	res := &core.ArchetypeResult{Dominant: "casual_chic"}
	c := NewComposer(42)

	outfits := c.Compose(res, newProfile("white"), testPool(), Options{
		Count:           3,
		Season:          core.SeasonSummer,
		MinCompleteness: 80,
	})

	if len(outfits) != 3 {
		t.Fatalf("expected 3 outfits, got %d", len(outfits))
	}

	for i, o := range outfits {
		if o.Completeness != 100 {
			t.Errorf("outfit %d: expected completeness 100, got %d", i, o.Completeness)
		}
		sum := 0
		for _, pct := range o.CategoryRatio {
			sum += pct
		}
		if sum < 99 || sum > 101 {
			t.Errorf("outfit %d: category ratio sums to %d, want ~100", i, sum)
		}
		if o.MatchPercentage < 70 || o.MatchPercentage > 98 {
			t.Errorf("outfit %d: match percentage %d outside [70,98]", i, o.MatchPercentage)
		}
		if o.Title == "" || o.Description == "" || len(o.Tags) == 0 {
			t.Errorf("outfit %d: missing presentation fields", i)
		}
		for _, cat := range []core.Category{core.CategoryTop, core.CategoryBottom, core.CategoryFootwear} {
			if !o.HasCategory(cat) {
				t.Errorf("outfit %d: missing required category %s", i, cat)
			}
		}
	}

	// 只有 1 双鞋：第一套不重复，后两套被迫复用并打标
	if outfits[0].HasDuplicates {
		t.Error("first outfit should not reuse products")
	}
	if !outfits[1].HasDuplicates || !outfits[2].HasDuplicates {
		t.Error("later outfits must flag reuse when the pool is exhausted")
	}

	// 场合按原型轮转：casual_chic → casual, weekend, lunch
	wantOccasions := []string{"casual", "weekend", "lunch"}
	for i, want := range wantOccasions {
		if outfits[i].Occasion != want {
			t.Errorf("outfit %d: expected occasion %q, got %q", i, want, outfits[i].Occasion)
		}
	}
}

func TestComposePoolTooSmall(t *testing.T) {
	c := NewComposer(1)
	outfits := c.Compose(nil, nil, testPool()[:3], Options{Season: core.SeasonSummer})
	if len(outfits) != 0 {
		t.Fatalf("expected no outfits for pool of 3, got %d", len(outfits))
	}
}

func TestComposeExcludeIDsShrinkPool(t *testing.T) {
	c := NewComposer(1)
	outfits := c.Compose(nil, nil, testPool(), Options{
		Season:     core.SeasonSummer,
		ExcludeIDs: []string{"top-1", "bottom-1"},
	})
	// 排除后剩 3 件，低于组合下限
	if len(outfits) != 0 {
		t.Fatalf("expected no outfits after exclusion, got %d", len(outfits))
	}
}

func TestComposeDressSubstitutesTopAndBottom(t *testing.T) {
	pool := []*core.Product{
		{ID: "dress-1", Name: "Summer Dress", Category: core.CategoryDress, Colors: []string{"white"}, StyleTags: []string{"relaxed"}, InStock: true},
		{ID: "shoe-1", Name: "Sandal", Category: core.CategoryFootwear, Colors: []string{"tan"}, StyleTags: []string{"comfortable"}, InStock: true},
		{ID: "bag-1", Name: "Tote", Category: core.CategoryAccessory, Colors: []string{"beige"}, StyleTags: []string{"versatile"}, InStock: true},
		{ID: "coat-1", Name: "Light Jacket", Category: core.CategoryOuterwear, Colors: []string{"beige"}, StyleTags: []string{"modern"}, InStock: true},
	}
	res := &core.ArchetypeResult{Dominant: "casual_chic"}

	c := NewComposer(7)
	outfits := c.Compose(res, nil, pool, Options{
		Count:     1,
		Season:    core.SeasonSummer,
		Variation: VariationMedium, // 允许替代
	})

	if len(outfits) != 1 {
		t.Fatalf("expected 1 outfit, got %d", len(outfits))
	}
	o := outfits[0]
	if o.Completeness != 100 {
		t.Errorf("expected completeness 100 via substitution, got %d", o.Completeness)
	}
	if !o.HasCategory(core.CategoryTop) || !o.HasCategory(core.CategoryBottom) {
		t.Error("dress should cover both top and bottom slots")
	}
	if o.ProductByCategory(core.CategoryDress) == nil {
		t.Error("expected the dress in the outfit")
	}
}

func TestComposeLowVariationDisallowsSubstitutes(t *testing.T) {
	pool := []*core.Product{
		{ID: "dress-1", Category: core.CategoryDress, StyleTags: []string{"relaxed"}, InStock: true},
		{ID: "shoe-1", Category: core.CategoryFootwear, StyleTags: []string{"comfortable"}, InStock: true},
		{ID: "bag-1", Category: core.CategoryAccessory, StyleTags: []string{"versatile"}, InStock: true},
		{ID: "coat-1", Category: core.CategoryOuterwear, StyleTags: []string{"modern"}, InStock: true},
	}

	c := NewComposer(7)
	outfits := c.Compose(nil, nil, pool, Options{
		Count:             1,
		Season:            core.SeasonSummer,
		Variation:         VariationLow, // 不允许连衣裙替代
		EnforceCompletion: true,
	})
	if len(outfits) != 0 {
		t.Fatalf("expected no outfit without top/bottom at low variation, got %d", len(outfits))
	}
}

func TestComposeBestEffortReturnsIncomplete(t *testing.T) {
	pool := []*core.Product{
		{ID: "top-1", Category: core.CategoryTop, StyleTags: []string{"casual"}, InStock: true},
		{ID: "top-2", Category: core.CategoryTop, StyleTags: []string{"relaxed"}, InStock: true},
		{ID: "bottom-1", Category: core.CategoryBottom, StyleTags: []string{"casual"}, InStock: true},
		{ID: "bag-1", Category: core.CategoryAccessory, StyleTags: []string{"versatile"}, InStock: true},
	}

	// 尽力而为是默认行为：无鞋可选也要返回最佳尝试并如实标注缺口
	c := NewComposer(3)
	outfits := c.Compose(nil, nil, pool, Options{
		Count:     1,
		Season:    core.SeasonSummer,
		Variation: VariationLow,
	})

	if len(outfits) != 1 {
		t.Fatalf("expected best-effort outfit, got %d", len(outfits))
	}
	o := outfits[0]
	if o.Completeness >= 80 {
		t.Errorf("expected completeness below floor without footwear, got %d", o.Completeness)
	}
	if len(o.MissingCategories) == 0 {
		t.Error("expected missing categories to be reported")
	}
	found := false
	for _, cat := range o.MissingCategories {
		if cat == core.CategoryFootwear {
			found = true
		}
	}
	if !found {
		t.Error("footwear should be listed as missing")
	}
}

func TestComposeWinterCoreCategoriesStayComplete(t *testing.T) {
	// 冬季把外套升格为选品必需，但完整度口径不变：
	// 三大件齐全的池子在冬季也要给满 3 套、完整度 100
	res := &core.ArchetypeResult{Dominant: "casual_chic"}
	c := NewComposer(42)

	outfits := c.Compose(res, newProfile("white"), testPool(), Options{
		Count:           3,
		Season:          core.SeasonWinter,
		MinCompleteness: 80,
	})

	if len(outfits) != 3 {
		t.Fatalf("expected 3 outfits in winter, got %d", len(outfits))
	}
	for i, o := range outfits {
		if o.Completeness != 100 {
			t.Errorf("outfit %d: completeness = %d, want 100 with all core categories present", i, o.Completeness)
		}
		if len(o.MissingCategories) != 0 {
			t.Errorf("outfit %d: unexpected missing categories %v", i, o.MissingCategories)
		}
	}
}

func TestComposeLuxuryAccessoryNotInCompleteness(t *testing.T) {
	// luxury 蓝图要求配饰，但池子里没有配饰时三大件仍算完整
	pool := testPool()
	res := &core.ArchetypeResult{Dominant: "luxury"}
	c := NewComposer(11)

	outfits := c.Compose(res, newProfile("white"), pool, Options{
		Count:           1,
		Season:          core.SeasonSummer,
		MinCompleteness: 80,
	})
	if len(outfits) != 1 {
		t.Fatalf("expected 1 outfit, got %d", len(outfits))
	}
	if outfits[0].Completeness != 100 {
		t.Errorf("completeness = %d, want 100 without the accessory", outfits[0].Completeness)
	}
}

func TestStructureForSeasonalAdjustments(t *testing.T) {
	winter := StructureFor("casual_chic", core.SeasonWinter)
	if !containsCategory(winter.Required, core.CategoryOuterwear) {
		t.Error("winter should require outerwear")
	}
	if containsCategory(winter.Optional, core.CategoryOuterwear) {
		t.Error("outerwear should move out of optional in winter")
	}

	summer := StructureFor("casual_chic", core.SeasonSummer)
	if containsCategory(summer.Required, core.CategoryOuterwear) {
		t.Error("summer should not require outerwear")
	}
	if len(summer.Priority) == 0 {
		t.Error("summer should prioritize light categories")
	}

	luxury := StructureFor("luxury", core.SeasonSummer)
	if !containsCategory(luxury.Required, core.CategoryAccessory) {
		t.Error("luxury requires an accessory")
	}
	if luxury.MinItems != 4 || luxury.MaxItems != 6 {
		t.Errorf("luxury structure bounds: got min %d max %d", luxury.MinItems, luxury.MaxItems)
	}
}
