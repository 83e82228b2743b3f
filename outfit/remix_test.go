package outfit

import (
	"testing"

	"github.com/rushteam/outfitkit/core"
)

func remixFixture() (*core.Outfit, []*core.Product) {
	top := &core.Product{ID: "top-1", Name: "Silk Blouse", Category: core.CategoryTop, Colors: []string{"black"}, StyleTags: []string{"elegant"}, InStock: true}
	bottom := &core.Product{ID: "bottom-1", Name: "Tailored Trousers", Category: core.CategoryBottom, Colors: []string{"black"}, StyleTags: []string{"elegant"}, InStock: true}
	shoe := &core.Product{ID: "shoe-1", Name: "Red Pumps", Category: core.CategoryFootwear, Colors: []string{"red"}, StyleTags: []string{"bold"}, InStock: true}

	o := &core.Outfit{
		ID:        "outfit-1",
		Archetype: "klassiek",
		Season:    core.SeasonSummer,
		Products:  []*core.Product{top, bottom, shoe},
	}
	NewScorer().Apply(o, newProfile("black"), "klassiek", core.SeasonSummer)

	pool := []*core.Product{
		top, bottom, shoe,
		{ID: "shoe-2", Name: "Black Loafers", Category: core.CategoryFootwear, Colors: []string{"black"}, StyleTags: []string{"elegant"}, InStock: true},
		{ID: "shoe-3", Name: "White Sneaker", Category: core.CategoryFootwear, Colors: []string{"white"}, StyleTags: []string{"casual"}, InStock: true},
		{ID: "shoe-4", Name: "Sold Out Boot", Category: core.CategoryFootwear, Colors: []string{"black"}, StyleTags: []string{"elegant"}, InStock: false},
	}
	return o, pool
}

func TestRemixSwapsOnlyTargetCategory(t *testing.T) {
	o, pool := remixFixture()
	profile := newProfile("black")

	variants, err := NewRemixer().Remix(o, core.CategoryFootwear, pool, profile, "klassiek", core.SeasonSummer)
	if err != nil {
		t.Fatalf("Remix failed: %v", err)
	}
	if len(variants) == 0 {
		t.Fatal("expected at least one variant")
	}

	for _, v := range variants {
		// 未被替换的槽位沿用原引用
		if v.Outfit.Products[0] != o.Products[0] || v.Outfit.Products[1] != o.Products[1] {
			t.Error("non-target categories must keep the original product references")
		}
		if v.Swapped.Category != core.CategoryFootwear {
			t.Errorf("swapped product has category %s", v.Swapped.Category)
		}
		if v.Replaced.ID != "shoe-1" {
			t.Errorf("expected shoe-1 replaced, got %s", v.Replaced.ID)
		}
		if v.Swapped.ID == "shoe-4" {
			t.Error("out-of-stock product must not be suggested")
		}
		if v.Outfit.MatchPercentage < 70 || v.Outfit.MatchPercentage > 98 {
			t.Errorf("variant score %d outside [70,98]", v.Outfit.MatchPercentage)
		}
		if v.ScoreDelta != v.Outfit.MatchPercentage-o.MatchPercentage {
			t.Errorf("delta mismatch: %d vs %d-%d", v.ScoreDelta, v.Outfit.MatchPercentage, o.MatchPercentage)
		}
	}

	// 按新匹配分降序
	for i := 1; i < len(variants); i++ {
		if variants[i-1].Outfit.MatchPercentage < variants[i].Outfit.MatchPercentage {
			t.Error("variants must be sorted by score descending")
		}
	}

	// 黑色乐福鞋全维度契合，应排在白色休闲鞋之前
	if variants[0].Swapped.ID != "shoe-2" {
		t.Errorf("expected shoe-2 as best swap, got %s", variants[0].Swapped.ID)
	}

	// 原搭配不被修改
	if o.Products[2].ID != "shoe-1" {
		t.Error("original outfit must stay untouched")
	}
}

func TestRemixMissingCategory(t *testing.T) {
	o, pool := remixFixture()
	_, err := NewRemixer().Remix(o, core.CategoryOuterwear, pool, nil, "klassiek", core.SeasonSummer)
	if !core.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND for absent category, got %v", err)
	}
}

func TestRemixNoAlternatives(t *testing.T) {
	o, _ := remixFixture()
	// 池里只有已在搭配中的商品
	_, err := NewRemixer().Remix(o, core.CategoryFootwear, o.Products, nil, "klassiek", core.SeasonSummer)
	if !core.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND without alternatives, got %v", err)
	}
}

func TestRemixMaxVariants(t *testing.T) {
	o, pool := remixFixture()
	r := NewRemixer()
	r.MaxVariants = 1

	variants, err := r.Remix(o, core.CategoryFootwear, pool, newProfile("black"), "klassiek", core.SeasonSummer)
	if err != nil {
		t.Fatalf("Remix failed: %v", err)
	}
	if len(variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(variants))
	}
}
