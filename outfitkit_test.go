package outfitkit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rushteam/outfitkit/core"
	"github.com/rushteam/outfitkit/learn"
	"github.com/rushteam/outfitkit/recall"
	"github.com/rushteam/outfitkit/store"
)

func fixtureCatalog() *store.MemoryCatalog {
	return store.NewMemoryCatalog([]*core.Product{
		{ID: "top-1", Name: "Linen Shirt", Category: core.CategoryTop, Price: 59, InStock: true,
			Colors: []string{"white"}, StyleTags: []string{"casual", "minimalist"},
			Occasions: []string{"casual", "work"}, Rating: 4.2},
		{ID: "top-2", Name: "Graphic Tee", Category: core.CategoryTop, Price: 29, InStock: true,
			Colors: []string{"black"}, StyleTags: []string{"casual", "street"},
			Seasons: []core.Season{core.SeasonSummer}, Occasions: []string{"casual"}, Rating: 4.0},
		{ID: "bottom-1", Name: "Chino Shorts", Category: core.CategoryBottom, Price: 49, InStock: true,
			Colors: []string{"beige"}, StyleTags: []string{"casual"},
			Seasons: []core.Season{core.SeasonSummer}, Occasions: []string{"casual"}, Rating: 4.5},
		{ID: "bottom-2", Name: "Slim Jeans", Category: core.CategoryBottom, Price: 89, InStock: true,
			Colors: []string{"navy"}, StyleTags: []string{"casual", "classic"},
			Occasions: []string{"casual", "work"}, Rating: 4.1},
		{ID: "shoe-1", Name: "White Sneakers", Category: core.CategoryFootwear, Price: 99, InStock: true,
			Colors: []string{"white"}, StyleTags: []string{"casual", "sporty"},
			Occasions: []string{"casual"}, Rating: 4.7},
		{ID: "shoe-2", Name: "Leather Loafers", Category: core.CategoryFootwear, Price: 129, InStock: true,
			Colors: []string{"brown"}, StyleTags: []string{"classic"},
			Occasions: []string{"work", "casual"}, Rating: 4.3},
		{ID: "acc-1", Name: "Canvas Tote", Category: core.CategoryAccessory, Price: 39, InStock: true,
			Colors: []string{"beige"}, StyleTags: []string{"casual"}, Rating: 3.9},
		{ID: "out-1", Name: "Denim Jacket", Category: core.CategoryOuterwear, Price: 119, InStock: true,
			Colors: []string{"blue"}, StyleTags: []string{"casual", "street"}, Rating: 4.4},
	})
}

func casualProfile(userID string) *core.UserProfile {
	p := core.NewUserProfile(userID)
	p.SetStylePreference("casual", 80)
	p.SetStylePreference("minimalist", 40)
	p.Undertone = "cool"
	p.ColorPalette = []string{"white", "navy", "beige"}
	return p
}

func TestEngineRecommendEndToEnd(t *testing.T) {
	e, err := NewEngine(fixtureCatalog(), EngineOptions{Seed: 42})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	outfits, err := e.Recommend(context.Background(), &Request{
		UserID:  "u1",
		Profile: casualProfile("u1"),
		Season:  core.SeasonSummer,
		Count:   2,
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(outfits) == 0 {
		t.Fatal("expected at least one outfit")
	}

	for _, o := range outfits {
		if len(o.Products) < 3 {
			t.Errorf("outfit %s has %d products, want >= 3", o.ID, len(o.Products))
		}
		if o.MatchPercentage < 70 || o.MatchPercentage > 98 {
			t.Errorf("match percentage %d out of [70, 98]", o.MatchPercentage)
		}
		if o.Archetype == "" {
			t.Error("outfit missing archetype")
		}
		if o.Title == "" {
			t.Error("outfit missing title")
		}
		if o.Season != core.SeasonSummer {
			t.Errorf("outfit season = %s, want summer", o.Season)
		}
	}
}

func TestEngineRecommendNilRequest(t *testing.T) {
	e, err := NewEngine(fixtureCatalog(), EngineOptions{Seed: 7})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	// 无画像、无请求条件也要能产出（冷启动中性路径）
	outfits, err := e.Recommend(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(outfits) == 0 {
		t.Fatal("expected outfits for cold-start request")
	}
}

func TestEngineRecommendEmptyCatalog(t *testing.T) {
	e, err := NewEngine(store.NewMemoryCatalog(nil), EngineOptions{Seed: 1})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	_, err = e.Recommend(context.Background(), &Request{UserID: "u1"})
	if !core.IsEmptyCatalog(err) {
		t.Fatalf("expected empty catalog error, got %v", err)
	}
}

func TestEngineRequiresCatalog(t *testing.T) {
	if _, err := NewEngine(nil, EngineOptions{}); err == nil {
		t.Fatal("expected error for nil catalog")
	}
}

func TestEngineExcludeIDs(t *testing.T) {
	e, err := NewEngine(fixtureCatalog(), EngineOptions{Seed: 42})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	outfits, err := e.Recommend(context.Background(), &Request{
		UserID:     "u1",
		Profile:    casualProfile("u1"),
		Season:     core.SeasonSummer,
		ExcludeIDs: []string{"top-1", "shoe-2"},
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	for _, o := range outfits {
		for _, p := range o.Products {
			if p.ID == "top-1" || p.ID == "shoe-2" {
				t.Errorf("excluded product %s appeared in outfit", p.ID)
			}
		}
	}
}

func TestEngineRemixSwapsTargetCategory(t *testing.T) {
	e, err := NewEngine(fixtureCatalog(), EngineOptions{Seed: 42})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	ctx := context.Background()

	req := &Request{UserID: "u1", Profile: casualProfile("u1"), Season: core.SeasonSummer}
	outfits, err := e.Recommend(ctx, req)
	if err != nil || len(outfits) == 0 {
		t.Fatalf("Recommend failed: %v (%d outfits)", err, len(outfits))
	}

	var target *core.Outfit
	for _, o := range outfits {
		if o.ProductByCategory(core.CategoryFootwear) != nil {
			target = o
			break
		}
	}
	if target == nil {
		t.Fatal("no outfit with footwear to remix")
	}

	variants, err := e.Remix(ctx, req, target, core.CategoryFootwear)
	if err != nil {
		t.Fatalf("Remix failed: %v", err)
	}
	if len(variants) == 0 {
		t.Fatal("expected at least one variant")
	}
	replaced := target.ProductByCategory(core.CategoryFootwear)
	for _, v := range variants {
		if v.Swapped.ID == replaced.ID {
			t.Errorf("variant swapped in the replaced product %s", replaced.ID)
		}
		if v.Swapped.Category != core.CategoryFootwear {
			t.Errorf("swapped product category = %s, want footwear", v.Swapped.Category)
		}
	}
}

func TestEngineRemixNilOutfit(t *testing.T) {
	e, err := NewEngine(fixtureCatalog(), EngineOptions{Seed: 1})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if _, err := e.Remix(context.Background(), nil, nil, core.CategoryFootwear); err == nil {
		t.Fatal("expected error for nil outfit")
	}
}

func TestEngineFeedbackLoop(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	defer mem.Close()

	collector := learn.NewStoreCollector(mem)
	manager := learn.NewManager(collector, mem)

	e, err := NewEngine(fixtureCatalog(), EngineOptions{
		Seed:     42,
		Feedback: collector,
		Weights:  manager,
	})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	now := time.Now()
	for i := 0; i < 10; i++ {
		e.SubmitFeedback(ctx, &core.FeedbackEvent{
			UserID:    "u1",
			OutfitID:  "o1",
			Archetype: "urban",
			Action:    core.FeedbackLike,
			Timestamp: now,
		})
	}

	stats, err := collector.FeedbackStats(ctx, "u1")
	if err != nil {
		t.Fatalf("FeedbackStats failed: %v", err)
	}
	if stats.Total != 10 || stats.Likes != 10 {
		t.Errorf("stats = %d total / %d likes, want 10/10", stats.Total, stats.Likes)
	}

	// 带上学习结果后推荐仍要正常产出
	outfits, err := e.Recommend(ctx, &Request{
		UserID:  "u1",
		Profile: casualProfile("u1"),
		Season:  core.SeasonSummer,
	})
	if err != nil || len(outfits) == 0 {
		t.Fatalf("Recommend after feedback failed: %v (%d outfits)", err, len(outfits))
	}

	// 正反馈应把 urban 的自适应权重推高于识别基础得分
	weights := manager.Weights(ctx, "u1", nil)
	if weights["urban"] <= 50 {
		t.Errorf("urban weight = %v, want > 50 after 10 likes", weights["urban"])
	}

	// 缓存的权重必须是原型空间的 key，不能混进风格类别
	data, err := mem.Get(ctx, "learn:weights:u1")
	if err != nil {
		t.Fatalf("weight cache read failed: %v", err)
	}
	var cached core.AdaptiveWeights
	if err := json.Unmarshal(data, &cached); err != nil {
		t.Fatalf("weight cache unmarshal failed: %v", err)
	}
	if _, ok := cached.Weights["casual_chic"]; !ok {
		t.Error("cached weights missing archetype key casual_chic")
	}
	for _, styleKey := range []string{"casual", "minimalist"} {
		if _, ok := cached.Weights[styleKey]; ok {
			t.Errorf("cached weights contain style-category key %q", styleKey)
		}
	}
}

type fixedSimilarity struct {
	users []recall.SimilarUser
}

func (s fixedSimilarity) SimilarUsers(context.Context, string, int) ([]recall.SimilarUser, error) {
	return s.users, nil
}

func TestEngineCollaborativeSurface(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	defer mem.Close()
	catalog := fixtureCatalog()

	interactions := store.NewInteractionStore(mem)
	now := time.Now()
	likes := []struct {
		user    string
		product string
	}{
		{"u2", "top-2"}, {"u2", "shoe-1"},
		{"u3", "top-2"}, {"u3", "acc-1"},
	}
	for _, l := range likes {
		err := interactions.Collect(ctx, &core.FeedbackEvent{
			UserID:    l.user,
			Products:  []string{l.product},
			Action:    core.FeedbackLike,
			Timestamp: now,
		})
		if err != nil {
			t.Fatalf("Collect failed: %v", err)
		}
	}

	cf := &recall.Collaborative{
		Similarity: fixedSimilarity{users: []recall.SimilarUser{
			{UserID: "u2", Similarity: 0.9},
			{UserID: "u3", Similarity: 0.7},
		}},
		Interactions: interactions,
		Catalog:      catalog,
	}

	e, err := NewEngine(catalog, EngineOptions{Seed: 42, Collaborative: cf})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	recs, err := e.SimilarTaste(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("SimilarTaste failed: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations from similar users")
	}
	// top-2 被两个相似用户喜欢，应排第一
	if recs[0].Product.ID != "top-2" || recs[0].LikedByCount != 2 {
		t.Errorf("top rec = %s (liked by %d), want top-2 liked by 2", recs[0].Product.ID, recs[0].LikedByCount)
	}

	together, err := e.LikedTogether(ctx, "top-2", 5)
	if err != nil {
		t.Fatalf("LikedTogether failed: %v", err)
	}
	if len(together) == 0 {
		t.Fatal("expected co-liked products for top-2")
	}
	for _, p := range together {
		if p.ID == "top-2" {
			t.Error("LikedTogether returned the query product itself")
		}
	}
}

func TestEngineCollaborativeDisabled(t *testing.T) {
	e, err := NewEngine(fixtureCatalog(), EngineOptions{Seed: 1})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	recs, err := e.SimilarTaste(context.Background(), "u1", 5)
	if err != nil || recs != nil {
		t.Errorf("SimilarTaste without CF = %v, %v; want nil, nil", recs, err)
	}
	prods, err := e.LikedTogether(context.Background(), "top-1", 5)
	if err != nil || prods != nil {
		t.Errorf("LikedTogether without CF = %v, %v; want nil, nil", prods, err)
	}
}
