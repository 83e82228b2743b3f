package store

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/outfitkit/core"
)

func TestMemoryStoreBasicOps(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if _, err := m.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	if err := m.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, err := m.Get(ctx, "k1")
	if err != nil || string(v) != "v1" {
		t.Errorf("Get = %q, %v", v, err)
	}

	if err := m.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if err := m.Set(ctx, "k1", []byte("v1"), 60); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := m.Get(ctx, "k1"); err != nil {
		t.Errorf("fresh key should be readable: %v", err)
	}

	// 直接把过期时间拨到过去，验证读路径的过期判定
	m.mu.Lock()
	m.data["k1"].expireAt = time.Now().Add(-time.Second)
	m.mu.Unlock()

	if _, err := m.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found after expiry, got %v", err)
	}
}

func TestMemoryStoreBatchOps(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if err := m.BatchSet(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}); err != nil {
		t.Fatalf("BatchSet failed: %v", err)
	}

	got, err := m.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet failed: %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet = %v", got)
	}
}

func TestMemoryStoreZSetOrdering(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	m.ZAdd(ctx, "z", 1, "low")
	m.ZAdd(ctx, "z", 3, "high")
	m.ZAdd(ctx, "z", 2, "mid")
	m.ZAdd(ctx, "z", 2, "mid2") // 同分按成员名升序

	got, err := m.ZRange(ctx, "z", 0, -1)
	if err != nil {
		t.Fatalf("ZRange failed: %v", err)
	}
	want := []string{"high", "mid", "mid2", "low"}
	if len(got) != len(want) {
		t.Fatalf("ZRange = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ZRange[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// TopN
	top, _ := m.ZRange(ctx, "z", 0, 1)
	if len(top) != 2 || top[0] != "high" {
		t.Errorf("ZRange top2 = %v", top)
	}

	if score, err := m.ZScore(ctx, "z", "high"); err != nil || score != 3 {
		t.Errorf("ZScore = %v, %v", score, err)
	}
	if _, err := m.ZScore(ctx, "z", "nope"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found for missing member, got %v", err)
	}
}

func TestMemoryStoreHashOps(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	m.HSet(ctx, "h", "f1", []byte("v1"))
	m.HSet(ctx, "h", "f2", []byte("v2"))

	if v, err := m.HGet(ctx, "h", "f1"); err != nil || string(v) != "v1" {
		t.Errorf("HGet = %q, %v", v, err)
	}
	if _, err := m.HGet(ctx, "h", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found for missing field, got %v", err)
	}

	all, err := m.HGetAll(ctx, "h")
	if err != nil || len(all) != 2 {
		t.Errorf("HGetAll = %v, %v", all, err)
	}
}

func TestInteractionStoreCollect(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()
	s := NewInteractionStore(m)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	feed := []*core.FeedbackEvent{
		{UserID: "u1", Archetype: "urban", Products: []string{"p1", "p2"}, Action: core.FeedbackLike, Timestamp: base},
		{UserID: "u1", Archetype: "urban", Products: []string{"p3"}, Action: core.FeedbackDislike, Timestamp: base.Add(time.Minute)},
		{UserID: "u2", Archetype: "retro", Products: []string{"p1"}, Action: core.FeedbackSave, Timestamp: base.Add(2 * time.Minute)},
	}
	for _, ev := range feed {
		if err := s.Collect(ctx, ev); err != nil {
			t.Fatalf("Collect failed: %v", err)
		}
	}

	liked, err := s.LikedProducts(ctx, "u1")
	if err != nil {
		t.Fatalf("LikedProducts failed: %v", err)
	}
	if len(liked) != 2 {
		t.Fatalf("u1 liked = %v, want p1,p2", liked)
	}
	for _, id := range liked {
		if id == "p3" {
			t.Error("disliked product must not appear in likes")
		}
	}

	seen, err := s.SeenProducts(ctx, "u1")
	if err != nil {
		t.Fatalf("SeenProducts failed: %v", err)
	}
	if len(seen) != 3 {
		t.Errorf("u1 seen = %v, want 3 products including the disliked one", seen)
	}

	likers, err := s.UsersWhoLiked(ctx, "p1")
	if err != nil {
		t.Fatalf("UsersWhoLiked failed: %v", err)
	}
	if len(likers) != 2 {
		t.Errorf("p1 likers = %v, want u1 and u2", likers)
	}

	if count, err := s.LikeCount(ctx, "p1"); err != nil || count != 2 {
		t.Errorf("LikeCount(p1) = %d, %v, want 2", count, err)
	}
	if count, err := s.LikeCount(ctx, "p3"); err != nil || count != 0 {
		t.Errorf("LikeCount(p3) = %d, %v, want 0", count, err)
	}

	top, err := s.MostLiked(ctx, 1)
	if err != nil || len(top) != 1 || top[0] != "p1" {
		t.Errorf("MostLiked = %v, %v, want [p1]", top, err)
	}
}

func TestInteractionStoreRejectsMissingUser(t *testing.T) {
	s := NewInteractionStore(NewMemoryStore())
	err := s.Collect(context.Background(), &core.FeedbackEvent{Products: []string{"p1"}})
	if err == nil {
		t.Fatal("expected error for missing user id")
	}
}
