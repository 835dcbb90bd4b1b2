package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-awards/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

type stubAchievementBaseStore struct {
	mu          sync.Mutex
	rows        map[string]core.Achievement
	getCalls    int
	createCalls int
	getErr      error
}

func newStubAchievementBaseStore() *stubAchievementBaseStore {
	return &stubAchievementBaseStore{rows: map[string]core.Achievement{}}
}

func (s *stubAchievementBaseStore) Create(_ context.Context, in core.CreateAchievementInput) (core.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	achievement := core.Achievement{
		DocID:     fmt.Sprintf("ach_%d", s.createCalls),
		CreatorID: in.CreatorID,
		Name:      in.Name,
	}
	s.rows[achievement.DocID] = achievement
	return achievement, nil
}

func (s *stubAchievementBaseStore) Get(_ context.Context, docID string) (core.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return core.Achievement{}, s.getErr
	}
	achievement, ok := s.rows[strings.TrimSpace(docID)]
	if !ok {
		return core.Achievement{}, fmt.Errorf("%w: doc id %q", core.ErrAchievementNotFound, docID)
	}
	return achievement, nil
}

func newTestAchievementCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}

func TestCachedAchievementStore_Get_MissFetchThenHit(t *testing.T) {
	ctx := context.Background()
	base := newStubAchievementBaseStore()
	base.rows["ach_cached"] = core.Achievement{DocID: "ach_cached", CreatorID: "issuer_1", Name: "Cached"}

	store, err := NewCachedAchievementStore(base, newTestAchievementCacheService(t))
	if err != nil {
		t.Fatalf("new cached achievement store: %v", err)
	}

	first, err := store.Get(ctx, "ach_cached")
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	second, err := store.Get(ctx, "ach_cached")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if first.DocID != second.DocID || first.Name != second.Name {
		t.Fatalf("expected identical cached reads, got %#v and %#v", first, second)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected single base fetch, got %d", base.getCalls)
	}
}

func TestCachedAchievementStore_Get_PropagatesNotFound(t *testing.T) {
	base := newStubAchievementBaseStore()
	store, err := NewCachedAchievementStore(base, newTestAchievementCacheService(t))
	if err != nil {
		t.Fatalf("new cached achievement store: %v", err)
	}

	_, err = store.Get(context.Background(), "ach_missing")
	if !errors.Is(err, core.ErrAchievementNotFound) {
		t.Fatalf("expected achievement not found, got %v", err)
	}
}

func TestCachedAchievementStore_Create_PassesThrough(t *testing.T) {
	base := newStubAchievementBaseStore()
	store, err := NewCachedAchievementStore(base, newTestAchievementCacheService(t))
	if err != nil {
		t.Fatalf("new cached achievement store: %v", err)
	}

	created, err := store.Create(context.Background(), core.CreateAchievementInput{
		CreatorID: "issuer_1",
		Name:      "Fresh",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if base.createCalls != 1 {
		t.Fatalf("expected create to hit base store, got %d calls", base.createCalls)
	}

	loaded, err := store.Get(context.Background(), created.DocID)
	if err != nil {
		t.Fatalf("get created achievement: %v", err)
	}
	if loaded.Name != "Fresh" {
		t.Fatalf("expected created achievement readable through cache, got %#v", loaded)
	}
}

func TestAchievementCacheKey(t *testing.T) {
	key, err := AchievementCacheKey(" ach_1 ")
	if err != nil {
		t.Fatalf("cache key: %v", err)
	}
	if key != "go-awards::achievement::v1::ach_1" {
		t.Fatalf("unexpected cache key %q", key)
	}

	escaped, err := AchievementCacheKey("ach/1")
	if err != nil {
		t.Fatalf("cache key with separator: %v", err)
	}
	if !strings.Contains(escaped, "ach%2F1") {
		t.Fatalf("expected escaped doc id in key, got %q", escaped)
	}

	if _, err := AchievementCacheKey("   "); err == nil {
		t.Fatalf("expected error for blank doc id")
	}
}

func TestNewCachedAchievementStore_RequiresDependencies(t *testing.T) {
	if _, err := NewCachedAchievementStore(nil, newTestAchievementCacheService(t)); err == nil {
		t.Fatalf("expected error for nil base store")
	}
	if _, err := NewCachedAchievementStore(newStubAchievementBaseStore(), nil); err == nil {
		t.Fatalf("expected error for nil cache service")
	}
}
