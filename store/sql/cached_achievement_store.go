package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-awards/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const achievementCacheKeyPrefix = "go-awards::achievement::v1"

// CachedAchievementStore serves achievement reads through a
// read-through cache. Achievement definitions are immutable once
// created, so cached entries never go stale. Create passes through and
// invalidates the key for the new doc id.
type CachedAchievementStore struct {
	base  core.AchievementStore
	cache repositorycache.CacheService
}

func NewCachedAchievementStore(
	base core.AchievementStore,
	cacheService repositorycache.CacheService,
) (*CachedAchievementStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base achievement store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: achievement cache service is required")
	}
	return &CachedAchievementStore{base: base, cache: cacheService}, nil
}

// AchievementCacheKey returns the deterministic cache key contract for
// achievement reads: go-awards::achievement::v1::<doc_id> with the doc
// id URL-path escaped.
func AchievementCacheKey(docID string) (string, error) {
	trimmed := strings.TrimSpace(docID)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: achievement doc id is required")
	}
	return achievementCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedAchievementStore) Create(ctx context.Context, in core.CreateAchievementInput) (core.Achievement, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Achievement{}, fmt.Errorf("sqlstore: cached achievement store is not configured")
	}
	created, err := s.base.Create(ctx, in)
	if err != nil {
		return core.Achievement{}, err
	}
	cacheKey, keyErr := AchievementCacheKey(created.DocID)
	if keyErr == nil {
		_ = s.cache.Delete(ctx, cacheKey)
	}
	return created, nil
}

func (s *CachedAchievementStore) Get(ctx context.Context, docID string) (core.Achievement, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Achievement{}, fmt.Errorf("sqlstore: cached achievement store is not configured")
	}
	cacheKey, err := AchievementCacheKey(docID)
	if err != nil {
		return core.Achievement{}, err
	}
	return repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.Achievement, error) {
		return s.base.Get(ctx, docID)
	})
}

var _ core.AchievementStore = (*CachedAchievementStore)(nil)
