package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "docgen:company_settings"
	cacheTTL = 5 * time.Minute
)

type cachedRepository struct {
	inner  Repository
	client *redis.Client
}

// NewCachedRepository wraps a repository with a Redis read-through cache.
// Cache failures fall through to the inner repository; writes invalidate.
func NewCachedRepository(inner Repository, client *redis.Client) Repository {
	return &cachedRepository{inner: inner, client: client}
}

func (r *cachedRepository) Get(ctx context.Context) (*Settings, error) {
	if data, err := r.client.Get(ctx, cacheKey).Bytes(); err == nil {
		var s Settings
		if err := json.Unmarshal(data, &s); err == nil {
			return &s, nil
		}
	}

	stored, err := r.inner.Get(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(stored); err == nil {
		r.client.Set(ctx, cacheKey, data, cacheTTL)
	}
	return stored, nil
}

func (r *cachedRepository) Put(ctx context.Context, s Settings) error {
	if err := r.inner.Put(ctx, s); err != nil {
		return err
	}
	r.client.Del(ctx, cacheKey)
	return nil
}
