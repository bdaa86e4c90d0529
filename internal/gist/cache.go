package gist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/pmn/cla-assistant/internal/entities"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Source resolves a gist locator to its current state.
type Source interface {
	Resolve(ctx context.Context, locator entities.GistLocator, token string) (*entities.Gist, error)
}

// CachedResolver keeps resolved gists in redis for a short TTL, so a new
// gist revision is observed once the entry expires. Cache faults fall back
// to the wrapped Source.
type CachedResolver struct {
	log  *zap.SugaredLogger
	next Source
	rdb  redis.Cmdable
	ttl  time.Duration
}

// NewCachedResolver wraps next with a redis cache.
func NewCachedResolver(log *zap.SugaredLogger, next Source, rdb redis.Cmdable, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		log:  log.Named("gist.cache"),
		next: next,
		rdb:  rdb,
		ttl:  ttl,
	}
}

// Resolve returns the cached gist or fetches and caches it.
func (c *CachedResolver) Resolve(ctx context.Context, locator entities.GistLocator, token string) (*entities.Gist, error) {
	id, err := locator.ID()
	if err != nil {
		return nil, err
	}
	key := cacheKey(id, locator.Version, token)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var g entities.Gist
		if err := json.Unmarshal(raw, &g); err == nil {
			return &g, nil
		}
		c.log.Warnw("dropping undecodable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.log.Warnw("gist cache read failed", "error", err, "gist_id", id)
	}

	g, err := c.next.Resolve(ctx, locator, token)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(g); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warnw("gist cache write failed", "error", err, "gist_id", id)
		}
	}
	return g, nil
}

func cacheKey(id, version, token string) string {
	sum := sha256.Sum256([]byte(token))
	if version == "" {
		version = "head"
	}
	return "cla:gist:" + id + ":" + version + ":" + hex.EncodeToString(sum[:8])
}
