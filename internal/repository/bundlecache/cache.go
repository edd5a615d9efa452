// Package bundlecache is a read-through caching decorator around the
// recommendation pipeline. The cache key includes the generation ID, so a
// corpus swap invalidates every cached bundle without explicit eviction.
package bundlecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/uxforge/designrec/internal/db"
	"github.com/uxforge/designrec/internal/domain/bundle"
	"github.com/uxforge/designrec/internal/domain/signal"
	"github.com/uxforge/designrec/internal/usecase/recommend"
)

// store is the consumer interface for the bundle cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Recommender is the decorated pipeline.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*bundle.Bundle, error)
}

// CachedRecommender serves repeated briefs from the cache. Degraded
// bundles are never cached: a degraded answer reflects transient deadline
// pressure, not the brief.
type CachedRecommender struct {
	inner       Recommender
	store       store
	generations recommend.GenerationSource
	keyPrefix   string
	ttl         time.Duration
	cacheTotal  *prometheus.CounterVec
	logger      *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Recommender,
	s store,
	generations recommend.GenerationSource,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedRecommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRecommender{
		inner:       inner,
		store:       s,
		generations: generations,
		keyPrefix:   keyPrefix,
		ttl:         ttl,
		cacheTotal:  cacheTotal,
		logger:      logger,
	}
}

// Recommend returns a cached bundle or runs the inner pipeline. Cache
// failures are best-effort: a broken store never fails the request.
func (c *CachedRecommender) Recommend(
	ctx context.Context, req recommend.Request,
) (*bundle.Bundle, error) {
	gen, err := c.generations.Current()
	if err != nil {
		// No generation: let the inner pipeline surface the error.
		return c.inner.Recommend(ctx, req)
	}

	key := c.cacheKey(gen.ID(), req)

	if b, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return b, nil
	}
	c.incCache("miss")

	b, err := c.inner.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}
	if !b.Degraded {
		c.putToCache(ctx, key, b)
	}
	return b, nil
}

func (c *CachedRecommender) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the generation ID, the brief, and the overrides in
// sorted key order, so equivalent requests collapse to one entry.
func (c *CachedRecommender) cacheKey(generationID string, req recommend.Request) string {
	h := sha256.New()
	h.Write([]byte(generationID))
	h.Write([]byte{0})
	h.Write([]byte(req.Brief))

	keys := make([]string, 0, len(req.Overrides))
	for k := range req.Overrides {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte{0})
		fmt.Fprintf(h, "%s=%s", k, req.Overrides[signal.Key(k)])
	}

	return c.keyPrefix + "bundle:" + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedRecommender) getFromCache(ctx context.Context, key string) (*bundle.Bundle, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("bundle cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var b bundle.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		c.logger.Warn("bundle cache entry corrupted", zap.Error(err))
		return nil, false
	}
	return &b, true
}

func (c *CachedRecommender) putToCache(ctx context.Context, key string, b *bundle.Bundle) {
	data, err := json.Marshal(b)
	if err != nil {
		c.logger.Warn("bundle cache marshal failed", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("bundle cache set failed", zap.Error(err))
	}
}
