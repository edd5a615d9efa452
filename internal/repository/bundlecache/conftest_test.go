package bundlecache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/uxforge/designrec/internal/corpus"
	"github.com/uxforge/designrec/internal/db"
	"github.com/uxforge/designrec/internal/domain/bundle"
	"github.com/uxforge/designrec/internal/usecase/recommend"
)

type mockRecommender struct {
	result *bundle.Bundle
	err    error
	calls  int
}

func (m *mockRecommender) Recommend(_ context.Context, _ recommend.Request) (*bundle.Bundle, error) {
	m.calls++
	return m.result, m.err
}

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	sets  int
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.sets++
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

type mockGenerations struct {
	gen *corpus.Generation
	err error
}

func (m *mockGenerations) Current() (*corpus.Generation, error) {
	return m.gen, m.err
}

func newTestCache(t *testing.T, inner *mockRecommender) (*CachedRecommender, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	gens := &mockGenerations{gen: corpus.NewGeneration("test", nil, nil)}
	c := New(inner, ms, gens, "designrec:", time.Minute, nil, zap.NewNop())
	return c, ms
}
