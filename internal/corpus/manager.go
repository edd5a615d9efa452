package corpus

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/metrics"
)

// Manager owns the load/reload lifecycle around a Holder. A failed reload
// never disturbs the serving generation.
type Manager struct {
	loader *Loader
	holder *Holder
	logger *zap.Logger
}

// NewManager wires a loader and holder together.
func NewManager(loader *Loader, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		loader: loader,
		holder: NewHolder(),
		logger: logger,
	}
}

// Bootstrap performs the initial load. Unlike Reload, a failure here is
// fatal to the caller since there is nothing to keep serving.
func (m *Manager) Bootstrap(ctx context.Context) error {
	gen, err := m.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap corpus: %w", err)
	}
	m.holder.Swap(gen)
	m.observe(gen)
	return nil
}

// Reload builds a new generation and swaps it in. On failure the previous
// generation keeps serving and the error is returned for the caller to
// report.
func (m *Manager) Reload(ctx context.Context) (*Generation, error) {
	started := time.Now()
	gen, err := m.loader.Load(ctx)
	if err != nil {
		m.logger.Error("corpus reload failed, previous generation keeps serving",
			zap.Error(err))
		metrics.CorpusReloads.WithLabelValues("error").Inc()
		return nil, err
	}
	old := m.holder.Swap(gen)
	metrics.CorpusReloads.WithLabelValues("ok").Inc()
	m.observe(gen)

	fields := []zap.Field{
		zap.String("generation", gen.ID()),
		zap.String("version", gen.Version()),
		zap.Duration("took", time.Since(started)),
	}
	if old != nil {
		fields = append(fields, zap.String("replaced", old.ID()))
	}
	m.logger.Info("corpus generation swapped", fields...)
	return gen, nil
}

// Current returns the serving generation, or ErrNoGeneration before the
// first successful load.
func (m *Manager) Current() (*Generation, error) {
	gen := m.holder.Current()
	if gen == nil {
		return nil, domain.ErrNoGeneration
	}
	return gen, nil
}

func (m *Manager) observe(gen *Generation) {
	for _, d := range gen.Domains() {
		metrics.CorpusDocuments.WithLabelValues(string(d)).Set(float64(gen.DocCount(d)))
	}
}
