// Package recommend orchestrates the full pipeline: extract signals from
// the brief, retrieve candidates per domain, resolve a compatible set, and
// compose the final bundle. The pipeline is deterministic for a given brief
// and generation; degradation is the only runtime-dependent part.
package recommend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/uxforge/designrec/internal/corpus"
	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/bundle"
	"github.com/uxforge/designrec/internal/domain/candidate"
	"github.com/uxforge/designrec/internal/domain/signal"
	"github.com/uxforge/designrec/internal/logger"
	"github.com/uxforge/designrec/internal/metrics"
	"github.com/uxforge/designrec/internal/usecase/resolve"
	"github.com/uxforge/designrec/internal/usecase/retrieve"
)

// fallbackTraceKey marks trace entries for domains answered from
// popularity defaults rather than signal-driven retrieval.
const (
	fallbackTraceKey   = "default"
	fallbackTraceValue = "popularity"
)

// Request is one recommendation request.
type Request struct {
	Brief string
	// Overrides pin signal values at full confidence, bypassing extraction
	// for those keys.
	Overrides map[signal.Key]string
}

// Service runs the recommendation pipeline.
type Service struct {
	extractor   Extractor
	retriever   Retriever
	resolver    Resolver
	generations GenerationSource
}

// New creates the pipeline service.
func New(
	extractor Extractor, retriever Retriever, resolver Resolver, generations GenerationSource,
) *Service {
	return &Service{
		extractor:   extractor,
		retriever:   retriever,
		resolver:    resolver,
		generations: generations,
	}
}

// Recommend runs the pipeline for one brief. Input validation happens in
// the extractor before any index is touched; corpus absence surfaces as
// ErrNoGeneration. A deadline that expires mid-retrieval degrades the
// bundle instead of failing it.
func (s *Service) Recommend(ctx context.Context, req Request) (*bundle.Bundle, error) {
	log := logger.FromContext(ctx)

	gen, err := s.generations.Current()
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error", "false").Inc()
		return nil, err
	}

	sigs, err := s.extractSignals(req)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error", "false").Inc()
		return nil, err
	}

	results, partial := s.retrieveCandidates(ctx, gen, sigs)

	cands := make(map[domain.Name][]candidate.Candidate, len(results))
	for d, r := range results {
		cands[d] = r.Candidates
	}

	started := time.Now()
	sel := s.resolver.Resolve(cands, gen.Graph())
	metrics.StageDuration.WithLabelValues("resolve").Observe(time.Since(started).Seconds())

	b := compose(gen, results, sel, partial)

	metrics.RecommendationsTotal.WithLabelValues("ok", fmt.Sprintf("%t", b.Degraded)).Inc()
	log.Debug("recommendation composed",
		zap.String("generation", gen.ID()),
		zap.Bool("degraded", b.Degraded),
		zap.Int("domains", len(b.Selections)),
	)
	return b, nil
}

func (s *Service) extractSignals(req Request) (signal.Set, error) {
	started := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(started).Seconds())
	}()

	sigs, err := s.extractor.Extract(req.Brief)
	if err != nil {
		return nil, err
	}
	if err := sigs.ApplyOverrides(req.Overrides); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return sigs, nil
}

func (s *Service) retrieveCandidates(
	ctx context.Context, gen *corpus.Generation, sigs signal.Set,
) (map[domain.Name]retrieve.Result, bool) {
	started := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("retrieve").Observe(time.Since(started).Seconds())
	}()
	return s.retriever.Retrieve(ctx, gen, sigs)
}

// compose assembles the bundle: selections and alternates per domain plus
// the explainability trace, all in priority order.
func compose(
	gen *corpus.Generation,
	results map[domain.Name]retrieve.Result,
	sel resolve.Selection,
	partial bool,
) *bundle.Bundle {
	started := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("compose").Observe(time.Since(started).Seconds())
	}()

	b := &bundle.Bundle{
		Generation: gen.ID(),
		Version:    gen.Version(),
		Degraded:   partial || sel.Degraded(),
		Selections: make(map[domain.Name]bundle.Selection, len(sel.Chosen)),
		Alternates: make(map[domain.Name][]bundle.Alternate, len(sel.Alternates)),
	}

	for _, d := range domain.PriorityOrder {
		chosen, ok := sel.Chosen[d]
		if !ok {
			continue
		}
		doc := chosen.Doc()
		b.Selections[d] = bundle.Selection{
			ID:     doc.ID(),
			Fields: doc.Fields(),
			Tags:   doc.Tags(),
			Score:  chosen.Normalized(),
		}
		for _, alt := range sel.Alternates[d] {
			b.Alternates[d] = append(b.Alternates[d], bundle.Alternate{
				ID:    alt.ID(),
				Score: alt.Normalized(),
			})
		}
		b.Trace = append(b.Trace, traceFor(d, results[d], chosen)...)
	}
	return b
}

// traceFor explains one domain's choice. A fallback domain gets a single
// default entry; a signal-driven domain gets one entry per contributing
// signal.
func traceFor(
	d domain.Name, r retrieve.Result, chosen candidate.Candidate,
) []bundle.TraceEntry {
	if r.Fallback || len(r.Contributors) == 0 {
		return []bundle.TraceEntry{{
			SignalKey:   fallbackTraceKey,
			SignalValue: fallbackTraceValue,
			Domain:      d,
			ChosenID:    chosen.ID(),
			Score:       chosen.Normalized(),
		}}
	}
	entries := make([]bundle.TraceEntry, 0, len(r.Contributors))
	for _, sig := range r.Contributors {
		entries = append(entries, bundle.TraceEntry{
			SignalKey:   string(sig.Key()),
			SignalValue: sig.Value(),
			Confidence:  sig.Confidence(),
			Domain:      d,
			ChosenID:    chosen.ID(),
			Score:       chosen.Normalized(),
		})
	}
	return entries
}
