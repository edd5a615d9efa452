// Package retrieve fans the signal set out into one weighted query per
// domain, runs the domain indices concurrently, and min-max normalizes the
// scores so they become comparable across domains.
package retrieve

import (
	"context"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/candidate"
	"github.com/uxforge/designrec/internal/domain/query"
	"github.com/uxforge/designrec/internal/domain/signal"
	"github.com/uxforge/designrec/internal/index"
)

// DefaultTopK bounds the candidate set per domain. Small on purpose: it is
// also the resolver's backtracking search bound.
const DefaultTopK = 5

// Result holds one domain's normalized candidates plus the signals that
// shaped its query.
type Result struct {
	Domain       domain.Name
	Candidates   []candidate.Candidate
	Contributors []signal.Signal
	// Fallback marks a popularity-default answer: either every bound
	// signal was unspecified, or the query matched nothing, or the
	// request deadline expired before this domain ran.
	Fallback bool
}

// Service is the cross-domain retriever.
type Service struct {
	specs map[domain.Name]DomainSpec
	topK  int
}

// New creates a retriever with the built-in domain specs.
func New(topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{specs: DefaultSpecs(), topK: topK}
}

// WithSpecs overrides the signal-to-field bindings.
func (s *Service) WithSpecs(specs map[domain.Name]DomainSpec) *Service {
	if specs != nil {
		s.specs = specs
	}
	return s
}

// TopK returns the per-domain candidate bound.
func (s *Service) TopK() int { return s.topK }

// Retrieve queries every domain of the generation concurrently and joins
// all results. Queries already dispatched are never interrupted; if the
// context deadline expires before the join completes, the unfinished
// domains are filled from their popularity defaults and partial=true is
// returned. This is the pipeline's only form of cancellation.
func (s *Service) Retrieve(
	ctx context.Context, provider IndexProvider, sigs signal.Set,
) (map[domain.Name]Result, bool) {
	domains := provider.Domains()
	results := make(map[domain.Name]Result, len(domains))
	partial := false

	if err := ctx.Err(); err != nil {
		// Deadline already spent: every domain answers from defaults.
		for _, d := range domains {
			if ix, ok := provider.Index(d); ok {
				results[d] = s.defaultResult(ix)
			}
		}
		return results, true
	}

	ch := make(chan Result, len(domains))
	launched := 0
	for _, d := range domains {
		ix, ok := provider.Index(d)
		if !ok {
			continue
		}
		launched++
		go func(ix *index.Index) {
			ch <- s.retrieveDomain(ix, sigs)
		}(ix)
	}

	for i := 0; i < launched; i++ {
		select {
		case r := <-ch:
			results[r.Domain] = r
		case <-ctx.Done():
			partial = true
			for _, d := range domains {
				if _, done := results[d]; done {
					continue
				}
				if ix, ok := provider.Index(d); ok {
					results[d] = s.defaultResult(ix)
				}
			}
			return results, partial
		}
	}

	return results, partial
}

// retrieveDomain builds the weighted query for one domain and runs it.
func (s *Service) retrieveDomain(ix *index.Index, sigs signal.Set) Result {
	spec, ok := s.specs[ix.Domain()]
	if !ok {
		return s.defaultResult(ix)
	}

	q := query.New()
	var contributors []signal.Signal
	contributed := make(map[signal.Key]struct{})

	for _, b := range spec.Bindings {
		sig := sigs.Get(b.Signal)
		if sig.IsUnspecified() {
			continue
		}
		toks := index.Tokenize(sig.Value())
		if len(toks) == 0 {
			continue
		}
		// Signal confidence scales the binding weight, so a hesitant
		// extraction pulls less than a confident one.
		w := b.Weight * sig.Confidence()
		for _, tok := range toks {
			q = q.WithFieldTerm(b.Field, tok, w)
		}
		if len(toks) > 1 {
			q = q.WithPhrase(toks...)
		}
		if _, seen := contributed[b.Signal]; !seen {
			contributed[b.Signal] = struct{}{}
			contributors = append(contributors, sig)
		}
	}

	if q.IsEmpty() {
		return s.defaultResult(ix)
	}

	cands := ix.Query(q, s.topK)
	if len(cands) == 0 {
		return s.defaultResult(ix)
	}

	return Result{
		Domain:       ix.Domain(),
		Candidates:   normalize(cands),
		Contributors: contributors,
	}
}

// defaultResult answers with the domain's highest-popularity documents.
func (s *Service) defaultResult(ix *index.Index) Result {
	return Result{
		Domain:     ix.Domain(),
		Candidates: normalize(ix.TopByPopularity(s.topK)),
		Fallback:   true,
	}
}

// normalize min-max scales raw scores into [0,1] over the candidate set.
// A flat set (max == min) normalizes to 1.0: within its domain, every
// candidate is equally good.
func normalize(cands []candidate.Candidate) []candidate.Candidate {
	if len(cands) == 0 {
		return cands
	}
	minRaw, maxRaw := cands[0].Raw(), cands[0].Raw()
	for _, c := range cands[1:] {
		if c.Raw() < minRaw {
			minRaw = c.Raw()
		}
		if c.Raw() > maxRaw {
			maxRaw = c.Raw()
		}
	}
	out := make([]candidate.Candidate, len(cands))
	spread := maxRaw - minRaw
	for i, c := range cands {
		if spread > 0 {
			out[i] = c.WithNormalized((c.Raw() - minRaw) / spread)
		} else {
			out[i] = c.WithNormalized(1)
		}
	}
	return out
}
