// Package extract turns a free-text design brief into confidence-scored
// signals via an ordered, deterministic rule table. No model, no
// randomness: the same brief always yields the same signal set.
package extract

import (
	"fmt"
	"strings"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/signal"
	"github.com/uxforge/designrec/internal/index"
)

// DefaultMinTokens is the minimum brief length accepted.
const DefaultMinTokens = 3

// Service extracts signals from briefs.
type Service struct {
	minTokens int
}

// New creates an extractor with the default minimum token count.
func New() *Service {
	return &Service{minTokens: DefaultMinTokens}
}

// WithMinTokens overrides the minimum brief token count.
func (s *Service) WithMinTokens(n int) *Service {
	if n > 0 {
		s.minTokens = n
	}
	return s
}

// match tracks the current winner for one signal key.
type match struct {
	value      string
	confidence float64
	pos        int
	ruleIdx    int
}

// Extract maps the brief onto the full signal set. Keys no rule matched
// come back as unspecified with confidence 0. This is the pipeline's only
// input-validation point: an empty or too-short brief fails with
// ErrInvalidInput before any index is touched.
func (s *Service) Extract(brief string) (signal.Set, error) {
	if n := index.CountTokens(brief); n < s.minTokens {
		return nil, fmt.Errorf("%w: brief has %d tokens, need at least %d",
			domain.ErrInvalidInput, n, s.minTokens)
	}

	lower := strings.ToLower(brief)
	best := make(map[signal.Key]match, len(signal.Keys))

	for i, rl := range rules {
		loc := rl.re.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		m := match{value: rl.value, confidence: rl.confidence, pos: loc[0], ruleIdx: i}
		cur, ok := best[rl.key]
		if !ok || better(m, cur) {
			best[rl.key] = m
		}
	}

	set := signal.NewSet()
	for key, m := range best {
		sig, err := signal.New(key, m.value, m.confidence)
		if err != nil {
			return nil, fmt.Errorf("build signal: %w", err)
		}
		set.Put(sig)
	}
	return set, nil
}

// better implements the tie-break policy: highest confidence wins, exact
// confidence ties go to the earliest match in the source text, and an exact
// position tie falls back to rule-table order.
func better(a, b match) bool {
	if a.confidence != b.confidence {
		return a.confidence > b.confidence
	}
	if a.pos != b.pos {
		return a.pos < b.pos
	}
	return a.ruleIdx < b.ruleIdx
}
