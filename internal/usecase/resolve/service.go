// Package resolve picks one candidate per domain such that the chosen set
// is pairwise compatible, approximately maximizing the sum of normalized
// scores. Greedy with backtracking over a fixed priority order; the search
// is bounded, so a pathological corpus degrades instead of blowing up.
//
// When the bound is exhausted, relaxation targets the domain the search
// got stuck on rather than the lowest-priority constrained one. Relaxing
// the stuck domain resolves the actual conflict in one step, so fewer
// domains end up relaxed overall; the lowest-priority domain is relaxed
// only when the stuck one already is.
package resolve

import (
	"sort"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/candidate"
	"github.com/uxforge/designrec/internal/domain/compat"
)

// Selection is the resolver output: one chosen candidate per domain plus
// the remaining candidates as ranked alternates.
type Selection struct {
	Chosen     map[domain.Name]candidate.Candidate
	Alternates map[domain.Name][]candidate.Candidate
	// Relaxed lists domains whose compatibility constraint was dropped
	// because no bounded search could satisfy it. Non-empty means the
	// bundle is degraded.
	Relaxed []domain.Name
}

// Degraded reports whether any constraint had to be relaxed.
func (s Selection) Degraded() bool { return len(s.Relaxed) > 0 }

// Service resolves candidate sets against a compatibility graph.
type Service struct {
	maxSteps int
}

// New creates a resolver. maxSteps bounds the backtracking search; zero
// derives K*K from the largest candidate set.
func New(maxSteps int) *Service {
	return &Service{maxSteps: maxSteps}
}

// Resolve chooses one candidate per domain. Domains are processed in
// priority order (style constrains everything downstream). When the
// bounded search cannot fill a domain, that domain's constraint is
// relaxed (its best candidate is accepted regardless) and the search
// retries. Resolve always returns a complete selection.
func (s *Service) Resolve(
	cands map[domain.Name][]candidate.Candidate, graph *compat.Graph,
) Selection {
	order := make([]domain.Name, 0, len(cands))
	maxK := 0
	for d, cc := range cands {
		if len(cc) == 0 {
			continue
		}
		order = append(order, d)
		if len(cc) > maxK {
			maxK = len(cc)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Priority() < order[j].Priority() })

	bound := s.maxSteps
	if bound <= 0 {
		bound = maxK * maxK
	}
	// A fully relaxed pass needs one step per domain; never bound below that.
	if bound < len(order) {
		bound = len(order)
	}

	relaxed := make(map[domain.Name]bool)
	var relaxedOrder []domain.Name

	var picks []int
	for {
		var stuck int
		picks, stuck = search(order, cands, graph, relaxed, bound)
		if picks != nil {
			break
		}
		// The search could not fill order[stuck] within the bound:
		// accept its best candidate regardless of compatibility. If that
		// domain is already relaxed the bound itself is the blocker, so
		// relax the lowest-priority domain still constrained.
		target := order[stuck]
		if relaxed[target] {
			target = ""
			for i := len(order) - 1; i >= 0; i-- {
				if !relaxed[order[i]] {
					target = order[i]
					break
				}
			}
		}
		if target == "" {
			// Everything is relaxed: take each domain's best candidate.
			picks = make([]int, len(order))
			break
		}
		relaxed[target] = true
		relaxedOrder = append(relaxedOrder, target)
	}

	sel := Selection{
		Chosen:     make(map[domain.Name]candidate.Candidate, len(order)),
		Alternates: make(map[domain.Name][]candidate.Candidate, len(order)),
		Relaxed:    relaxedOrder,
	}
	for i, d := range order {
		cc := cands[d]
		sel.Chosen[d] = cc[picks[i]]
		alts := make([]candidate.Candidate, 0, len(cc)-1)
		for j, c := range cc {
			if j != picks[i] {
				alts = append(alts, c)
			}
		}
		sel.Alternates[d] = alts
	}
	return sel
}

// search runs the bounded greedy-with-backtrack DFS. It returns the chosen
// candidate index per domain, or (nil, stuckDepth) when the bound or the
// candidate sets are exhausted before order[stuckDepth] could be filled.
func search(
	order []domain.Name,
	cands map[domain.Name][]candidate.Candidate,
	graph *compat.Graph,
	relaxed map[domain.Name]bool,
	bound int,
) ([]int, int) {
	picks := make([]int, len(order))
	steps := 0
	depth := 0
	stuck := 0

	for depth < len(order) {
		d := order[depth]
		cc := cands[d]
		found := false
		for ; picks[depth] < len(cc); picks[depth]++ {
			steps++
			if steps > bound {
				if depth > stuck {
					stuck = depth
				}
				return nil, stuck
			}
			if relaxed[d] || fits(cc[picks[depth]], order[:depth], picks, cands, graph) {
				found = true
				break
			}
		}
		if found {
			depth++
			if depth < len(order) {
				picks[depth] = 0
			}
			continue
		}
		if depth > stuck {
			stuck = depth
		}
		picks[depth] = 0
		depth--
		if depth < 0 {
			return nil, stuck
		}
		picks[depth]++
	}
	return picks, -1
}

// fits checks a candidate against every already-chosen document.
func fits(
	c candidate.Candidate,
	chosen []domain.Name,
	picks []int,
	cands map[domain.Name][]candidate.Candidate,
	graph *compat.Graph,
) bool {
	tags := c.Doc().CompatTags()
	for i, d := range chosen {
		prior := cands[d][picks[i]]
		if _, _, conflict := graph.Conflict(tags, prior.Doc().CompatTags()); conflict {
			return false
		}
	}
	return true
}
