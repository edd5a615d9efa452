package resolve

import (
	"reflect"
	"testing"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/candidate"
	"github.com/uxforge/designrec/internal/domain/compat"
	"github.com/uxforge/designrec/internal/domain/document"
)

func mkCand(t *testing.T, d domain.Name, id string, compatTags []string, score float64) candidate.Candidate {
	t.Helper()
	doc, err := document.New(id, d, map[string]string{"name": id}, nil, compatTags, 0.5)
	if err != nil {
		t.Fatalf("build doc %s: %v", id, err)
	}
	return candidate.New(doc, score).WithNormalized(score)
}

func TestResolve_NoConflicts(t *testing.T) {
	svc := New(0)
	cands := map[domain.Name][]candidate.Candidate{
		domain.Style: {
			mkCand(t, domain.Style, "style-a", []string{"minimal"}, 1.0),
			mkCand(t, domain.Style, "style-b", []string{"dark"}, 0.5),
		},
		domain.Palette: {
			mkCand(t, domain.Palette, "pal-a", []string{"light"}, 1.0),
		},
	}

	sel := svc.Resolve(cands, compat.NewGraph(nil))
	if sel.Degraded() {
		t.Fatalf("unexpected degradation: %v", sel.Relaxed)
	}
	if got := sel.Chosen[domain.Style].ID(); got != "style-a" {
		t.Errorf("style = %s, want style-a", got)
	}
	if got := sel.Chosen[domain.Palette].ID(); got != "pal-a" {
		t.Errorf("palette = %s, want pal-a", got)
	}
	if alts := sel.Alternates[domain.Style]; len(alts) != 1 || alts[0].ID() != "style-b" {
		t.Errorf("style alternates = %v", alts)
	}
}

func TestResolve_SkipsConflictingCandidate(t *testing.T) {
	svc := New(0)
	graph := compat.NewGraph([][2]string{{"minimal", "bold"}})
	cands := map[domain.Name][]candidate.Candidate{
		domain.Style: {
			mkCand(t, domain.Style, "minimal-clean", []string{"minimal"}, 1.0),
		},
		domain.Palette: {
			mkCand(t, domain.Palette, "loud", []string{"bold"}, 1.0),
			mkCand(t, domain.Palette, "calm", []string{"soft"}, 0.4),
		},
	}

	sel := svc.Resolve(cands, graph)
	if sel.Degraded() {
		t.Fatalf("unexpected degradation: %v", sel.Relaxed)
	}
	if got := sel.Chosen[domain.Palette].ID(); got != "calm" {
		t.Errorf("palette = %s, want calm", got)
	}
	if alts := sel.Alternates[domain.Palette]; len(alts) != 1 || alts[0].ID() != "loud" {
		t.Errorf("skipped candidate must stay listed as alternate, got %v", alts)
	}
}

func TestResolve_BacktracksToEarlierDomain(t *testing.T) {
	svc := New(0)
	graph := compat.NewGraph([][2]string{{"minimal", "bold"}})
	cands := map[domain.Name][]candidate.Candidate{
		domain.Style: {
			mkCand(t, domain.Style, "minimal-clean", []string{"minimal"}, 1.0),
			mkCand(t, domain.Style, "dark-noir", []string{"dark"}, 0.6),
		},
		domain.Palette: {
			mkCand(t, domain.Palette, "loud", []string{"bold"}, 1.0),
		},
	}

	sel := svc.Resolve(cands, graph)
	if sel.Degraded() {
		t.Fatalf("unexpected degradation: %v", sel.Relaxed)
	}
	if got := sel.Chosen[domain.Style].ID(); got != "dark-noir" {
		t.Errorf("style = %s, want dark-noir after backtracking", got)
	}
	if got := sel.Chosen[domain.Palette].ID(); got != "loud" {
		t.Errorf("palette = %s, want loud", got)
	}
}

func TestResolve_RelaxesWhenUnsatisfiable(t *testing.T) {
	svc := New(0)
	graph := compat.NewGraph([][2]string{{"minimal", "bold"}})
	cands := map[domain.Name][]candidate.Candidate{
		domain.Style: {
			mkCand(t, domain.Style, "minimal-clean", []string{"minimal"}, 1.0),
		},
		domain.Palette: {
			mkCand(t, domain.Palette, "loud", []string{"bold"}, 1.0),
		},
	}

	sel := svc.Resolve(cands, graph)
	if !sel.Degraded() {
		t.Fatal("expected a relaxed constraint")
	}
	// The bundle is still complete: every domain gets its best candidate.
	if got := sel.Chosen[domain.Style].ID(); got != "minimal-clean" {
		t.Errorf("style = %s, want minimal-clean", got)
	}
	if got := sel.Chosen[domain.Palette].ID(); got != "loud" {
		t.Errorf("palette = %s, want loud", got)
	}
	if len(sel.Relaxed) == 0 {
		t.Error("relaxed domains must be reported")
	}
}

func TestResolve_SkipsEmptyDomains(t *testing.T) {
	svc := New(0)
	cands := map[domain.Name][]candidate.Candidate{
		domain.Style:   {mkCand(t, domain.Style, "style-a", nil, 1.0)},
		domain.Palette: {},
	}

	sel := svc.Resolve(cands, compat.NewGraph(nil))
	if _, ok := sel.Chosen[domain.Palette]; ok {
		t.Error("empty candidate set must not produce a selection")
	}
	if _, ok := sel.Chosen[domain.Style]; !ok {
		t.Error("non-empty domain must be chosen")
	}
}

func TestResolve_NilGraph(t *testing.T) {
	svc := New(0)
	cands := map[domain.Name][]candidate.Candidate{
		domain.Style:   {mkCand(t, domain.Style, "style-a", []string{"minimal"}, 1.0)},
		domain.Palette: {mkCand(t, domain.Palette, "pal-a", []string{"bold"}, 1.0)},
	}

	sel := svc.Resolve(cands, nil)
	if sel.Degraded() {
		t.Error("nil graph means no constraints, nothing to relax")
	}
}

func TestResolve_Deterministic(t *testing.T) {
	svc := New(0)
	graph := compat.NewGraph([][2]string{{"minimal", "bold"}, {"dark", "pastel"}})
	cands := map[domain.Name][]candidate.Candidate{
		domain.Style: {
			mkCand(t, domain.Style, "minimal-clean", []string{"minimal"}, 1.0),
			mkCand(t, domain.Style, "dark-noir", []string{"dark"}, 0.7),
		},
		domain.Palette: {
			mkCand(t, domain.Palette, "loud", []string{"bold"}, 1.0),
			mkCand(t, domain.Palette, "pastel-set", []string{"pastel"}, 0.8),
			mkCand(t, domain.Palette, "mono-set", []string{"mono"}, 0.3),
		},
		domain.Layout: {
			mkCand(t, domain.Layout, "hero", nil, 0.9),
		},
	}

	first := svc.Resolve(cands, graph)
	for i := 0; i < 10; i++ {
		again := svc.Resolve(cands, graph)
		if !reflect.DeepEqual(idsOf(first.Chosen), idsOf(again.Chosen)) {
			t.Fatalf("run %d: %v != %v", i, idsOf(again.Chosen), idsOf(first.Chosen))
		}
	}
}

func TestResolve_TinyStepBoundStillCompletes(t *testing.T) {
	// A bound smaller than the domain count is floored so a fully relaxed
	// pass can always finish.
	svc := New(1)
	graph := compat.NewGraph([][2]string{{"minimal", "bold"}})
	cands := map[domain.Name][]candidate.Candidate{
		domain.Style:   {mkCand(t, domain.Style, "minimal-clean", []string{"minimal"}, 1.0)},
		domain.Palette: {mkCand(t, domain.Palette, "loud", []string{"bold"}, 1.0)},
		domain.Layout:  {mkCand(t, domain.Layout, "hero", nil, 0.9)},
	}

	sel := svc.Resolve(cands, graph)
	if len(sel.Chosen) != 3 {
		t.Fatalf("selection must be complete, got %d domains", len(sel.Chosen))
	}
}

func idsOf(chosen map[domain.Name]candidate.Candidate) map[domain.Name]string {
	out := make(map[domain.Name]string, len(chosen))
	for d, c := range chosen {
		out[d] = c.ID()
	}
	return out
}
