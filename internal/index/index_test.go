package index

import (
	"errors"
	"reflect"
	"testing"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/candidate"
	"github.com/uxforge/designrec/internal/domain/document"
	"github.com/uxforge/designrec/internal/domain/query"
)

func mkDoc(t *testing.T, id string, fields map[string]string, pop float64) document.Document {
	t.Helper()
	doc, err := document.New(id, domain.Style, fields, nil, nil, pop)
	if err != nil {
		t.Fatalf("build doc %s: %v", id, err)
	}
	return doc
}

func mustBuild(t *testing.T, docs []document.Document) *Index {
	t.Helper()
	ix, err := Build(domain.Style, docs, DefaultConfig())
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return ix
}

func ids(cands []candidate.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID()
	}
	return out
}

func TestBuild_EmptyDomain(t *testing.T) {
	_, err := Build(domain.Style, nil, DefaultConfig())
	if !errors.Is(err, domain.ErrEmptyDomain) {
		t.Fatalf("expected ErrEmptyDomain, got %v", err)
	}

	var ede *domain.EmptyDomainError
	if !errors.As(err, &ede) {
		t.Fatal("expected EmptyDomainError")
	}
}

func TestBuild_UnknownDomain(t *testing.T) {
	_, err := Build("gastronomy", nil, DefaultConfig())
	if !errors.Is(err, domain.ErrUnknownDomain) {
		t.Fatalf("expected ErrUnknownDomain, got %v", err)
	}
}

func TestBuild_WrongDomainDoc(t *testing.T) {
	doc, err := document.New("p1", domain.Palette, map[string]string{"name": "Slate"}, nil, nil, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(domain.Style, []document.Document{doc}, DefaultConfig()); err == nil {
		t.Fatal("expected error for wrong-domain document")
	}
}

func TestBuild_DuplicateID(t *testing.T) {
	docs := []document.Document{
		mkDoc(t, "dup", map[string]string{"name": "One"}, 0.1),
		mkDoc(t, "dup", map[string]string{"name": "Two"}, 0.2),
	}
	if _, err := Build(domain.Style, docs, DefaultConfig()); err == nil {
		t.Fatal("expected error for duplicate document ID")
	}
}

func TestQuery_MatchesOnlyDocsWithTerm(t *testing.T) {
	ix := mustBuild(t, []document.Document{
		mkDoc(t, "glass", map[string]string{"description": "frosted glassmorphism panels"}, 0.5),
		mkDoc(t, "brutal", map[string]string{"description": "raw brutalist borders"}, 0.5),
	})

	got := ix.Query(query.New().WithTerm("glassmorphism", 1), 10)
	if want := []string{"glass"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestQuery_EmptyAndNoMatch(t *testing.T) {
	ix := mustBuild(t, []document.Document{
		mkDoc(t, "a", map[string]string{"description": "minimal whitespace"}, 0.5),
	})

	if got := ix.Query(query.New(), 10); got != nil {
		t.Errorf("empty query: got %v, want nil", got)
	}
	if got := ix.Query(query.New().WithTerm("nonexistent", 1), 10); got != nil {
		t.Errorf("no match: got %v, want nil", got)
	}
	if got := ix.Query(query.New().WithTerm("minimal", 1), 0); got != nil {
		t.Errorf("k=0: got %v, want nil", got)
	}
}

func TestQuery_TieBreakPopularityThenID(t *testing.T) {
	ix := mustBuild(t, []document.Document{
		mkDoc(t, "zeta", map[string]string{"description": "glassmorphism panels"}, 0.8),
		mkDoc(t, "alpha", map[string]string{"description": "glassmorphism panels"}, 0.2),
		mkDoc(t, "beta", map[string]string{"description": "glassmorphism panels"}, 0.8),
	})

	got := ids(ix.Query(query.New().WithTerm("glassmorphism", 1), 10))
	// Identical scores: popularity desc, then id asc.
	want := []string{"beta", "zeta", "alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestQuery_Deterministic(t *testing.T) {
	docs := []document.Document{
		mkDoc(t, "a", map[string]string{"description": "dark noir dashboard", "keywords": "dark night"}, 0.3),
		mkDoc(t, "b", map[string]string{"description": "dark minimal landing", "keywords": "dark calm"}, 0.7),
		mkDoc(t, "c", map[string]string{"description": "playful dashboard"}, 0.9),
	}
	ix := mustBuild(t, docs)

	q := query.New().WithTerm("dark", 1).WithTerm("dashboard", 1)
	first := ids(ix.Query(q, 10))
	for i := 0; i < 20; i++ {
		if got := ids(ix.Query(q, 10)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestQuery_TermFrequencyMonotonic(t *testing.T) {
	// Same field length, equal popularity: the only difference is one extra
	// occurrence of the query term, which must never lower the score.
	ix := mustBuild(t, []document.Document{
		mkDoc(t, "single", map[string]string{"description": "glassmorphism frosted panels"}, 0.5),
		mkDoc(t, "double", map[string]string{"description": "glassmorphism glassmorphism panels"}, 0.5),
		mkDoc(t, "absent", map[string]string{"description": "brutalist raw borders"}, 0.5),
	})

	got := ix.Query(query.New().WithTerm("glassmorphism", 1), 10)
	if want := []string{"double", "single"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	if got[0].Raw() <= got[1].Raw() {
		t.Errorf("extra occurrence must raise the score: double=%v single=%v",
			got[0].Raw(), got[1].Raw())
	}
	// Zero occurrences contribute zero: the non-matching doc never appears.
	for _, c := range got {
		if c.ID() == "absent" {
			t.Error("document without the term must score 0 and be dropped")
		}
	}
}

func TestQuery_FieldWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FieldWeights = map[string]float64{"keywords": 3}
	docs := []document.Document{
		mkDoc(t, "kw", map[string]string{"keywords": "glassmorphism frosted"}, 0.5),
		mkDoc(t, "desc", map[string]string{"description": "glassmorphism frosted"}, 0.5),
	}
	ix, err := Build(domain.Style, docs, cfg)
	if err != nil {
		t.Fatal(err)
	}

	got := ix.Query(query.New().WithTerm("glassmorphism", 1), 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID() != "kw" {
		t.Errorf("weighted field must rank first, got %v", ids(got))
	}
	if got[0].Raw() <= got[1].Raw() {
		t.Errorf("weighted score %v must exceed %v", got[0].Raw(), got[1].Raw())
	}
}

func TestQuery_FieldScopedTerm(t *testing.T) {
	ix := mustBuild(t, []document.Document{
		mkDoc(t, "kw", map[string]string{"keywords": "fintech", "description": "charts"}, 0.5),
		mkDoc(t, "desc", map[string]string{"keywords": "charts", "description": "fintech"}, 0.5),
	})

	q := query.New().WithFieldTerm("keywords", "fintech", 1)
	got := ids(ix.Query(q, 10))
	if want := []string{"kw"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestQuery_PhraseBoost(t *testing.T) {
	docs := []document.Document{
		mkDoc(t, "contiguous", map[string]string{"description": "dark mode dashboard"}, 0.1),
		mkDoc(t, "scattered", map[string]string{"description": "dashboard dark theme mode"}, 0.9),
	}
	ix := mustBuild(t, docs)

	q := query.New().WithTerm("dark", 1).WithTerm("mode", 1).WithPhrase("dark", "mode")
	got := ix.Query(q, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID() != "contiguous" {
		t.Errorf("contiguous phrase must outrank scattered terms, got %v", ids(got))
	}

	// Without the phrase the shorter field still wins, but the phrase must
	// strictly widen the gap.
	plain := ix.Query(query.New().WithTerm("dark", 1).WithTerm("mode", 1), 10)
	gapPlain := plain[0].Raw() - plain[1].Raw()
	gapBoosted := got[0].Raw() - got[1].Raw()
	if gapBoosted <= gapPlain {
		t.Errorf("phrase boost must widen the score gap: plain %v, boosted %v", gapPlain, gapBoosted)
	}
}

func TestQuery_TrimsToK(t *testing.T) {
	docs := make([]document.Document, 0, 8)
	idsIn := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, id := range idsIn {
		docs = append(docs, mkDoc(t, id,
			map[string]string{"description": "minimal landing"}, float64(i)/10))
	}
	ix := mustBuild(t, docs)

	got := ix.Query(query.New().WithTerm("minimal", 1), 3)
	if len(got) != 3 {
		t.Errorf("expected 3 candidates, got %d", len(got))
	}
}

func TestTopByPopularity(t *testing.T) {
	ix := mustBuild(t, []document.Document{
		mkDoc(t, "mid", map[string]string{"name": "Mid"}, 0.5),
		mkDoc(t, "top", map[string]string{"name": "Top"}, 0.9),
		mkDoc(t, "low", map[string]string{"name": "Low"}, 0.1),
	})

	got := ids(ix.TopByPopularity(2))
	if want := []string{"top", "mid"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	all := ix.TopByPopularity(10)
	if len(all) != 3 {
		t.Errorf("k beyond corpus size: got %d, want 3", len(all))
	}
}
