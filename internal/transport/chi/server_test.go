package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/uxforge/designrec/internal/corpus"
	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/bundle"
	healthuc "github.com/uxforge/designrec/internal/usecase/health"
	"github.com/uxforge/designrec/internal/usecase/recommend"
)

// --- Mocks ---

type mockRecommender struct {
	result  *bundle.Bundle
	err     error
	lastReq recommend.Request
	lastCtx context.Context
}

func (m *mockRecommender) Recommend(ctx context.Context, req recommend.Request) (*bundle.Bundle, error) {
	m.lastCtx = ctx
	m.lastReq = req
	return m.result, m.err
}

type mockManager struct {
	gen       *corpus.Generation
	reloadErr error
}

func (m *mockManager) Current() (*corpus.Generation, error) {
	if m.gen == nil {
		return nil, domain.ErrNoGeneration
	}
	return m.gen, nil
}

func (m *mockManager) Reload(_ context.Context) (*corpus.Generation, error) {
	if m.reloadErr != nil {
		return nil, m.reloadErr
	}
	return m.gen, nil
}

func newTestServer(t *testing.T, rec *mockRecommender, mgr *mockManager) *httptest.Server {
	t.Helper()
	srv := NewServer(rec, mgr, healthuc.New(mgr, nil), time.Second, zap.NewNop())
	r := chirouter.NewRouter()
	srv.Routes(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func testBundle() *bundle.Bundle {
	return &bundle.Bundle{
		Generation: "gen-1",
		Selections: map[domain.Name]bundle.Selection{
			domain.Style: {ID: "minimal-clean", Score: 1},
		},
	}
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// --- Tests ---

func TestCreateRecommendation_OK(t *testing.T) {
	rec := &mockRecommender{result: testBundle()}
	ts := newTestServer(t, rec, &mockManager{gen: corpus.NewGeneration("v1", nil, nil)})

	resp := postJSON(t, ts.URL+"/api/v1/recommendations",
		`{"brief":"minimal SaaS landing page for signup"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var b bundle.Bundle
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Generation != "gen-1" {
		t.Errorf("generation: got %q", b.Generation)
	}
	if rec.lastReq.Brief != "minimal SaaS landing page for signup" {
		t.Errorf("brief not forwarded: %q", rec.lastReq.Brief)
	}
}

func TestCreateRecommendation_OverridesForwarded(t *testing.T) {
	rec := &mockRecommender{result: testBundle()}
	ts := newTestServer(t, rec, &mockManager{gen: corpus.NewGeneration("v1", nil, nil)})

	postJSON(t, ts.URL+"/api/v1/recommendations",
		`{"brief":"some landing page","overrides":{"style_pref":"dark"}}`)

	if got := rec.lastReq.Overrides["style_pref"]; got != "dark" {
		t.Errorf("override not forwarded: %q", got)
	}
}

func TestCreateRecommendation_DeadlineApplied(t *testing.T) {
	rec := &mockRecommender{result: testBundle()}
	ts := newTestServer(t, rec, &mockManager{gen: corpus.NewGeneration("v1", nil, nil)})

	postJSON(t, ts.URL+"/api/v1/recommendations",
		`{"brief":"some landing page","deadline_ms":50}`)

	deadline, ok := rec.lastCtx.Deadline()
	if !ok {
		t.Fatal("expected a context deadline")
	}
	if remaining := time.Until(deadline); remaining > 60*time.Millisecond {
		t.Errorf("deadline too far out: %v", remaining)
	}
}

func TestCreateRecommendation_DeadlineCapped(t *testing.T) {
	rec := &mockRecommender{result: testBundle()}
	ts := newTestServer(t, rec, &mockManager{gen: corpus.NewGeneration("v1", nil, nil)})

	// Server max is 1s; a 1h request must be clamped.
	postJSON(t, ts.URL+"/api/v1/recommendations",
		fmt.Sprintf(`{"brief":"some landing page","deadline_ms":%d}`, int(time.Hour/time.Millisecond)))

	deadline, ok := rec.lastCtx.Deadline()
	if !ok {
		t.Fatal("expected a context deadline")
	}
	if remaining := time.Until(deadline); remaining > 2*time.Second {
		t.Errorf("deadline not capped: %v", remaining)
	}
}

func TestCreateRecommendation_BadBody(t *testing.T) {
	ts := newTestServer(t, &mockRecommender{}, &mockManager{gen: corpus.NewGeneration("v1", nil, nil)})

	resp := postJSON(t, ts.URL+"/api/v1/recommendations", `{not json`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != codeBadRequest {
		t.Errorf("code: got %q, want %q", er.Code, codeBadRequest)
	}
}

func TestCreateRecommendation_InvalidInput(t *testing.T) {
	rec := &mockRecommender{err: fmt.Errorf("%w: brief too short", domain.ErrInvalidInput)}
	ts := newTestServer(t, rec, &mockManager{gen: corpus.NewGeneration("v1", nil, nil)})

	resp := postJSON(t, ts.URL+"/api/v1/recommendations", `{"brief":"hi"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != codeValidationFailed {
		t.Errorf("code: got %q, want %q", er.Code, codeValidationFailed)
	}
}

func TestCreateRecommendation_NoGeneration(t *testing.T) {
	rec := &mockRecommender{err: domain.ErrNoGeneration}
	ts := newTestServer(t, rec, &mockManager{})

	resp := postJSON(t, ts.URL+"/api/v1/recommendations", `{"brief":"minimal saas landing"}`)

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestGetCorpus_OK(t *testing.T) {
	ts := newTestServer(t, &mockRecommender{}, &mockManager{gen: corpus.NewGeneration("v7", nil, nil)})

	resp, err := http.Get(ts.URL + "/api/v1/corpus")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var cr corpusResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cr.Version != "v7" {
		t.Errorf("version: got %q", cr.Version)
	}
	if cr.Generation == "" {
		t.Error("generation id missing")
	}
}

func TestGetCorpus_NoGeneration(t *testing.T) {
	ts := newTestServer(t, &mockRecommender{}, &mockManager{})

	resp, err := http.Get(ts.URL + "/api/v1/corpus")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestReloadCorpus_OK(t *testing.T) {
	ts := newTestServer(t, &mockRecommender{}, &mockManager{gen: corpus.NewGeneration("v2", nil, nil)})

	resp := postJSON(t, ts.URL+"/api/v1/corpus/reload", "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestReloadCorpus_LoadFailure(t *testing.T) {
	mgr := &mockManager{
		gen:       corpus.NewGeneration("v1", nil, nil),
		reloadErr: fmt.Errorf("%w: domain style: bad row", domain.ErrCorpusLoad),
	}
	ts := newTestServer(t, &mockRecommender{}, mgr)

	resp := postJSON(t, ts.URL+"/api/v1/corpus/reload", "")

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != codeCorpusLoadFailed {
		t.Errorf("code: got %q, want %q", er.Code, codeCorpusLoadFailed)
	}
}

func TestHealth_OK(t *testing.T) {
	ts := newTestServer(t, &mockRecommender{}, &mockManager{gen: corpus.NewGeneration("v1", nil, nil)})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var hr healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hr.Status != string(healthuc.Healthy) {
		t.Errorf("status: got %q", hr.Status)
	}
}

func TestHealth_NoGeneration(t *testing.T) {
	ts := newTestServer(t, &mockRecommender{}, &mockManager{})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
}
