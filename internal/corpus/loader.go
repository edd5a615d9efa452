package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/compat"
	"github.com/uxforge/designrec/internal/domain/document"
	"github.com/uxforge/designrec/internal/index"
)

// manifest is the optional corpus-level YAML descriptor.
type manifest struct {
	Version string `yaml:"version"`
	BM25    struct {
		K1          float64 `yaml:"k1"`
		B           float64 `yaml:"b"`
		PhraseBoost float64 `yaml:"phrase_boost"`
	} `yaml:"bm25"`
	// FieldWeights overrides per-domain field weights, e.g.
	// style: {keywords: 1.5}.
	FieldWeights map[string]map[string]float64 `yaml:"field_weights"`
}

// record is one CSV row before it becomes a Document.
type record struct {
	ID          string  `validate:"required,max=128"`
	Name        string  `validate:"required"`
	Description string  ``
	Keywords    string  ``
	BestFor     string  ``
	Tags        string  ``
	CompatTags  string  ``
	Popularity  float64 `validate:"gte=0"`
}

// csvHeader is the required column order for every domain CSV.
var csvHeader = []string{
	"id", "name", "description", "keywords", "best_for",
	"tags", "compat_tags", "popularity",
}

// Loader reads a corpus directory into a Generation. Every domain has a
// `<domain>.csv` file; missing files fall back to the built-in documents,
// matching how the original knowledge tables ship with defaults. A
// malformed row fails the whole load so a previous generation keeps
// serving.
type Loader struct {
	dir      string
	base     index.Config
	validate *validator.Validate
	logger   *zap.Logger
}

// NewLoader creates a loader for the given corpus directory. An empty dir
// loads the built-in corpus only.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		dir:      dir,
		base:     index.DefaultConfig(),
		validate: validator.New(),
		logger:   logger,
	}
}

// WithBM25 overrides the base ranking parameters. Manifest values still
// take precedence over these.
func (l *Loader) WithBM25(k1, b, phraseBoost float64) *Loader {
	if k1 > 0 {
		l.base.K1 = k1
	}
	if b > 0 {
		l.base.B = b
	}
	if phraseBoost > 0 {
		l.base.PhraseBoost = phraseBoost
	}
	return l
}

// Load builds a fresh generation from disk. Per-domain index builds run
// concurrently; the first malformed document aborts the load with
// ErrCorpusLoad.
func (l *Loader) Load(ctx context.Context) (*Generation, error) {
	man, err := l.loadManifest()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorpusLoad, err)
	}

	indices := make(map[domain.Name]*index.Index, len(domain.PriorityOrder))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, d := range domain.PriorityOrder {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			docs, err := l.loadDomain(d)
			if err != nil {
				return fmt.Errorf("domain %s: %w", d, err)
			}
			ix, err := index.Build(d, docs, l.indexConfig(man, d))
			if err != nil {
				return fmt.Errorf("domain %s: %w", d, err)
			}
			mu.Lock()
			indices[d] = ix
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorpusLoad, err)
	}

	graph, err := l.loadGraph()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorpusLoad, err)
	}

	gen := NewGeneration(man.Version, indices, graph)
	l.logger.Info("corpus generation built",
		zap.String("generation", gen.ID()),
		zap.String("version", gen.Version()),
	)
	return gen, nil
}

func (l *Loader) loadManifest() (manifest, error) {
	man := manifest{Version: "builtin"}
	if l.dir == "" {
		return man, nil
	}
	path := filepath.Join(l.dir, "manifest.yaml")
	data, err := os.ReadFile(filepath.Clean(path))
	if os.IsNotExist(err) {
		man.Version = "unversioned"
		return man, nil
	}
	if err != nil {
		return man, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &man); err != nil {
		return man, fmt.Errorf("parse manifest: %w", err)
	}
	if man.Version == "" {
		man.Version = "unversioned"
	}
	return man, nil
}

func (l *Loader) indexConfig(man manifest, d domain.Name) index.Config {
	cfg := l.base
	if man.BM25.K1 > 0 {
		cfg.K1 = man.BM25.K1
	}
	if man.BM25.B > 0 {
		cfg.B = man.BM25.B
	}
	if man.BM25.PhraseBoost > 0 {
		cfg.PhraseBoost = man.BM25.PhraseBoost
	}
	if weights, ok := man.FieldWeights[string(d)]; ok {
		cfg.FieldWeights = weights
	}
	return cfg
}

// loadDomain reads one domain CSV, falling back to the built-in set.
func (l *Loader) loadDomain(d domain.Name) ([]document.Document, error) {
	if l.dir == "" {
		return builtinDocuments(d)
	}
	path := filepath.Join(l.dir, string(d)+".csv")
	f, err := os.Open(filepath.Clean(path))
	if os.IsNotExist(err) {
		l.logger.Debug("corpus file missing, using built-in documents",
			zap.String("domain", string(d)))
		return builtinDocuments(d)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	docs, err := l.parseDomainCSV(d, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

func (l *Loader) parseDomainCSV(d domain.Name, r io.Reader) ([]document.Document, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var docs []document.Document
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		doc, err := l.rowToDocument(d, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, want := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("column %d must be %q, got %q", i+1, want, header[i])
		}
	}
	return nil
}

func (l *Loader) rowToDocument(d domain.Name, row []string) (document.Document, error) {
	if len(row) != len(csvHeader) {
		return document.Document{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	popularity := 0.0
	if raw := strings.TrimSpace(row[7]); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return document.Document{}, fmt.Errorf("popularity %q: %w", raw, err)
		}
		popularity = p
	}

	rec := record{
		ID:          strings.TrimSpace(row[0]),
		Name:        strings.TrimSpace(row[1]),
		Description: strings.TrimSpace(row[2]),
		Keywords:    strings.TrimSpace(row[3]),
		BestFor:     strings.TrimSpace(row[4]),
		Tags:        strings.TrimSpace(row[5]),
		CompatTags:  strings.TrimSpace(row[6]),
		Popularity:  popularity,
	}
	if err := l.validate.Struct(rec); err != nil {
		return document.Document{}, fmt.Errorf("record %q: %w", rec.ID, err)
	}

	doc, err := document.New(rec.ID, d, map[string]string{
		"name":        rec.Name,
		"description": rec.Description,
		"keywords":    rec.Keywords,
		"best_for":    rec.BestFor,
	}, splitMulti(rec.Tags), splitMulti(rec.CompatTags), rec.Popularity)
	if err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

// splitMulti splits a pipe-separated multi-value CSV cell.
func splitMulti(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadGraph reads incompatibilities.csv (tag_a,tag_b per row).
func (l *Loader) loadGraph() (*compat.Graph, error) {
	if l.dir == "" {
		return compat.NewGraph(builtinIncompatibilities()), nil
	}
	path := filepath.Join(l.dir, "incompatibilities.csv")
	f, err := os.Open(filepath.Clean(path))
	if os.IsNotExist(err) {
		return compat.NewGraph(builtinIncompatibilities()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", path, err)
	}
	if len(header) != 2 || strings.ToLower(header[0]) != "tag_a" || strings.ToLower(header[1]) != "tag_b" {
		return nil, fmt.Errorf("%s: header must be tag_a,tag_b", path)
	}

	var pairs [][2]string
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		a, b := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if a == "" || b == "" {
			return nil, fmt.Errorf("%s: line %d: empty tag", path, line)
		}
		pairs = append(pairs, [2]string{a, b})
	}
	return compat.NewGraph(pairs), nil
}
