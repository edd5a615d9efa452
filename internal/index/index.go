// Package index builds and serves field-weighted BM25 search over one
// domain's document set. An Index is built once from a corpus snapshot and
// is immutable afterwards: any number of requests may query it concurrently
// without locking. Rebuilding means constructing a new Index and swapping
// the generation pointer.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/candidate"
	"github.com/uxforge/designrec/internal/domain/document"
	"github.com/uxforge/designrec/internal/domain/query"
)

// Config holds the per-domain BM25 parameters.
type Config struct {
	K1          float64
	B           float64
	PhraseBoost float64
	// FieldWeights scales per-field contributions. Missing fields weigh 1.
	FieldWeights map[string]float64
}

// DefaultConfig returns the standard BM25 parameters.
func DefaultConfig() Config {
	return Config{K1: 1.2, B: 0.75, PhraseBoost: 1.5}
}

func (c Config) applyDefaults() Config {
	if c.K1 <= 0 {
		c.K1 = 1.2
	}
	if c.B < 0 || c.B > 1 {
		c.B = 0.75
	}
	if c.PhraseBoost <= 0 {
		c.PhraseBoost = 1.5
	}
	return c
}

func (c Config) fieldWeight(field string) float64 {
	if w, ok := c.FieldWeights[field]; ok && w > 0 {
		return w
	}
	return 1
}

// posting records one (document, field) occurrence of a term.
// positions index into the stop-word-stripped token stream of that field.
type posting struct {
	doc       int32
	field     uint16
	tf        int32
	positions []int32
}

// Index is the inverted index for one domain. Read-only after Build.
type Index struct {
	domain     domain.Name
	cfg        Config
	docs       []document.Document // sorted by id ascending
	fieldNames []string            // sorted
	fieldID    map[string]uint16
	postings   map[string][]posting
	fieldLen   [][]int32 // [doc][field] token count
	avgLen     []float64 // [field] average over docs containing the field
	docFreq    map[string]int
	byPop      []int32 // doc indices by popularity desc, id asc
}

// Build constructs the index for a domain from its full document set.
// A domain with zero documents is fatal for the corpus generation.
func Build(dom domain.Name, docs []document.Document, cfg Config) (*Index, error) {
	if !dom.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, dom)
	}
	if len(docs) == 0 {
		return nil, domain.NewEmptyDomain(dom)
	}

	sorted := make([]document.Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

	ix := &Index{
		domain:   dom,
		cfg:      cfg.applyDefaults(),
		docs:     sorted,
		postings: make(map[string][]posting),
		docFreq:  make(map[string]int),
	}

	seen := make(map[string]struct{}, len(sorted))
	fieldSet := make(map[string]struct{})
	for i := range sorted {
		d := &sorted[i]
		if d.Domain() != dom {
			return nil, fmt.Errorf("document %q belongs to domain %q, not %q", d.ID(), d.Domain(), dom)
		}
		if _, dup := seen[d.ID()]; dup {
			return nil, fmt.Errorf("duplicate document ID %q in domain %q", d.ID(), dom)
		}
		seen[d.ID()] = struct{}{}
		for name := range d.Fields() {
			fieldSet[name] = struct{}{}
		}
	}

	ix.fieldNames = make([]string, 0, len(fieldSet))
	for name := range fieldSet {
		ix.fieldNames = append(ix.fieldNames, name)
	}
	sort.Strings(ix.fieldNames)
	ix.fieldID = make(map[string]uint16, len(ix.fieldNames))
	for i, name := range ix.fieldNames {
		ix.fieldID[name] = uint16(i)
	}

	ix.fieldLen = make([][]int32, len(sorted))
	fieldTotals := make([]int64, len(ix.fieldNames))
	fieldDocs := make([]int64, len(ix.fieldNames))

	for docIdx := range sorted {
		ix.fieldLen[docIdx] = make([]int32, len(ix.fieldNames))
		for _, name := range ix.fieldNames {
			text := sorted[docIdx].Field(name)
			if text == "" {
				continue
			}
			fid := ix.fieldID[name]
			toks := Tokenize(text)
			ix.fieldLen[docIdx][fid] = int32(len(toks))
			if len(toks) > 0 {
				fieldTotals[fid] += int64(len(toks))
				fieldDocs[fid]++
			}
			ix.indexField(int32(docIdx), fid, toks)
		}
	}

	ix.avgLen = make([]float64, len(ix.fieldNames))
	for fid := range ix.avgLen {
		if fieldDocs[fid] > 0 {
			ix.avgLen[fid] = float64(fieldTotals[fid]) / float64(fieldDocs[fid])
		}
	}

	// Document frequency counts a document once no matter how many fields
	// contain the term.
	for term, list := range ix.postings {
		last := int32(-1)
		n := 0
		for _, p := range list {
			if p.doc != last {
				n++
				last = p.doc
			}
		}
		ix.docFreq[term] = n
	}

	ix.byPop = make([]int32, len(sorted))
	for i := range ix.byPop {
		ix.byPop[i] = int32(i)
	}
	sort.SliceStable(ix.byPop, func(i, j int) bool {
		a, b := ix.byPop[i], ix.byPop[j]
		if sorted[a].Popularity() != sorted[b].Popularity() {
			return sorted[a].Popularity() > sorted[b].Popularity()
		}
		return sorted[a].ID() < sorted[b].ID()
	})

	return ix, nil
}

func (ix *Index) indexField(doc int32, fid uint16, toks []string) {
	positions := make(map[string][]int32)
	for pos, tok := range toks {
		positions[tok] = append(positions[tok], int32(pos))
	}
	terms := make([]string, 0, len(positions))
	for term := range positions {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for _, term := range terms {
		pp := positions[term]
		ix.postings[term] = append(ix.postings[term], posting{
			doc:       doc,
			field:     fid,
			tf:        int32(len(pp)),
			positions: pp,
		})
	}
}

// Domain returns the domain this index serves.
func (ix *Index) Domain() domain.Name { return ix.domain }

// DocCount returns the number of indexed documents.
func (ix *Index) DocCount() int { return len(ix.docs) }

// Doc looks up a document by ID.
func (ix *Index) Doc(id string) (document.Document, bool) {
	i := sort.Search(len(ix.docs), func(i int) bool { return ix.docs[i].ID() >= id })
	if i < len(ix.docs) && ix.docs[i].ID() == id {
		return ix.docs[i], true
	}
	return document.Document{}, false
}

// Fields returns the indexed field names, sorted.
func (ix *Index) Fields() []string { return ix.fieldNames }

// Query returns the top-k documents ranked by field-weighted BM25, ties
// broken by popularity descending then ID ascending. Stateless and
// side-effect free; an empty query or a query with no matching terms
// returns an empty slice, never an error.
func (ix *Index) Query(q query.Query, k int) []candidate.Candidate {
	if k <= 0 || q.IsEmpty() {
		return nil
	}

	// Per-document, per-field score accumulation.
	fieldScores := make(map[int32][]float64)
	n := float64(len(ix.docs))

	for _, term := range q.Terms() {
		list, ok := ix.postings[term.Text()]
		if !ok {
			continue
		}
		idf := math.Log(1 + (n-float64(ix.docFreq[term.Text()])+0.5)/(float64(ix.docFreq[term.Text()])+0.5))
		for _, p := range list {
			if term.Field() != "" && ix.fieldNames[p.field] != term.Field() {
				continue
			}
			norm := 1.0
			if av := ix.avgLen[p.field]; av > 0 {
				norm = 1 - ix.cfg.B + ix.cfg.B*float64(ix.fieldLen[p.doc][p.field])/av
			}
			tf := float64(p.tf)
			contrib := ix.cfg.fieldWeight(ix.fieldNames[p.field]) * term.Weight() *
				idf * (tf * (ix.cfg.K1 + 1)) / (tf + ix.cfg.K1*norm)

			fs, ok := fieldScores[p.doc]
			if !ok {
				fs = make([]float64, len(ix.fieldNames))
				fieldScores[p.doc] = fs
			}
			fs[p.field] += contrib
		}
	}

	if len(fieldScores) == 0 {
		return nil
	}

	docIdxs := make([]int32, 0, len(fieldScores))
	for doc := range fieldScores {
		docIdxs = append(docIdxs, doc)
	}
	sort.Slice(docIdxs, func(i, j int) bool { return docIdxs[i] < docIdxs[j] })

	out := make([]candidate.Candidate, 0, len(docIdxs))
	for _, doc := range docIdxs {
		total := 0.0
		for fid, s := range fieldScores[doc] {
			if s <= 0 {
				continue
			}
			if ix.phraseInField(q.Phrases(), doc, uint16(fid)) {
				s *= ix.cfg.PhraseBoost
			}
			total += s
		}
		if total > 0 {
			out = append(out, candidate.New(ix.docs[doc], total))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Raw() != out[j].Raw() {
			return out[i].Raw() > out[j].Raw()
		}
		if out[i].Doc().Popularity() != out[j].Doc().Popularity() {
			return out[i].Doc().Popularity() > out[j].Doc().Popularity()
		}
		return out[i].ID() < out[j].ID()
	})

	if len(out) > k {
		out = out[:k]
	}
	return out
}

// TopByPopularity returns the k most popular documents. This is the
// default answer for a domain with no usable signals: raw score carries
// the popularity weight so min-max normalization still applies.
func (ix *Index) TopByPopularity(k int) []candidate.Candidate {
	if k <= 0 {
		return nil
	}
	if k > len(ix.byPop) {
		k = len(ix.byPop)
	}
	out := make([]candidate.Candidate, 0, k)
	for _, doc := range ix.byPop[:k] {
		out = append(out, candidate.New(ix.docs[doc], ix.docs[doc].Popularity()))
	}
	return out
}

// phraseInField reports whether any query phrase appears contiguously in
// the given (doc, field) token stream.
func (ix *Index) phraseInField(phrases []query.Phrase, doc int32, fid uint16) bool {
	for _, ph := range phrases {
		if ix.matchPhrase(ph.Terms(), doc, fid) {
			return true
		}
	}
	return false
}

func (ix *Index) matchPhrase(terms []string, doc int32, fid uint16) bool {
	if len(terms) < 2 {
		return false
	}
	first := ix.positionsOf(terms[0], doc, fid)
	if len(first) == 0 {
		return false
	}
	rest := make([]map[int32]struct{}, len(terms)-1)
	for i, term := range terms[1:] {
		pp := ix.positionsOf(term, doc, fid)
		if len(pp) == 0 {
			return false
		}
		set := make(map[int32]struct{}, len(pp))
		for _, p := range pp {
			set[p] = struct{}{}
		}
		rest[i] = set
	}
	for _, start := range first {
		match := true
		for i := range rest {
			if _, ok := rest[i][start+int32(i)+1]; !ok {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (ix *Index) positionsOf(term string, doc int32, fid uint16) []int32 {
	for _, p := range ix.postings[term] {
		if p.doc == doc && p.field == fid {
			return p.positions
		}
		if p.doc > doc {
			break
		}
	}
	return nil
}
