// Package candidate defines the transient per-request ranking result.
package candidate

import (
	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/document"
)

// Candidate pairs a ranked document with its raw and normalized scores.
// Raw BM25 scores are not comparable across domains; the retriever min-max
// normalizes them per domain before resolution.
type Candidate struct {
	doc        document.Document
	raw        float64
	normalized float64
}

// New creates a candidate with a raw score. The normalized score starts at
// zero until the retriever normalizes the candidate set.
func New(doc document.Document, raw float64) Candidate {
	return Candidate{doc: doc, raw: raw}
}

// Doc returns the underlying document.
func (c Candidate) Doc() document.Document { return c.doc }

// ID returns the document identifier.
func (c Candidate) ID() string { return c.doc.ID() }

// Domain returns the document's domain.
func (c Candidate) Domain() domain.Name { return c.doc.Domain() }

// Raw returns the raw relevance score.
func (c Candidate) Raw() float64 { return c.raw }

// Normalized returns the per-domain min-max normalized score in [0,1].
func (c Candidate) Normalized() float64 { return c.normalized }

// WithNormalized returns a copy carrying the normalized score.
func (c Candidate) WithNormalized(v float64) Candidate {
	c.normalized = v
	return c
}
