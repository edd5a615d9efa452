// Package query defines the weighted term query handed to a domain index.
package query

// Term is one weighted query term, optionally scoped to a single field.
type Term struct {
	text   string
	field  string // "" matches every field
	weight float64
}

// NewTerm creates a term matching every field. Non-positive weights count as 1.
func NewTerm(text string, weight float64) Term {
	return NewFieldTerm("", text, weight)
}

// NewFieldTerm creates a term scoped to one named field.
func NewFieldTerm(field, text string, weight float64) Term {
	if weight <= 0 {
		weight = 1
	}
	return Term{text: text, field: field, weight: weight}
}

// Text returns the term text (already normalized by the tokenizer).
func (t Term) Text() string { return t.text }

// Field returns the field scope ("" for all fields).
func (t Term) Field() string { return t.field }

// Weight returns the term weight.
func (t Term) Weight() float64 { return t.weight }

// Phrase is an ordered term sequence that must appear contiguously in a
// field to earn the phrase boost.
type Phrase struct {
	terms []string
}

// NewPhrase creates a phrase from ordered terms.
func NewPhrase(terms ...string) Phrase {
	return Phrase{terms: terms}
}

// Terms returns the ordered phrase terms. Treat as read-only.
func (p Phrase) Terms() []string { return p.terms }

// Query is a weighted-term query with optional exact phrases.
// A Query is built per request and carries no index state.
type Query struct {
	terms   []Term
	phrases []Phrase
}

// New creates an empty query.
func New() Query { return Query{} }

// WithTerm returns a copy of q with an unscoped term appended.
func (q Query) WithTerm(text string, weight float64) Query {
	return q.withTerm(NewTerm(text, weight))
}

// WithFieldTerm returns a copy of q with a field-scoped term appended.
func (q Query) WithFieldTerm(field, text string, weight float64) Query {
	return q.withTerm(NewFieldTerm(field, text, weight))
}

func (q Query) withTerm(t Term) Query {
	q.terms = append(q.terms[:len(q.terms):len(q.terms)], t)
	return q
}

// WithPhrase returns a copy of q with an exact phrase appended.
// Phrases shorter than two terms add nothing: a single term cannot be
// non-contiguous.
func (q Query) WithPhrase(terms ...string) Query {
	if len(terms) < 2 {
		return q
	}
	q.phrases = append(q.phrases[:len(q.phrases):len(q.phrases)], NewPhrase(terms...))
	return q
}

// Terms returns the weighted terms. Treat as read-only.
func (q Query) Terms() []Term { return q.terms }

// Phrases returns the exact phrases. Treat as read-only.
func (q Query) Phrases() []Phrase { return q.phrases }

// IsEmpty reports whether the query has no terms.
func (q Query) IsEmpty() bool { return len(q.terms) == 0 }
