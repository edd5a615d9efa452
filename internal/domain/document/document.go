// Package document defines the immutable knowledge-base document aggregate.
package document

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/uxforge/designrec/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Document is one curated knowledge entry (immutable value object).
// It belongs to exactly one domain and is never mutated after indexing.
type Document struct {
	id         string
	domain     domain.Name
	fields     map[string]string
	tags       []string
	compatTags []string
	popularity float64
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-128 chars. At least one non-empty field is
// required so the document is reachable by some query.
func New(
	id string, dom domain.Name, fields map[string]string,
	tags, compatTags []string, popularity float64,
) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 128 {
		return Document{}, fmt.Errorf("document ID too long (max 128)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if !dom.Valid() {
		return Document{}, fmt.Errorf("document %q: %w: %q", id, domain.ErrUnknownDomain, dom)
	}
	if popularity < 0 {
		return Document{}, fmt.Errorf("document %q: popularity weight must be non-negative", id)
	}

	hasContent := false
	for _, v := range fields {
		if v != "" {
			hasContent = true
			break
		}
	}
	if !hasContent {
		return Document{}, fmt.Errorf("document %q: at least one non-empty field is required", id)
	}

	return Document{
		id:         id,
		domain:     dom,
		fields:     cloneFields(fields),
		tags:       normalizeTags(tags),
		compatTags: normalizeTags(compatTags),
		popularity: popularity,
	}, nil
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Domain returns the domain the document belongs to.
func (d Document) Domain() domain.Name { return d.domain }

// Fields returns the named text fields. Treat as read-only.
func (d Document) Fields() map[string]string { return d.fields }

// Field returns one named field's text ("" if absent).
func (d Document) Field(name string) string { return d.fields[name] }

// FieldNames returns the field names in sorted order.
func (d Document) FieldNames() []string {
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tags returns the descriptive tag set, sorted. Treat as read-only.
func (d Document) Tags() []string { return d.tags }

// CompatTags returns the compatibility tag set, sorted. Treat as read-only.
func (d Document) CompatTags() []string { return d.compatTags }

// Popularity returns the curation popularity weight (tie-breaker).
func (d Document) Popularity() float64 { return d.popularity }

func cloneFields(m map[string]string) map[string]string {
	c := make(map[string]string, len(m))
	for k, v := range m {
		if v != "" {
			c[k] = v
		}
	}
	return c
}

// normalizeTags deduplicates and sorts, dropping empties.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
