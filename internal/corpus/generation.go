// Package corpus loads versioned knowledge snapshots and serves them as
// immutable generations. A rebuild constructs a whole new generation and
// swaps a single pointer, so in-flight requests keep the generation they
// started with.
package corpus

import (
	"time"

	"github.com/google/uuid"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/compat"
	"github.com/uxforge/designrec/internal/index"
	"github.com/uxforge/designrec/internal/usecase/retrieve"
)

// Generation is one immutable corpus snapshot: all domain indices plus the
// compatibility graph. Read-only after construction.
type Generation struct {
	id        string
	version   string
	createdAt time.Time
	indices   map[domain.Name]*index.Index
	graph     *compat.Graph
}

var _ retrieve.IndexProvider = (*Generation)(nil)

// NewGeneration assembles a generation and assigns it a fresh ID.
func NewGeneration(
	version string, indices map[domain.Name]*index.Index, graph *compat.Graph,
) *Generation {
	if graph == nil {
		graph = compat.NewGraph(nil)
	}
	return &Generation{
		id:        uuid.NewString(),
		version:   version,
		createdAt: time.Now().UTC(),
		indices:   indices,
		graph:     graph,
	}
}

// ID returns the unique generation identifier.
func (g *Generation) ID() string { return g.id }

// Version returns the corpus version from the manifest.
func (g *Generation) Version() string { return g.version }

// CreatedAt returns the build timestamp.
func (g *Generation) CreatedAt() time.Time { return g.createdAt }

// Index returns the index for a domain.
func (g *Generation) Index(d domain.Name) (*index.Index, bool) {
	ix, ok := g.indices[d]
	return ix, ok
}

// Domains returns the indexed domains in priority order.
func (g *Generation) Domains() []domain.Name {
	out := make([]domain.Name, 0, len(g.indices))
	for _, d := range domain.PriorityOrder {
		if _, ok := g.indices[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Graph returns the compatibility graph.
func (g *Generation) Graph() *compat.Graph { return g.graph }

// DocCount returns the document count for a domain (0 if absent).
func (g *Generation) DocCount(d domain.Name) int {
	if ix, ok := g.indices[d]; ok {
		return ix.DocCount()
	}
	return 0
}
