package recommend

import (
	"context"

	"github.com/uxforge/designrec/internal/corpus"
	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/candidate"
	"github.com/uxforge/designrec/internal/domain/compat"
	"github.com/uxforge/designrec/internal/domain/signal"
	"github.com/uxforge/designrec/internal/usecase/resolve"
	"github.com/uxforge/designrec/internal/usecase/retrieve"
)

// Extractor turns a brief into the full signal set.
type Extractor interface {
	Extract(brief string) (signal.Set, error)
}

// Retriever runs the per-domain candidate search.
type Retriever interface {
	Retrieve(
		ctx context.Context, provider retrieve.IndexProvider, sigs signal.Set,
	) (map[domain.Name]retrieve.Result, bool)
}

// Resolver picks one compatible candidate per domain.
type Resolver interface {
	Resolve(
		cands map[domain.Name][]candidate.Candidate, graph *compat.Graph,
	) resolve.Selection
}

// GenerationSource exposes the serving corpus generation.
type GenerationSource interface {
	Current() (*corpus.Generation, error)
}
