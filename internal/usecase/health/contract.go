package health

import (
	"context"

	"github.com/uxforge/designrec/internal/corpus"
)

// CorpusChecker reports whether a corpus generation is serving.
type CorpusChecker interface {
	Current() (*corpus.Generation, error)
}

// CachePinger checks bundle cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
