package retrieve

import (
	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/index"
)

// IndexProvider serves the per-domain indices of one corpus generation.
// Implementations must be safe for concurrent reads.
type IndexProvider interface {
	Index(d domain.Name) (*index.Index, bool)
	Domains() []domain.Name
}
