package corpus

import (
	"sync/atomic"
)

// Holder publishes the current generation behind an atomic pointer.
// Readers never lock; a swap is a single pointer store, so there are no
// torn reads and in-flight requests keep their generation.
type Holder struct {
	current atomic.Pointer[Generation]
}

// NewHolder creates an empty holder.
func NewHolder() *Holder { return &Holder{} }

// Current returns the serving generation, or nil before the first load.
func (h *Holder) Current() *Generation { return h.current.Load() }

// Swap publishes a new generation and returns the previous one.
func (h *Holder) Swap(g *Generation) *Generation { return h.current.Swap(g) }
