// Package bundle defines the recommendation bundle returned to the caller.
// The bundle is a plain transfer object: the engine holds no reference to it
// after return, and the caller owns serialization.
package bundle

import (
	"github.com/uxforge/designrec/internal/domain"
)

// Selection is the chosen document for one domain.
type Selection struct {
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields"`
	Tags   []string          `json:"tags,omitempty"`
	Score  float64           `json:"score"`
}

// Alternate is a runner-up document identifier with its normalized score.
type Alternate struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// TraceEntry records which signal drove which choice, for explainability.
type TraceEntry struct {
	SignalKey   string      `json:"signal_key"`
	SignalValue string      `json:"signal_value"`
	Confidence  float64     `json:"confidence"`
	Domain      domain.Name `json:"domain"`
	ChosenID    string      `json:"chosen_id"`
	Score       float64     `json:"score"`
}

// Bundle is the full recommendation result for one brief.
type Bundle struct {
	Generation string                       `json:"generation"`
	Version    string                       `json:"corpus_version,omitempty"`
	Degraded   bool                         `json:"degraded"`
	Selections map[domain.Name]Selection    `json:"selections"`
	Alternates map[domain.Name][]Alternate  `json:"alternates,omitempty"`
	Trace      []TraceEntry                 `json:"trace"`
}

// Domains returns the selected domains in priority order.
func (b *Bundle) Domains() []domain.Name {
	out := make([]domain.Name, 0, len(b.Selections))
	for _, d := range domain.PriorityOrder {
		if _, ok := b.Selections[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
