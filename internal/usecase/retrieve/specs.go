package retrieve

import (
	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/signal"
)

// Binding matches one signal key against one query field at a weight.
type Binding struct {
	Signal signal.Key
	Field  string
	Weight float64
}

// DomainSpec declares how a domain turns signals into a query.
type DomainSpec struct {
	Domain   domain.Name
	Bindings []Binding
}

// Corpus field names the bindings target. Every domain CSV carries these
// four text columns.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldKeywords    = "keywords"
	FieldBestFor     = "best_for"
)

// DefaultSpecs returns the built-in signal-to-field bindings. Style leans
// on the style preference, palette and chart lean on the product type, the
// tech stack follows the framework hint.
func DefaultSpecs() map[domain.Name]DomainSpec {
	specs := []DomainSpec{
		{Domain: domain.Style, Bindings: []Binding{
			{Signal: signal.StylePref, Field: FieldKeywords, Weight: 2.0},
			{Signal: signal.StylePref, Field: FieldName, Weight: 1.5},
			{Signal: signal.ProductType, Field: FieldBestFor, Weight: 1.5},
			{Signal: signal.PageType, Field: FieldKeywords, Weight: 1.0},
		}},
		{Domain: domain.Palette, Bindings: []Binding{
			{Signal: signal.ProductType, Field: FieldBestFor, Weight: 2.0},
			{Signal: signal.StylePref, Field: FieldKeywords, Weight: 1.0},
		}},
		{Domain: domain.Typography, Bindings: []Binding{
			{Signal: signal.StylePref, Field: FieldKeywords, Weight: 2.0},
			{Signal: signal.ProductType, Field: FieldBestFor, Weight: 1.0},
		}},
		{Domain: domain.Layout, Bindings: []Binding{
			{Signal: signal.PageType, Field: FieldKeywords, Weight: 2.0},
			{Signal: signal.CTAGoal, Field: FieldBestFor, Weight: 2.0},
			{Signal: signal.ProductType, Field: FieldBestFor, Weight: 1.0},
		}},
		{Domain: domain.Chart, Bindings: []Binding{
			{Signal: signal.ProductType, Field: FieldBestFor, Weight: 2.0},
			{Signal: signal.PageType, Field: FieldKeywords, Weight: 1.0},
		}},
		{Domain: domain.Stack, Bindings: []Binding{
			{Signal: signal.Framework, Field: FieldKeywords, Weight: 2.5},
			{Signal: signal.Framework, Field: FieldName, Weight: 2.0},
			{Signal: signal.ProductType, Field: FieldBestFor, Weight: 1.0},
		}},
		{Domain: domain.UX, Bindings: []Binding{
			{Signal: signal.PageType, Field: FieldKeywords, Weight: 1.5},
			{Signal: signal.CTAGoal, Field: FieldBestFor, Weight: 1.5},
			{Signal: signal.ProductType, Field: FieldBestFor, Weight: 1.0},
		}},
		{Domain: domain.Component, Bindings: []Binding{
			{Signal: signal.PageType, Field: FieldKeywords, Weight: 2.0},
			{Signal: signal.CTAGoal, Field: FieldKeywords, Weight: 1.5},
			{Signal: signal.StylePref, Field: FieldBestFor, Weight: 1.0},
		}},
	}

	out := make(map[domain.Name]DomainSpec, len(specs))
	for _, s := range specs {
		out[s.Domain] = s
	}
	return out
}
