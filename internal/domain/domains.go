// Package domain holds the shared vocabulary of the recommendation engine:
// the design-knowledge domain catalog and the sentinel errors every layer
// maps onto.
package domain

// Name identifies one curated category of design knowledge.
type Name string

const (
	Style      Name = "style"
	Palette    Name = "palette"
	Typography Name = "typography"
	Layout     Name = "layout"
	Chart      Name = "chart"
	Stack      Name = "stack"
	UX         Name = "ux"
	Component  Name = "component"
)

// PriorityOrder lists domains in resolution order. Style constrains every
// downstream choice, palette constrains typography, and so on; the resolver
// relaxes constraints starting from the tail.
var PriorityOrder = []Name{
	Style,
	Palette,
	Typography,
	Layout,
	Chart,
	Stack,
	UX,
	Component,
}

var priorityIndex = buildPriorityIndex()

func buildPriorityIndex() map[Name]int {
	m := make(map[Name]int, len(PriorityOrder))
	for i, d := range PriorityOrder {
		m[d] = i
	}
	return m
}

// Valid reports whether d is part of the domain catalog.
func (d Name) Valid() bool {
	_, ok := priorityIndex[d]
	return ok
}

// Priority returns the resolution rank of d (lower resolves first).
// Unknown domains sort after every known one.
func (d Name) Priority() int {
	if i, ok := priorityIndex[d]; ok {
		return i
	}
	return len(PriorityOrder)
}

// Parse validates a raw domain string.
func Parse(raw string) (Name, error) {
	d := Name(raw)
	if !d.Valid() {
		return "", ErrUnknownDomain
	}
	return d, nil
}
