// Package compat holds the symmetric tag-incompatibility relation shared
// read-only across requests.
package compat

// Graph marks (tag, tag) pairs as mutually incompatible. The zero value is
// an empty graph where everything is compatible.
type Graph struct {
	pairs map[string]map[string]struct{}
}

// NewGraph creates a graph from incompatible tag pairs. Insertion is
// symmetric: (a,b) implies (b,a). Self-pairs and empty tags are ignored.
func NewGraph(pairs [][2]string) *Graph {
	g := &Graph{pairs: make(map[string]map[string]struct{})}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if a == "" || b == "" || a == b {
			continue
		}
		g.insert(a, b)
		g.insert(b, a)
	}
	return g
}

func (g *Graph) insert(a, b string) {
	set, ok := g.pairs[a]
	if !ok {
		set = make(map[string]struct{})
		g.pairs[a] = set
	}
	set[b] = struct{}{}
}

// Incompatible reports whether the tag pair is marked incompatible.
func (g *Graph) Incompatible(a, b string) bool {
	if g == nil || g.pairs == nil {
		return false
	}
	_, ok := g.pairs[a][b]
	return ok
}

// Conflict scans two tag sets for an incompatible pair, returning the first
// conflicting pair found. Tag sets are sorted at document construction, so
// the scan order is deterministic.
func (g *Graph) Conflict(tagsA, tagsB []string) (string, string, bool) {
	if g == nil || g.pairs == nil {
		return "", "", false
	}
	for _, a := range tagsA {
		set, ok := g.pairs[a]
		if !ok {
			continue
		}
		for _, b := range tagsB {
			if _, bad := set[b]; bad {
				return a, b, true
			}
		}
	}
	return "", "", false
}

// Len returns the number of tags that appear in at least one pair.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.pairs)
}
