package domain

import (
	"maps"
	"slices"
)

// AdjacencyGraph maps a zone to the ordered list of zones worth preloading
// while it is active. It is built once and never mutated.
type AdjacencyGraph struct {
	edges map[ZoneKey][]ZoneKey
}

// DanglingEdge is a neighbor reference to a zone that is not registered.
type DanglingEdge struct {
	From ZoneKey
	To   ZoneKey
}

// NewAdjacencyGraph creates a graph from the given edges.
// The input is copied, later changes to it are not observed.
func NewAdjacencyGraph(edges map[ZoneKey][]ZoneKey) *AdjacencyGraph {
	copied := make(map[ZoneKey][]ZoneKey, len(edges))
	for from, to := range edges {
		copied[from] = slices.Clone(to)
	}
	return &AdjacencyGraph{edges: copied}
}

// Neighbors returns the neighbors of key in declared order.
// It returns an empty slice when key has no entry.
func (g *AdjacencyGraph) Neighbors(key ZoneKey) []ZoneKey {
	if g == nil {
		return []ZoneKey{}
	}
	neighbors, ok := g.edges[key]
	if !ok {
		return []ZoneKey{}
	}
	return slices.Clone(neighbors)
}

// Sources returns every zone that has an adjacency entry, sorted.
func (g *AdjacencyGraph) Sources() []ZoneKey {
	if g == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(g.edges))
}

// Dangling returns the neighbor references that point outside the registry,
// ordered by source zone and then by declared order.
func (g *AdjacencyGraph) Dangling(registry *Registry) []DanglingEdge {
	var dangling []DanglingEdge
	for _, from := range g.Sources() {
		for _, to := range g.edges[from] {
			if !registry.Has(to) {
				dangling = append(dangling, DanglingEdge{From: from, To: to})
			}
		}
	}
	return dangling
}
