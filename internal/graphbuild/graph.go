// Package graphbuild compacts one group's edge list into a dense-id directed
// graph: parallel edges collapsed to successor sets, self-loops preserved
// and flagged, vertex ids assigned densely in first-seen order.
package graphbuild

import "github.com/hopgraph/cyclefind/internal/group"

// Graph is a compact directed graph over a single (claim_id, status_code)
// group's vertex set.
type Graph struct {
	// Names maps vertex id -> original vertex name, in first-seen order.
	Names []string
	// Adjacency maps vertex id -> sorted-by-insertion slice of distinct
	// successor vertex ids (parallel edges collapsed).
	Adjacency [][]int32
	// SelfLoop flags vertices with at least one edge to themselves.
	SelfLoop []bool
}

// NumVertices returns the number of distinct vertices in the graph.
func (g *Graph) NumVertices() int {
	return len(g.Names)
}

// Build constructs a Graph from a group's edge pairs. Vertex ids are
// assigned 0..n-1 in the order their names are first seen among the edges'
// sources and destinations.
func Build(edges []group.Pair) *Graph {
	ids := make(map[string]int32)
	g := &Graph{}

	idFor := func(name string) int32 {
		if id, ok := ids[name]; ok {
			return id
		}
		id := int32(len(g.Names))
		ids[name] = id
		g.Names = append(g.Names, name)
		g.Adjacency = append(g.Adjacency, nil)
		g.SelfLoop = append(g.SelfLoop, false)
		return id
	}

	// Per-vertex successor-membership sets, used only during construction to
	// collapse parallel edges; discarded once Adjacency is built.
	seen := make(map[int32]map[int32]bool)

	for _, e := range edges {
		from := idFor(e.Source)
		to := idFor(e.Destination)

		if from == to {
			// Self-loops never participate in a length>=2 cycle, so they
			// are recorded only via the flag, not as an adjacency entry;
			// the SCC finder consults SelfLoop to keep self-looped
			// singletons, which the engine then reports as length-1
			// candidates instead of walking a self-edge.
			g.SelfLoop[from] = true
			continue
		}

		succSet, ok := seen[from]
		if !ok {
			succSet = make(map[int32]bool)
			seen[from] = succSet
		}
		if succSet[to] {
			continue
		}
		succSet[to] = true
		g.Adjacency[from] = append(g.Adjacency[from], to)
	}

	return g
}
