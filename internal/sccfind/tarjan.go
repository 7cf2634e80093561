// Package sccfind finds strongly connected components of a graphbuild.Graph
// using an iterative (explicit work stack) Tarjan algorithm, so that deep
// chains in a group's graph cannot exhaust the native call stack. Each
// activation of the classic recursive strongConnect(v) becomes one explicit
// frame here, resumed at its last-visited successor index instead of
// returning into Go's call stack.
package sccfind

import "github.com/hopgraph/cyclefind/internal/graphbuild"

// SCC is one strongly connected component: vertex ids local to the group's
// graphbuild.Graph numbering.
type SCC struct {
	Vertices []int32
}

// frame is one suspended strongConnect(v) activation: v itself and the
// index of the next successor to examine.
type frame struct {
	v       int32
	succIdx int
}

// Find partitions g's vertices into SCCs and returns only the "non-trivial"
// ones the cycle searcher can use: components with two or more vertices, or
// single-vertex components whose vertex has a self-loop (reported by the
// caller as a length-1 candidate, not searched further here).
func Find(g *graphbuild.Graph) []SCC {
	n := g.NumVertices()
	if n == 0 {
		return nil
	}

	indices := make([]int32, n)
	lowlink := make([]int32, n)
	onStack := make([]bool, n)
	for i := range indices {
		indices[i] = -1
	}

	var tarjanStack []int32 // Tarjan's own "on stack" component-building stack
	var work []frame        // explicit recursion-simulation stack
	var result []SCC
	var nextIndex int32

	for start := int32(0); start < int32(n); start++ {
		if indices[start] != -1 {
			continue
		}

		work = append(work, frame{v: start})
		indices[start] = nextIndex
		lowlink[start] = nextIndex
		nextIndex++
		tarjanStack = append(tarjanStack, start)
		onStack[start] = true

		for len(work) > 0 {
			top := &work[len(work)-1]
			v := top.v

			if top.succIdx < len(g.Adjacency[v]) {
				w := g.Adjacency[v][top.succIdx]
				top.succIdx++

				if indices[w] == -1 {
					indices[w] = nextIndex
					lowlink[w] = nextIndex
					nextIndex++
					tarjanStack = append(tarjanStack, w)
					onStack[w] = true
					work = append(work, frame{v: w})
				} else if onStack[w] {
					if indices[w] < lowlink[v] {
						lowlink[v] = indices[w]
					}
				}
				continue
			}

			// All successors of v explored; pop this frame and propagate
			// v's low-link up to its caller, the same update a recursive
			// strongConnect would make on return.
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := &work[len(work)-1]
				if lowlink[v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[v]
				}
			}

			if lowlink[v] == indices[v] {
				var scc SCC
				for {
					w := tarjanStack[len(tarjanStack)-1]
					tarjanStack = tarjanStack[:len(tarjanStack)-1]
					onStack[w] = false
					scc.Vertices = append(scc.Vertices, w)
					if w == v {
						break
					}
				}
				result = append(result, scc)
			}
		}
	}

	return filterNonTrivial(g, result)
}

func filterNonTrivial(g *graphbuild.Graph, sccs []SCC) []SCC {
	var kept []SCC
	for _, scc := range sccs {
		if len(scc.Vertices) >= 2 {
			kept = append(kept, scc)
			continue
		}
		v := scc.Vertices[0]
		if g.SelfLoop[v] {
			kept = append(kept, scc)
		}
	}
	return kept
}
