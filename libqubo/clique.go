package libqubo

import (
	"sort"
)

// MaxClique returns the ascending vertex indices of a maximum clique of X.
//
// The search is an exact branch and bound: each node partitions its candidate set into greedy colour
// classes (independent sets), and the number of classes bounds how many more vertices a clique can gain.
// Candidates start ordered by descending degree (ties by ascending index) and are branched on from the end
// of the bound-filtered list, so the returned clique depends only on X.
func MaxClique(X *Graph) []VtxID {
	cs := cliqueSearch{X: X}

	candidates := make([]VtxID, X.NumVertices())
	degree := make([]int, X.NumVertices())
	for v := range candidates {
		candidates[v] = v
		degree[v] = X.Degree(v)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return degree[candidates[i]] > degree[candidates[j]]
	})

	cs.expand(nil, candidates)

	clique := append([]VtxID(nil), cs.incumbent...)
	sort.Ints(clique)
	return clique
}

type cliqueSearch struct {
	X         *Graph
	incumbent []VtxID
}

// expand looks for the largest clique containing all of C and zero or more of P.
func (cs *cliqueSearch) expand(C, P []VtxID) {
	if len(C) > len(cs.incumbent) {
		cs.incumbent = append(cs.incumbent[:0], C...)
	}

	branching := cs.branchingVertices(P, len(cs.incumbent)-len(C))
	for len(branching) > 0 {
		last := len(branching) - 1
		v := branching[last]
		branching = branching[:last]

		P = withoutVtx(P, v)
		nextP := make([]VtxID, 0, len(P))
		for _, w := range P {
			if cs.X.HasEdge(v, w) {
				nextP = append(nextP, w)
			}
		}
		cs.expand(append(C[:len(C):len(C)], v), nextP)
	}
}

// branchingVertices strips whole colour classes off P while they cannot lift a clique past target,
// returning what remains (a new slice).
func (cs *cliqueSearch) branchingVertices(P []VtxID, target int) []VtxID {
	P = append([]VtxID(nil), P...)
	classes := 0
	for len(P) > 0 {
		class := cs.greedyIndependentSet(P)
		classes++
		if classes > target {
			break
		}
		P = withoutVtxs(P, class)
	}
	return P
}

// greedyIndependentSet picks, in order, each vertex of P not adjacent to one already picked.
func (cs *cliqueSearch) greedyIndependentSet(P []VtxID) []VtxID {
	var set []VtxID
	rest := append([]VtxID(nil), P...)
	for len(rest) > 0 {
		v := rest[0]
		set = append(set, v)
		keep := rest[:0]
		for _, w := range rest[1:] {
			if !cs.X.HasEdge(v, w) {
				keep = append(keep, w)
			}
		}
		rest = keep
	}
	return set
}

func withoutVtx(P []VtxID, v VtxID) []VtxID {
	out := make([]VtxID, 0, len(P))
	for _, w := range P {
		if w != v {
			out = append(out, w)
		}
	}
	return out
}

func withoutVtxs(P, drop []VtxID) []VtxID {
	out := P[:0]
	for _, w := range P {
		dropped := false
		for _, d := range drop {
			if w == d {
				dropped = true
				break
			}
		}
		if !dropped {
			out = append(out, w)
		}
	}
	return out
}
