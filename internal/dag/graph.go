package dag

import (
	"slices"
)

type Graph struct {
	Edges [][]NodeID // Edges[from] = []to, from должен идти раньше to
	Preds [][]NodeID // Preds[to] = []from
	Indeg []int      // входящие степени для Kahn
}

// BuildGraph adds one edge dependency → dependent for every entry of deps
// whose both ends are nodes of idx. Functions and abstract structs are not
// nodes and their edges are dropped. Duplicate edges collapse.
func BuildGraph(idx Index, deps map[string][]string) Graph {
	n := idx.Len()
	g := Graph{
		Edges: make([][]NodeID, n),
		Preds: make([][]NodeID, n),
		Indeg: make([]int, n),
	}
	for to, name := range idx.IDToName {
		toID := NodeID(to) // #nosec G115 -- to < idx.Len(), which fits NodeID
		seen := make(map[NodeID]struct{}, len(deps[name]))
		for _, dep := range deps[name] {
			from, ok := idx.NameToID[dep]
			if !ok {
				continue
			}
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			g.Edges[int(from)] = append(g.Edges[int(from)], toID)
			g.Preds[to] = append(g.Preds[to], from)
			g.Indeg[to]++
		}
		slices.Sort(g.Preds[to])
	}
	for from := range g.Edges {
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}
	return g
}
