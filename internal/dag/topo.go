package dag

import (
	"slices"
)

type Topo struct {
	Order     []NodeID   // линейный порядок
	Batches   [][]NodeID // волны независимых структур
	Cyclic    bool
	Remaining []NodeID // узлы, не вошедшие в порядок (на цикле или за ним)
}

// ToposortKahn orders g in waves. Every wave is sorted by NodeID, so nodes
// that do not depend on each other keep first-seen order.
func ToposortKahn(g Graph) *Topo {
	nodeCount := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]NodeID, 0, nodeCount),
		Batches: make([][]NodeID, 0),
	}

	current := make([]NodeID, 0, nodeCount)
	for i := range nodeCount {
		if indeg[i] == 0 {
			current = append(current, NodeID(i)) // #nosec G115 -- i < nodeCount
		}
	}

	for len(current) > 0 {
		batch := make([]NodeID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]NodeID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != nodeCount {
		topo.Cyclic = true
		for i := range nodeCount {
			if indeg[i] > 0 {
				topo.Remaining = append(topo.Remaining, NodeID(i)) // #nosec G115 -- i < nodeCount
			}
		}
	}
	return topo
}
