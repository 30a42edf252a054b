package dag

import (
	"fmt"
	"strings"

	"vellum/internal/diag"
)

// FindCycle extracts one cycle from the nodes Kahn could not order. Every
// remaining node has a predecessor that is also remaining, so walking
// predecessors must revisit a node. The cycle is returned in "contains"
// order (each node holds the next one by value) and rotated so that its
// smallest NodeID comes first.
func FindCycle(g Graph, topo *Topo) []NodeID {
	if topo == nil || !topo.Cyclic || len(topo.Remaining) == 0 {
		return nil
	}
	remaining := make(map[NodeID]bool, len(topo.Remaining))
	for _, id := range topo.Remaining {
		remaining[id] = true
	}

	pos := make(map[NodeID]int)
	var path []NodeID
	cur := topo.Remaining[0]
	for {
		if at, seen := pos[cur]; seen {
			return rotateToMin(path[at:])
		}
		pos[cur] = len(path)
		path = append(path, cur)
		next, ok := firstRemaining(g.Preds[int(cur)], remaining)
		if !ok {
			// недостижимо: у каждого оставшегося узла есть оставшийся предшественник
			return nil
		}
		cur = next
	}
}

func firstRemaining(ids []NodeID, remaining map[NodeID]bool) (NodeID, bool) {
	for _, id := range ids {
		if remaining[id] {
			return id, true
		}
	}
	return 0, false
}

func rotateToMin(cycle []NodeID) []NodeID {
	minAt := 0
	for i, id := range cycle {
		if id < cycle[minAt] {
			minAt = i
		}
	}
	out := make([]NodeID, 0, len(cycle))
	out = append(out, cycle[minAt:]...)
	out = append(out, cycle[:minAt]...)
	return out
}

// ReportCycle emits one SemaDependencyCycle anchored at the first member of
// cycle, with the other members as notes.
func ReportCycle(idx Index, cycle []NodeID, r diag.Reporter) {
	if len(cycle) == 0 || r == nil {
		return
	}
	names := idx.Names(cycle)
	chain := strings.Join(append(names, names[0]), " -> ")
	head := idx.Items[int(cycle[0])].Struct.Name

	b := diag.ReportError(r, diag.SemaDependencyCycle, head.Span,
		fmt.Sprintf("struct `%s` has infinite size: %s", head.Name, chain)).
		WithLabel("this type contains itself")
	for _, id := range cycle[1:] {
		member := idx.Items[int(id)].Struct.Name
		b = b.WithNote(member.Span, fmt.Sprintf("`%s` is part of the cycle", member.Name))
	}
	next := names[0]
	if len(names) > 1 {
		next = names[1]
	}
	b.WithDetail(fmt.Sprintf("refer to `%s` through a pointer (e.g. `*const %s`) to break the cycle", next, next)).
		Emit()
}
