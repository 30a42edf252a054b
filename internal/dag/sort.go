package dag

import (
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/namespace"
)

// Sort returns the concrete structs of ns in dependency order followed by
// every other item (abstract structs, functions) in namespace order. A
// layout cycle is reported and the result is not ok.
func Sort(ns *namespace.Namespace, deps map[string][]string, r diag.Reporter) ([]*ast.Item, bool) {
	idx := BuildIndex(ns)
	g := BuildGraph(idx, deps)
	topo := ToposortKahn(g)
	if topo.Cyclic {
		ReportCycle(idx, FindCycle(g, topo), r)
		return nil, false
	}

	out := make([]*ast.Item, 0, ns.Len())
	for _, id := range topo.Order {
		out = append(out, idx.Items[int(id)])
	}
	for _, it := range ns.Items() {
		if !it.IsConcreteStruct() {
			out = append(out, it)
		}
	}
	return out, true
}
