// Package dag orders concrete structs so that every struct comes after the
// structs it contains by value, and reports layout cycles.
package dag

import (
	"fmt"

	"fortio.org/safecast"

	"vellum/internal/ast"
	"vellum/internal/namespace"
)

type NodeID uint32

type Index struct {
	NameToID map[string]NodeID
	IDToName []string
	Items    []*ast.Item
}

// BuildIndex раздаёт ID конкретным структурам в порядке первого появления
func BuildIndex(ns *namespace.Namespace) Index {
	idx := Index{NameToID: make(map[string]NodeID)}
	for _, it := range ns.Items() {
		if !it.IsConcreteStruct() {
			continue
		}
		id, err := safecast.Conv[NodeID](len(idx.IDToName))
		if err != nil {
			panic(fmt.Errorf("node id overflow: %w", err))
		}
		name := it.Struct.Name.Name
		idx.NameToID[name] = id
		idx.IDToName = append(idx.IDToName, name)
		idx.Items = append(idx.Items, it)
	}
	return idx
}

func (idx Index) Len() int {
	return len(idx.IDToName)
}

func (idx Index) Names(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}
