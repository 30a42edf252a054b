package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // top-level command
	ScopePass                    // load, flatten, check, sort, emit
	ScopeItem                    // one schema item or output file
	ScopeNode                    // type-tree level
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeItem:
		return "item"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global sequence number (monotonic)
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 if root
	Name     string // e.g. "parse", "check", "item:Point"
	Detail   string
	Extra    map[string]string
}
