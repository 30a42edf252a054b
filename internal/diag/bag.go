package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag creates a bag holding at most max diagnostics; larger limits are clamped.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = ^uint16(0)
		if max < 0 {
			limit = 0
		}
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 16)),
		max:   limit,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если лимит уже достигнут.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors returns true if any diagnostic has Severity >= SevError.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only срез диагностик; не модифицируйте его.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends diagnostics from other, raising the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	if limit, err := safecast.Conv[uint16](total); err == nil && limit > b.max {
		b.max = limit
	}
	for _, d := range other.items {
		b.Add(d)
	}
}

// ReplayTo forwards every diagnostic to r in insertion order.
func (b *Bag) ReplayTo(r Reporter) {
	if r == nil {
		return
	}
	for _, d := range b.items {
		r.Report(d)
	}
}

// Sort orders diagnostics by file, start, end, severity (desc) and code
// for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// простая дедупликация (по Code+Primary+Message)
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%s", d.Code.ID(), d.Primary.String(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
