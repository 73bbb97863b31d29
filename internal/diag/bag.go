package diag

import (
	"cmp"
	"slices"

	"cobrust/internal/source"
)

// Bag collects diagnostics of one run up to a limit. Diagnostics over the
// limit are counted but not stored.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

// NewBag создаёт Bag с лимитом max; max <= 0 означает без ограничения.
func NewBag(max int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, 8), max: max}
}

func (b *Bag) full() bool {
	return b.max > 0 && len(b.items) >= b.max
}

// Add добавляет диагностику; false, если лимит исчерпан.
func (b *Bag) Add(d Diagnostic) bool {
	if b.full() {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddError кладёт диагностику из *Error; nil игнорируется.
func (b *Bag) AddError(err *Error) bool {
	if err == nil {
		return false
	}
	return b.Add(err.Diag)
}

// Dropped returns how many diagnostics did not fit under the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Count returns the number of stored diagnostics of severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// HasErrors reports whether any stored diagnostic is an error.
func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

// HasWarnings reports a warning or an error.
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает внутренний срез; не модифицировать.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends everything from other, raising the limit when needed: a
// merged diagnostic is never lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders by file, start, end, then errors first, then code.
// Diagnostics without a location go last.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		xl, yl := x.Primary.HasLocation(), y.Primary.HasLocation()
		if xl != yl {
			if xl {
				return -1
			}
			return 1
		}
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops repeats of the same code at the same span, keeping the first.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
