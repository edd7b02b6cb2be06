// SPDX-License-Identifier: Unlicense OR MIT

package attribute

import "sort"

// List is an ordered collection of Attributes over a shared text buffer,
// sorted by StartIndex ascending with stable insertion order among equal
// starts (spec.md §3 "Attribute list"). The zero value is an empty, usable
// list. Unlike the C original, List does not reference-count itself --
// ownership follows ordinary Go value/pointer semantics, and Clone gives an
// explicit deep copy when one is needed (see design notes, §9).
type List struct {
	attrs []*Attribute
}

// New returns an empty attribute list.
func New() *List {
	return &List{}
}

// Len reports the number of attributes in l.
func (l *List) Len() int {
	return len(l.attrs)
}

// Attrs returns the attributes in l in list order. The returned slice must
// not be mutated by the caller.
func (l *List) Attrs() []*Attribute {
	return l.attrs
}

// Clone returns a deep copy of l; pointer-valued attributes are copied via
// their registered Copy callback.
func (l *List) Clone() *List {
	out := &List{attrs: make([]*Attribute, len(l.attrs))}
	for i, a := range l.attrs {
		out.attrs[i] = a.clone()
	}
	return out
}

// insertionRange returns the half-open index range of existing attributes
// sharing start with a's StartIndex.
func (l *List) insertionRange(start uint32) (lo, hi int) {
	lo = sort.Search(len(l.attrs), func(i int) bool {
		return l.attrs[i].StartIndex >= start
	})
	hi = sort.Search(len(l.attrs), func(i int) bool {
		return l.attrs[i].StartIndex > start
	})
	return lo, hi
}

// Insert adds a to the list, preserving sort order by StartIndex and
// placing a after any existing attributes with an equal StartIndex. A
// no-op range (StartIndex == EndIndex) is silently discarded.
func (l *List) Insert(a *Attribute) {
	if a.StartIndex == a.EndIndex {
		return
	}
	_, hi := l.insertionRange(a.StartIndex)
	l.insertAt(hi, a)
}

// InsertBefore is Insert, but places a before any existing attributes with
// an equal StartIndex.
func (l *List) InsertBefore(a *Attribute) {
	if a.StartIndex == a.EndIndex {
		return
	}
	lo, _ := l.insertionRange(a.StartIndex)
	l.insertAt(lo, a)
}

func (l *List) insertAt(i int, a *Attribute) {
	l.attrs = append(l.attrs, nil)
	copy(l.attrs[i+1:], l.attrs[i:])
	l.attrs[i] = a
}

func (l *List) removeAt(i int) *Attribute {
	a := l.attrs[i]
	l.attrs = append(l.attrs[:i], l.attrs[i+1:]...)
	return a
}

// Change inserts a and then, within a's Type, merges it with any
// touching-and-equal-valued neighbor and truncates/splits/deletes any
// attribute it overlaps (spec.md §3, §4.1). After Change, no two attributes
// of a's Type have overlapping ranges, and no two have touching ranges with
// identical values.
func (l *List) Change(a *Attribute) {
	if a.StartIndex == a.EndIndex {
		return
	}
	// Resolve overlaps with existing attributes of the same type first,
	// since merging can extend a's own range and we want later scans to
	// see the up-to-date range.
	i := 0
	for i < len(l.attrs) {
		o := l.attrs[i]
		if o.Type != a.Type || o == a {
			i++
			continue
		}
		switch {
		case o.equalValue(a) && (touches(o, a) || overlaps(o, a)):
			// Merge: absorb o's range into a and drop o.
			if o.StartIndex < a.StartIndex {
				a.StartIndex = o.StartIndex
			}
			if o.EndIndex > a.EndIndex {
				a.EndIndex = o.EndIndex
			}
			l.removeAt(i)
			continue
		case !overlaps(o, a):
			i++
			continue
		case o.StartIndex < a.StartIndex && o.EndIndex > a.EndIndex:
			// a is fully inside o: split o into a left and right remainder.
			right := &Attribute{Type: o.Type, Value: o.Value, StartIndex: a.EndIndex, EndIndex: o.EndIndex}
			o.EndIndex = a.StartIndex
			l.attrs[i] = o
			i++
			if right.StartIndex != right.EndIndex {
				l.insertAt(i, right)
				i++
			}
		case o.StartIndex < a.StartIndex:
			// o's tail overlaps a's head: truncate o.
			o.EndIndex = a.StartIndex
			i++
		case o.EndIndex > a.EndIndex:
			// o's head overlaps a's tail: truncate o from the front.
			o.StartIndex = a.EndIndex
			i++
		default:
			// o is fully inside a: delete it.
			l.removeAt(i)
		}
	}
	l.Insert(a)
}

// Update adjusts every attribute's range to reflect deleting remove bytes
// at pos and then inserting add bytes at pos (spec.md §3, §4.1). Attributes
// entirely inside the removed region are dropped. Sentinel endpoints
// (FromBeginning, ToTextEnd) are never moved.
func (l *List) Update(pos, remove, add int) {
	removeEnd := pos + remove
	kept := l.attrs[:0]
	for _, a := range l.attrs {
		start, sSentinel := int(a.StartIndex), a.StartIndex == FromBeginning
		end, eSentinel := int(a.EndIndex), a.EndIndex == ToTextEnd
		if !eSentinel && start >= pos && end <= removeEnd && start < end {
			a.destroy()
			continue
		}
		if !sSentinel {
			start = shiftOffset(start, pos, remove, add)
		}
		if !eSentinel {
			end = shiftOffset(end, pos, remove, add)
		}
		if start > end {
			start = end
		}
		a.StartIndex = clampIndex(start)
		a.EndIndex = clampIndex(end)
		kept = append(kept, a)
	}
	l.attrs = kept
}

func shiftOffset(offset, pos, remove, add int) int {
	switch {
	case offset <= pos:
		return offset
	case offset >= pos+remove:
		return offset - remove + add
	default: // inside the removed region, but range itself survives
		return pos + add
	}
}

func clampIndex(i int) uint32 {
	if i < 0 {
		return 0
	}
	if uint32(i) >= ToTextEnd {
		return ToTextEnd - 1
	}
	return uint32(i)
}

// Splice opens a hole of length length at pos (stretching any attribute
// that contains pos), then Changes each of other's attributes clamped into
// that hole. With length == 0, other's attributes are overlaid onto l
// without clamping (spec.md §4.1, and the "plain overlay" reading of the
// len==0 open question recorded in DESIGN.md).
func (l *List) Splice(other *List, pos, length int) {
	if length > 0 {
		l.Update(pos, 0, length)
	}
	for _, a := range other.attrs {
		cp := a.clone()
		if length > 0 {
			start, end := int(cp.StartIndex), int(cp.EndIndex)
			if cp.StartIndex != FromBeginning {
				start += pos
			}
			if cp.EndIndex != ToTextEnd {
				end += pos
				if end > pos+length {
					end = pos + length
				}
			}
			if start > end {
				continue
			}
			cp.StartIndex, cp.EndIndex = clampIndex(start), clampIndex(end)
		}
		l.Change(cp)
	}
}

// Filter removes every attribute matching pred from l and returns them as a
// new List. ok is false if no attribute matched.
func (l *List) Filter(pred func(*Attribute) bool) (matched *List, ok bool) {
	matched = New()
	kept := l.attrs[:0]
	for _, a := range l.attrs {
		if pred(a) {
			matched.attrs = append(matched.attrs, a)
			continue
		}
		kept = append(kept, a)
	}
	l.attrs = kept
	return matched, len(matched.attrs) > 0
}

// Equal reports whether l and other contain the same multiset of
// (range, type, value) tuples, irrespective of order.
func (l *List) Equal(other *List) bool {
	if len(l.attrs) != len(other.attrs) {
		return false
	}
	used := make([]bool, len(other.attrs))
	for _, a := range l.attrs {
		found := false
		for j, b := range other.attrs {
			if used[j] || a.StartIndex != b.StartIndex || a.EndIndex != b.EndIndex {
				continue
			}
			if a.equalValue(b) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
