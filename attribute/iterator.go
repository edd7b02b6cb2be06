// SPDX-License-Identifier: Unlicense OR MIT

package attribute

// Iterator is a stateful cursor over a List. At any moment it exposes a
// half-open range [start, end) over which the set of active attributes is
// constant (spec.md §3 "Attribute iterator", §4.1).
type Iterator struct {
	attrs []*Attribute
	idx   int
	// active holds attributes currently in effect, in ascending
	// StartIndex order (i.e. push order): the tail is the
	// most-recently-started attribute, which is where overlap resolution
	// looks first.
	active []*Attribute
	start  uint32
	end    uint32
	done   bool
}

// fontTypes are excluded from collectExtras: they are surfaced through
// GetFont instead.
var fontTypes = map[Type]bool{
	Language: true, Family: true, Style: true, Weight: true, Variant: true,
	Stretch: true, Size: true, AbsoluteSize: true, FontDesc: true, Scale: true,
}

// NewIterator returns an Iterator positioned at the start of l.
func (l *List) NewIterator() *Iterator {
	it := &Iterator{attrs: l.attrs}
	it.fill()
	return it
}

// fill pushes every attribute starting at or before it.start and recomputes
// the next boundary.
func (it *Iterator) fill() {
	for it.idx < len(it.attrs) && it.attrs[it.idx].StartIndex <= it.start {
		it.active = append(it.active, it.attrs[it.idx])
		it.idx++
	}
	next := ToTextEnd
	for _, a := range it.active {
		if a.EndIndex < next {
			next = a.EndIndex
		}
	}
	if it.idx < len(it.attrs) && it.attrs[it.idx].StartIndex < next {
		next = it.attrs[it.idx].StartIndex
	}
	it.end = next
}

// Range returns the half-open byte range of the iterator's current segment.
func (it *Iterator) Range() (start, end uint32) {
	return it.start, it.end
}

// Next advances the iterator to the next segment boundary and reports
// whether one exists. The final segment's end is always ToTextEnd.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	newStart := it.end
	kept := it.active[:0]
	for _, a := range it.active {
		if a.EndIndex != newStart {
			kept = append(kept, a)
		}
	}
	it.active = kept
	it.start = newStart
	if newStart == ToTextEnd {
		it.done = true
		return false
	}
	it.fill()
	return true
}

// Get returns the attribute of type t in effect at the iterator's current
// position. When more than one attribute of the same type overlaps, the
// one whose range starts closest to the current position wins (the tail
// of active, since active is maintained in ascending-start push order).
func (it *Iterator) Get(t Type) (*Attribute, bool) {
	for i := len(it.active) - 1; i >= 0; i-- {
		if it.active[i].Type == t {
			return it.active[i], true
		}
	}
	return nil, false
}

// GetAttrs returns every attribute active at the iterator's current
// position, in push order.
func (it *Iterator) GetAttrs() []*Attribute {
	out := make([]*Attribute, len(it.active))
	copy(out, it.active)
	return out
}

// collectExtras returns the active non-font attributes, applying the
// "overrides" merge policy: for a type registered with MergeOverrides, only
// the most-recently-started instance survives; other types report every
// active instance (spec.md §4.1 "get_font").
func (it *Iterator) collectExtras() []*Attribute {
	order := make([]Type, 0, len(it.active))
	byType := make(map[Type][]*Attribute, len(it.active))
	for _, a := range it.active {
		if fontTypes[a.Type] {
			continue
		}
		if _, ok := byType[a.Type]; !ok {
			order = append(order, a.Type)
		}
		byType[a.Type] = append(byType[a.Type], a)
	}
	var extras []*Attribute
	for _, t := range order {
		group := byType[t]
		if mergePolicyFor(t) == MergeOverrides {
			extras = append(extras, group[len(group)-1])
			continue
		}
		extras = append(extras, group...)
	}
	return extras
}

// GetFont resolves the font description, language, and extra (non-font)
// attributes active at the iterator's current position. The pseudo-attribute
// Scale is applied last, after Size/AbsoluteSize have been resolved, to
// avoid compounding rounding across intermediate multiplications (spec.md
// §4.1).
func (it *Iterator) GetFont() (desc FontDescription, lang string, extras []*Attribute) {
	if a, ok := it.Get(FontDesc); ok {
		desc = a.Value.FontDesc
	}
	if a, ok := it.Get(Family); ok {
		desc.Family = a.Value.String
	}
	if a, ok := it.Get(Style); ok {
		desc.Style = nickForInt(Style, a.Value.Int)
	}
	if a, ok := it.Get(Weight); ok {
		desc.Weight = int(a.Value.Int)
	}
	if a, ok := it.Get(Variant); ok {
		desc.Variant = nickForInt(Variant, a.Value.Int)
	}
	if a, ok := it.Get(Stretch); ok {
		desc.Stretch = nickForInt(Stretch, a.Value.Int)
	}
	if a, ok := it.Get(Size); ok {
		desc.Size = float64(a.Value.Int)
		desc.SizeIsAbsolute = false
	}
	if a, ok := it.Get(AbsoluteSize); ok {
		desc.Size = float64(a.Value.Int)
		desc.SizeIsAbsolute = true
	}
	if a, ok := it.Get(Language); ok {
		lang = a.Value.Language
	}
	if a, ok := it.Get(Scale); ok {
		// A volatile-style temporary: write, then read back, so the
		// multiplication happens at the storage precision rather than
		// an extended-precision register (pango-attr-iterator.c).
		var scaled float64
		scaled = desc.Size * a.Value.Float
		desc.Size = scaled
	}
	extras = it.collectExtras()
	return desc, lang, extras
}
