// SPDX-License-Identifier: Unlicense OR MIT

// Package attribute implements ranged attribute lists over text, mirroring
// pango's PangoAttribute/PangoAttrList/PangoAttrIterator.
package attribute

import "math"

// Type identifies the kind of information an Attribute carries (foreground
// color, font family, language, ...). Built-in types are declared below;
// additional types can be registered at runtime with RegisterType.
type Type int

// Built-in attribute types, mirroring the well-known PangoAttrType values
// recovered from pango-attributes.c. User-defined types start at
// firstCustomType.
const (
	Language Type = iota + 1
	Family
	Style
	Weight
	Variant
	Stretch
	Size
	FontDesc
	Foreground
	Background
	Underline
	Strikethrough
	Rise
	Shape
	Scale
	FallbackEnabled
	LetterSpacing
	Underlinecolor
	Strikethroughcolor
	AbsoluteSize
	Gravity
	GravityHint
	FontFeatures
	ForegroundAlpha
	BackgroundAlpha
	AllowBreaks
	Show
	InsertHyphens
	Overline
	Overlinecolor
	LineHeight
	AbsoluteLineHeight
	TextTransform
	Word
	Sentence
	BaselineShift
	FontScale

	firstCustomType
)

// Kind describes the storage representation of an Attribute's Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
	KindFloat
	KindColor
	KindLanguage
	KindFontDesc
	KindString
	KindPointer
)

// Color is a 4x16-bit RGBA color, as pango's PangoColor plus alpha.
type Color struct {
	Red, Green, Blue, Alpha uint16
}

// PointerCallbacks lets a caller attach an arbitrary value to an attribute
// without the attribute list needing to know its concrete Go type. It
// stands in for the copy/destroy/equal/serialize function pointers of
// PangoAttrClass in the C original (see design notes, §9).
type PointerCallbacks struct {
	Copy      func(any) any
	Destroy   func(any)
	Equal     func(a, b any) bool
	Serialize func(any) string
}

// Value is a closed sum of the value kinds an Attribute can carry, plus one
// escape hatch (KindPointer) for opaque user data with caller-supplied
// vtable semantics.
type Value struct {
	Kind Kind

	Int      int32
	Bool     bool
	Float    float64
	Color    Color
	Language string
	FontDesc FontDescription
	String   string

	Pointer   any
	Callbacks PointerCallbacks
}

// FontDescription is an opaque, comparable font selection record. The real
// font backend (glyph lookup, metrics) is an external collaborator per
// spec.md §1; this module only needs to store, compare and serialize one.
type FontDescription struct {
	Family  string
	Style   string
	Variant string
	Weight  int
	Stretch string
	Size    float64
	// SizeIsAbsolute marks Size as device units rather than points.
	SizeIsAbsolute bool
}

// Sentinel byte-offset values denoting "from the beginning of the text" and
// "to the end of the text" -- pango's PANGO_ATTR_INDEX_FROM_TEXT_BEGINNING
// and PANGO_ATTR_INDEX_TO_TEXT_END.
const (
	FromBeginning uint32 = 0
	ToTextEnd     uint32 = math.MaxUint32
)

// MergePolicy controls how an Iterator resolves multiple active attributes
// of the same Type. See List.Change and Iterator for where this applies.
type MergePolicy uint8

const (
	// MergeReplace keeps whichever attribute started closest to the
	// current position (the default pango "stack" rule).
	MergeReplace MergePolicy = iota
	// MergeOverrides causes a later-starting attribute of the same type to
	// suppress earlier ones entirely when collecting "extra" attributes,
	// rather than only shadowing the single reported value.
	MergeOverrides
)

// Attribute is a single ranged annotation: a type tag, a value, and a
// half-open byte range [StartIndex, EndIndex) within some shared text
// buffer. StartIndex == EndIndex is a no-op and is discarded by List.Change.
type Attribute struct {
	Type       Type
	Value      Value
	StartIndex uint32
	EndIndex   uint32
}

// clone returns a deep copy of a, invoking Value.Callbacks.Copy for pointer
// attributes so ownership never aliases between lists (§3 "Lifecycle").
func (a *Attribute) clone() *Attribute {
	cp := *a
	if a.Value.Kind == KindPointer && a.Value.Callbacks.Copy != nil {
		cp.Value.Pointer = a.Value.Callbacks.Copy(a.Value.Pointer)
	}
	return &cp
}

// equalValue reports whether a and b carry the same Type and Value,
// ignoring range. Used by List.Equal and by List.Change's merge step.
func (a *Attribute) equalValue(b *Attribute) bool {
	if a.Type != b.Type || a.Value.Kind != b.Value.Kind {
		return false
	}
	switch a.Value.Kind {
	case KindInt:
		return a.Value.Int == b.Value.Int
	case KindBool:
		return a.Value.Bool == b.Value.Bool
	case KindFloat:
		return a.Value.Float == b.Value.Float
	case KindColor:
		return a.Value.Color == b.Value.Color
	case KindLanguage:
		return a.Value.Language == b.Value.Language
	case KindFontDesc:
		return a.Value.FontDesc == b.Value.FontDesc
	case KindString:
		return a.Value.String == b.Value.String
	case KindPointer:
		if a.Value.Callbacks.Equal != nil {
			return a.Value.Callbacks.Equal(a.Value.Pointer, b.Value.Pointer)
		}
		return a.Value.Pointer == b.Value.Pointer
	}
	return false
}

// destroy releases any owned resources held by a pointer attribute.
func (a *Attribute) destroy() {
	if a.Value.Kind == KindPointer && a.Value.Callbacks.Destroy != nil {
		a.Value.Callbacks.Destroy(a.Value.Pointer)
	}
}

// touches reports whether a's range ends exactly where b's begins, or
// vice versa -- the adjacency condition List.Change merges across.
func touches(a, b *Attribute) bool {
	return a.EndIndex == b.StartIndex || b.EndIndex == a.StartIndex
}

// overlaps reports whether [a.StartIndex,a.EndIndex) and
// [b.StartIndex,b.EndIndex) share any byte.
func overlaps(a, b *Attribute) bool {
	return a.StartIndex < b.EndIndex && b.StartIndex < a.EndIndex
}
