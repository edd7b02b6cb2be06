// SPDX-License-Identifier: Unlicense OR MIT

// Package pango implements the core of a Unicode text layout engine: ranged
// attributes, itemization, shaping, line breaking, ellipsization and
// line post-processing, grounded on gioui.org's text package and
// github.com/go-text/typesetting.
package pango

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"

	"github.com/GNOME/pango-sub001/attribute"
)

// Direction is the resolved reading direction of a line or run (spec.md
// §3 "Resolved direction").
type Direction uint8

const (
	LTR Direction = iota
	RTL
	Neutral
)

// Gravity is the glyph orientation axis, composing with Direction to
// produce the line's resolved direction (spec.md GLOSSARY "Gravity").
type Gravity uint8

const (
	GravitySouth Gravity = iota
	GravityEast
	GravityNorth
	GravityWest
	GravityAuto
)

// ItemFlags records per-item boolean properties that affect shaping and
// line breaking (spec.md §3 "Item").
type ItemFlags uint8

const (
	CenteredBaseline ItemFlags = 1 << iota
	IsEllipsis
	NeedHyphen
)

// Analysis is the uniform-property record attached to an Item: everything
// needed to shape it and to decide how it interacts with breaking and
// rendering.
type Analysis struct {
	Font     attribute.FontDescription
	Face     font.Face
	Language string
	Script   language.Script
	Level    uint8 // bidi embedding level
	Gravity  Gravity
	Flags    ItemFlags
	// Extras holds the non-itemization attributes (colors, underline
	// style, letter spacing, rise, ...) active over this item, resolved
	// via attribute.Iterator.GetFont's collectExtras step.
	Extras []*attribute.Attribute
}

// Direction resolves the analysis's effective text direction from its bidi
// embedding level, following the standard even-LTR/odd-RTL convention.
// Full gravity-driven axis switching (east/west gravity rotating the line
// onto a vertical axis) is left to the rendering collaborator: this core
// only tracks Gravity as a tag on the Item, per spec.md §3.
func (a Analysis) Direction() di.Direction {
	if a.Level%2 == 1 {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// Item is a maximal contiguous substring uniform in script, bidi level,
// language, font selection and active "extra" attributes (spec.md §3).
type Item struct {
	Offset     int // byte offset within the shared text blob
	Length     int // byte length
	NumChars   int
	CharOffset int // character offset within the shared text blob
	Analysis   Analysis
}

// End returns the byte offset just past the item.
func (it *Item) End() int { return it.Offset + it.Length }

// split divides it at byte offset cut (relative to it.Offset), returning
// the head [0,cut) and leaving it mutated in place to represent the tail
// [cut,Length). headChars is the rune count of the head, required because
// splitting is always performed at a known rune boundary by the caller.
func (it *Item) split(cut, headChars int) Item {
	head := *it
	head.Length = cut
	head.NumChars = headChars
	it.Offset += cut
	it.Length -= cut
	it.CharOffset += headChars
	it.NumChars -= headChars
	return head
}
