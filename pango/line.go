// SPDX-License-Identifier: Unlicense OR MIT

package pango

import "golang.org/x/image/math/fixed"

// LineFlags records the per-line boolean properties spec.md §3 lists
// alongside a Line's runs.
type LineFlags uint8

const (
	StartsParagraph LineFlags = 1 << iota
	EndsParagraph
	Wrapped
	Hyphenated
	Ellipsized
)

// Line is a list of runs in visual (post-reorder) order, plus the metadata
// needed to relate it back to the shared text blob it was cut from
// (spec.md §3 "Line").
type Line struct {
	Runs []Run

	ByteOffset int
	ByteLength int
	CharOffset int
	CharCount  int

	Direction Direction
	Flags     LineFlags

	Width fixed.Int26_6
}

func (l *Line) has(f LineFlags) bool { return l.Flags&f != 0 }

// ByteEnd returns the byte offset one past the line's covered range.
func (l *Line) ByteEnd() int { return l.ByteOffset + l.ByteLength }
