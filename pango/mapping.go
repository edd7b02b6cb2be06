// SPDX-License-Identifier: Unlicense OR MIT

package pango

import "golang.org/x/image/math/fixed"

// IndexToX locates the run containing byteIndex and distributes x linearly
// across the cluster it falls in, honouring the run's direction (spec.md
// §4.6 "index_to_x"). trailing selects the position just after the
// character at byteIndex rather than just before it.
func IndexToX(line *Line, text string, byteIndex int, trailing bool) fixed.Int26_6 {
	for i := range line.Runs {
		run := &line.Runs[i]
		if byteIndex < run.Item.Offset || byteIndex > run.Item.End() {
			continue
		}
		return xWithinRun(run, text, byteIndex, trailing)
	}
	if len(line.Runs) > 0 {
		return line.Runs[len(line.Runs)-1].EndX
	}
	return 0
}

func xWithinRun(run *Run, text string, byteIndex int, trailing bool) fixed.Int26_6 {
	it := &run.Item
	if it.Length == 0 {
		return run.StartX
	}
	sub := text[it.Offset:it.End()]
	byteToChar := byteToCharTable(sub)
	widths := run.Glyphs.LogWidths(it.Length, it.NumChars, func(b int) int { return byteToChar[b] })
	relByte := byteIndex - it.Offset
	if relByte < 0 {
		relByte = 0
	}
	if relByte > len(sub) {
		relByte = len(sub)
	}
	relChar := byteToChar[relByte]

	var x fixed.Int26_6
	if it.Analysis.Level%2 == 1 {
		for c := it.NumChars - 1; c > relChar; c-- {
			x += widths[c]
		}
		if trailing && relChar < it.NumChars {
			x += widths[relChar]
		}
	} else {
		for c := 0; c < relChar; c++ {
			x += widths[c]
		}
		if trailing && relChar < it.NumChars {
			x += widths[relChar]
		}
	}
	return run.StartX + x
}

// XToIndex scans runs in visual order, locates the cluster containing x,
// and distributes characters linearly within it; exactly on a cluster
// boundary, leading vs. trailing is resolved by the run's direction
// (spec.md §4.6 "x_to_index"). trailing is the number of characters within
// the located cluster to advance past index to reach the clicked point.
func XToIndex(line *Line, text string, x fixed.Int26_6) (index, trailing int) {
	if len(line.Runs) == 0 {
		return 0, 0
	}
	for i := range line.Runs {
		run := &line.Runs[i]
		last := i == len(line.Runs)-1
		if x < run.StartX && i == 0 {
			return run.Item.Offset, 0
		}
		if (x >= run.StartX && x <= run.EndX) || last {
			return xToIndexWithinRun(run, text, x)
		}
	}
	lastRun := &line.Runs[len(line.Runs)-1]
	return lastRun.Item.End(), 0
}

func xToIndexWithinRun(run *Run, text string, x fixed.Int26_6) (index, trailing int) {
	it := &run.Item
	if it.Length == 0 {
		return it.Offset, 0
	}
	sub := text[it.Offset:it.End()]
	byteToChar := byteToCharTable(sub)
	widths := run.Glyphs.LogWidths(it.Length, it.NumChars, func(b int) int { return byteToChar[b] })
	rel := x - run.StartX
	rtl := it.Analysis.Level%2 == 1

	var cum fixed.Int26_6
	for i := 0; i < it.NumChars; i++ {
		c := i
		if rtl {
			c = it.NumChars - 1 - i
		}
		next := cum + widths[c]
		if rel < next || i == it.NumChars-1 {
			byteOff := charToByteOffset(sub, c)
			mid := cum + widths[c]/2
			if rel < mid {
				return it.Offset + byteOff, 0
			}
			if !rtl && rel == next {
				// Exactly on the run's right edge: in LTR this boundary is
				// the leading edge of the position just past the run.
				return it.End(), 0
			}
			return it.Offset + byteOff, 1
		}
		cum = next
	}
	return it.End(), 0
}

// charToByteOffset returns the byte offset of the relChar'th character
// within s.
func charToByteOffset(s string, relChar int) int {
	c := 0
	for i := range s {
		if c == relChar {
			return i
		}
		c++
	}
	return len(s)
}
