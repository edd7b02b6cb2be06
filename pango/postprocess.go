// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/math/fixed"

	"github.com/GNOME/pango-sub001/attribute"
)

// PostProcess applies the fixed sequence of line post-processing steps
// (spec.md §4.5) to a freshly assembled line, in order: missing-hyphen
// fix, trailing-whitespace collapse, bidi reorder, baseline shifts,
// ellipsization (via ellipsizeFn, nil if disabled), letter-spacing
// redistribution. Step 7, "reapply non-shaping render attributes", needs no
// separate action here: splitByAttrs (itemize.go) already segments items at
// every attribute boundary, not only itemization-affecting ones, so each
// run's Item.Analysis.Extras already carries exactly the render attributes
// active over it.
func PostProcess(line *Line, text string, logAttrs []LogAttr, shaper *Shaper, ellipsizeFn func(*Line)) {
	fixMissingHyphen(line, text, logAttrs, shaper)
	collapseTrailingWhitespace(line, text)
	reorderToVisual(line)
	applyBaselineShifts(line)
	if ellipsizeFn != nil {
		ellipsizeFn(line)
	}
	redistributeLetterSpacing(line)
}

// fixMissingHyphen implements spec.md §4.5 step 1: if the line ends where
// break_inserts_hyphen holds but the last run's item doesn't carry
// NeedHyphen, set the flag and reshape.
func fixMissingHyphen(line *Line, text string, logAttrs []LogAttr, shaper *Shaper) {
	if len(line.Runs) == 0 {
		return
	}
	endChar := line.CharOffset + line.CharCount
	if endChar >= len(logAttrs) || !logAttrs[endChar].BreakInsertsHyphen {
		return
	}
	last := &line.Runs[len(line.Runs)-1]
	if last.Item.Analysis.Flags&NeedHyphen != 0 {
		return
	}
	last.Item.Analysis.Flags |= NeedHyphen
	last.Glyphs = shaper.ShapeItem(&last.Item, text, 0)
	line.Flags |= Hyphenated
}

// collapseTrailingWhitespace implements spec.md §4.5 step 2: for a wrapped
// line whose final glyph is a single whitespace character, zero its advance
// and mark it empty.
func collapseTrailingWhitespace(line *Line, text string) {
	if !line.has(Wrapped) || len(line.Runs) == 0 {
		return
	}
	last := &line.Runs[len(line.Runs)-1]
	n := len(last.Glyphs.Glyphs)
	if n == 0 {
		return
	}
	gi := n - 1
	absByte := last.Item.Offset + last.Glyphs.LogClusters[gi]
	if absByte >= len(text) {
		return
	}
	r, _ := utf8.DecodeRuneInString(text[absByte:])
	if !unicode.IsSpace(r) || r == ' ' {
		return
	}
	last.Glyphs.Glyphs[gi].Advance = 0
	last.Glyphs.Glyphs[gi].Flags |= EmptyGlyph
}

// reorderToVisual implements spec.md §4.5 step 3, reordering line.Runs from
// logical to visual order with the standard recursive minimum-level
// algorithm, then recomputing each run's StartX/EndX.
func reorderToVisual(line *Line) {
	order := visualOrder(line.Runs)
	visual := make([]Run, len(line.Runs))
	for i, idx := range order {
		visual[i] = line.Runs[idx]
	}
	line.Runs = visual
	var x fixed.Int26_6
	for i := range line.Runs {
		line.Runs[i].StartX = x
		x += line.Runs[i].Width()
		line.Runs[i].EndX = x
	}
	line.Width = x
}

// visualOrder computes the visual permutation of runs by repeatedly
// reversing maximal spans at or above each embedding level, from the
// highest level down to the lowest odd level present (the standard
// Unicode bidirectional reordering rule, UAX#9 L2).
func visualOrder(runs []Run) []int {
	n := len(runs)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n == 0 {
		return order
	}
	maxLevel, minOdd := 0, -1
	for _, r := range runs {
		lvl := int(r.Item.Analysis.Level)
		if lvl > maxLevel {
			maxLevel = lvl
		}
		if lvl%2 == 1 && (minOdd == -1 || lvl < minOdd) {
			minOdd = lvl
		}
	}
	if minOdd == -1 {
		return order
	}
	for level := maxLevel; level >= minOdd; level-- {
		i := 0
		for i < n {
			if int(runs[order[i]].Item.Analysis.Level) >= level {
				j := i
				for j < n && int(runs[order[j]].Item.Analysis.Level) >= level {
					j++
				}
				for a, b := i, j-1; a < b; a, b = a+1, b-1 {
					order[a], order[b] = order[b], order[a]
				}
				i = j
			} else {
				i++
			}
		}
	}
	return order
}

// applyBaselineShifts implements spec.md §4.5 step 4. Because splitByAttrs
// already cuts items at every attribute boundary, a run's Extras hold every
// Rise/BaselineShift attribute active over it (collectExtras keeps all
// instances of these types), so summing them gives the same offset a
// push-at-start/pop-at-end stack would: no further push/pop accounting is
// needed here. Full
// SUPERSCRIPT/SUBSCRIPT resolution via font OT metrics is deferred to the
// font-backend collaborator, which this core does not own.
func applyBaselineShifts(line *Line) {
	for i := range line.Runs {
		run := &line.Runs[i]
		var y fixed.Int26_6
		for _, a := range run.Item.Analysis.Extras {
			switch a.Type {
			case attribute.Rise, attribute.BaselineShift:
				y += fixed.Int26_6(a.Value.Int)
			}
		}
		run.YOffset = y
	}
}

// redistributeLetterSpacing implements spec.md §4.5 step 6: the shaper adds
// no letter spacing, so this step adds the LetterSpacing value to every
// glyph's advance and shifts each glyph right by half of it, leaving half
// the spacing on each side; the outer half-spacing at the very start and
// end of the line is then trimmed so the line's extent matches its
// alignment box.
func redistributeLetterSpacing(line *Line) {
	for i := range line.Runs {
		run := &line.Runs[i]
		var spacing fixed.Int26_6
		for _, a := range run.Item.Analysis.Extras {
			if a.Type == attribute.LetterSpacing {
				spacing = fixed.Int26_6(a.Value.Int)
			}
		}
		if spacing == 0 || len(run.Glyphs.Glyphs) == 0 {
			continue
		}
		half := spacing / 2
		for g := range run.Glyphs.Glyphs {
			run.Glyphs.Glyphs[g].XOffset += half
			run.Glyphs.Glyphs[g].Advance += spacing
		}
		if i == 0 {
			run.Glyphs.Glyphs[0].XOffset -= half
			run.Glyphs.Glyphs[0].Advance -= half
		}
		if i == len(line.Runs)-1 {
			last := len(run.Glyphs.Glyphs) - 1
			run.Glyphs.Glyphs[last].Advance -= half
		}
	}
}
