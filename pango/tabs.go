// SPDX-License-Identifier: Unlicense OR MIT

package pango

import "golang.org/x/image/math/fixed"

// TabAlign controls how a run following a tab is positioned relative to the
// tab stop (spec.md §4.3).
type TabAlign uint8

const (
	TabLeft TabAlign = iota
	TabRight
	TabCenter
	TabDecimal
)

// TabStop is one configured stop: a position (in Pango units unless the
// owning TabArray says the positions are in pixels), an alignment, and --
// for TabDecimal -- the character runs should align on.
type TabStop struct {
	Position  fixed.Int26_6
	Alignment TabAlign
	Decimal   rune
}

// TabArray is the opaque, ordered tab-stop list consumed by the line
// breaker (spec.md §1 "tab-stop data structures ... consumed as an opaque
// ordered list").
type TabArray struct {
	Stops             []TabStop
	PositionsInPixels bool
}

// DefaultTabWidth is the spacing used when no tab stops are configured.
// LineBreaker.NextLine passes it to TabAt unchanged; it is a fixed value and
// is not derived from any character width or font metric.
const DefaultTabWidth fixed.Int26_6 = 8 * 64 // 8 units in 26.6 fixed point.

// localeDecimal is the decimal point fallen back to when a TabStop carries
// no Decimal of its own (spec.md §4.3 "falling back to the locale's
// decimal"). The locale collaborator itself is out of scope (spec.md §1),
// so this stands in for localeconv()->decimal_point the way
// original_source/pango2/pango-line-breaker.c's ensure_decimal falls back
// when no tab-specific decimal is configured.
const localeDecimal = '.'

// TabAt resolves the stop governing the tab at the given zero-based index
// (spec.md §4.3 "tab_at"): configured stops are used verbatim; past the
// configured count the last gap is repeated; with no stops at all, tabs
// land at multiples of defaultTabWidth.
func (t *TabArray) TabAt(index int, defaultTabWidth fixed.Int26_6) TabStop {
	if t == nil || len(t.Stops) == 0 {
		return TabStop{Position: defaultTabWidth * fixed.Int26_6(index+1), Alignment: TabLeft}
	}
	if index < len(t.Stops) {
		return t.Stops[index]
	}
	last := t.Stops[len(t.Stops)-1]
	if len(t.Stops) == 1 {
		gap := defaultTabWidth
		return TabStop{Position: last.Position + gap*fixed.Int26_6(index-len(t.Stops)+1), Alignment: last.Alignment, Decimal: last.Decimal}
	}
	gap := last.Position - t.Stops[len(t.Stops)-2].Position
	if gap <= 0 {
		gap = defaultTabWidth
	}
	return TabStop{
		Position:  last.Position + gap*fixed.Int26_6(index-len(t.Stops)+1),
		Alignment: last.Alignment,
		Decimal:   last.Decimal,
	}
}

// tabState tracks the single "last tab" inserted into the line currently
// being built, so that a RIGHT/CENTER/DECIMAL stop can be patched as each
// further run's width becomes known (spec.md §4.2 "tab-state record",
// §4.3), mirroring original_source/pango2/pango-line-breaker.c's
// self->last_tab. Only one tabState is ever live: inserting a new tab
// replaces it outright, and a resolved DECIMAL stop clears it early so
// later runs stop perturbing an already-aligned tab.
type tabState struct {
	active      bool
	glyphIndex  int // index of the tab glyph within its run
	runIndex    int // index of the run holding the tab glyph, within the line being built
	x           fixed.Int26_6
	stop        TabStop
	accumulated fixed.Int26_6 // width attributed so far to runs following the tab
	resolved    bool          // true once a decimal match has fixed this tab's width
}

// patchTabWidth returns the tab glyph's advance given the accumulated
// reduction (full run width for RIGHT, half for CENTER, the distance to
// the decimal point for DECIMAL, zero for LEFT or when nothing has
// followed the tab yet), never letting the advance go negative.
func (st *tabState) patchTabWidth(reduction fixed.Int26_6) fixed.Int26_6 {
	advance := st.stop.Position - st.x - reduction
	if advance < 0 {
		advance = 0
	}
	return advance
}

// accumulate folds run (the next run found after the active tab) into st,
// patching the tab glyph in line accordingly, per spec.md §4.3's alignment
// rules. Once a DECIMAL stop's decimal character is matched, st is marked
// resolved so the caller stops feeding it further runs.
func (st *tabState) accumulate(line *Line, text string, run *Run) {
	switch st.stop.Alignment {
	case TabRight:
		st.accumulated += run.Width()
	case TabCenter:
		st.accumulated += run.Width() / 2
	case TabDecimal:
		decimal := st.stop.Decimal
		if decimal == 0 {
			decimal = localeDecimal
		}
		if w, found := decimalPrefixWidth(text, run, decimal); found {
			st.accumulated += w
			st.resolved = true
		} else {
			st.accumulated += run.Width()
		}
	default: // TabLeft
	}
	line.Runs[st.runIndex].Glyphs.Glyphs[st.glyphIndex].Advance = st.patchTabWidth(st.accumulated)
}

// decimalPrefixWidth returns the width from run's start to the midpoint of
// the first character in its text equal to decimal, and whether such a
// character was found (spec.md §4.3 "DECIMAL: reduced by the distance from
// the run's start to the first occurrence of the tab stop's decimal
// character"). Grounded on
// original_source/pango2/pango-line-breaker.c's get_decimal_prefix_width:
// widths accumulate per character until the match, which contributes only
// half its own width so the decimal point itself lands on the stop.
func decimalPrefixWidth(text string, run *Run, decimal rune) (fixed.Int26_6, bool) {
	it := &run.Item
	sub := text[it.Offset:it.End()]
	byteToChar := byteToCharTable(sub)
	widths := run.Glyphs.LogWidths(it.Length, it.NumChars, func(bo int) int { return byteToChar[bo] })

	var width fixed.Int26_6
	c := 0
	for _, r := range sub {
		if c >= len(widths) {
			break
		}
		if r == decimal {
			width += widths[c] / 2
			return width, true
		}
		width += widths[c]
		c++
	}
	return width, false
}
