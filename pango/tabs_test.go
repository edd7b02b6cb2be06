// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

// makeRunWithText builds a one-glyph-per-character LTR run over the byte
// range [offset, offset+len(text)) of some shared blob text, each glyph
// advancing by perChar, so tests can reason about widths by counting
// characters.
func makeRunWithText(offset int, text string, perChar fixed.Int26_6) Run {
	n := len(text)
	gs := GlyphString{
		Glyphs:      make([]GlyphInfo, n),
		LogClusters: make([]int, n),
	}
	for i := 0; i < n; i++ {
		gs.LogClusters[i] = i
		gs.Glyphs[i] = GlyphInfo{Advance: perChar, Flags: ClusterStart}
	}
	return Run{Item: Item{Offset: offset, Length: n, NumChars: n}, Glyphs: gs}
}

func TestDecimalPrefixWidthFindsMatch(t *testing.T) {
	run := makeRunWithText(0, "12.5", fixed.I(10))
	w, found := decimalPrefixWidth("12.5", &run, '.')
	if !found {
		t.Fatal("expected to find the decimal character")
	}
	// "1" and "2" contribute their full width (10 each), "." contributes
	// half its own width (5), per original get_decimal_prefix_width.
	if want := fixed.I(25); w != want {
		t.Errorf("decimalPrefixWidth = %v, want %v", w, want)
	}
}

func TestDecimalPrefixWidthNoMatch(t *testing.T) {
	run := makeRunWithText(0, "1234", fixed.I(10))
	w, found := decimalPrefixWidth("1234", &run, '.')
	if found {
		t.Fatal("expected no decimal character to be found")
	}
	if want := fixed.I(40); w != want {
		t.Errorf("decimalPrefixWidth = %v, want the run's full width %v", w, want)
	}
}

// TestResolveTabsDecimalAlignsOnDecimalPoint exercises the DECIMAL path
// end-to-end: a tab followed by "12.5" should land the tab glyph so the
// decimal point sits on the stop, not simply right-align the whole run.
func TestResolveTabsDecimalAlignsOnDecimalPoint(t *testing.T) {
	tabRun := Run{
		Item:   Item{Offset: 0, Length: 1, NumChars: 1},
		Glyphs: GlyphString{Glyphs: []GlyphInfo{{Flags: ClusterStart}}, LogClusters: []int{0}},
	}
	numRun := makeRunWithText(1, "12.5", fixed.I(10))
	line := &Line{Runs: []Run{tabRun, numRun}}

	stop := TabStop{Position: fixed.I(100), Alignment: TabDecimal, Decimal: '.'}
	marks := []tabMark{{runIndex: 0, stop: stop}}
	resolveTabs(line, "\t12.5", marks)

	gotAdvance := line.Runs[0].Glyphs.Glyphs[0].Advance
	// decimalPrefixWidth("12.5", ...) = 25 (see above), so the tab should
	// advance to 100 - 0 - 25 = 75, landing the decimal point exactly on
	// the stop rather than behaving like TabRight (which would give 60).
	if want := fixed.I(75); gotAdvance != want {
		t.Errorf("decimal tab advance = %v, want %v (a disguised TabRight would give %v)",
			gotAdvance, want, fixed.I(60))
	}
}

func TestResolveTabsDecimalFallsBackToLocaleDecimal(t *testing.T) {
	tabRun := Run{
		Item:   Item{Offset: 0, Length: 1, NumChars: 1},
		Glyphs: GlyphString{Glyphs: []GlyphInfo{{Flags: ClusterStart}}, LogClusters: []int{0}},
	}
	numRun := makeRunWithText(1, "12.5", fixed.I(10))
	line := &Line{Runs: []Run{tabRun, numRun}}

	// Decimal left unset (zero rune): falls back to localeDecimal ('.').
	stop := TabStop{Position: fixed.I(100), Alignment: TabDecimal}
	marks := []tabMark{{runIndex: 0, stop: stop}}
	resolveTabs(line, "\t12.5", marks)

	if want := fixed.I(75); line.Runs[0].Glyphs.Glyphs[0].Advance != want {
		t.Errorf("advance = %v, want %v", line.Runs[0].Glyphs.Glyphs[0].Advance, want)
	}
}

func TestResolveTabsRightAccumulatesAcrossRuns(t *testing.T) {
	tabRun := Run{
		Item:   Item{Offset: 0, Length: 1, NumChars: 1},
		Glyphs: GlyphString{Glyphs: []GlyphInfo{{Flags: ClusterStart}}, LogClusters: []int{0}},
	}
	a := makeRunWithText(1, "ab", fixed.I(10))
	b := makeRunWithText(3, "cd", fixed.I(10))
	line := &Line{Runs: []Run{tabRun, a, b}}

	stop := TabStop{Position: fixed.I(100), Alignment: TabRight}
	marks := []tabMark{{runIndex: 0, stop: stop}}
	resolveTabs(line, "\tabcd", marks)

	// Advance should reflect the combined width of both following runs
	// (40 total), not just the first one.
	if want := fixed.I(60); line.Runs[0].Glyphs.Glyphs[0].Advance != want {
		t.Errorf("advance = %v, want %v", line.Runs[0].Glyphs.Glyphs[0].Advance, want)
	}
}

func TestResolveTabsAdvanceNeverNegative(t *testing.T) {
	tabRun := Run{
		Item:   Item{Offset: 0, Length: 1, NumChars: 1},
		Glyphs: GlyphString{Glyphs: []GlyphInfo{{Flags: ClusterStart}}, LogClusters: []int{0}},
	}
	wide := makeRunWithText(1, "abcdefghij", fixed.I(100))
	line := &Line{Runs: []Run{tabRun, wide}}

	stop := TabStop{Position: fixed.I(10), Alignment: TabRight}
	marks := []tabMark{{runIndex: 0, stop: stop}}
	resolveTabs(line, "\tabcdefghij", marks)

	if line.Runs[0].Glyphs.Glyphs[0].Advance < 0 {
		t.Errorf("expected the tab glyph's advance to never go negative, got %v", line.Runs[0].Glyphs.Glyphs[0].Advance)
	}
}
