// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/GNOME/pango-sub001/attribute"
)

func oneGlyphRun(offset int, text string, level uint8) Run {
	n := len(text)
	gs := GlyphString{Glyphs: make([]GlyphInfo, n), LogClusters: make([]int, n)}
	for i := 0; i < n; i++ {
		gs.LogClusters[i] = i
		gs.Glyphs[i] = GlyphInfo{Advance: fixed.I(10), Flags: ClusterStart}
	}
	return Run{
		Item:   Item{Offset: offset, Length: n, NumChars: n, Analysis: Analysis{Level: level}},
		Glyphs: gs,
	}
}

func TestCollapseTrailingWhitespace(t *testing.T) {
	text := "abc "
	line := &Line{Runs: []Run{oneGlyphRun(0, text, 0)}, Flags: Wrapped, CharCount: len(text)}
	collapseTrailingWhitespace(line, text)
	last := line.Runs[0].Glyphs.Glyphs[3]
	if last.Advance != 0 || last.Flags&EmptyGlyph == 0 {
		t.Errorf("expected the trailing space glyph to be zeroed and marked empty, got %+v", last)
	}
}

func TestCollapseTrailingWhitespaceOnlyWhenWrapped(t *testing.T) {
	text := "abc "
	line := &Line{Runs: []Run{oneGlyphRun(0, text, 0)}, CharCount: len(text)}
	collapseTrailingWhitespace(line, text)
	last := line.Runs[0].Glyphs.Glyphs[3]
	if last.Advance == 0 {
		t.Errorf("expected no collapse on a non-wrapped line")
	}
}

func TestReorderToVisualKeepsLoneRTLRunInPlace(t *testing.T) {
	line := &Line{Runs: []Run{
		oneGlyphRun(0, "ab", 0),
		oneGlyphRun(2, "cd", 1),
		oneGlyphRun(4, "ef", 0),
	}}
	reorderToVisual(line)
	if line.Runs[0].Item.Offset != 0 || line.Runs[1].Item.Offset != 2 || line.Runs[2].Item.Offset != 4 {
		t.Fatalf("expected the lone RTL run to stay in place among LTR neighbors, got order %+v", line.Runs)
	}
	if line.Runs[0].StartX != 0 {
		t.Errorf("expected the first run to start at x=0")
	}
}

func TestReorderToVisualReversesConsecutiveRTLRuns(t *testing.T) {
	line := &Line{Runs: []Run{
		oneGlyphRun(0, "A", 1),
		oneGlyphRun(1, "B", 1),
	}}
	reorderToVisual(line)
	if line.Runs[0].Item.Offset != 1 || line.Runs[1].Item.Offset != 0 {
		t.Errorf("expected two consecutive RTL runs to reverse visually, got %+v", line.Runs)
	}
}

func TestApplyBaselineShiftsUsesRise(t *testing.T) {
	run := oneGlyphRun(0, "a", 0)
	run.Item.Analysis.Extras = []*attribute.Attribute{
		{Type: attribute.Rise, Value: attribute.Value{Kind: attribute.KindInt, Int: 320}},
	}
	line := &Line{Runs: []Run{run}}
	applyBaselineShifts(line)
	if line.Runs[0].YOffset != 320 {
		t.Errorf("expected YOffset to equal the rise value, got %v", line.Runs[0].YOffset)
	}
}

func TestRedistributeLetterSpacingTrimsLineEnds(t *testing.T) {
	run := oneGlyphRun(0, "ab", 0)
	run.Item.Analysis.Extras = []*attribute.Attribute{
		{Type: attribute.LetterSpacing, Value: attribute.Value{Kind: attribute.KindInt, Int: 100}},
	}
	line := &Line{Runs: []Run{run}}
	redistributeLetterSpacing(line)
	if line.Runs[0].Glyphs.Glyphs[0].Advance != fixed.I(10)+100-50 {
		t.Errorf("expected the leading glyph's extra half-spacing trimmed, got %v", line.Runs[0].Glyphs.Glyphs[0].Advance)
	}
	last := line.Runs[0].Glyphs.Glyphs[1]
	if last.Advance != fixed.I(10)+100-50 {
		t.Errorf("expected the trailing glyph's extra half-spacing trimmed, got %v", last.Advance)
	}
}
