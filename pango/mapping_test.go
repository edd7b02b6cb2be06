// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func makeSimpleLTRLine(text string) *Line {
	n := len(text)
	gs := GlyphString{
		Glyphs:      make([]GlyphInfo, n),
		LogClusters: make([]int, n),
	}
	for i := 0; i < n; i++ {
		gs.LogClusters[i] = i
		gs.Glyphs[i] = GlyphInfo{Advance: fixed.I(10), Flags: ClusterStart}
	}
	run := Run{
		Item:   Item{Offset: 0, Length: n, NumChars: n},
		Glyphs: gs,
		StartX: 0,
		EndX:   fixed.I(10 * n),
	}
	return &Line{Runs: []Run{run}, ByteLength: n, CharCount: n}
}

func TestIndexToXLeadingAndTrailing(t *testing.T) {
	line := makeSimpleLTRLine("abc")
	if x := IndexToX(line, "abc", 1, false); x != fixed.I(10) {
		t.Errorf("expected leading edge of 'b' at x=10, got %v", x)
	}
	if x := IndexToX(line, "abc", 1, true); x != fixed.I(20) {
		t.Errorf("expected trailing edge of 'b' at x=20, got %v", x)
	}
}

func TestXToIndexRoundTripsOnClusterBoundaries(t *testing.T) {
	line := makeSimpleLTRLine("abc")
	for _, byteIndex := range []int{0, 1, 2, 3} {
		x := IndexToX(line, "abc", byteIndex, false)
		gotIndex, _ := XToIndex(line, "abc", x)
		if gotIndex != byteIndex {
			t.Errorf("XToIndex(IndexToX(%d)) = %d, want %d", byteIndex, gotIndex, byteIndex)
		}
	}
}

func TestXToIndexPicksNearestHalf(t *testing.T) {
	line := makeSimpleLTRLine("abc")
	// x = 2 is within the first cluster [0,10) and closer to its leading edge.
	index, trailing := XToIndex(line, "abc", fixed.I(2))
	if index != 0 || trailing != 0 {
		t.Errorf("expected (0,0) near the leading edge, got (%d,%d)", index, trailing)
	}
	// x = 8 is within the first cluster and closer to its trailing edge.
	index, trailing = XToIndex(line, "abc", fixed.I(8))
	if index != 0 || trailing != 1 {
		t.Errorf("expected (0,1) near the trailing edge, got (%d,%d)", index, trailing)
	}
}
