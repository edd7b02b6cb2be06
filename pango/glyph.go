// SPDX-License-Identifier: Unlicense OR MIT

package pango

import "golang.org/x/image/math/fixed"

// GlyphInfoFlags marks per-glyph boolean properties.
type GlyphInfoFlags uint8

const (
	// ClusterStart marks the first glyph of a cluster; EmptyGlyph marks a
	// zero-width placeholder glyph (e.g. a collapsed trailing space).
	ClusterStart GlyphInfoFlags = 1 << iota
	EmptyGlyph
)

// GlyphInfo is one shaped glyph: an identifier, its advance, its
// positional offsets, and cluster-membership flags (spec.md §3
// "Glyph string").
type GlyphInfo struct {
	GlyphID  uint32
	Advance  fixed.Int26_6
	XOffset  fixed.Int26_6
	YOffset  fixed.Int26_6
	Flags    GlyphInfoFlags
}

// GlyphString holds the shaped output of one Item: parallel arrays of glyph
// info and log-cluster indices. LogClusters[i] is the byte offset
// (relative to the owning item's Offset) of the first character of the
// cluster Glyphs[i] belongs to.
type GlyphString struct {
	Glyphs      []GlyphInfo
	LogClusters []int
}

// Width returns the sum of every glyph's advance.
func (g *GlyphString) Width() fixed.Int26_6 {
	var w fixed.Int26_6
	for _, gi := range g.Glyphs {
		w += gi.Advance
	}
	return w
}

// LogWidths derives one approximate per-character advance width from g by
// evenly dividing each cluster's total advance across the characters it
// represents (spec.md GLOSSARY "Log-widths"). numChars is the item's
// character count; byteToChar maps a byte offset relative to the item
// (including itemLength) to its character index, needed to know how many
// characters share a cluster.
func (g *GlyphString) LogWidths(itemLength, numChars int, byteToChar func(byteOffset int) int) []fixed.Int26_6 {
	widths := make([]fixed.Int26_6, numChars)
	if len(g.Glyphs) == 0 || numChars == 0 {
		return widths
	}
	// Group glyphs by cluster (consecutive glyphs sharing a LogClusters
	// value), then spread the cluster's total advance evenly across the
	// characters the cluster's byte range covers.
	i := 0
	for i < len(g.Glyphs) {
		clusterByte := g.LogClusters[i]
		j := i
		var total fixed.Int26_6
		for j < len(g.Glyphs) && g.LogClusters[j] == clusterByte {
			total += g.Glyphs[j].Advance
			j++
		}
		nextByte := itemLength
		if j < len(g.Glyphs) {
			nextByte = g.LogClusters[j]
		}
		startChar := byteToChar(clusterByte)
		endChar := byteToChar(nextByte)
		if endChar <= startChar {
			endChar = startChar + 1
		}
		per := total / fixed.Int26_6(endChar-startChar)
		for c := startChar; c < endChar && c < numChars; c++ {
			widths[c] = per
		}
		// Assign any rounding remainder to the final character in the
		// cluster so the sum of LogWidths still equals the cluster advance.
		if endChar-1 < numChars && endChar > startChar {
			widths[endChar-1] += total - per*fixed.Int26_6(endChar-startChar)
		}
		i = j
	}
	return widths
}

// Run pairs an Item with its shaped GlyphString and the X/Y offsets at
// which it should be drawn within its line (spec.md §3 "Run / glyph item").
type Run struct {
	Item    Item
	Glyphs  GlyphString
	StartX  fixed.Int26_6
	EndX    fixed.Int26_6
	YOffset fixed.Int26_6
}

// Width returns the run's total advance.
func (r *Run) Width() fixed.Int26_6 {
	return r.Glyphs.Width()
}
