// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"

	"github.com/GNOME/pango-sub001/attribute"
)

// ShapeFlags mirrors the flag argument to the shape() collaborator call
// (spec.md §6).
type ShapeFlags uint8

const (
	// RoundPositions rounds advances and offsets to integer device units.
	RoundPositions ShapeFlags = 1 << iota
)

// textTransform nick values, matching attribute/serialize.go's TextTransform
// nick table order (none, lowercase, uppercase, capitalize).
const (
	textTransformNone = iota
	textTransformLower
	textTransformUpper
	textTransformCapitalize
)

// Shaper invokes github.com/go-text/typesetting's HarfBuzz-backed shaper to
// turn an Item's text into a GlyphString, applying text-transform and
// hyphen-insertion first and falling back to a synthetic per-character
// glyph string when shaping yields nothing for non-empty input (spec.md
// §7). Grounded on gioui.org/text's shaperImpl.shapeText (text/gotext.go),
// adapted from its rune-slice document model to this package's
// byte-offset Item/GlyphString model.
type Shaper struct {
	hb     shaping.HarfbuzzShaper
	warned map[string]bool
}

// NewShaper returns a ready-to-use Shaper.
func NewShaper() *Shaper {
	return &Shaper{warned: make(map[string]bool)}
}

// ShapeItem shapes the text it covers within the owning blob's text,
// returning a GlyphString whose LogClusters are byte offsets relative to
// it.Offset. If it.Analysis.Flags carries NeedHyphen, a hyphen character is
// appended to the shaped text (spec.md §4.2 "Hyphenation reshaping").
func (s *Shaper) ShapeItem(it *Item, text string, flags ShapeFlags) GlyphString {
	raw := text[it.Offset:it.End()]
	raw = applyTextTransform(it.Analysis.Extras, raw)
	if it.Analysis.Flags&NeedHyphen != 0 {
		raw += "‐"
	}
	if raw == "" {
		return GlyphString{}
	}
	runes := []rune(raw)
	runeStart := runeByteOffsets(raw)

	face := it.Analysis.Face
	if face == nil {
		return s.fallback(raw, runeStart)
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: it.Analysis.Direction(),
		Face:      face,
		Size:      fixed.I(int(it.Analysis.Font.Size)),
		Script:    it.Analysis.Script,
	}
	if it.Analysis.Language != "" {
		input.Language = language.NewLanguage(it.Analysis.Language)
	}
	out := s.hb.Shape(input)
	if len(out.Glyphs) == 0 {
		s.warnOnce(it.Analysis.Font)
		return s.fallback(raw, runeStart)
	}
	gs := toGlyphString(out, runeStart)
	if it.Analysis.Level%2 == 1 && !glyphsAreRTLOrdered(gs) {
		warnf("shaper produced LTR-ordered glyphs for an RTL item, reversing")
		reverseGlyphs(&gs)
	}
	if flags&RoundPositions != 0 {
		roundGlyphs(&gs)
	}
	return gs
}

// titleCaser upper-cases the first letter of each word and leaves the rest
// of the word untouched, matching original_source/pango/shape.c's
// PANGO_TEXT_TRANSFORM_CAPITALIZE (which only calls g_unichar_totitle on
// characters where log_attrs[i].is_word_start holds). cases.NoLower keeps
// it from also lowercasing the remainder of each word the way a plain
// title-case transform would.
var titleCaser = cases.Title(xlanguage.Und, cases.NoLower)

// applyTextTransform implements the TextTransform attribute (spec.md §1
// "Supplemented features", recovered from PANGO_ATTR_TEXT_TRANSFORM in
// original_source/pango/pango-attr.c).
func applyTextTransform(extras []*attribute.Attribute, s string) string {
	for _, a := range extras {
		if a.Type != attribute.TextTransform {
			continue
		}
		switch a.Value.Int {
		case textTransformLower:
			return strings.ToLower(s)
		case textTransformUpper:
			return strings.ToUpper(s)
		case textTransformCapitalize:
			return titleCaser.String(s)
		}
	}
	return s
}

// runeByteOffsets returns, for each rune in s, its byte offset within s,
// plus a final entry equal to len(s).
func runeByteOffsets(s string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))
	return offsets
}

// toGlyphString converts a shaping.Output into our GlyphString, remapping
// each glyph's rune-indexed cluster to a byte offset via runeStart.
func toGlyphString(out shaping.Output, runeStart []int) GlyphString {
	gs := GlyphString{
		Glyphs:      make([]GlyphInfo, len(out.Glyphs)),
		LogClusters: make([]int, len(out.Glyphs)),
	}
	lastCluster := -1
	for i, g := range out.Glyphs {
		byteOff := 0
		if g.ClusterIndex < len(runeStart) {
			byteOff = runeStart[g.ClusterIndex]
		}
		gs.LogClusters[i] = byteOff
		gs.Glyphs[i] = GlyphInfo{
			GlyphID: uint32(g.GlyphID),
			Advance: g.XAdvance,
			XOffset: g.XOffset,
			YOffset: g.YOffset,
		}
		if byteOff != lastCluster {
			gs.Glyphs[i].Flags |= ClusterStart
			lastCluster = byteOff
		}
	}
	return gs
}

// fallback builds a synthetic one-glyph-per-character GlyphString when the
// real shaper cannot help: a whitespace character gets a zero-advance
// EmptyGlyph, every other character a glyph with a fixed 10-unit
// placeholder advance (the font's real extents are an external-collaborator
// detail this core does not own, so they are not consulted).
func (s *Shaper) fallback(raw string, runeStart []int) GlyphString {
	n := len(runeStart) - 1
	gs := GlyphString{
		Glyphs:      make([]GlyphInfo, n),
		LogClusters: make([]int, n),
	}
	const placeholderAdvance fixed.Int26_6 = 10 * 64
	i := 0
	for _, r := range raw {
		gs.LogClusters[i] = runeStart[i]
		gs.Glyphs[i] = GlyphInfo{
			Flags: ClusterStart | EmptyGlyph,
		}
		if !unicode.IsSpace(r) {
			gs.Glyphs[i].Advance = placeholderAdvance
			gs.Glyphs[i].Flags &^= EmptyGlyph
		}
		i++
	}
	return gs
}

func (s *Shaper) warnOnce(desc attribute.FontDescription) {
	key := desc.Family + "/" + desc.Style + "/" + desc.Stretch
	if s.warned[key] {
		return
	}
	s.warned[key] = true
	warnf("shaping produced zero glyphs for font %q, falling back", key)
}

// glyphsAreRTLOrdered reports whether gs's log-clusters are non-increasing,
// the storage order pango expects for an RTL item.
func glyphsAreRTLOrdered(gs GlyphString) bool {
	for i := 1; i < len(gs.LogClusters); i++ {
		if gs.LogClusters[i] > gs.LogClusters[i-1] {
			return false
		}
	}
	return true
}

func reverseGlyphs(gs *GlyphString) {
	n := len(gs.Glyphs)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		gs.Glyphs[i], gs.Glyphs[j] = gs.Glyphs[j], gs.Glyphs[i]
		gs.LogClusters[i], gs.LogClusters[j] = gs.LogClusters[j], gs.LogClusters[i]
	}
}

func roundGlyphs(gs *GlyphString) {
	for i := range gs.Glyphs {
		g := &gs.Glyphs[i]
		g.Advance = fixed.I(g.Advance.Round())
		g.XOffset = fixed.I(g.XOffset.Round())
		g.YOffset = fixed.I(g.YOffset.Round())
	}
}
