// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"testing"

	"github.com/GNOME/pango-sub001/attribute"
)

func TestShapeItemFallsBackWithoutFace(t *testing.T) {
	text := "hi"
	it := &Item{Offset: 0, Length: len(text), NumChars: len([]rune(text))}
	s := NewShaper()
	gs := s.ShapeItem(it, text, 0)
	if len(gs.Glyphs) != 2 {
		t.Fatalf("expected one fallback glyph per character, got %d", len(gs.Glyphs))
	}
	if gs.Glyphs[0].Flags&ClusterStart == 0 {
		t.Errorf("expected the first fallback glyph to start a cluster")
	}
}

func TestShapeItemAppliesTextTransform(t *testing.T) {
	text := "Hello"
	it := &Item{
		Offset: 0, Length: len(text), NumChars: len([]rune(text)),
		Analysis: Analysis{
			Extras: []*attribute.Attribute{
				{Type: attribute.TextTransform, Value: attribute.Value{Kind: attribute.KindInt, Int: textTransformUpper}},
			},
		},
	}
	got := applyTextTransform(it.Analysis.Extras, text[it.Offset:it.End()])
	if got != "HELLO" {
		t.Errorf("expected uppercase transform, got %q", got)
	}
}

func TestShapeItemAppendsHyphenWhenFlagged(t *testing.T) {
	text := "break"
	it := &Item{
		Offset: 0, Length: len(text), NumChars: len([]rune(text)),
		Analysis: Analysis{Flags: NeedHyphen},
	}
	s := NewShaper()
	gs := s.ShapeItem(it, text, 0)
	if len(gs.Glyphs) != len([]rune(text))+1 {
		t.Fatalf("expected one extra glyph for the inserted hyphen, got %d glyphs", len(gs.Glyphs))
	}
}
