// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// LogAttr holds the per-character boolean properties used by line
// breaking, cursor motion and hyphenation (spec.md §3 "Log-attr array").
// A LogAttr array has one entry per character plus a sentinel at the end.
type LogAttr struct {
	LineBreak             bool
	MandatoryBreak        bool
	CharBreak             bool
	White                 bool
	CursorPosition        bool
	WordStart             bool
	WordEnd               bool
	SentenceStart         bool
	SentenceEnd           bool
	BreakInsertsHyphen    bool
	BreakRemovesPreceding bool
}

// mandatoryBreakRunes are the characters that always terminate a line,
// recovered from the BK/CR/LF/NL Unicode line-break classes that
// original_source/pango/pango-attr.c's break.c companion tailors around.
var mandatoryBreakRunes = map[rune]bool{
	'\n': true, '\r': true,
	'\v': true, '\f': true,
	'': true, // NEL
	' ': true, // LINE SEPARATOR
	' ': true, // PARAGRAPH SEPARATOR
}

// ComputeLogAttrs derives the log-attr array for text, once per shared text
// blob (spec.md §3). uax29's grapheme/word/sentence boundary segmenters
// stand in for the external UAX#14 line-break table the itemizer would
// otherwise consult (see DESIGN.md): line-break opportunities are
// approximated at word boundaries, with hard breaks forced at the
// Unicode mandatory-break characters.
func ComputeLogAttrs(text string) []LogAttr {
	nchars := utf8.RuneCountInString(text)
	attrs := make([]LogAttr, nchars+1)

	byteToChar := byteToCharTable(text)

	attrs[0].CursorPosition = true
	attrs[0].CharBreak = true
	attrs[0].WordStart = true
	attrs[0].SentenceStart = true

	data := []byte(text)

	g := graphemes.NewSegmenter(data)
	pos := 0
	for g.Next() {
		pos += len(g.Bytes())
		if ci := byteToChar[pos]; ci < len(attrs) {
			attrs[ci].CursorPosition = true
			attrs[ci].CharBreak = true
		}
	}

	w := words.NewSegmenter(data)
	pos = 0
	for w.Next() {
		tok := w.Bytes()
		start, end := pos, pos+len(tok)
		pos = end
		sc, ec := byteToChar[start], byteToChar[end]
		white := isAllSpace(tok)
		attrs[sc].WordStart = attrs[sc].WordStart || !white
		if ec < len(attrs) {
			attrs[ec].WordEnd = true
			// A line-break opportunity follows every token (word or the
			// whitespace/punctuation between words); mandatory breaks
			// are layered on top below.
			attrs[ec].LineBreak = true
			if white {
				attrs[ec].BreakRemovesPreceding = true
			}
		}
		if white {
			for ci := sc; ci < ec && ci < len(attrs); ci++ {
				attrs[ci].White = true
			}
		}
	}

	s := sentences.NewSegmenter(data)
	pos = 0
	for s.Next() {
		tok := s.Bytes()
		start, end := pos, pos+len(tok)
		pos = end
		sc, ec := byteToChar[start], byteToChar[end]
		attrs[sc].SentenceStart = true
		if ec < len(attrs) {
			attrs[ec].SentenceEnd = true
		}
	}

	for i, r := range text {
		if mandatoryBreakRunes[r] {
			if ci := byteToChar[i] + 1; ci < len(attrs) {
				attrs[ci].MandatoryBreak = true
				attrs[ci].LineBreak = true
			}
		}
	}

	last := &attrs[nchars]
	last.LineBreak = true
	last.MandatoryBreak = true
	last.CursorPosition = true
	last.CharBreak = true
	last.WordEnd = true
	last.SentenceEnd = true
	return attrs
}

func isAllSpace(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if !unicode.IsSpace(r) {
			return false
		}
		b = b[size:]
	}
	return true
}
