// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"

	"github.com/go-text/typesetting/language"

	"github.com/GNOME/pango-sub001/attribute"
)

// segment is an itemization candidate: a byte range uniform in
// analysis-affecting attributes, bidi level and script, plus the extra
// (non-analysis-affecting) attributes active over it.
type segment struct {
	start, end int
	charOffset int
	desc       attribute.FontDescription
	lang       string
	extras     []*attribute.Attribute
	level      uint8
	script     language.Script
}

// Itemize splits text into a logically-ordered slice of Items, each uniform
// in script, bidi embedding level, and font/language selection (spec.md
// §4.1 "Itemization"). baseDir seeds the paragraph's overall embedding
// direction for runs that carry no strong-direction character. attrs
// supplies font/language overrides and extras (nil is treated as an empty
// list); fonts resolves each segment's concrete face.
func Itemize(text string, baseDir Direction, attrs *attribute.List, fonts FontMap) []Item {
	if text == "" {
		return nil
	}
	segs := splitByAttrs(text, attrs)
	segs = splitSegmentsByBidi(text, segs, baseDir)
	segs = splitSegmentsByScript(text, segs)

	items := make([]Item, 0, len(segs))
	for _, seg := range segs {
		if seg.start >= seg.end {
			continue
		}
		f, _ := fonts.Resolve(seg.desc, seg.lang)
		items = append(items, Item{
			Offset:     seg.start,
			Length:     seg.end - seg.start,
			NumChars:   utf8.RuneCountInString(text[seg.start:seg.end]),
			CharOffset: seg.charOffset,
			Analysis: Analysis{
				Font:     seg.desc,
				Face:     f,
				Language: seg.lang,
				Script:   seg.script,
				Level:    seg.level,
				Extras:   seg.extras,
			},
		})
	}
	return items
}

// splitByAttrs walks attrs and produces one segment per iterator boundary,
// each carrying the font description, language and extras active over it
// (spec.md §4.1 "get_font" feeding itemization).
func splitByAttrs(text string, attrs *attribute.List) []segment {
	if attrs == nil {
		attrs = attribute.New()
	}
	byteToChar := byteToCharTable(text)
	it := attrs.NewIterator()
	var segs []segment
	for {
		s, e := it.Range()
		start, end := int(s), int(e)
		if e == attribute.ToTextEnd || end > len(text) {
			end = len(text)
		}
		if start < end {
			desc, lang, extras := it.GetFont()
			segs = append(segs, segment{
				start:      start,
				end:        end,
				charOffset: byteToChar[start],
				desc:       desc,
				lang:       lang,
				extras:     extras,
			})
		}
		if !it.Next() {
			break
		}
	}
	return segs
}

// splitSegmentsByBidi further divides each segment along Unicode bidi run
// boundaries, recording each run's embedding parity as its Level. Adapted
// from gioui.org/text's splitBidi (text/gotext.go): unlike that version,
// this operates directly on the original UTF-8 bytes rather than a
// rune-indexed copy, since golang.org/x/text/unicode/bidi already reports
// run positions in the byte offsets SetString was given.
func splitSegmentsByBidi(text string, segs []segment, baseDir Direction) []segment {
	def := bidi.LeftToRight
	if baseDir == RTL {
		def = bidi.RightToLeft
	}
	var out []segment
	var para bidi.Paragraph
	for _, seg := range segs {
		sub := text[seg.start:seg.end]
		if sub == "" {
			out = append(out, seg)
			continue
		}
		if err := para.SetString(sub, bidi.DefaultDirection(def)); err != nil {
			piece := seg
			if def == bidi.RightToLeft {
				piece.level = 1
			}
			out = append(out, piece)
			continue
		}
		order, err := para.Order()
		if err != nil || order.NumRuns() == 0 {
			piece := seg
			if def == bidi.RightToLeft {
				piece.level = 1
			}
			out = append(out, piece)
			continue
		}
		charOffset := seg.charOffset
		for i := 0; i < order.NumRuns(); i++ {
			run := order.Run(i)
			rs, re := run.Pos()
			piece := seg
			piece.start = seg.start + rs
			piece.end = seg.start + re
			piece.charOffset = charOffset
			charOffset += utf8.RuneCountInString(sub[rs:re])
			if run.Direction() == bidi.RightToLeft {
				piece.level = 1
			} else {
				piece.level = 0
			}
			out = append(out, piece)
		}
	}
	return out
}

// splitSegmentsByScript further divides each segment on Unicode script
// boundaries, adapted from gioui.org/text's splitByScript (text/gotext.go):
// leading common (script-neutral) characters join the first real script
// that follows them, and later common characters stay with the script
// before them, so punctuation and digits don't force a script change on
// their own.
func splitSegmentsByScript(text string, segs []segment) []segment {
	var out []segment
	for _, seg := range segs {
		sub := text[seg.start:seg.end]
		if sub == "" {
			out = append(out, seg)
			continue
		}
		type runePos struct {
			byteOff int
			r       rune
		}
		positions := make([]runePos, 0, len(sub))
		for i, r := range sub {
			positions = append(positions, runePos{i, r})
		}
		firstNonCommon := 0
		for i, p := range positions {
			if language.LookupScript(p.r) != language.Common {
				firstNonCommon = i
				break
			}
		}
		curScript := language.LookupScript(positions[firstNonCommon].r)
		curStart := 0
		charOffset := seg.charOffset
		emit := func(endByte int) {
			if endByte <= curStart {
				return
			}
			piece := seg
			piece.start = seg.start + curStart
			piece.end = seg.start + endByte
			piece.script = curScript
			piece.charOffset = charOffset
			charOffset += utf8.RuneCountInString(sub[curStart:endByte])
			out = append(out, piece)
		}
		for i := firstNonCommon + 1; i < len(positions); i++ {
			sc := language.LookupScript(positions[i].r)
			if sc == language.Common || sc == curScript {
				continue
			}
			emit(positions[i].byteOff)
			curStart = positions[i].byteOff
			curScript = sc
		}
		emit(len(sub))
	}
	return out
}
