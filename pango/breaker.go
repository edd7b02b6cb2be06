// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"unicode/utf8"

	"golang.org/x/image/math/fixed"

	"github.com/GNOME/pango-sub001/attribute"
)

// WrapMode selects which log-attr bit governs where a line may break
// (spec.md §4.2 "can_break_at").
type WrapMode uint8

const (
	WrapWord WrapMode = iota
	WrapChar
	WrapWordChar
)

// blob is one queued add_text call: its text, attributes, and the
// itemization/log-attr state materialized lazily on first use, plus how
// much of it NextLine has already consumed (spec.md §4.2 "State").
type blob struct {
	text  string
	attrs *attribute.List

	materialized bool
	items        []Item
	logAttrs     []LogAttr
	dir          Direction

	consumedBytes int
	consumedChars int
}

func (bl *blob) materialize(fonts FontMap, baseDir Direction) {
	if bl.materialized {
		return
	}
	bl.logAttrs = ComputeLogAttrs(bl.text)
	items := Itemize(bl.text, baseDir, bl.attrs, fonts)
	bl.items = explodeSeparators(bl.text, items)
	bl.dir = baseDir
	if baseDir == Neutral {
		bl.dir = LTR
		for _, it := range bl.items {
			if it.Analysis.Level%2 == 1 {
				bl.dir = RTL
				break
			}
		}
	}
	bl.materialized = true
}

func (bl *blob) remaining() bool {
	if !bl.materialized {
		return len(bl.text) > 0
	}
	return len(bl.items) > 0
}

func (bl *blob) consume(nbytes, nchars int) {
	bl.consumedBytes += nbytes
	bl.consumedChars += nchars
}

// isBreakerControlRune identifies the characters that the line breaker
// treats specially rather than shaping as ordinary text (spec.md §4.2:
// tab items, the line separator, and paragraph separators).
func isBreakerControlRune(r rune) bool {
	return r == '\t' || r == ' ' || isParagraphSeparatorRune(r)
}

func isParagraphSeparatorRune(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '', ' ':
		return true
	}
	return false
}

// explodeSeparators splits any item whose text contains an embedded tab,
// line separator, or paragraph separator into multiple items so that each
// such character always arrives at the breaker's main loop as its own
// single-character item, regardless of how script/bidi splitting grouped
// it with neighboring text.
func explodeSeparators(text string, items []Item) []Item {
	var out []Item
	for _, it := range items {
		sub := text[it.Offset:it.End()]
		hasControl := false
		for _, r := range sub {
			if isBreakerControlRune(r) {
				hasControl = true
				break
			}
		}
		if !hasControl {
			out = append(out, it)
			continue
		}
		start := 0
		charOff := it.CharOffset
		emit := func(s, e int) {
			if s >= e {
				return
			}
			piece := it
			piece.Offset = it.Offset + s
			piece.Length = e - s
			piece.NumChars = utf8.RuneCountInString(sub[s:e])
			piece.CharOffset = charOff
			charOff += piece.NumChars
			out = append(out, piece)
		}
		for i, r := range sub {
			if isBreakerControlRune(r) {
				emit(start, i)
				size := utf8.RuneLen(r)
				emit(i, i+size)
				start = i + size
			}
		}
		emit(start, len(sub))
	}
	return out
}

// tabMark remembers where in a line-in-progress a tab run landed and which
// configured stop governs it, so resolveTabs can patch its advance once the
// following run's width is known (spec.md §4.3).
type tabMark struct {
	runIndex int
	stop     TabStop
}

// LineBreaker is the stateful, pull-driven consumer of itemized text
// described in spec.md §4.2: callers queue paragraphs with AddText and pull
// lines one at a time with NextLine.
type LineBreaker struct {
	fontMap FontMap
	shaper  *Shaper
	baseDir Direction
	tabs    *TabArray

	blobs []*blob

	lastLine          *Line
	lastLineBlob      *blob
	lastLineWasPopped bool
	lastLineBytesPre  int
	lastLineCharsPre  int
	lastLineItemsPre  []Item
}

// New returns a LineBreaker that resolves fonts via fontMap.
func New(fontMap FontMap) *LineBreaker {
	return &LineBreaker{fontMap: fontMap, shaper: NewShaper(), baseDir: LTR}
}

// SetBaseDir sets the paragraph base direction applied to text queued by
// subsequent AddText calls.
func (b *LineBreaker) SetBaseDir(dir Direction) { b.baseDir = dir }

// SetTabs installs the tab-stop list used by subsequent lines.
func (b *LineBreaker) SetTabs(tabs *TabArray) { b.tabs = tabs }

// AddText queues text, with attrs active over it, as a pending paragraph
// (spec.md §4.2 "add_text"). Multiple queued texts are processed in order.
func (b *LineBreaker) AddText(text string, attrs *attribute.List) {
	b.blobs = append(b.blobs, &blob{text: text, attrs: attrs})
}

func (b *LineBreaker) frontBlob() *blob {
	for len(b.blobs) > 0 {
		bl := b.blobs[0]
		bl.materialize(b.fontMap, b.baseDir)
		if bl.remaining() {
			return bl
		}
		b.blobs = b.blobs[1:]
	}
	return nil
}

// HasLine reports whether any unprocessed text remains queued.
func (b *LineBreaker) HasLine() bool {
	return b.frontBlob() != nil
}

// GetDirection returns the resolved direction of the next line to be
// produced.
func (b *LineBreaker) GetDirection() Direction {
	if bl := b.frontBlob(); bl != nil {
		return bl.dir
	}
	return LTR
}

// NextLine produces the next line at most width wide (width < 0 means
// unbounded), using wrap to decide where mid-item breaks are legal and
// ellipsize to shrink a too-wide completed line (spec.md §4.2 "next_line").
func (b *LineBreaker) NextLine(width fixed.Int26_6, wrap WrapMode, ellipsize EllipsizeMode) (*Line, bool) {
	bl := b.frontBlob()
	if bl == nil {
		return nil, false
	}

	b.lastLineBlob = bl
	b.lastLineBytesPre = bl.consumedBytes
	b.lastLineCharsPre = bl.consumedChars
	b.lastLineItemsPre = append([]Item(nil), bl.items...)
	b.lastLineWasPopped = false

	line := &Line{ByteOffset: bl.consumedBytes, CharOffset: bl.consumedChars, Direction: bl.dir}
	if bl.consumedBytes == 0 {
		line.Flags |= StartsParagraph
	}

	unbounded := width < 0
	remaining := width
	var tabs []tabMark
	tabCount := 0

	for len(bl.items) > 0 {
		it := &bl.items[0]
		text := bl.text[it.Offset:it.End()]

		if r, size := utf8.DecodeRuneInString(text); it.Length > 0 && size == len(text) {
			switch {
			case r == ' ':
				gs := b.shaper.ShapeItem(it, bl.text, 0)
				line.Runs = append(line.Runs, Run{Item: *it, Glyphs: gs})
				bl.consume(it.Length, it.NumChars)
				bl.items = bl.items[1:]
				goto lineDone
			case isParagraphSeparatorRune(r):
				bl.consume(it.Length, it.NumChars)
				bl.items = bl.items[1:]
				line.Flags |= EndsParagraph
				goto lineDone
			case r == '\t':
				stop := b.tabs.TabAt(tabCount, DefaultTabWidth)
				tabCount++
				gs := GlyphString{Glyphs: []GlyphInfo{{Flags: ClusterStart}}, LogClusters: []int{0}}
				line.Runs = append(line.Runs, Run{Item: *it, Glyphs: gs})
				tabs = append(tabs, tabMark{runIndex: len(line.Runs) - 1, stop: stop})
				bl.consume(it.Length, it.NumChars)
				bl.items = bl.items[1:]
				continue
			}
		}

		gs := b.shaper.ShapeItem(it, bl.text, 0)
		w := gs.Width()
		if unbounded || w <= remaining {
			line.Runs = append(line.Runs, Run{Item: *it, Glyphs: gs})
			if !unbounded {
				remaining -= w
			}
			bl.consume(it.Length, it.NumChars)
			bl.items = bl.items[1:]
			continue
		}

		cutByte, cutChars, found := findBreak(bl.text, it, bl.logAttrs, wrap, remaining, gs)
		if !found && wrap == WrapWordChar {
			cutByte, cutChars, found = findBreak(bl.text, it, bl.logAttrs, WrapChar, remaining, gs)
		}

		switch {
		case found && cutChars > 0:
			head := it.split(cutByte, cutChars)
			hgs := b.shaper.ShapeItem(&head, bl.text, 0)
			line.Runs = append(line.Runs, Run{Item: head, Glyphs: hgs})
			bl.consume(head.Length, head.NumChars)
			line.Flags |= Wrapped
			goto lineDone
		case len(line.Runs) == 0:
			line.Runs = append(line.Runs, Run{Item: *it, Glyphs: gs})
			bl.consume(it.Length, it.NumChars)
			bl.items = bl.items[1:]
			line.Flags |= Wrapped
			goto lineDone
		default:
			line.Flags |= Wrapped
			goto lineDone
		}
	}
	if len(bl.items) == 0 {
		line.Flags |= EndsParagraph
	}

lineDone:
	line.ByteLength = bl.consumedBytes - line.ByteOffset
	line.CharCount = bl.consumedChars - line.CharOffset

	if len(tabs) > 0 {
		resolveTabs(line, bl.text, tabs)
	}

	var ellFn func(*Line)
	if ellipsize != EllipsizeNone && width >= 0 {
		ellFn = func(l *Line) {
			EllipsizeLine(l, bl.text, width, ellipsize, bl.attrs, b.fontMap, b.shaper)
		}
	}
	PostProcess(line, bl.text, bl.logAttrs, b.shaper, ellFn)

	if len(bl.items) == 0 && len(b.blobs) > 0 && b.blobs[0] == bl {
		b.blobs = b.blobs[1:]
		b.lastLineWasPopped = true
	}

	b.lastLine = line
	return line, true
}

// UndoLine pushes line's content back onto the unprocessed queue, succeeding
// only if line is the most recently produced line (spec.md §4.2
// "undo_line").
func (b *LineBreaker) UndoLine(line *Line) bool {
	if b.lastLine == nil || b.lastLine != line || b.lastLineBlob == nil {
		return false
	}
	bl := b.lastLineBlob
	bl.consumedBytes = b.lastLineBytesPre
	bl.consumedChars = b.lastLineCharsPre
	bl.items = b.lastLineItemsPre
	if b.lastLineWasPopped {
		b.blobs = append([]*blob{bl}, b.blobs...)
	}
	b.lastLine = nil
	b.lastLineBlob = nil
	return true
}

// findBreak scans it's characters left to right for the best (latest)
// break position that both satisfies wrap's can_break_at rule and fits
// within remaining, per spec.md §4.2's "trivially accepted ... prefer
// minimum overflow" search, simplified to a single linear scan over the
// approximate log-widths rather than a reshape-and-compare loop.
func findBreak(text string, it *Item, logAttrs []LogAttr, wrap WrapMode, remaining fixed.Int26_6, gs GlyphString) (cutByte, cutChars int, found bool) {
	sub := text[it.Offset:it.End()]
	byteToChar := byteToCharTable(sub)
	widths := gs.LogWidths(it.Length, it.NumChars, func(bo int) int { return byteToChar[bo] })

	bestC := -1
	var cum fixed.Int26_6
	for c := 0; c < it.NumChars; c++ {
		cum += widths[c]
		charIdx := it.CharOffset + c + 1
		if charIdx >= len(logAttrs) || !canBreakAt(logAttrs[charIdx], wrap) {
			continue
		}
		if cum <= remaining {
			bestC = c + 1
		}
	}
	if bestC < 0 {
		return 0, 0, false
	}
	return charToByteOffset(sub, bestC), bestC, true
}

func canBreakAt(a LogAttr, wrap WrapMode) bool {
	if wrap == WrapChar {
		return a.CharBreak
	}
	return a.LineBreak
}

// resolveTabs patches each tab run's advance as later runs on the line are
// discovered, keeping a single active tabState at a time (spec.md §4.2
// "tab-state record"; §4.3): RIGHT/CENTER stops keep accumulating the width
// of every run that follows until the next tab replaces them; DECIMAL stops
// stop accumulating as soon as a run's decimal character is matched, at
// which point the tab state is cleared per spec.md §4.3.
func resolveTabs(line *Line, text string, marks []tabMark) {
	var x fixed.Int26_6
	var st tabState
	mi := 0
	for i := range line.Runs {
		if mi < len(marks) && marks[mi].runIndex == i {
			st = tabState{active: true, runIndex: i, x: x, stop: marks[mi].stop}
			line.Runs[i].Glyphs.Glyphs[st.glyphIndex].Advance = st.patchTabWidth(0)
			mi++
		} else if st.active {
			st.accumulate(line, text, &line.Runs[i])
			if st.resolved {
				st.active = false
			}
		}
		x += line.Runs[i].Width()
	}
}
