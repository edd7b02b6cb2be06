// SPDX-License-Identifier: Unlicense OR MIT

package attribute

import (
	"fmt"
	"strconv"
	"strings"
)

// nickTable maps the canonical pango nick strings to their enumerated
// integer value for one Type, recovered from the PangoStyle/PangoVariant/...
// enums in original_source/pango/pango-attr.c and pango-attributes-private.h.
// Weight has no table and is written as its decimal value.
type nickTable struct {
	toInt  map[string]int32
	toNick map[int32]string
}

func newNickTable(pairs ...string) nickTable {
	t := nickTable{toInt: map[string]int32{}, toNick: map[int32]string{}}
	for i, name := range pairs {
		t.toInt[name] = int32(i)
		t.toNick[int32(i)] = name
	}
	return t
}

var nickTables = map[Type]nickTable{
	Style:         newNickTable("normal", "oblique", "italic"),
	Variant:       newNickTable("normal", "small-caps", "all-small-caps", "petite-caps", "all-petite-caps", "unicase", "title-caps"),
	Stretch:       newNickTable("ultra-condensed", "extra-condensed", "condensed", "semi-condensed", "normal", "semi-expanded", "expanded", "extra-expanded", "ultra-expanded"),
	Underline:     newNickTable("none", "single", "double", "low", "error", "single-line", "double-line", "error-line"),
	Overline:      newNickTable("none", "single"),
	Gravity:       newNickTable("south", "east", "north", "west", "auto"),
	GravityHint:   newNickTable("natural", "strong", "line"),
	Show:          newNickTable("none", "spaces", "line-breaks", "ignorables"),
	TextTransform: newNickTable("none", "lowercase", "uppercase", "capitalize"),
}

// nickForInt renders v as its canonical nick for t, falling back to the
// decimal value when t has no nick table or v is unrecognized.
func nickForInt(t Type, v int32) string {
	if table, ok := nickTables[t]; ok {
		if nick, ok := table.toNick[v]; ok {
			return nick
		}
	}
	return strconv.Itoa(int(v))
}

func intForNick(t Type, nick string) (int32, bool) {
	if table, ok := nickTables[t]; ok {
		if v, ok := table.toInt[nick]; ok {
			return v, true
		}
	}
	v, err := strconv.ParseInt(nick, 10, 32)
	return int32(v), err == nil
}

// Serialize renders l in pango's debug text format: one attribute per line,
// "START END NICK VALUE", space-separated fields within a line. Strings and
// font descriptions are double-quoted; enumerated integers are written as
// their nick when known. This format is not stable across versions
// (spec.md §4.1, §6).
func (l *List) Serialize() string {
	var b strings.Builder
	for _, a := range l.attrs {
		fmt.Fprintf(&b, "%s %s %s %s\n", indexString(a.StartIndex), indexString(a.EndIndex), nameFor(a.Type), valueString(a))
	}
	return b.String()
}

func indexString(i uint32) string {
	switch i {
	case FromBeginning:
		return "0"
	case ToTextEnd:
		return "end"
	default:
		return strconv.FormatUint(uint64(i), 10)
	}
}

func parseIndex(s string) (uint32, bool) {
	if s == "end" {
		return ToTextEnd, true
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func valueString(a *Attribute) string {
	switch a.Value.Kind {
	case KindInt:
		return nickForInt(a.Type, a.Value.Int)
	case KindBool:
		return strconv.FormatBool(a.Value.Bool)
	case KindFloat:
		return strconv.FormatFloat(a.Value.Float, 'g', -1, 64)
	case KindColor:
		c := a.Value.Color
		return fmt.Sprintf("#%04x%04x%04x%04x", c.Red, c.Green, c.Blue, c.Alpha)
	case KindLanguage:
		return strconv.Quote(a.Value.Language)
	case KindFontDesc:
		d := a.Value.FontDesc
		return strconv.Quote(fmt.Sprintf("%s %s %s %d %g", d.Family, d.Style, d.Stretch, d.Weight, d.Size))
	case KindString:
		return strconv.Quote(a.Value.String)
	case KindPointer:
		if a.Value.Callbacks.Serialize != nil {
			return strconv.Quote(a.Value.Callbacks.Serialize(a.Value.Pointer))
		}
		return strconv.Quote("")
	}
	return ""
}

// Parse reads the format Serialize writes. It fails the whole parse
// (returning ok == false) if any line names an unknown attribute type or nick
// (spec.md §7 "Attribute list parse failure"). It is not a full inverse: a
// font-desc value only has its quoting checked and comes back as an empty
// FontDescription, and a line of a KindPointer type fails the parse.
func Parse(s string) (l *List, ok bool) {
	l = New()
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 4)
		if len(fields) != 4 {
			return nil, false
		}
		start, ok1 := parseIndex(fields[0])
		end, ok2 := parseIndex(fields[1])
		typ, ok3 := LookupType(fields[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		val, ok4 := parseValue(typ, fields[3])
		if !ok4 {
			return nil, false
		}
		l.Insert(&Attribute{Type: typ, Value: val, StartIndex: start, EndIndex: end})
	}
	return l, true
}

func parseValue(t Type, raw string) (Value, bool) {
	info, ok := infoFor(t)
	if !ok {
		return Value{}, false
	}
	switch info.kind {
	case KindInt:
		v, ok := intForNick(t, raw)
		return Value{Kind: KindInt, Int: v}, ok
	case KindBool:
		b, err := strconv.ParseBool(raw)
		return Value{Kind: KindBool, Bool: b}, err == nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		return Value{Kind: KindFloat, Float: f}, err == nil
	case KindColor:
		c, ok := parseColor(raw)
		return Value{Kind: KindColor, Color: c}, ok
	case KindLanguage:
		s, err := strconv.Unquote(raw)
		return Value{Kind: KindLanguage, Language: s}, err == nil
	case KindString:
		s, err := strconv.Unquote(raw)
		return Value{Kind: KindString, String: s}, err == nil
	case KindFontDesc:
		_, err := strconv.Unquote(raw)
		return Value{Kind: KindFontDesc}, err == nil
	}
	return Value{}, false
}

func parseColor(raw string) (Color, bool) {
	if len(raw) != 17 || raw[0] != '#' {
		return Color{}, false
	}
	parse := func(s string) (uint16, bool) {
		v, err := strconv.ParseUint(s, 16, 16)
		return uint16(v), err == nil
	}
	r, ok1 := parse(raw[1:5])
	g, ok2 := parse(raw[5:9])
	b, ok3 := parse(raw[9:13])
	a, ok4 := parse(raw[13:17])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Color{}, false
	}
	return Color{Red: r, Green: g, Blue: b, Alpha: a}, true
}
