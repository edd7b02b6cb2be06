// SPDX-License-Identifier: Unlicense OR MIT

package attribute

import "testing"

func red() Value  { return Value{Kind: KindColor, Color: Color{Red: 0xffff, Alpha: 0xffff}} }
func blue() Value { return Value{Kind: KindColor, Color: Color{Blue: 0xffff, Alpha: 0xffff}} }

func TestChangeTruncatesOverlap(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 5})
	l.Change(&Attribute{Type: Foreground, Value: blue(), StartIndex: 3, EndIndex: 8})

	if l.Len() != 2 {
		t.Fatalf("expected 2 attributes after change, got %d", l.Len())
	}
	a, b := l.attrs[0], l.attrs[1]
	if a.StartIndex != 0 || a.EndIndex != 3 {
		t.Errorf("expected red range [0,3), got [%d,%d)", a.StartIndex, a.EndIndex)
	}
	if b.StartIndex != 3 || b.EndIndex != 8 {
		t.Errorf("expected blue range [3,8), got [%d,%d)", b.StartIndex, b.EndIndex)
	}
}

func TestChangeMergesTouchingEqualValue(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 5})
	l.Change(&Attribute{Type: Foreground, Value: red(), StartIndex: 5, EndIndex: 10})

	if l.Len() != 1 {
		t.Fatalf("expected touching equal-valued attributes to merge, got %d entries", l.Len())
	}
	a := l.attrs[0]
	if a.StartIndex != 0 || a.EndIndex != 10 {
		t.Errorf("expected merged range [0,10), got [%d,%d)", a.StartIndex, a.EndIndex)
	}
}

func TestChangeSplitsContainingAttribute(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 10})
	l.Change(&Attribute{Type: Foreground, Value: blue(), StartIndex: 3, EndIndex: 6})

	if l.Len() != 3 {
		t.Fatalf("expected 3 attributes after splitting, got %d", l.Len())
	}
	if l.attrs[0].StartIndex != 0 || l.attrs[0].EndIndex != 3 {
		t.Errorf("unexpected left remainder: [%d,%d)", l.attrs[0].StartIndex, l.attrs[0].EndIndex)
	}
	if l.attrs[2].StartIndex != 6 || l.attrs[2].EndIndex != 10 {
		t.Errorf("unexpected right remainder: [%d,%d)", l.attrs[2].StartIndex, l.attrs[2].EndIndex)
	}
}

func TestInsertDiscardsEmptyRange(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 4, EndIndex: 4})
	if l.Len() != 0 {
		t.Fatalf("expected empty-range attribute to be discarded, got %d entries", l.Len())
	}
}

func TestUpdateInverse(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 20, EndIndex: 30})

	l.Update(5, 3, 7)  // delete 3 bytes, insert 7, at position 5: entirely before [20,30)
	l.Update(5, 7, 3)  // the inverse operation

	if l.Len() != 1 {
		t.Fatalf("expected 1 attribute to survive, got %d", l.Len())
	}
	a := l.attrs[0]
	if a.StartIndex != 20 || a.EndIndex != 30 {
		t.Errorf("Update followed by its inverse should be the identity, got [%d,%d)", a.StartIndex, a.EndIndex)
	}
}

func TestUpdateDropsContainedAttribute(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 5, EndIndex: 8})
	l.Update(0, 10, 0)
	if l.Len() != 0 {
		t.Fatalf("expected attribute entirely inside removed region to be dropped, got %d", l.Len())
	}
}

func TestSpliceOverlayWithZeroLength(t *testing.T) {
	a := New()
	a.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 10})
	b := New()
	b.Insert(&Attribute{Type: Foreground, Value: blue(), StartIndex: 2, EndIndex: 4})

	a.Splice(b, 0, 0)
	if a.Len() != 3 {
		t.Fatalf("expected overlay to split the base attribute, got %d entries", a.Len())
	}
}

func TestEqual(t *testing.T) {
	a := New()
	a.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 5})
	b := New()
	b.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 5})
	if !a.Equal(b) {
		t.Fatalf("expected equal lists to compare equal")
	}
	b.attrs[0].EndIndex = 6
	if a.Equal(b) {
		t.Fatalf("expected differing ranges to compare unequal")
	}
}

func TestFilter(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 5})
	l.Insert(&Attribute{Type: Weight, Value: Value{Kind: KindInt, Int: 700}, StartIndex: 0, EndIndex: 5})

	matched, ok := l.Filter(func(a *Attribute) bool { return a.Type == Weight })
	if !ok || matched.Len() != 1 {
		t.Fatalf("expected 1 matched attribute, got ok=%v len=%d", ok, matched.Len())
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 attribute remaining in original list, got %d", l.Len())
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 5})
	l.Insert(&Attribute{Type: Weight, Value: Value{Kind: KindInt, Int: 700}, StartIndex: 0, EndIndex: 5})

	s := l.Serialize()
	parsed, ok := Parse(s)
	if !ok {
		t.Fatalf("failed to parse serialized attribute list: %q", s)
	}
	if !l.Equal(parsed) {
		t.Fatalf("round-tripped list does not equal original:\n%s\nvs\n%s", s, parsed.Serialize())
	}
}

func TestParseFailsOnUnknownType(t *testing.T) {
	if _, ok := Parse("0 5 not-a-real-type true\n"); ok {
		t.Fatalf("expected parse failure for unknown attribute type")
	}
}
