// SPDX-License-Identifier: Unlicense OR MIT

package attribute

import "testing"

func TestIteratorSegmentsBoundaries(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 5})
	l.Insert(&Attribute{Type: Weight, Value: Value{Kind: KindInt, Int: 700}, StartIndex: 3, EndIndex: 8})

	it := l.NewIterator()
	type seg struct {
		start, end uint32
		hasFg, hasWeight bool
	}
	var got []seg
	for {
		s, e := it.Range()
		_, hasFg := it.Get(Foreground)
		_, hasWeight := it.Get(Weight)
		got = append(got, seg{s, e, hasFg, hasWeight})
		if !it.Next() {
			break
		}
	}
	want := []seg{
		{0, 3, true, false},
		{3, 5, true, true},
		{5, 8, false, true},
		{8, ToTextEnd, false, false},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("segment %d: got %+v, want %+v", i, got[i], w)
		}
	}
}

func TestIteratorGetPrefersClosestStart(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Foreground, Value: red(), StartIndex: 0, EndIndex: 10})
	l.Insert(&Attribute{Type: Foreground, Value: blue(), StartIndex: 4, EndIndex: 6})

	it := l.NewIterator()
	for {
		s, e := it.Range()
		if s <= 4 && 4 < e {
			a, ok := it.Get(Foreground)
			if !ok {
				t.Fatalf("expected a Foreground attribute to be active at byte 4")
			}
			if a.Value.Color != blue().Color {
				t.Errorf("expected the closer-starting (blue) attribute to win, got %+v", a.Value.Color)
			}
		}
		if !it.Next() {
			break
		}
	}
}

func TestIteratorGetFontAppliesScaleLast(t *testing.T) {
	l := New()
	l.Insert(&Attribute{Type: Size, Value: Value{Kind: KindInt, Int: 10}, StartIndex: 0, EndIndex: 10})
	l.Insert(&Attribute{Type: Scale, Value: Value{Kind: KindFloat, Float: 2}, StartIndex: 0, EndIndex: 10})

	it := l.NewIterator()
	desc, _, _ := it.GetFont()
	if desc.Size != 20 {
		t.Errorf("expected scale to be applied to size, got %v", desc.Size)
	}
}

func TestIteratorCollectExtrasOverridePolicy(t *testing.T) {
	typ, ok := RegisterType("test-override", KindInt, false, MergeOverrides, PointerCallbacks{})
	if !ok {
		t.Fatalf("failed to register test type")
	}
	l := New()
	l.Insert(&Attribute{Type: typ, Value: Value{Kind: KindInt, Int: 1}, StartIndex: 0, EndIndex: 10})
	l.Insert(&Attribute{Type: typ, Value: Value{Kind: KindInt, Int: 2}, StartIndex: 5, EndIndex: 10})

	it := l.NewIterator()
	for {
		s, e := it.Range()
		if s <= 6 && 6 < e {
			_, _, extras := it.GetFont()
			var matches []*Attribute
			for _, a := range extras {
				if a.Type == typ {
					matches = append(matches, a)
				}
			}
			if len(matches) != 1 {
				t.Fatalf("expected override policy to collapse to 1 extra, got %d", len(matches))
			}
			if matches[0].Value.Int != 2 {
				t.Errorf("expected the later-starting attribute to win, got %v", matches[0].Value.Int)
			}
		}
		if !it.Next() {
			break
		}
	}
}
