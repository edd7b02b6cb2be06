// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"github.com/go-text/typesetting/font"

	"github.com/GNOME/pango-sub001/attribute"
)

// FontMap resolves a font description and language into a concrete face to
// shape with. It is an external collaborator supplied by the embedding
// application (spec.md §1): this package only consumes it, the same way
// gioui.org/text's shaper consumes a set of loaded FontFaces rather than
// owning font discovery itself.
type FontMap interface {
	Resolve(desc attribute.FontDescription, lang string) (font.Face, bool)
}

type faceEntry struct {
	desc attribute.FontDescription
	face font.Face
}

// FaceMap is a minimal in-process FontMap: an insertion-ordered list of
// (description, face) pairs matched by family/style/variant and closest
// weight, adapted from gioui.org/text's faceOrderer and closestFont
// (text/gotext.go).
type FaceMap struct {
	entries []faceEntry
}

// AddFace registers face under desc. The first face added becomes the
// fallback returned when nothing matches more closely.
func (m *FaceMap) AddFace(desc attribute.FontDescription, face font.Face) {
	m.entries = append(m.entries, faceEntry{desc, face})
}

// Resolve implements FontMap.
func (m *FaceMap) Resolve(desc attribute.FontDescription, lang string) (font.Face, bool) {
	if len(m.entries) == 0 {
		return nil, false
	}
	if best, ok := m.closest(desc); ok {
		return best.face, true
	}
	return m.entries[0].face, true
}

func (m *FaceMap) closest(desc attribute.FontDescription) (faceEntry, bool) {
	var match faceEntry
	found := false
	for _, e := range m.entries {
		if e.desc.Family != desc.Family || e.desc.Style != desc.Style || e.desc.Variant != desc.Variant {
			continue
		}
		if !found {
			match, found = e, true
			continue
		}
		if weightDistance(desc.Weight, e.desc.Weight) < weightDistance(desc.Weight, match.desc.Weight) {
			match = e
		}
	}
	return match, found
}

// weightDistance is the absolute distance between two font weights, used to
// pick the closest available weight within a matching family.
func weightDistance(a, b int) int {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
