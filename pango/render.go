// SPDX-License-Identifier: Unlicense OR MIT

package pango

import (
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"
)

// RenderPart identifies which visual element a draw call belongs to, so a
// Renderer implementation can look up per-part color/style (spec.md §6).
type RenderPart uint8

const (
	PartForeground RenderPart = iota
	PartBackground
	PartUnderline
	PartStrikethrough
)

// Renderer is the rendering collaborator vtable of spec.md §6. This package
// defines the interface and DefaultRenderer but calls no Renderer itself,
// and never implements pixels (rasterization is explicitly out of scope,
// spec.md §1). Implementations embed DefaultRenderer to inherit the
// rectangle-via-trapezoid and sawtooth error-underline defaults.
type Renderer interface {
	DrawGlyphs(face font.Face, glyphs GlyphString, x, y fixed.Int26_6)
	DrawRun(text string, run *Run, x, y fixed.Int26_6)
	DrawRectangle(part RenderPart, x, y, width, height fixed.Int26_6)
	DrawStyledLine(part RenderPart, style LineStyle, x, y, width, height fixed.Int26_6)
	DrawTrapezoid(part RenderPart, y1, x11, x21, y2, x12, x22 fixed.Int26_6)
	DrawGlyph(face font.Face, glyph GlyphID, x, y fixed.Int26_6)
	DrawShape(ink, logical Rectangle, data any, x, y fixed.Int26_6)
	Begin()
	End()
	PartChanged(part RenderPart)
}

// LineStyle distinguishes a solid underline/strikethrough from the
// squiggly "error" style (spec.md §6 "draw_styled_line").
type LineStyle uint8

const (
	LineStyleSolid LineStyle = iota
	LineStyleError
)

// GlyphID is the face-relative glyph index passed to DrawGlyph.
type GlyphID uint32

// Rectangle is an axis-aligned box in Pango units, used for the ink and
// logical extents passed to DrawShape.
type Rectangle struct {
	X, Y, Width, Height fixed.Int26_6
}

// DefaultRenderer implements the rectangle and sawtooth error-underline
// defaults of spec.md §6 in terms of its Trapezoid function alone, after
// pango_renderer_default_draw_rectangle and
// pango_renderer_default_draw_error_underline in
// original_source/pango/pango-renderer.c; a rectangle is drawn as a single
// trapezoid. It also supplies no-op Begin, End and PartChanged. Embed it,
// set Trapezoid, and implement the remaining Renderer methods (DrawGlyphs,
// DrawRun, DrawGlyph, DrawShape, DrawTrapezoid) to get a complete Renderer.
type DefaultRenderer struct {
	// Trapezoid is the only primitive a concrete backend must supply;
	// DrawRectangle and the error-underline style of DrawStyledLine are
	// expressed entirely in terms of it, per spec.md §6.
	Trapezoid func(part RenderPart, y1, x11, x21, y2, x12, x22 fixed.Int26_6)
}

// DrawRectangle draws an axis-aligned rectangle as exactly one trapezoid
// (pango-renderer.c's `draw_rectangle`, unsheared case: since
// this core never exposes a rotation matrix to the line breaker, the four
// corners are already axis-sorted and the "shear" case (points[0].y ==
// points[1].y) always applies — a rectangle decomposes into exactly one
// trapezoid B).
func (d *DefaultRenderer) DrawRectangle(part RenderPart, x, y, width, height fixed.Int26_6) {
	if d.Trapezoid == nil || width <= 0 || height <= 0 {
		return
	}
	d.Trapezoid(part, y, x, x+width, y+height, x, x+width)
}

// heightSquares is HEIGHT_SQUARES from pango-renderer.c: the long axis of
// the sawtooth triangle is 2.5 squares, chosen there over 2 (too stubby) or
// 3 (too long and skinny).
const heightSquares = 5 // 2.5, doubled to stay in integer math below

// DrawStyledLine draws a solid bar for LineStyleSolid (delegating to
// DrawRectangle) or a sawtooth squiggle for LineStyleError, reproducing
// pango_renderer_default_draw_error_underline's axis-aligned decomposition:
// it walks a local coordinate frame (scaled by square = height/2.5) placing
// alternating up/down triangular rectangles, then maps each back through
// the identity transform this core operates in (no rotation support, since
// nothing in spec.md's data model carries a rendering-plane rotation).
func (d *DefaultRenderer) DrawStyledLine(part RenderPart, style LineStyle, x, y, width, height fixed.Int26_6) {
	if style == LineStyleSolid {
		d.DrawRectangle(part, x, y, width, height)
		return
	}
	if d.Trapezoid == nil || width <= 0 || height <= 0 {
		return
	}
	square := height * 2 / heightSquares // height / 2.5
	if square <= 0 {
		square = 1
	}
	unitWidth := (heightSquares - 2) * square / 2 // (2.5 - 1) * square
	if unitWidth <= 0 {
		unitWidth = 1
	}
	widthUnits := int((width + unitWidth/2) / unitWidth)
	if widthUnits < 1 {
		widthUnits = 1
	}
	x += (width - fixed.Int26_6(widthUnits)*unitWidth) / 2

	// Each unit is one up-down pair of triangles, each drawn by
	// drawUnitTriangle as a degenerate trapezoid passed straight to
	// Trapezoid, translated by unitWidth per triangle.
	cur := x
	i := (widthUnits - 1) / 2
	for {
		d.drawUnitTriangle(part, cur, y, unitWidth, height, true)
		if i <= 0 {
			break
		}
		i--
		d.drawUnitTriangle(part, cur+unitWidth, y, unitWidth, height, false)
		cur += unitWidth * 2
	}
	if widthUnits%2 == 0 {
		d.drawUnitTriangle(part, cur+unitWidth, y, unitWidth, height, false)
	}
}

// drawUnitTriangle draws one upward- or downward-pointing triangle of the
// error-underline sawtooth as a degenerate (zero-width-at-one-end)
// trapezoid, up or down depending on rising.
func (d *DefaultRenderer) drawUnitTriangle(part RenderPart, x, y, unitWidth, height fixed.Int26_6, rising bool) {
	if rising {
		d.Trapezoid(part, y+height, x, x, y, x, x+unitWidth)
	} else {
		d.Trapezoid(part, y, x, x+unitWidth, y+height, x+unitWidth, x+unitWidth)
	}
}

// Begin, End, and PartChanged are no-ops by default: many renderers (e.g. a
// headless test double) have no per-frame setup/teardown or color-cache
// invalidation to perform.
func (d *DefaultRenderer) Begin()                      {}
func (d *DefaultRenderer) End()                        {}
func (d *DefaultRenderer) PartChanged(part RenderPart) {}
