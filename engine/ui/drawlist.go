package ui

import (
	"github.com/chewxy/math32"

	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/gfx"
	"github.com/kilnengine/kiln/engine/mathf"
)

// DrawList is one homogeneous GUI submission: all geometry shares a clip
// rect and a texture requirement. Texture == nil means the "no fixed
// texture" bucket (glyphs and flat-color shapes, both sampled from the
// shared sprite atlas). Indices are list-relative.
type DrawList struct {
	Vertices []gfx.Vertex
	Indices  []uint16
	Clip     *mathf.Rect
	Texture  core.Texture
}

// Compile folds an ordered command stream into the minimum ordered set of
// draw lists. whiteUV is the atlas UV at which a solid white sprite
// lives; flat-color geometry samples it.
func Compile(cmds []Command, whiteUV mathf.Rect) []DrawList {
	var lists []DrawList
	for _, cmd := range cmds {
		l := activeList(&lists, cmd)
		switch c := cmd.(type) {
		case ClipCommand:
			l.Clip = c.Rect
		case RectCommand:
			if c.Fill != nil {
				l.fillRect(c.Rect, whiteUV, *c.Fill)
			}
			if c.Stroke != nil {
				l.strokeRect(c.Rect, whiteUV, *c.Stroke)
			}
		case LineCommand:
			l.line(c.P0, c.P1, 1, whiteUV, c.Color)
		case TriangleCommand:
			l.triangle(c.P0, c.P1, c.P2, whiteUV, c.Color)
		case GlyphCommand:
			l.fillRect(c.Dest, c.Src, c.Color)
		case RawTextureCommand:
			l.fillRect(c.Rect, mathf.NewRect(0, 0, 1, 1), colors.White)
		}
	}
	// drop lists that ended up empty (pure clip changes)
	out := lists[:0]
	for _, l := range lists {
		if len(l.Indices) > 0 {
			out = append(out, l)
		}
	}
	return out
}

// activeList returns the list the command appends to, starting a new one
// on clip changes and texture requirement changes.
func activeList(lists *[]DrawList, cmd Command) *DrawList {
	if len(*lists) == 0 {
		*lists = append(*lists, DrawList{})
	}
	last := &(*lists)[len(*lists)-1]

	switch c := cmd.(type) {
	case ClipCommand:
		if !clipEq(last.Clip, c.Rect) {
			*lists = append(*lists, DrawList{Clip: last.Clip, Texture: last.Texture})
		}
	case RawTextureCommand:
		if last.Texture != c.Texture {
			*lists = append(*lists, DrawList{Clip: last.Clip, Texture: c.Texture})
		}
	default:
		if last.Texture != nil {
			*lists = append(*lists, DrawList{Clip: last.Clip})
		}
	}
	return &(*lists)[len(*lists)-1]
}

func clipEq(a, b *mathf.Rect) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// --- geometry appends; same index-rebase rule as the main batcher ---

func (l *DrawList) push(verts []gfx.Vertex, inds []uint16) {
	base := uint16(len(l.Vertices))
	l.Vertices = append(l.Vertices, verts...)
	for _, i := range inds {
		l.Indices = append(l.Indices, i+base)
	}
}

func (l *DrawList) fillRect(r, src mathf.Rect, col colors.Color) {
	l.push([]gfx.Vertex{
		gfx.V(r.X, r.Y, 0, src.X, src.Y, col),
		gfx.V(r.Right(), r.Y, 0, src.Right(), src.Y, col),
		gfx.V(r.Right(), r.Bottom(), 0, src.Right(), src.Bottom(), col),
		gfx.V(r.X, r.Bottom(), 0, src.X, src.Bottom(), col),
	}, []uint16{0, 1, 2, 0, 2, 3})
}

// strokeRect draws a 1px outline as four thin filled rects.
func (l *DrawList) strokeRect(r, src mathf.Rect, col colors.Color) {
	l.fillRect(mathf.NewRect(r.X, r.Y, r.W, 1), src, col)
	l.fillRect(mathf.NewRect(r.Right()-1, r.Y+1, 1, r.H-2), src, col)
	l.fillRect(mathf.NewRect(r.X, r.Bottom()-1, r.W, 1), src, col)
	l.fillRect(mathf.NewRect(r.X, r.Y+1, 1, r.H-2), src, col)
}

// line draws a segment as a thickness-wide quad.
func (l *DrawList) line(p0, p1 mathf.Vec2, thickness float32, src mathf.Rect, col colors.Color) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	nlen := math32.Hypot(dx, dy)
	if nlen < 1e-6 {
		return
	}
	tx := -dy / nlen * thickness / 2
	ty := dx / nlen * thickness / 2
	l.push([]gfx.Vertex{
		gfx.V(p0.X+tx, p0.Y+ty, 0, src.X, src.Y, col),
		gfx.V(p0.X-tx, p0.Y-ty, 0, src.X, src.Y, col),
		gfx.V(p1.X-tx, p1.Y-ty, 0, src.X, src.Y, col),
		gfx.V(p1.X+tx, p1.Y+ty, 0, src.X, src.Y, col),
	}, []uint16{0, 1, 2, 0, 2, 3})
}

func (l *DrawList) triangle(p0, p1, p2 mathf.Vec2, src mathf.Rect, col colors.Color) {
	l.push([]gfx.Vertex{
		gfx.V(p0.X, p0.Y, 0, src.X, src.Y, col),
		gfx.V(p1.X, p1.Y, 0, src.X, src.Y, col),
		gfx.V(p2.X, p2.Y, 0, src.X, src.Y, col),
	}, []uint16{0, 1, 2})
}
