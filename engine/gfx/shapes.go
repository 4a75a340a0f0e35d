package gfx

import (
	"github.com/chewxy/math32"

	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
)

// Drawing primitives. All of them go through Submit and therefore the
// batcher; consecutive calls with the same state merge into one GPU draw.

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// DrawRectangle fills the rect with top-left (x,y).
func (c *Context) DrawRectangle(x, y, w, h float32, col colors.Color) {
	c.state.SetTexture(nil)
	c.state.SetDrawMode(Triangles)
	verts := []Vertex{
		V(x, y, 0, 0, 0, col),
		V(x+w, y, 0, 1, 0, col),
		V(x+w, y+h, 0, 1, 1, col),
		V(x, y+h, 0, 0, 1, col),
	}
	c.Submit(verts, quadIndices)
}

// DrawRectangleEx fills a rect rotated by rot radians about its center.
func (c *Context) DrawRectangleEx(x, y, w, h, rot float32, col colors.Color) {
	cx, cy := x+w/2, y+h/2
	sin, cos := math32.Sincos(rot)
	rx := func(px, py float32) (float32, float32) {
		dx, dy := px-cx, py-cy
		return cx + dx*cos - dy*sin, cy + dx*sin + dy*cos
	}
	x0, y0 := rx(x, y)
	x1, y1 := rx(x+w, y)
	x2, y2 := rx(x+w, y+h)
	x3, y3 := rx(x, y+h)

	c.state.SetTexture(nil)
	c.state.SetDrawMode(Triangles)
	verts := []Vertex{
		V(x0, y0, 0, 0, 0, col),
		V(x1, y1, 0, 1, 0, col),
		V(x2, y2, 0, 1, 1, col),
		V(x3, y3, 0, 0, 1, col),
	}
	c.Submit(verts, quadIndices)
}

// DrawRectangleLines strokes the rect outline with 1px line primitives.
func (c *Context) DrawRectangleLines(x, y, w, h float32, col colors.Color) {
	c.state.SetTexture(nil)
	c.state.SetDrawMode(Lines)
	verts := []Vertex{
		V(x, y, 0, 0, 0, col),
		V(x+w, y, 0, 0, 0, col),
		V(x+w, y+h, 0, 0, 0, col),
		V(x, y+h, 0, 0, 0, col),
	}
	c.Submit(verts, []uint16{0, 1, 1, 2, 2, 3, 3, 0})
}

// DrawTriangle fills the triangle v1-v2-v3.
func (c *Context) DrawTriangle(v1, v2, v3 mathf.Vec2, col colors.Color) {
	c.state.SetTexture(nil)
	c.state.SetDrawMode(Triangles)
	verts := []Vertex{
		V(v1.X, v1.Y, 0, 0, 0, col),
		V(v2.X, v2.Y, 0, 0, 0, col),
		V(v3.X, v3.Y, 0, 0, 0, col),
	}
	c.Submit(verts, []uint16{0, 1, 2})
}

// DrawLine draws a segment as a thickness-wide quad.
func (c *Context) DrawLine(x1, y1, x2, y2, thickness float32, col colors.Color) {
	dx, dy := x2-x1, y2-y1
	// segment normal, scaled to half thickness
	nlen := math32.Hypot(dx, dy)
	if nlen < 1e-6 {
		return
	}
	tx := -dy / nlen * thickness / 2
	ty := dx / nlen * thickness / 2

	c.state.SetTexture(nil)
	c.state.SetDrawMode(Triangles)
	verts := []Vertex{
		V(x1+tx, y1+ty, 0, 0, 0, col),
		V(x1-tx, y1-ty, 0, 0, 0, col),
		V(x2-tx, y2-ty, 0, 0, 0, col),
		V(x2+tx, y2+ty, 0, 0, 0, col),
	}
	c.Submit(verts, quadIndices)
}

// DrawCircle fills a circle as a triangle fan.
func (c *Context) DrawCircle(x, y, r float32, col colors.Color) {
	c.DrawPoly(x, y, 32, r, 0, col)
}

// DrawCircleLines strokes a circle outline.
func (c *Context) DrawCircleLines(x, y, r float32, col colors.Color) {
	const sides = 32
	c.state.SetTexture(nil)
	c.state.SetDrawMode(Lines)
	verts := make([]Vertex, 0, sides)
	inds := make([]uint16, 0, sides*2)
	for i := 0; i < sides; i++ {
		a := float32(i) / sides * 2 * math32.Pi
		sin, cos := math32.Sincos(a)
		verts = append(verts, V(x+r*cos, y+r*sin, 0, 0, 0, col))
		inds = append(inds, uint16(i), uint16((i+1)%sides))
	}
	c.Submit(verts, inds)
}

// DrawPoly fills a regular polygon with the given number of sides,
// rotated by rot radians.
func (c *Context) DrawPoly(x, y float32, sides int, r, rot float32, col colors.Color) {
	if sides < 3 {
		sides = 3
	}
	c.state.SetTexture(nil)
	c.state.SetDrawMode(Triangles)
	verts := make([]Vertex, 0, sides+1)
	inds := make([]uint16, 0, sides*3)
	verts = append(verts, V(x, y, 0, 0, 0, col))
	for i := 0; i < sides; i++ {
		a := rot + float32(i)/float32(sides)*2*math32.Pi
		sin, cos := math32.Sincos(a)
		verts = append(verts, V(x+r*cos, y+r*sin, 0, 0, 0, col))
		next := uint16(i+1)%uint16(sides) + 1
		inds = append(inds, 0, uint16(i+1), next)
	}
	c.Submit(verts, inds)
}

// DrawTexture draws the whole texture at (x,y) with a tint.
func (c *Context) DrawTexture(tex core.Texture, x, y float32, tint colors.Color) {
	w, h := float32(tex.Width()), float32(tex.Height())
	c.DrawTextureRec(tex, mathf.NewRect(x, y, w, h), mathf.NewRect(0, 0, 1, 1), tint)
}

// DrawTextureRec draws the srcUV portion of tex (normalized UVs) into dest.
func (c *Context) DrawTextureRec(tex core.Texture, dest, srcUV mathf.Rect, tint colors.Color) {
	c.state.SetTexture(tex)
	c.state.SetDrawMode(Triangles)
	verts := []Vertex{
		V(dest.X, dest.Y, 0, srcUV.X, srcUV.Y, tint),
		V(dest.Right(), dest.Y, 0, srcUV.Right(), srcUV.Y, tint),
		V(dest.Right(), dest.Bottom(), 0, srcUV.Right(), srcUV.Bottom(), tint),
		V(dest.X, dest.Bottom(), 0, srcUV.X, srcUV.Bottom(), tint),
	}
	c.Submit(verts, quadIndices)
}

// DrawMesh submits 3D geometry; depth testing follows the active camera.
func (c *Context) DrawMesh(m Mesh) {
	c.state.SetTexture(m.Texture)
	c.state.SetDrawMode(Triangles)
	c.Submit(m.Vertices, m.Indices)
}
