package mathf

// Rect is an axis-aligned rectangle: top-left origin, width, height.
type Rect struct{ X, Y, W, H float32 }

func NewRect(x, y, w, h float32) Rect { return Rect{x, y, w, h} }

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Offset(dx, dy float32) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersect returns the overlap of two rects. A fully disjoint pair yields a
// rect with zero (never negative) width/height.
func (r Rect) Intersect(o Rect) Rect {
	x0 := maxf(r.X, o.X)
	y0 := maxf(r.Y, o.Y)
	x1 := minf(r.Right(), o.Right())
	y1 := minf(r.Bottom(), o.Bottom())
	return Rect{x0, y0, maxf(0, x1-x0), maxf(0, y1-y0)}
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
