package scene

import (
	"github.com/chewxy/math32"

	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
)

// Camera supplies the projection*view matrix for a stretch of draw calls.
// Switching the active camera is a state change: the draw context drains
// its pending batches before the new matrix takes effect.
type Camera interface {
	// Matrix maps world space to clip space for the given output size in
	// pixels (the render target's size, or the screen's).
	Matrix(outW, outH float32) mathf.Mat4
	// Target is the render texture to draw into, nil for the screen.
	Target() core.RenderTarget
	// Viewport restricts output to a pixel rect, nil for full output.
	Viewport() *mathf.Rect
	// DepthEnabled selects depth-tested pipelines for this camera.
	DepthEnabled() bool
}

// Camera2D is an orthographic world camera. Most fields are optional;
// the zero value plus Zoom is usable. Compose order is fixed:
// translate(-Target), rotate(-Rotation), scale(Zoom), translate(Offset).
// Zoom maps world units straight to clip space, so a pixel-perfect camera
// uses Zoom = (2/screenW, 2/screenH); Offset is in clip-space units.
type Camera2D struct {
	TargetPoint  mathf.Vec2 // world point the camera looks at
	Offset       mathf.Vec2
	Zoom         mathf.Vec2
	Rotation     float32 // radians, counter-clockwise
	RenderTarget core.RenderTarget
	ViewRect     *mathf.Rect
}

// NewCamera2D returns a camera centered on the origin with unit zoom.
func NewCamera2D() *Camera2D {
	return &Camera2D{Zoom: mathf.V2(1, 1)}
}

func (c *Camera2D) Matrix(outW, outH float32) mathf.Mat4 {
	m := mathf.Translate(c.Offset.X, c.Offset.Y, 0)
	m = m.Mul(mathf.Scale(c.Zoom.X, c.Zoom.Y, 1))
	m = m.Mul(mathf.RotateZ(-c.Rotation))
	m = m.Mul(mathf.Translate(-c.TargetPoint.X, -c.TargetPoint.Y, 0))
	return m
}

func (c *Camera2D) Target() core.RenderTarget { return c.RenderTarget }
func (c *Camera2D) Viewport() *mathf.Rect     { return c.ViewRect }
func (c *Camera2D) DepthEnabled() bool        { return false }

// WorldToScreen projects a world point to pixel coordinates within the
// viewport (Y down, origin top-left).
func (c *Camera2D) WorldToScreen(p mathf.Vec2, outW, outH float32) mathf.Vec2 {
	ndc := c.Matrix(outW, outH).TransformPoint(mathf.V3(p.X, p.Y, 0))
	return mathf.V2((ndc.X+1)/2*outW, (1-ndc.Y)/2*outH)
}

// ScreenToWorld is the exact inverse of WorldToScreen up to float rounding.
func (c *Camera2D) ScreenToWorld(p mathf.Vec2, outW, outH float32) mathf.Vec2 {
	ndc := mathf.V3(p.X/outW*2-1, 1-p.Y/outH*2, 0)
	w := c.Matrix(outW, outH).Inverse().TransformPoint(ndc)
	return mathf.V2(w.X, w.Y)
}

// Projection selects how a Camera3D maps view space to clip space.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera3D is a look-at camera. FovY is the vertical field of view in
// degrees for Perspective, and the view height in world units for
// Orthographic.
type Camera3D struct {
	Position     mathf.Vec3
	LookAt       mathf.Vec3
	Up           mathf.Vec3
	FovY         float32
	Near, Far    float32
	Proj         Projection
	Depth        bool
	RenderTarget core.RenderTarget
	ViewRect     *mathf.Rect
}

// NewCamera3D returns a depth-tested perspective camera at (0,10,10)
// looking at the origin.
func NewCamera3D() *Camera3D {
	return &Camera3D{
		Position: mathf.V3(0, 10, 10),
		Up:       mathf.V3(0, 1, 0),
		FovY:     45,
		Near:     0.1,
		Far:      1000,
		Depth:    true,
	}
}

func (c *Camera3D) Matrix(outW, outH float32) mathf.Mat4 {
	aspect := outW / outH
	view := mathf.LookAt(c.Position, c.LookAt, c.Up)
	if c.Proj == Orthographic {
		top := c.FovY / 2
		right := top * aspect
		return mathf.Ortho(-right, right, -top, top, c.Near, c.Far).Mul(view)
	}
	fov := c.FovY * math32.Pi / 180
	return mathf.Perspective(fov, aspect, c.Near, c.Far).Mul(view)
}

func (c *Camera3D) Target() core.RenderTarget { return c.RenderTarget }
func (c *Camera3D) Viewport() *mathf.Rect     { return c.ViewRect }
func (c *Camera3D) DepthEnabled() bool        { return c.Depth }

// WorldToScreen projects a world point to pixel coordinates.
func (c *Camera3D) WorldToScreen(p mathf.Vec3, outW, outH float32) mathf.Vec2 {
	ndc := c.Matrix(outW, outH).TransformPoint(p)
	return mathf.V2((ndc.X+1)/2*outW, (1-ndc.Y)/2*outH)
}

// ScreenCamera is the default full-output camera: one world unit = one
// pixel, origin top-left, Y down, no depth.
type ScreenCamera struct{}

func (ScreenCamera) Matrix(outW, outH float32) mathf.Mat4 {
	return mathf.Ortho(0, outW, outH, 0, -1, 1)
}

func (ScreenCamera) Target() core.RenderTarget { return nil }
func (ScreenCamera) Viewport() *mathf.Rect     { return nil }
func (ScreenCamera) DepthEnabled() bool        { return false }
