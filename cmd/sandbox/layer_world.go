package main

import (
	"github.com/chewxy/math32"

	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/gfx"
	"github.com/kilnengine/kiln/engine/mathf"
	"github.com/kilnengine/kiln/engine/profiler"
	"github.com/kilnengine/kiln/engine/scene"
)

// WorldLayer draws the demo scene: shapes under a controllable 2D camera,
// a matrix-stack fractal tree, and an offscreen render target shown as a
// picture-in-picture.
type WorldLayer struct {
	ctx *gfx.Context
	cam *scene.Camera2D

	rt     core.RenderTarget
	rtCam  *scene.Camera2D
	sprite gfx.SubTexture

	t        float32
	Spin     bool
	Branches float32 // fractal depth, tuned from the panel
}

func (l *WorldLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewCamera2D()
	l.camToPixels(w, h)
	l.Spin = true
	l.Branches = 8

	rt, err := e.Renderer.CreateRenderTarget(256, 256)
	if err != nil {
		panic(err)
	}
	l.rt = rt
	l.rtCam = scene.NewCamera2D()
	l.rtCam.RenderTarget = rt
	l.rtCam.TargetPoint = mathf.V2(128, 128)
	l.rtCam.Zoom = mathf.V2(2.0/256, -2.0/256)

	// quadrant of the offscreen texture, drawn as a sprite
	l.sprite = gfx.SubTexFromGrid(rt.ColorTexture(), 1, 1, 128, 128)
}

// camToPixels makes world units screen pixels, Y down, origin top-left.
func (l *WorldLayer) camToPixels(w, h int) {
	l.cam.Zoom = mathf.V2(2/float32(w), -2/float32(h))
	l.cam.TargetPoint = mathf.V2(float32(w)/2, float32(h)/2)
}

func (l *WorldLayer) OnDetach(e *core.Engine) {}

func (l *WorldLayer) OnUpdate(e *core.Engine, dt float64) {
	if l.Spin {
		l.t += float32(dt)
	}

	const pan = 300
	if e.Input.IsKeyDown(core.KeyA) {
		l.cam.TargetPoint.X -= pan * float32(dt)
	}
	if e.Input.IsKeyDown(core.KeyD) {
		l.cam.TargetPoint.X += pan * float32(dt)
	}
	if e.Input.IsKeyDown(core.KeyW) {
		l.cam.TargetPoint.Y -= pan * float32(dt)
	}
	if e.Input.IsKeyDown(core.KeyS) {
		l.cam.TargetPoint.Y += pan * float32(dt)
	}
	if e.Input.IsKeyDown(core.KeyQ) {
		l.cam.Zoom = l.cam.Zoom.Scale(1 - float32(dt))
	}
	if e.Input.IsKeyDown(core.KeyE) {
		l.cam.Zoom = l.cam.Zoom.Scale(1 + float32(dt))
	}
}

func (l *WorldLayer) OnRender(e *core.Engine, alpha float64) {
	done := profiler.Start("WorldLayer.OnRender")
	defer done()

	ctx := l.ctx

	// offscreen pass first
	ctx.SetCamera(l.rtCam)
	ctx.DrawRectangle(0, 0, 256, 256, colors.DarkGray)
	ctx.DrawPoly(128, 128, 6, 90, l.t, colors.Orange)
	ctx.DrawCircleLines(128, 128, 110, colors.Yellow)

	// world pass
	ctx.SetCamera(l.cam)

	ctx.DrawRectangle(60, 60, 120, 80, colors.Maroon)
	ctx.DrawRectangleEx(240, 60, 120, 80, l.t, colors.Green)
	ctx.DrawRectangleLines(60, 180, 120, 80, colors.SkyBlue)
	ctx.DrawCircle(480, 120, 50, colors.Violet)
	ctx.DrawLine(60, 300, 420, 330, 4, colors.Gold)
	ctx.DrawTriangle(mathf.V2(500, 300), mathf.V2(560, 200), mathf.V2(620, 300), colors.Pink)

	l.drawTree(ctx, 640, 600, l.t)

	// picture-in-picture of the offscreen target (flip V, GL textures are
	// bottom-up)
	ctx.DrawTextureRec(l.rt.ColorTexture(),
		mathf.NewRect(20, 380, 160, 160), mathf.NewRect(0, 1, 1, -1), colors.White)
	ctx.DrawSubTexture(l.sprite, mathf.NewRect(200, 420, 80, 80), colors.White)

	ctx.SetDefaultCamera()
}

// drawTree recurses with the model matrix stack: every branch is drawn in
// its parent's space.
func (l *WorldLayer) drawTree(ctx *gfx.Context, x, y, sway float32) {
	depth := int(l.Branches)
	if depth < 1 {
		depth = 1
	}
	ctx.PushMatrix(mathf.Translate(x, y, 0))
	l.branch(ctx, 110, depth, sway)
	ctx.PopMatrix()
}

func (l *WorldLayer) branch(ctx *gfx.Context, length float32, depth int, sway float32) {
	if depth == 0 || length < 2 {
		return
	}
	ctx.DrawLine(0, 0, 0, -length, float32(depth), colors.Beige)

	lean := 0.1 * math32.Sin(sway)
	for _, a := range [2]float32{-0.45 + lean, 0.5 + lean} {
		ctx.PushMatrix(mathf.Translate(0, -length, 0).Mul(mathf.RotateZ(a)))
		l.branch(ctx, length*0.72, depth-1, sway)
		ctx.PopMatrix()
	}
}

func (l *WorldLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		l.camToPixels(v.W, v.H)
	case core.EventScroll:
		f := 1 + float32(v.Yoff)*0.1
		l.cam.Zoom = l.cam.Zoom.Scale(f)
	}
	return false
}
