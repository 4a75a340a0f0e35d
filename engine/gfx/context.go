package gfx

import (
	"fmt"

	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
	"github.com/kilnengine/kiln/engine/scene"
)

// Statistics captures the counts generated during a context frame.
type Statistics struct {
	DrawCalls int
	Batches   int
	Vertices  int
}

// Context is the immediate-mode drawing front end: every draw primitive
// funnels through its batcher, and its methods are the entire public
// surface (no global state). One Context owns one logical thread of
// rendering; it is not goroutine safe by design.
type Context struct {
	r       core.Renderer
	state   *stateStack
	batcher *Batcher

	camera  scene.Camera
	curClip *mathf.Rect // effective clip when current segment started

	screenW, screenH int

	white core.Texture
	pipes [4]core.Pipeline // [mode][depth]

	stats      Statistics
	frameStats Statistics
}

// NewContext compiles the default pipelines and the 1x1 white texture.
func NewContext(r core.Renderer, screenW, screenH int) (*Context, error) {
	c := &Context{
		r:       r,
		state:   newStateStack(),
		batcher: NewBatcher(),
		camera:  scene.ScreenCamera{},
		screenW: screenW,
		screenH: screenH,
	}

	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: core.FilterNearest,
		MagFilter: core.FilterNearest,
	})
	if err != nil {
		return nil, fmt.Errorf("create white texture: %w", err)
	}
	c.white = white

	for i, d := range []struct {
		prim  core.PrimitiveMode
		depth bool
	}{
		{core.PrimitiveTriangles, false},
		{core.PrimitiveLines, false},
		{core.PrimitiveTriangles, true},
		{core.PrimitiveLines, true},
	} {
		p, err := r.CreatePipeline(core.PipelineDesc{
			VertexSource:   defaultVertexShader,
			FragmentSource: defaultFragmentShader,
			Primitive:      d.prim,
			DepthTest:      d.depth,
			DepthWrite:     d.depth,
			Blend:          true,
		})
		if err != nil {
			return nil, fmt.Errorf("create pipeline: %w", err)
		}
		c.pipes[i] = p
	}
	return c, nil
}

// Resize records the screen framebuffer size used by the default camera.
func (c *Context) Resize(w, h int) { c.screenW, c.screenH = w, h }

// Stats returns the previous frame's statistics snapshot.
func (c *Context) Stats() Statistics { return c.stats }

// WhiteTexture is the 1x1 solid texture bound for untextured geometry.
func (c *Context) WhiteTexture() core.Texture { return c.white }

// Renderer exposes the GPU backend (texture creation for atlases etc.).
func (c *Context) Renderer() core.Renderer { return c.r }

// --- render state controls ---

func (c *Context) PushMatrix(m mathf.Mat4) { c.state.PushMatrix(m) }
func (c *Context) PopMatrix()              { c.state.PopMatrix() }
func (c *Context) ModelMatrix() mathf.Mat4 { return c.state.Model() }

// PushClip narrows the effective clip (intersection of the whole stack)
// and applies it as a scissor to subsequent draws. nil adds no constraint.
func (c *Context) PushClip(r *mathf.Rect) {
	c.state.PushClip(r)
	c.clipChanged()
}

func (c *Context) PopClip() {
	c.state.PopClip()
	c.clipChanged()
}

func (c *Context) SetTexture(t core.Texture)   { c.state.SetTexture(t) }
func (c *Context) SetDrawMode(m DrawMode)      { c.state.SetDrawMode(m) }
func (c *Context) SetPipeline(p core.Pipeline) { c.state.SetPipeline(p) }

// clip is not part of the batcher's state key; a change in the effective
// clip instead ends the current submission segment, like a camera switch.
func (c *Context) clipChanged() {
	eff := c.state.Clip()
	if !rectPtrEq(eff, c.curClip) {
		c.perform()
		c.curClip = eff
	}
}

func rectPtrEq(a, b *mathf.Rect) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// --- camera management ---

// SetCamera drains pending batches under the previous camera, then makes
// cam active: its render target, viewport and depth setting apply to all
// subsequent submissions.
func (c *Context) SetCamera(cam scene.Camera) {
	c.perform()
	c.camera = cam
	c.state.SetTarget(cam.Target())
	c.state.SetDepthTest(cam.DepthEnabled())
}

// SetDefaultCamera restores the full-screen pixel camera targeting the
// default framebuffer.
func (c *Context) SetDefaultCamera() { c.SetCamera(scene.ScreenCamera{}) }

// Camera returns the active camera.
func (c *Context) Camera() scene.Camera { return c.camera }

// OutputSize is the pixel size of the active render target (or screen).
func (c *Context) OutputSize() (float32, float32) {
	if t := c.camera.Target(); t != nil {
		w, h := t.Size()
		return float32(w), float32(h)
	}
	return float32(c.screenW), float32(c.screenH)
}

// ScreenToWorld converts window pixels to world coordinates under the
// active camera, when it is a 2D camera; screen pixels otherwise.
func (c *Context) ScreenToWorld(p mathf.Vec2) mathf.Vec2 {
	if cam, ok := c.camera.(*scene.Camera2D); ok {
		w, h := c.OutputSize()
		return cam.ScreenToWorld(p, w, h)
	}
	return p
}

// --- submission ---

// snapshot computes the RenderState for the next submission.
func (c *Context) snapshot() RenderState {
	tex := c.state.texture
	if tex == nil {
		tex = c.white
	}
	pipe := c.state.pipeline
	if pipe == nil {
		i := 0
		if c.state.mode == Lines {
			i = 1
		}
		if c.state.depth {
			i += 2
		}
		pipe = c.pipes[i]
	}
	return RenderState{Texture: tex, Mode: c.state.mode, Pipeline: pipe, Target: c.state.target}
}

// Submit queues raw geometry under the current render state, transforming
// positions by the effective model matrix.
func (c *Context) Submit(verts []Vertex, inds []uint16) {
	if len(verts) == 0 {
		return
	}
	model := c.state.Model()
	if model != mathf.Identity() {
		transformed := make([]Vertex, len(verts))
		for i, v := range verts {
			p := model.TransformPoint(mathf.V3(v.Pos[0], v.Pos[1], v.Pos[2]))
			v.Pos = [3]float32{p.X, p.Y, p.Z}
			transformed[i] = v
		}
		verts = transformed
	}
	c.batcher.Submit(c.snapshot(), verts, inds)
	c.frameStats.Vertices += len(verts)
}

// Flush seals the in-flight batch without drawing. Rarely needed directly;
// camera/clip/target switches and EndFrame drain automatically.
func (c *Context) Flush() { c.batcher.Flush() }

// EndFrame drains all pending batches to the GPU and resets per-frame
// state. The frame boundary is a mandatory flush point: nothing stays
// in flight across the host's frame yield.
func (c *Context) EndFrame() {
	c.perform()
	c.state.reset()
	c.curClip = nil
	c.camera = scene.ScreenCamera{}
	c.stats = c.frameStats
	c.frameStats = Statistics{}
}

// perform drains accumulated batches and issues them, in creation order,
// under the active camera's projection. z-order = submission order.
func (c *Context) perform() {
	batches := c.batcher.Drain()
	if len(batches) == 0 {
		return
	}

	outW, outH := c.OutputSize()
	proj := c.camera.Matrix(outW, outH)

	scissor := c.curClip
	if vp := c.camera.Viewport(); vp != nil {
		if scissor == nil {
			scissor = vp
		} else {
			s := scissor.Intersect(*vp)
			scissor = &s
		}
	}

	c.r.BeginPass(c.camera.Target(), nil)
	for _, b := range batches {
		cmd := core.DrawCmd{
			Pipeline:   b.State.Pipeline,
			Vertices:   appendInterleaved(make([]float32, 0, len(b.Vertices)*vertexStride), b.Vertices),
			Indices:    b.Indices,
			Texture:    b.State.Texture,
			Scissor:    scissor,
			Projection: proj,
		}
		if err := c.r.Draw(cmd); err != nil {
			panic(fmt.Errorf("gfx: draw failed: %w", err))
		}
		c.frameStats.DrawCalls++
	}
	c.r.EndPass()
	c.frameStats.Batches += len(batches)
}
