package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/kilnengine/kiln/engine/core"
)

// vertex layout: pos3 + uv2 + color4 => 9 floats
const vertexStride = 9 * 4 // bytes

// initial streaming buffer sizes; grown on demand
const (
	initialVBOBytes = 1 << 20
	initialEBOBytes = 1 << 18
)

type glTexture struct {
	id   uint32
	w, h int
}

func (t *glTexture) Width() int  { return t.w }
func (t *glTexture) Height() int { return t.h }

type glPipeline struct {
	program uint32
	desc    core.PipelineDesc
	projLoc int32
}

type glRenderTarget struct {
	fbo      uint32
	color    *glTexture
	depthRbo uint32
}

func (rt *glRenderTarget) ColorTexture() core.Texture { return rt.color }
func (rt *glRenderTarget) Size() (int, int)           { return rt.color.w, rt.color.h }

// RendererGL implements core.Renderer on OpenGL 3.3 core. All geometry is
// streamed through one shared VAO/VBO/EBO; pipelines are GL programs plus
// fixed-function state (blend, depth, primitive).
type RendererGL struct {
	win core.Window

	vao, vbo, ebo uint32
	vboCap        int
	eboCap        int

	screenW, screenH int
	passTarget       *glRenderTarget // nil = default framebuffer
	inPass           bool
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, initialVBOBytes, nil, gl.STREAM_DRAW)
	r.vboCap = initialVBOBytes

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, initialEBOBytes, nil, gl.STREAM_DRAW)
	r.eboCap = initialEBOBytes

	// layout(location=0) vec3 pos; (1) vec2 uv; (2) vec4 color
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(5*4)))

	gl.BindVertexArray(0)
	return nil
}

func (r *RendererGL) Shutdown() {
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
}

func (r *RendererGL) Resize(w, h int) {
	r.screenW, r.screenH = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// --- textures ---

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("create texture: bad size %dx%d", desc.Width, desc.Height)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	var pixels unsafe.Pointer
	if desc.Pixels != nil {
		if len(desc.Pixels) < desc.Width*desc.Height*4 {
			return nil, fmt.Errorf("create texture: pixel buffer too small")
		}
		pixels = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &glTexture{id: id, w: desc.Width, h: desc.Height}, nil
}

func (r *RendererGL) UpdateTexture(t core.Texture, pixels []byte) error {
	tex, ok := t.(*glTexture)
	if !ok {
		return fmt.Errorf("update texture: foreign handle %T", t)
	}
	if len(pixels) < tex.w*tex.h*4 {
		return fmt.Errorf("update texture: pixel buffer too small")
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(tex.w), int32(tex.h),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (r *RendererGL) DeleteTexture(t core.Texture) {
	if tex, ok := t.(*glTexture); ok && tex.id != 0 {
		gl.DeleteTextures(1, &tex.id)
		tex.id = 0
	}
}

// --- pipelines ---

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	p := &glPipeline{program: prog, desc: desc}
	p.projLoc = gl.GetUniformLocation(prog, gl.Str("uProjection\x00"))

	gl.UseProgram(prog)
	if loc := gl.GetUniformLocation(prog, gl.Str("uTexture\x00")); loc >= 0 {
		gl.Uniform1i(loc, 0)
	}
	gl.UseProgram(0)
	return p, nil
}

// --- render targets ---

func (r *RendererGL) CreateRenderTarget(w, h int) (core.RenderTarget, error) {
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: w, Height: h,
		MinFilter: core.FilterLinear,
		MagFilter: core.FilterLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("render target color: %w", err)
	}
	color := tex.(*glTexture)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color.id, 0)

	var rbo uint32
	gl.GenRenderbuffers(1, &rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(w), int32(h))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rbo)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return nil, fmt.Errorf("render target: framebuffer incomplete (0x%x)", status)
	}
	return &glRenderTarget{fbo: fbo, color: color, depthRbo: rbo}, nil
}

// --- passes & draws ---

func (r *RendererGL) BeginPass(target core.RenderTarget, clearColor *[4]float32) {
	if target == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(r.screenW), int32(r.screenH))
		r.passTarget = nil
	} else {
		rt := target.(*glRenderTarget)
		gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
		gl.Viewport(0, 0, int32(rt.color.w), int32(rt.color.h))
		r.passTarget = rt
	}
	if clearColor != nil {
		gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}
	r.inPass = true
}

func (r *RendererGL) EndPass() {
	gl.Disable(gl.SCISSOR_TEST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	r.passTarget = nil
	r.inPass = false
}

func (r *RendererGL) Draw(cmd core.DrawCmd) error {
	if len(cmd.Vertices) == 0 || len(cmd.Indices) == 0 {
		return nil
	}
	pipe, ok := cmd.Pipeline.(*glPipeline)
	if !ok {
		return fmt.Errorf("draw: foreign pipeline %T", cmd.Pipeline)
	}
	tex, ok := cmd.Texture.(*glTexture)
	if !ok {
		return fmt.Errorf("draw: foreign texture %T", cmd.Texture)
	}

	gl.UseProgram(pipe.program)
	proj := cmd.Projection
	gl.UniformMatrix4fv(pipe.projLoc, 1, false, &proj[0])

	if pipe.desc.Blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	if pipe.desc.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(pipe.desc.DepthWrite)

	if cmd.Scissor != nil {
		// scissor rect arrives with top-left origin; GL wants bottom-left
		outH := r.screenH
		if r.passTarget != nil {
			_, outH = r.passTarget.Size()
		}
		s := *cmd.Scissor
		gl.Enable(gl.SCISSOR_TEST)
		gl.Scissor(int32(s.X), int32(float32(outH)-(s.Y+s.H)), int32(s.W), int32(s.H))
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)

	gl.BindVertexArray(r.vao)
	r.streamBuffers(cmd.Vertices, cmd.Indices)

	mode := uint32(gl.TRIANGLES)
	if pipe.desc.Primitive == core.PrimitiveLines {
		mode = gl.LINES
	}
	gl.DrawElements(mode, int32(len(cmd.Indices)), gl.UNSIGNED_SHORT, nil)

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	return nil
}

// streamBuffers uploads geometry into the shared buffers, orphaning them
// when the new data fits and reallocating when it does not.
func (r *RendererGL) streamBuffers(verts []float32, inds []uint16) {
	vbytes := len(verts) * 4
	ibytes := len(inds) * 2

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if vbytes > r.vboCap {
		r.vboCap = vbytes * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.vboCap, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, vbytes, gl.Ptr(verts))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if ibytes > r.eboCap {
		r.eboCap = ibytes * 2
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, r.eboCap, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, ibytes, gl.Ptr(inds))
}

func glFilter(f core.Filter) int32 {
	if f == core.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}
