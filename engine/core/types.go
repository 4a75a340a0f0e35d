package core

import "github.com/kilnengine/kiln/engine/mathf"

// Texture is an opaque GPU texture handle created by a Renderer.
// Handles are comparable; equality means "same GPU texture".
type Texture interface {
	Width() int
	Height() int
}

// Pipeline is an opaque, comparable shader pipeline handle.
type Pipeline interface{}

// RenderTarget is an offscreen framebuffer with a color texture attachment.
type RenderTarget interface {
	ColorTexture() Texture
	Size() (int, int)
}

type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// TextureDesc describes a texture to create. Pixels may be nil for an
// uninitialized texture; otherwise it must be tightly packed RGBA8.
type TextureDesc struct {
	Width, Height int
	Pixels        []byte
	MinFilter     Filter
	MagFilter     Filter
}

// PrimitiveMode is the topology a pipeline draws with.
type PrimitiveMode int

const (
	PrimitiveTriangles PrimitiveMode = iota
	PrimitiveLines
)

// PipelineDesc describes a shader pipeline. Sources are GLSL.
type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	Primitive      PrimitiveMode
	DepthTest      bool
	DepthWrite     bool
	Blend          bool
}

// DrawCmd is one GPU submission: interleaved vertex data plus indices,
// drawn with a single texture and pipeline. Vertices are 9 floats each:
// pos.xyz, uv.xy, color.rgba packed host-side by the batcher.
type DrawCmd struct {
	Pipeline   Pipeline
	Vertices   []float32
	Indices    []uint16
	Texture    Texture
	Scissor    *mathf.Rect // nil = no scissor
	Projection mathf.Mat4
}

// Renderer is the GPU backend contract the engine draws through.
// Implementations are not goroutine safe; the whole render path runs on
// one logical thread.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)

	CreateTexture(desc TextureDesc) (Texture, error)
	UpdateTexture(t Texture, pixels []byte) error
	DeleteTexture(t Texture)

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateRenderTarget(w, h int) (RenderTarget, error)

	// BeginPass directs subsequent Draw calls at target (nil = default
	// framebuffer). clearColor, when non-nil, clears the target first.
	BeginPass(target RenderTarget, clearColor *[4]float32)
	EndPass()
	Draw(cmd DrawCmd) error

	Shutdown()
}
