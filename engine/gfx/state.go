package gfx

import (
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
)

// DrawMode selects the primitive topology of submitted geometry.
type DrawMode int

const (
	Triangles DrawMode = iota
	Lines
)

// RenderState is the snapshot compared for batch compatibility. Two
// consecutive submissions share a batch iff their states are equal.
// The clip stack is deliberately not part of this key: world rendering
// clips via viewport/camera, only the GUI draw lists batch by clip rect.
type RenderState struct {
	Texture  core.Texture
	Mode     DrawMode
	Pipeline core.Pipeline
	Target   core.RenderTarget
}

// stateStack holds the mutable render state every submission snapshots:
// the model-matrix stack, the clip stack, and the current
// texture/mode/pipeline/target selection.
//
// The matrix stack keeps cumulative products: each push stores
// parent * m, so the top is always the effective model matrix and the
// base frame is the identity. Popping past the base frame is a caller
// bug and panics.
type stateStack struct {
	model    []mathf.Mat4
	clip     []*mathf.Rect
	texture  core.Texture // nil = white
	mode     DrawMode
	pipeline core.Pipeline // nil = pick by mode/depth
	target   core.RenderTarget
	depth    bool
}

func newStateStack() *stateStack {
	return &stateStack{model: []mathf.Mat4{mathf.Identity()}}
}

func (s *stateStack) reset() {
	s.model = s.model[:1]
	s.model[0] = mathf.Identity()
	s.clip = s.clip[:0]
	s.texture = nil
	s.mode = Triangles
	s.pipeline = nil
}

// Model returns the effective model matrix (product of the whole stack).
func (s *stateStack) Model() mathf.Mat4 { return s.model[len(s.model)-1] }

func (s *stateStack) PushMatrix(m mathf.Mat4) {
	s.model = append(s.model, s.Model().Mul(m))
}

func (s *stateStack) PopMatrix() {
	if len(s.model) <= 1 {
		panic("gfx: model matrix stack underflow")
	}
	s.model = s.model[:len(s.model)-1]
}

func (s *stateStack) PushClip(r *mathf.Rect) {
	if r != nil {
		rc := *r
		r = &rc
	}
	s.clip = append(s.clip, r)
}

func (s *stateStack) PopClip() {
	if len(s.clip) == 0 {
		panic("gfx: clip stack underflow")
	}
	s.clip = s.clip[:len(s.clip)-1]
}

// Clip returns the intersection of all pushed clip rects, or nil when
// unclipped. nil entries add no constraint.
func (s *stateStack) Clip() *mathf.Rect {
	var eff *mathf.Rect
	for _, r := range s.clip {
		if r == nil {
			continue
		}
		if eff == nil {
			rc := *r
			eff = &rc
			continue
		}
		rc := eff.Intersect(*r)
		eff = &rc
	}
	return eff
}

func (s *stateStack) SetTexture(t core.Texture)      { s.texture = t }
func (s *stateStack) SetDrawMode(m DrawMode)         { s.mode = m }
func (s *stateStack) SetPipeline(p core.Pipeline)    { s.pipeline = p }
func (s *stateStack) SetTarget(t core.RenderTarget)  { s.target = t }
func (s *stateStack) SetDepthTest(on bool)           { s.depth = on }
func (s *stateStack) Texture() core.Texture          { return s.texture }
