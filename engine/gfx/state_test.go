package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnengine/kiln/engine/mathf"
)

func TestMatrixStackCumulative(t *testing.T) {
	s := newStateStack()
	require.Equal(t, mathf.Identity(), s.Model())

	s.PushMatrix(mathf.Translate(10, 0, 0))
	s.PushMatrix(mathf.Translate(0, 5, 0))

	// top of the stack is the full product, not the last push
	p := s.Model().TransformPoint(mathf.V3(0, 0, 0))
	assert.InDelta(t, 10, p.X, 1e-5)
	assert.InDelta(t, 5, p.Y, 1e-5)

	s.PopMatrix()
	p = s.Model().TransformPoint(mathf.V3(0, 0, 0))
	assert.InDelta(t, 10, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)

	s.PopMatrix()
	assert.Equal(t, mathf.Identity(), s.Model())
}

func TestMatrixStackUnderflowPanics(t *testing.T) {
	s := newStateStack()
	assert.Panics(t, func() { s.PopMatrix() })

	s.PushMatrix(mathf.Translate(1, 2, 3))
	s.PopMatrix()
	assert.Panics(t, func() { s.PopMatrix() })
}

func TestClipStackIntersection(t *testing.T) {
	s := newStateStack()
	assert.Nil(t, s.Clip())

	a := mathf.NewRect(0, 0, 100, 100)
	b := mathf.NewRect(50, 50, 100, 100)
	s.PushClip(&a)
	s.PushClip(nil) // no constraint
	s.PushClip(&b)

	eff := s.Clip()
	require.NotNil(t, eff)
	assert.Equal(t, mathf.NewRect(50, 50, 50, 50), *eff)

	s.PopClip()
	s.PopClip()
	eff = s.Clip()
	require.NotNil(t, eff)
	assert.Equal(t, a, *eff)
}

func TestClipStackUnderflowPanics(t *testing.T) {
	s := newStateStack()
	assert.Panics(t, func() { s.PopClip() })
}

func TestClipPushCopiesRect(t *testing.T) {
	s := newStateStack()
	r := mathf.NewRect(0, 0, 10, 10)
	s.PushClip(&r)
	r.W = 999

	eff := s.Clip()
	require.NotNil(t, eff)
	assert.Equal(t, float32(10), eff.W)
}

func TestResetKeepsBaseFrame(t *testing.T) {
	s := newStateStack()
	s.PushMatrix(mathf.Scale(2, 2, 2))
	r := mathf.NewRect(0, 0, 1, 1)
	s.PushClip(&r)
	s.SetDrawMode(Lines)

	s.reset()
	assert.Equal(t, mathf.Identity(), s.Model())
	assert.Nil(t, s.Clip())
	assert.Equal(t, Triangles, s.mode)
}
