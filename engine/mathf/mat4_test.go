package mathf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3Near(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func TestMulIdentity(t *testing.T) {
	m := Translate(3, 4, 5).Mul(RotateZ(1.3))
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestMulOrder(t *testing.T) {
	// T*S applies scale first, then translation
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	assertVec3Near(t, V3(12, 2, 0), m.TransformPoint(V3(1, 1, 0)))

	// S*T applies translation first, then scale
	m = Scale(2, 2, 2).Mul(Translate(10, 0, 0))
	assertVec3Near(t, V3(22, 2, 0), m.TransformPoint(V3(1, 1, 0)))
}

func TestOrthoMapsCorners(t *testing.T) {
	// pixel projection, Y down
	m := Ortho(0, 800, 600, 0, -1, 1)
	assertVec3Near(t, V3(-1, 1, 0), m.TransformPoint(V3(0, 0, 0)))
	assertVec3Near(t, V3(1, -1, 0), m.TransformPoint(V3(800, 600, 0)))
	assertVec3Near(t, V3(0, 0, 0), m.TransformPoint(V3(400, 300, 0)))
}

func TestInverseRoundTrip(t *testing.T) {
	ms := []Mat4{
		Translate(5, -3, 2),
		Scale(2, 4, 1),
		RotateZ(0.7),
		Ortho(0, 800, 600, 0, -1, 1),
		Translate(1, 2, 0).Mul(Scale(3, 3, 1)).Mul(RotateZ(-0.4)),
	}
	for _, m := range ms {
		inv := m.Inverse()
		p := V3(13, -7, 0.5)
		assertVec3Near(t, p, inv.TransformPoint(m.TransformPoint(p)))
	}
}

func TestInverseSingularReturnsIdentity(t *testing.T) {
	assert.Equal(t, Identity(), Scale(0, 0, 0).Inverse())
}

func TestPerspectiveDividesW(t *testing.T) {
	m := Perspective(1.0, 4.0/3.0, 0.1, 100)
	// a point on the -Z axis stays centered
	p := m.TransformPoint(V3(0, 0, -10))
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	require.Greater(t, p.Z, float32(-1.0))
	require.Less(t, p.Z, float32(1.0))
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	m := LookAt(V3(0, 0, 10), V3(0, 0, 0), V3(0, 1, 0))
	assertVec3Near(t, V3(0, 0, 0), m.TransformPoint(V3(0, 0, 10)))
	// the target lands on the -Z axis at the eye distance
	assertVec3Near(t, V3(0, 0, -10), m.TransformPoint(V3(0, 0, 0)))
}
