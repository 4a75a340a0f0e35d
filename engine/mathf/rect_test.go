package mathf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(25, 25))
	assert.False(t, r.Contains(30, 30)) // right/bottom edges exclusive
	assert.False(t, r.Contains(9, 15))
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(50, 60, 100, 100)
	assert.Equal(t, NewRect(50, 60, 50, 40), a.Intersect(b))
	assert.Equal(t, NewRect(50, 60, 50, 40), b.Intersect(a))
}

func TestRectIntersectDisjointIsEmpty(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 20, 10, 10)
	got := a.Intersect(b)
	assert.True(t, got.Empty())
	assert.GreaterOrEqual(t, got.W, float32(0))
	assert.GreaterOrEqual(t, got.H, float32(0))
}

func TestRectOffset(t *testing.T) {
	r := NewRect(1, 2, 3, 4).Offset(10, 20)
	assert.Equal(t, NewRect(11, 22, 3, 4), r)
}
