package scratch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferChainedAppends(t *testing.T) {
	b := NewBuffer(64)
	b.S("frame ").I(42).S("  ").F(16.666, 2).S(" ms ").Bool(true).C('!')
	assert.Equal(t, "frame 42  16.67 ms true!", b.String())
}

func TestBufferResetKeepsCapacity(t *testing.T) {
	b := NewBuffer(32)
	b.S("hello world, this grows past the cap for sure")
	grown := b.Cap()

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, grown, b.Cap())
}

func TestBufferMarkAndView(t *testing.T) {
	b := NewBuffer(64)
	b.S("skip:")
	m := b.Mark()
	b.S("kept ").I(7)
	assert.Equal(t, "kept 7", b.ViewFrom(m))
	assert.Equal(t, "skip:kept 7", b.View())
}

func TestBufferRunesAndPad(t *testing.T) {
	b := NewBuffer(16)
	b.R('é').Pad(3, '-').R('x')
	assert.Equal(t, "é---x", b.String())
}

func TestBufferNoAllocsSteadyState(t *testing.T) {
	b := NewBuffer(256)
	allocs := testing.AllocsPerRun(100, func() {
		b.Reset()
		b.S("draws ").I(12).S(" batches ").I(3).S(" ms ").F(16.6, 2)
		_ = b.View()
	})
	assert.Zero(t, allocs)
}
