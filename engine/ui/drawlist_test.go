package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/mathf"
)

type listTexture struct{ w, h int }

func (t *listTexture) Width() int  { return t.w }
func (t *listTexture) Height() int { return t.h }

var testWhiteUV = mathf.NewRect(0.5, 0.5, 0, 0)

func fill(r mathf.Rect) RectCommand {
	c := colors.Red
	return RectCommand{Rect: r, Fill: &c}
}

func TestCompileMergesSameClip(t *testing.T) {
	lists := Compile([]Command{
		fill(mathf.NewRect(0, 0, 10, 10)),
		fill(mathf.NewRect(20, 0, 10, 10)),
		GlyphCommand{Dest: mathf.NewRect(0, 20, 8, 8), Src: mathf.NewRect(0, 0, 0.1, 0.1), Color: colors.White},
	}, testWhiteUV)

	// flat shapes and glyphs share the nil-texture bucket
	require.Len(t, lists, 1)
	assert.Nil(t, lists[0].Texture)
	assert.Len(t, lists[0].Vertices, 12)
	assert.Len(t, lists[0].Indices, 18)
}

func TestCompileSplitsOnClipChange(t *testing.T) {
	clip := mathf.NewRect(0, 0, 50, 50)
	lists := Compile([]Command{
		fill(mathf.NewRect(0, 0, 10, 10)),
		ClipCommand{Rect: &clip},
		fill(mathf.NewRect(5, 5, 10, 10)),
		ClipCommand{Rect: nil},
		fill(mathf.NewRect(60, 60, 10, 10)),
	}, testWhiteUV)

	require.Len(t, lists, 3)
	assert.Nil(t, lists[0].Clip)
	require.NotNil(t, lists[1].Clip)
	assert.Equal(t, clip, *lists[1].Clip)
	assert.Nil(t, lists[2].Clip)
}

func TestCompileRedundantClipDoesNotSplit(t *testing.T) {
	clip := mathf.NewRect(0, 0, 50, 50)
	same := clip
	lists := Compile([]Command{
		ClipCommand{Rect: &clip},
		fill(mathf.NewRect(0, 0, 10, 10)),
		ClipCommand{Rect: &same},
		fill(mathf.NewRect(20, 0, 10, 10)),
	}, testWhiteUV)

	require.Len(t, lists, 1)
}

func TestCompileSplitsOnRawTexture(t *testing.T) {
	tex := &listTexture{64, 64}
	lists := Compile([]Command{
		fill(mathf.NewRect(0, 0, 10, 10)),
		RawTextureCommand{Rect: mathf.NewRect(20, 0, 32, 32), Texture: tex},
		fill(mathf.NewRect(60, 0, 10, 10)),
	}, testWhiteUV)

	require.Len(t, lists, 3)
	assert.Nil(t, lists[0].Texture)
	assert.Equal(t, tex, lists[1].Texture)
	assert.Nil(t, lists[2].Texture)
}

func TestCompileConsecutiveRawTexturesShareList(t *testing.T) {
	tex := &listTexture{64, 64}
	lists := Compile([]Command{
		RawTextureCommand{Rect: mathf.NewRect(0, 0, 32, 32), Texture: tex},
		RawTextureCommand{Rect: mathf.NewRect(40, 0, 32, 32), Texture: tex},
	}, testWhiteUV)

	require.Len(t, lists, 1)
	assert.Len(t, lists[0].Vertices, 8)
}

func TestCompileIndexRebase(t *testing.T) {
	lists := Compile([]Command{
		fill(mathf.NewRect(0, 0, 10, 10)),
		TriangleCommand{
			P0: mathf.V2(0, 0), P1: mathf.V2(10, 0), P2: mathf.V2(0, 10),
			Color: colors.Blue,
		},
	}, testWhiteUV)

	require.Len(t, lists, 1)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6}, lists[0].Indices)
}

func TestCompileDropsEmptyLists(t *testing.T) {
	clip := mathf.NewRect(0, 0, 50, 50)
	lists := Compile([]Command{
		ClipCommand{Rect: &clip},
		ClipCommand{Rect: nil},
		fill(mathf.NewRect(0, 0, 10, 10)),
	}, testWhiteUV)

	require.Len(t, lists, 1)
	assert.Nil(t, lists[0].Clip)
}

func TestCompileFlatShapesSampleWhiteUV(t *testing.T) {
	lists := Compile([]Command{fill(mathf.NewRect(0, 0, 10, 10))}, testWhiteUV)

	require.Len(t, lists, 1)
	for _, v := range lists[0].Vertices {
		assert.Equal(t, float32(0.5), v.UV[0])
		assert.Equal(t, float32(0.5), v.UV[1])
	}
}

func TestCompileStrokeRect(t *testing.T) {
	col := colors.White
	lists := Compile([]Command{
		RectCommand{Rect: mathf.NewRect(0, 0, 20, 20), Stroke: &col},
	}, testWhiteUV)
	require.Len(t, lists, 1)
	// four thin rects
	assert.Len(t, lists[0].Vertices, 16)
	assert.Len(t, lists[0].Indices, 24)
}

func TestCompileZeroLengthLineIsDropped(t *testing.T) {
	lists := Compile([]Command{
		LineCommand{P0: mathf.V2(5, 5), P1: mathf.V2(5, 5), Color: colors.White},
	}, testWhiteUV)
	assert.Empty(t, lists)
}
