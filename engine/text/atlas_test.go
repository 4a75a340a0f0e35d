package text

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnengine/kiln/engine/core"
)

type stubTexture struct{ w, h int }

func (t *stubTexture) Width() int  { return t.w }
func (t *stubTexture) Height() int { return t.h }

// stubRenderer counts texture traffic for upload assertions.
type stubRenderer struct {
	created int
	updated int
	deleted int
}

func (r *stubRenderer) Init() error              { return nil }
func (r *stubRenderer) Resize(int, int)          {}
func (r *stubRenderer) Clear(_, _, _, _ float32) {}

func (r *stubRenderer) CreateTexture(d core.TextureDesc) (core.Texture, error) {
	r.created++
	return &stubTexture{d.Width, d.Height}, nil
}
func (r *stubRenderer) UpdateTexture(core.Texture, []byte) error { r.updated++; return nil }
func (r *stubRenderer) DeleteTexture(core.Texture)               { r.deleted++ }

func (r *stubRenderer) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) { return nil, nil }
func (r *stubRenderer) CreateRenderTarget(int, int) (core.RenderTarget, error)  { return nil, nil }
func (r *stubRenderer) BeginPass(core.RenderTarget, *[4]float32)                {}
func (r *stubRenderer) EndPass()                                                {}
func (r *stubRenderer) Draw(core.DrawCmd) error                                 { return nil }
func (r *stubRenderer) Shutdown()                                               {}

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestAtlasShelfPacking(t *testing.T) {
	a := NewAtlas(&stubRenderer{}, core.FilterNearest)

	k1 := a.UniqueKey()
	k2 := a.UniqueKey()
	a.CacheSprite(k1, solid(20, 10))
	a.CacheSprite(k2, solid(20, 14))

	s1, ok := a.Sprite(k1)
	require.True(t, ok)
	s2, ok := a.Sprite(k2)
	require.True(t, ok)

	// both on the first shelf, separated by the gap on each side
	assert.Equal(t, float32(atlasGap), s1.Rect.X)
	assert.Equal(t, float32(atlasGap), s1.Rect.Y)
	assert.Equal(t, float32(20+atlasGap*2+atlasGap), s2.Rect.X)
	assert.Equal(t, float32(atlasGap), s2.Rect.Y)
}

func TestAtlasStartsNewShelfWhenRowFull(t *testing.T) {
	a := NewAtlas(&stubRenderer{}, core.FilterNearest)

	// fill most of the first shelf
	wide := a.Width() - atlasGap*2 - 10
	a.CacheSprite(a.UniqueKey(), solid(wide, 8))

	k := a.UniqueKey()
	a.CacheSprite(k, solid(30, 8))
	s, ok := a.Sprite(k)
	require.True(t, ok)

	assert.Equal(t, float32(atlasGap), s.Rect.X)
	assert.Equal(t, float32(8+atlasGap*2+atlasGap), s.Rect.Y)
}

func TestAtlasGrowsAndKeepsSprites(t *testing.T) {
	a := NewAtlas(&stubRenderer{}, core.FilterNearest)
	start := a.Width()

	keys := make([]SpriteKey, 0, 20)
	// tall sprites force vertical exhaustion quickly
	for i := 0; i < 20; i++ {
		k := a.UniqueKey()
		keys = append(keys, k)
		a.CacheSprite(k, solid(400, 120))
	}

	assert.Greater(t, a.Width(), start)
	for _, k := range keys {
		s, ok := a.Sprite(k)
		require.True(t, ok)
		// positions may move on growth, sizes never do
		assert.Equal(t, float32(400), s.Rect.W)
		assert.Equal(t, float32(120), s.Rect.H)
	}
}

func TestAtlasGrowsForOversizedSprite(t *testing.T) {
	a := NewAtlas(&stubRenderer{}, core.FilterNearest)
	k := a.UniqueKey()
	a.CacheSprite(k, solid(initialAtlasSize+10, 4))

	s, ok := a.Sprite(k)
	require.True(t, ok)
	assert.Equal(t, float32(initialAtlasSize+10), s.Rect.W)
	assert.GreaterOrEqual(t, a.Width(), initialAtlasSize*2)
}

func TestAtlasLazyUpload(t *testing.T) {
	r := &stubRenderer{}
	a := NewAtlas(r, core.FilterNearest)

	a.CacheSprite(a.UniqueKey(), solid(10, 10))
	a.CacheSprite(a.UniqueKey(), solid(10, 10))
	assert.Equal(t, 0, r.created, "no GPU work before Texture()")

	_, err := a.Texture()
	require.NoError(t, err)
	assert.Equal(t, 1, r.created)

	// clean atlas: no re-upload
	_, err = a.Texture()
	require.NoError(t, err)
	assert.Equal(t, 1, r.created)
	assert.Equal(t, 0, r.updated)

	// same-size dirty atlas updates in place
	a.CacheSprite(a.UniqueKey(), solid(10, 10))
	_, err = a.Texture()
	require.NoError(t, err)
	assert.Equal(t, 1, r.created)
	assert.Equal(t, 1, r.updated)
}

func TestAtlasRecreatesTextureAfterGrowth(t *testing.T) {
	r := &stubRenderer{}
	a := NewAtlas(r, core.FilterNearest)

	a.CacheSprite(a.UniqueKey(), solid(10, 10))
	tex1, err := a.Texture()
	require.NoError(t, err)

	a.CacheSprite(a.UniqueKey(), solid(initialAtlasSize+10, 10))
	tex2, err := a.Texture()
	require.NoError(t, err)

	assert.NotEqual(t, tex1, tex2)
	assert.Equal(t, 1, r.deleted)
	assert.Equal(t, a.Width(), tex2.Width())
}

func TestAtlasUVRect(t *testing.T) {
	a := NewAtlas(&stubRenderer{}, core.FilterNearest)
	k := a.UniqueKey()
	a.CacheSprite(k, solid(64, 32))

	uv, ok := a.UVRect(k)
	require.True(t, ok)
	w := float32(a.Width())
	h := float32(a.Height())
	assert.InDelta(t, atlasGap/w, uv.X, 1e-6)
	assert.InDelta(t, atlasGap/h, uv.Y, 1e-6)
	assert.InDelta(t, 64/w, uv.W, 1e-6)
	assert.InDelta(t, 32/h, uv.H, 1e-6)

	_, ok = a.UVRect(a.UniqueKey())
	assert.False(t, ok)
}

func TestGlyphKeyPacking(t *testing.T) {
	k1 := GlyphKey(1, 'A', 16)
	k2 := GlyphKey(1, 'A', 17)
	k3 := GlyphKey(2, 'A', 16)
	k4 := GlyphKey(1, 'B', 16)
	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
}
