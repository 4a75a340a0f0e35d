package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/kilnengine/kiln/engine/core"
)

func loadTestFont(t *testing.T) *Font {
	t.Helper()
	atlas := NewAtlas(&stubRenderer{}, core.FilterNearest)
	f, err := Load(goregular.TTF, atlas)
	require.NoError(t, err)
	return f
}

func TestLoadRejectsGarbage(t *testing.T) {
	atlas := NewAtlas(&stubRenderer{}, core.FilterNearest)
	_, err := Load([]byte("not a font"), atlas)
	assert.Error(t, err)
}

func TestFontMetrics(t *testing.T) {
	f := loadTestFont(t)
	m, err := f.Metrics(16)
	require.NoError(t, err)
	assert.Greater(t, m.Ascent, float32(0))
	assert.Less(t, m.Descent, float32(0))
	assert.Greater(t, m.LineHeight(), m.Ascent)
}

func TestGlyphCachedInAtlas(t *testing.T) {
	f := loadTestFont(t)

	g, err := f.Glyph('A', 24)
	require.NoError(t, err)
	assert.Greater(t, g.Advance, float32(0))
	assert.Greater(t, g.W, 0)
	assert.Greater(t, g.H, 0)

	s, ok := f.Atlas().Sprite(g.Key)
	require.True(t, ok)
	assert.Equal(t, float32(g.W), s.Rect.W)
	assert.Equal(t, float32(g.H), s.Rect.H)

	// second lookup hits the cache and returns the same placement
	g2, err := f.Glyph('A', 24)
	require.NoError(t, err)
	assert.Equal(t, g.Key, g2.Key)
}

func TestGlyphSizesAreDistinct(t *testing.T) {
	f := loadTestFont(t)
	small, err := f.Glyph('M', 12)
	require.NoError(t, err)
	big, err := f.Glyph('M', 48)
	require.NoError(t, err)

	assert.NotEqual(t, small.Key, big.Key)
	assert.Greater(t, big.W, small.W)
}

func TestSpaceGlyphHasNoBitmap(t *testing.T) {
	f := loadTestFont(t)
	g, err := f.Glyph(' ', 16)
	require.NoError(t, err)
	assert.Greater(t, g.Advance, float32(0))

	// nothing to rasterize, nothing in the atlas
	_, ok := f.Atlas().Sprite(g.Key)
	assert.False(t, ok)
}

func TestMeasure(t *testing.T) {
	f := loadTestFont(t)

	w1, h1 := Measure(f, "hi", 16)
	w2, h2 := Measure(f, "hi there", 16)
	assert.Greater(t, w2, w1)
	assert.Equal(t, h1, h2)

	_, h3 := Measure(f, "two\nlines", 16)
	assert.Greater(t, h3, h1)

	w0, _ := Measure(f, "", 16)
	assert.Zero(t, w0)
}

func TestFontsGetDistinctIDs(t *testing.T) {
	f1 := loadTestFont(t)
	f2 := loadTestFont(t)
	g1, err := f1.Glyph('A', 16)
	require.NoError(t, err)
	g2, err := f2.Glyph('A', 16)
	require.NoError(t, err)
	assert.NotEqual(t, g1.Key, g2.Key)
}
