package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph holds the layout metrics of one rasterized glyph plus its atlas
// key. Metrics are in pixels at the glyph's rasterized size.
type Glyph struct {
	Rune     rune
	Advance  float32
	BearingX float32 // left bearing
	BearingY float32 // baseline to glyph top
	W, H     int
	Key      SpriteKey
}

// Metrics are font vertical metrics at a given pixel size.
type Metrics struct {
	Ascent  float32
	Descent float32 // negative, below baseline
	LineGap float32
}

func (m Metrics) LineHeight() float32 { return m.Ascent - m.Descent + m.LineGap }

var nextFontID uint16

// Font wraps a parsed OpenType font with per-size faces and a glyph cache
// backed by a shared dynamic atlas. Rasterization happens on first use of
// each (rune, size) pair.
type Font struct {
	id    uint16
	ft    *opentype.Font
	atlas *Atlas

	faces  map[uint16]font.Face
	glyphs map[SpriteKey]Glyph
}

// Load parses TTF/OTF bytes. The atlas is shared between fonts (and with
// the GUI's sprites).
func Load(data []byte, atlas *Atlas) (*Font, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	nextFontID++
	return &Font{
		id:     nextFontID,
		ft:     ft,
		atlas:  atlas,
		faces:  map[uint16]font.Face{},
		glyphs: map[SpriteKey]Glyph{},
	}, nil
}

// Atlas returns the backing sprite atlas.
func (f *Font) Atlas() *Atlas { return f.atlas }

func (f *Font) face(sizePx uint16) (font.Face, error) {
	if fc, ok := f.faces[sizePx]; ok {
		return fc, nil
	}
	fc, err := opentype.NewFace(f.ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face size %d: %w", sizePx, err)
	}
	f.faces[sizePx] = fc
	return fc, nil
}

// Metrics returns vertical metrics for the given pixel size.
func (f *Font) Metrics(sizePx uint16) (Metrics, error) {
	fc, err := f.face(sizePx)
	if err != nil {
		return Metrics{}, err
	}
	m := fc.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	return Metrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: float32(m.Height.Round()) - ascent + descent,
	}, nil
}

// Kern returns the kerning adjustment between two runes in pixels.
func (f *Font) Kern(sizePx uint16, a, b rune) float32 {
	fc, err := f.face(sizePx)
	if err != nil {
		return 0
	}
	return float32(fc.Kern(a, b)) / 64
}

// Glyph returns the cached glyph for (r, sizePx), rasterizing and caching
// it in the atlas on first use.
func (f *Font) Glyph(r rune, sizePx uint16) (Glyph, error) {
	key := GlyphKey(f.id, r, sizePx)
	if g, ok := f.glyphs[key]; ok {
		return g, nil
	}

	fc, err := f.face(sizePx)
	if err != nil {
		return Glyph{}, err
	}
	bounds, adv, ok := fc.GlyphBounds(r)
	if !ok {
		return Glyph{}, fmt.Errorf("font has no glyph for %q", r)
	}

	g := Glyph{
		Rune:     r,
		Advance:  float32(adv.Round()),
		BearingX: float32(bounds.Min.X.Round()),
		BearingY: float32(-bounds.Min.Y.Round()),
		W:        (bounds.Max.X - bounds.Min.X).Round(),
		H:        (bounds.Max.Y - bounds.Min.Y).Round(),
		Key:      key,
	}

	if g.W > 0 && g.H > 0 {
		bmp := rasterize(fc, r, g)
		f.atlas.CacheSprite(key, bmp)
	}

	f.glyphs[key] = g
	return g, nil
}

// rasterize renders one glyph as white-with-alpha-coverage RGBA, sized to
// its tight bounds.
func rasterize(fc font.Face, r rune, g Glyph) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: fc,
		// shift so the tight bounding box lands at the image origin
		Dot: fixed.P(-int(g.BearingX), int(g.BearingY)),
	}
	d.DrawString(string(r))
	return dst
}
