package text

import (
	"image"
	"image/draw"

	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
)

// pixel gap between sprites in the atlas
const atlasGap = 2

const initialAtlasSize = 512

// SpriteKey identifies a cached sprite: font id, codepoint and pixel size
// packed into one integer. Non-glyph sprites use UniqueKey.
type SpriteKey uint64

// GlyphKey packs (font, codepoint, size) into a SpriteKey.
func GlyphKey(fontID uint16, r rune, sizePx uint16) SpriteKey {
	return SpriteKey(uint64(fontID)<<48 | uint64(uint32(r))<<16 | uint64(sizePx))
}

// Sprite is a placed bitmap: its pixel rect within the atlas image.
type Sprite struct {
	Rect mathf.Rect
}

// Atlas is a dynamic texture atlas filled by shelf packing. The CPU-side
// image is authoritative; the GPU texture is uploaded lazily when the
// handle is next requested. When an insertion does not fit, the atlas
// grows to twice both dimensions and every cached sprite is re-packed
// before the triggering insertion returns, so callers never observe a
// half-packed atlas (positions may change, sizes never do).
type Atlas struct {
	r   core.Renderer
	img *image.RGBA
	tex core.Texture

	sprites       map[SpriteKey]Sprite
	cursorX       int
	cursorY       int
	maxLineHeight int

	dirty  bool
	filter core.Filter

	uniqueID uint64
}

func NewAtlas(r core.Renderer, filter core.Filter) *Atlas {
	return &Atlas{
		r:        r,
		img:      image.NewRGBA(image.Rect(0, 0, initialAtlasSize, initialAtlasSize)),
		sprites:  map[SpriteKey]Sprite{},
		filter:   filter,
		uniqueID: 1 << 32, // clear of any packed glyph key's font/size bits
	}
}

// UniqueKey reserves a key for a non-glyph sprite (icons, cursors).
func (a *Atlas) UniqueKey() SpriteKey {
	a.uniqueID++
	return SpriteKey(a.uniqueID)
}

func (a *Atlas) Width() int  { return a.img.Bounds().Dx() }
func (a *Atlas) Height() int { return a.img.Bounds().Dy() }

// Sprite looks up a cached sprite by key.
func (a *Atlas) Sprite(key SpriteKey) (Sprite, bool) {
	s, ok := a.sprites[key]
	return s, ok
}

// UVRect returns the sprite's rect normalized to [0..1] texture space.
func (a *Atlas) UVRect(key SpriteKey) (mathf.Rect, bool) {
	s, ok := a.sprites[key]
	if !ok {
		return mathf.Rect{}, false
	}
	w := float32(a.Width())
	h := float32(a.Height())
	return mathf.NewRect(s.Rect.X/w, s.Rect.Y/h, s.Rect.W/w, s.Rect.H/h), true
}

// CacheSprite shelf-packs bmp into the atlas under key. The upload to the
// GPU is deferred (dirty flag), not performed per call.
func (a *Atlas) CacheSprite(key SpriteKey, bmp *image.RGBA) {
	w := bmp.Bounds().Dx()
	h := bmp.Bounds().Dy()

	if w+atlasGap*2 > a.Width() {
		a.grow()
		a.CacheSprite(key, bmp)
		return
	}

	var x int
	if a.cursorX+w+atlasGap*2 <= a.Width() {
		if h > a.maxLineHeight {
			a.maxLineHeight = h
		}
		x = a.cursorX + atlasGap
		a.cursorX += w + atlasGap*2
	} else {
		// start a new shelf
		a.cursorY += a.maxLineHeight + atlasGap*2
		a.cursorX = w + atlasGap*2
		a.maxLineHeight = h
		x = atlasGap
	}
	y := a.cursorY + atlasGap

	if y+h+atlasGap > a.Height() {
		a.grow()
		// repack complete; retry the triggering insertion in the larger atlas
		a.CacheSprite(key, bmp)
		return
	}

	draw.Draw(a.img, image.Rect(x, y, x+w, y+h), bmp, bmp.Bounds().Min, draw.Src)
	a.sprites[key] = Sprite{Rect: mathf.NewRect(float32(x), float32(y), float32(w), float32(h))}
	a.dirty = true
}

// grow doubles the atlas in both dimensions and re-inserts every cached
// sprite. Runs to completion before returning; recursive growth is fine
// (each level finishes its own repack).
func (a *Atlas) grow() {
	old := a.img
	oldSprites := a.sprites

	a.img = image.NewRGBA(image.Rect(0, 0, old.Bounds().Dx()*2, old.Bounds().Dy()*2))
	a.sprites = make(map[SpriteKey]Sprite, len(oldSprites))
	a.cursorX = 0
	a.cursorY = 0
	a.maxLineHeight = 0
	a.dirty = true

	for key, s := range oldSprites {
		sub := old.SubImage(image.Rect(
			int(s.Rect.X), int(s.Rect.Y),
			int(s.Rect.Right()), int(s.Rect.Bottom()),
		)).(*image.RGBA)
		// normalize to a tight copy so draw offsets stay simple
		tight := image.NewRGBA(image.Rect(0, 0, int(s.Rect.W), int(s.Rect.H)))
		draw.Draw(tight, tight.Bounds(), sub, sub.Bounds().Min, draw.Src)
		a.CacheSprite(key, tight)
	}
}

// Texture uploads pending changes and returns the GPU handle. The texture
// is (re)created when the atlas grew since the last upload.
func (a *Atlas) Texture() (core.Texture, error) {
	if a.tex == nil || a.dirty {
		if a.tex != nil {
			if a.tex.Width() != a.Width() || a.tex.Height() != a.Height() {
				a.r.DeleteTexture(a.tex)
				a.tex = nil
			}
		}
		if a.tex == nil {
			tex, err := a.r.CreateTexture(core.TextureDesc{
				Width:     a.Width(),
				Height:    a.Height(),
				Pixels:    a.img.Pix,
				MinFilter: a.filter,
				MagFilter: a.filter,
			})
			if err != nil {
				return nil, err
			}
			a.tex = tex
		} else if err := a.r.UpdateTexture(a.tex, a.img.Pix); err != nil {
			return nil, err
		}
		a.dirty = false
	}
	return a.tex, nil
}
