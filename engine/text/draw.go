package text

import (
	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/gfx"
	"github.com/kilnengine/kiln/engine/mathf"
)

// DrawText draws s with its top-left at (x,y). Positive Y goes downward
// (matching the 2D projection). Glyph quads go through the context's
// batcher; a whole string under one font atlas is a single batch.
func DrawText(ctx *gfx.Context, f *Font, x, y float32, s string, sizePx uint16, col colors.Color) error {
	m, err := f.Metrics(sizePx)
	if err != nil {
		return err
	}
	tex, err := f.atlas.Texture()
	if err != nil {
		return err
	}

	penX := x
	baseY := y + m.Ascent
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += m.LineHeight()
			prev = -1
			continue
		}

		g, err := f.Glyph(r, sizePx)
		if err != nil {
			// missing glyph: advance by the space width
			if sp, err2 := f.Glyph(' ', sizePx); err2 == nil {
				penX += sp.Advance
			}
			prev = -1
			continue
		}

		if prev >= 0 {
			penX += f.Kern(sizePx, prev, r)
		}

		if g.W > 0 && g.H > 0 {
			// the atlas may have grown while caching this glyph
			if t, err := f.atlas.Texture(); err == nil {
				tex = t
			}
			uv, _ := f.atlas.UVRect(g.Key)
			dest := mathf.NewRect(penX+g.BearingX, baseY-g.BearingY, float32(g.W), float32(g.H))
			ctx.DrawTextureRec(tex, dest, uv, col)
		}

		penX += g.Advance
		prev = r
	}
	return nil
}

// Measure returns the pixel size of s at sizePx (multi-line aware).
func Measure(f *Font, s string, sizePx uint16) (w, h float32) {
	m, err := f.Metrics(sizePx)
	if err != nil {
		return 0, 0
	}
	var lineW float32
	var prev rune = -1
	h = m.LineHeight()

	for _, r := range s {
		if r == '\n' {
			if lineW > w {
				w = lineW
			}
			lineW = 0
			h += m.LineHeight()
			prev = -1
			continue
		}
		g, err := f.Glyph(r, sizePx)
		if err != nil {
			if sp, err2 := f.Glyph(' ', sizePx); err2 == nil {
				lineW += sp.Advance
			}
			prev = -1
			continue
		}
		if prev >= 0 {
			lineW += f.Kern(sizePx, prev, r)
		}
		lineW += g.Advance
		prev = r
	}
	if lineW > w {
		w = lineW
	}
	return w, h
}
