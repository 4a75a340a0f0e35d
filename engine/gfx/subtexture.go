package gfx

import (
	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
)

// SubTexture names a normalized UV region of a larger texture, for sprite
// sheets and tile atlases.
type SubTexture struct {
	Texture core.Texture
	UV      mathf.Rect
}

// SubTexFromPixels builds a subtexture from pixel coordinates within the
// texture.
func SubTexFromPixels(tex core.Texture, x, y, w, h int) SubTexture {
	tw := float32(tex.Width())
	th := float32(tex.Height())
	return SubTexture{
		Texture: tex,
		UV:      mathf.NewRect(float32(x)/tw, float32(y)/th, float32(w)/tw, float32(h)/th),
	}
}

// SubTexFromGrid builds a subtexture from tile grid cell (cx,cy) of cell
// size (cw,ch) pixels.
func SubTexFromGrid(tex core.Texture, cx, cy, cw, ch int) SubTexture {
	return SubTexFromPixels(tex, cx*cw, cy*ch, cw, ch)
}

// DrawSubTexture draws the sprite region into dest.
func (c *Context) DrawSubTexture(s SubTexture, dest mathf.Rect, tint colors.Color) {
	c.DrawTextureRec(s.Texture, dest, s.UV, tint)
}
