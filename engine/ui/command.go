package ui

import (
	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
)

// Command is one recorded GUI draw operation. Widgets append commands in
// paint order; the compiler folds the stream into draw lists.
type Command interface{ isCommand() }

// ClipCommand changes the effective clip rect for subsequent commands.
// nil means unclipped.
type ClipCommand struct{ Rect *mathf.Rect }

func (ClipCommand) isCommand() {}

// RectCommand fills and/or strokes an axis-aligned rectangle.
type RectCommand struct {
	Rect   mathf.Rect
	Fill   *colors.Color
	Stroke *colors.Color
}

func (RectCommand) isCommand() {}

// LineCommand draws a 1px segment.
type LineCommand struct {
	P0, P1 mathf.Vec2
	Color  colors.Color
}

func (LineCommand) isCommand() {}

// TriangleCommand fills a triangle (used for collapse arrows etc.).
type TriangleCommand struct {
	P0, P1, P2 mathf.Vec2
	Color      colors.Color
}

func (TriangleCommand) isCommand() {}

// GlyphCommand draws one glyph quad; Src is the glyph's normalized UV
// rect in the shared sprite atlas.
type GlyphCommand struct {
	Dest  mathf.Rect
	Src   mathf.Rect
	Color colors.Color
}

func (GlyphCommand) isCommand() {}

// RawTextureCommand draws an arbitrary texture (previews, render
// targets); it always binds that texture for its list.
type RawTextureCommand struct {
	Rect    mathf.Rect
	Texture core.Texture
}

func (RawTextureCommand) isCommand() {}
