package ui

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/draw"

	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/gfx"
	"github.com/kilnengine/kiln/engine/mathf"
	"github.com/kilnengine/kiln/engine/text"
)

// Style holds the widget palette and spacing. Most fields are optional;
// DefaultStyle documents the defaults.
type Style struct {
	WindowBg     colors.Color
	WindowBorder colors.Color
	TitleBg      colors.Color
	Text         colors.Color
	Button       colors.Color
	ButtonHover  colors.Color
	ButtonActive colors.Color
	SliderBg     colors.Color
	SliderKnob   colors.Color
	Margin       float32
	TitleHeight  float32
	FontSize     uint16
}

func DefaultStyle() Style {
	return Style{
		WindowBg:     colors.New(0.11, 0.12, 0.13, 0.95),
		WindowBorder: colors.New(0.4, 0.4, 0.4, 1),
		TitleBg:      colors.New(0.18, 0.2, 0.23, 1),
		Text:         colors.New(0.92, 0.92, 0.92, 1),
		Button:       colors.New(0.25, 0.27, 0.3, 1),
		ButtonHover:  colors.New(0.32, 0.34, 0.38, 1),
		ButtonActive: colors.New(0.2, 0.42, 0.72, 1),
		SliderBg:     colors.New(0.18, 0.19, 0.21, 1),
		SliderKnob:   colors.New(0.55, 0.57, 0.6, 1),
		Margin:       6,
		TitleHeight:  22,
		FontSize:     16,
	}
}

// Input is the per-frame pointer state the UI consumes.
type Input struct {
	MouseX, MouseY float32
	MouseDown      bool
	MousePressed   bool
	MouseReleased  bool
}

// InputFromCore samples the engine's input state for the left button.
func InputFromCore(in *core.Input) Input {
	mx, my := in.Mouse()
	return Input{
		MouseX:        float32(mx),
		MouseY:        float32(my),
		MouseDown:     in.IsMouseDown(core.MouseLeft),
		MousePressed:  in.MousePressed(core.MouseLeft),
		MouseReleased: in.MouseReleased(core.MouseLeft),
	}
}

type widgetID uint64

// windowState is the retained part of a window between frames.
type windowState struct {
	pos     mathf.Vec2
	dragOff mathf.Vec2
}

// UI is an immediate-mode GUI context. Widgets record draw commands; End
// compiles them into draw lists; Draw hands the lists to the GPU in list
// order. The caller draws the UI after the game world.
type UI struct {
	font  *text.Font
	style Style

	in   Input
	cmds []Command

	hot     widgetID
	nextHot widgetID
	active  widgetID

	windows map[string]*windowState

	// current window layout cursor
	win       *windowState
	winTitle  string
	winRect   mathf.Rect
	cursorY   float32
	innerClip mathf.Rect

	whiteUV mathf.Rect
	lists   []DrawList
}

// New builds a UI sharing the font's sprite atlas; a small solid sprite
// is cached there so flat-color geometry needs no texture switch.
func New(font *text.Font, style Style) *UI {
	u := &UI{font: font, style: style, windows: map[string]*windowState{}}

	white := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(white, white.Bounds(), image.White, image.Point{}, draw.Src)
	key := font.Atlas().UniqueKey()
	font.Atlas().CacheSprite(key, white)
	if uv, ok := font.Atlas().UVRect(key); ok {
		// sample the sprite center to stay clear of neighbors when filtered
		u.whiteUV = mathf.NewRect(uv.X+uv.W/2, uv.Y+uv.H/2, 0, 0)
	}
	return u
}

// Begin starts a UI frame. hot-widget tracking resets; the previous
// frame's nextHot becomes hot (one frame of lag, stable under overlap).
func (u *UI) Begin(in Input) {
	u.in = in
	u.cmds = u.cmds[:0]
	u.hot = u.nextHot
	u.nextHot = 0
	if !u.in.MouseDown && !u.in.MouseReleased {
		u.active = 0
	}
}

// End compiles the recorded command stream into draw lists.
func (u *UI) End() {
	u.lists = Compile(u.cmds, u.whiteUV)
}

// Lists returns the compiled draw lists of the last End.
func (u *UI) Lists() []DrawList { return u.lists }

// Draw submits the compiled lists through the draw context, in order.
// Each list sets its clip rect and texture; the context flushes on those
// changes, so one list is at most one GPU draw.
func (u *UI) Draw(ctx *gfx.Context) error {
	atlasTex, err := u.font.Atlas().Texture()
	if err != nil {
		return fmt.Errorf("ui atlas: %w", err)
	}
	for _, l := range u.lists {
		ctx.PushClip(l.Clip)
		tex := l.Texture
		if tex == nil {
			tex = atlasTex
		}
		ctx.SetTexture(tex)
		ctx.SetDrawMode(gfx.Triangles)
		ctx.Submit(l.Vertices, l.Indices)
		ctx.PopClip()
	}
	return nil
}

// --- widget identity & interaction helpers ---

func (u *UI) id(label string) widgetID {
	h := fnv.New64a()
	h.Write([]byte(u.winTitle))
	h.Write([]byte{0})
	h.Write([]byte(label))
	return widgetID(h.Sum64())
}

func (u *UI) mouseIn(r mathf.Rect) bool {
	if !u.innerClip.Empty() && !u.innerClip.Contains(u.in.MouseX, u.in.MouseY) {
		return false
	}
	return r.Contains(u.in.MouseX, u.in.MouseY)
}

// interact runs the hot/active protocol for a widget occupying r and
// reports whether it was clicked this frame.
func (u *UI) interact(id widgetID, r mathf.Rect) (hovered, held, clicked bool) {
	hovered = u.mouseIn(r)
	if hovered {
		u.nextHot = id
	}
	if hovered && u.hot == id && u.in.MousePressed {
		u.active = id
	}
	held = u.active == id && u.in.MouseDown
	if u.active == id && u.in.MouseReleased {
		if hovered {
			clicked = true
		}
		u.active = 0
	}
	return
}
