package ui

import (
	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
	"github.com/kilnengine/kiln/engine/text"
)

const (
	widgetHeight = 20
	rowSpacing   = 4
)

// BeginWindow opens a draggable window. Widgets between BeginWindow and
// EndWindow lay out vertically inside it. The rect gives the initial
// position and the fixed size; position is retained across frames.
func (u *UI) BeginWindow(title string, rect mathf.Rect) {
	st, ok := u.windows[title]
	if !ok {
		st = &windowState{pos: mathf.V2(rect.X, rect.Y)}
		u.windows[title] = st
	}
	u.win = st
	u.winTitle = title
	u.winRect = mathf.NewRect(st.pos.X, st.pos.Y, rect.W, rect.H)

	s := &u.style
	titleBar := mathf.NewRect(u.winRect.X, u.winRect.Y, u.winRect.W, s.TitleHeight)

	// title bar drag
	id := u.id("__titlebar")
	hovered := u.mouseIn(titleBar)
	if hovered {
		u.nextHot = id
	}
	if hovered && u.hot == id && u.in.MousePressed {
		u.active = id
		st.dragOff = mathf.V2(u.in.MouseX-st.pos.X, u.in.MouseY-st.pos.Y)
	}
	if u.active == id && u.in.MouseDown {
		st.pos = mathf.V2(u.in.MouseX-st.dragOff.X, u.in.MouseY-st.dragOff.Y)
		u.winRect.X, u.winRect.Y = st.pos.X, st.pos.Y
		titleBar.X, titleBar.Y = st.pos.X, st.pos.Y
	}

	body := u.winRect
	u.emit(ClipCommand{Rect: &body})
	u.emit(RectCommand{Rect: u.winRect, Fill: &s.WindowBg, Stroke: &s.WindowBorder})
	u.emit(RectCommand{Rect: titleBar, Fill: &s.TitleBg})
	u.text(u.winRect.X+s.Margin, u.winRect.Y+(s.TitleHeight-u.lineHeight())/2, title, s.Text)

	u.cursorY = u.winRect.Y + s.TitleHeight + s.Margin
	u.innerClip = mathf.NewRect(u.winRect.X, u.winRect.Y+s.TitleHeight,
		u.winRect.W, u.winRect.H-s.TitleHeight)
}

// EndWindow closes the current window and lifts its clip.
func (u *UI) EndWindow() {
	u.emit(ClipCommand{Rect: nil})
	u.win = nil
	u.winTitle = ""
	u.innerClip = mathf.Rect{}
}

// Label draws a line of text at the layout cursor.
func (u *UI) Label(s string) {
	r := u.row(u.lineHeight())
	u.text(r.X, r.Y, s, u.style.Text)
}

// Button draws a push button and reports whether it was clicked.
func (u *UI) Button(label string) bool {
	r := u.row(widgetHeight)
	id := u.id(label)
	hovered, held, clicked := u.interact(id, r)

	fill := u.style.Button
	switch {
	case held:
		fill = u.style.ButtonActive
	case hovered:
		fill = u.style.ButtonHover
	}
	u.emit(RectCommand{Rect: r, Fill: &fill, Stroke: &u.style.WindowBorder})

	tw, _ := text.Measure(u.font, label, u.style.FontSize)
	u.text(r.X+(r.W-tw)/2, r.Y+(r.H-u.lineHeight())/2, label, u.style.Text)
	return clicked
}

// Checkbox draws a toggle box with a label; it flips *v on click and
// reports whether it changed.
func (u *UI) Checkbox(label string, v *bool) bool {
	r := u.row(widgetHeight)
	box := mathf.NewRect(r.X, r.Y+(r.H-14)/2, 14, 14)
	id := u.id(label)
	hovered, _, clicked := u.interact(id, r)

	fill := u.style.Button
	if hovered {
		fill = u.style.ButtonHover
	}
	u.emit(RectCommand{Rect: box, Fill: &fill, Stroke: &u.style.WindowBorder})
	if *v {
		mark := mathf.NewRect(box.X+3, box.Y+3, box.W-6, box.H-6)
		u.emit(RectCommand{Rect: mark, Fill: &u.style.ButtonActive})
	}
	u.text(box.Right()+u.style.Margin, r.Y+(r.H-u.lineHeight())/2, label, u.style.Text)

	if clicked {
		*v = !*v
	}
	return clicked
}

// Slider draws a horizontal slider over [min,max]; dragging updates *v.
// Reports whether the value changed this frame.
func (u *UI) Slider(label string, v *float32, min, max float32) bool {
	u.Label(label)
	r := u.row(widgetHeight)
	track := mathf.NewRect(r.X, r.Y+(r.H-6)/2, r.W, 6)
	id := u.id(label + "##slider")

	hovered := u.mouseIn(r)
	if hovered {
		u.nextHot = id
	}
	if hovered && u.hot == id && u.in.MousePressed {
		u.active = id
	}

	changed := false
	if u.active == id && u.in.MouseDown {
		t := (u.in.MouseX - track.X) / track.W
		t = clamp01(t)
		nv := min + t*(max-min)
		if nv != *v {
			*v = nv
			changed = true
		}
	}

	u.emit(RectCommand{Rect: track, Fill: &u.style.SliderBg})
	t := clamp01((*v - min) / (max - min))
	knobX := track.X + t*(track.W-10)
	knob := mathf.NewRect(knobX, r.Y+(r.H-16)/2, 10, 16)
	kc := u.style.SliderKnob
	if u.active == id || (hovered && u.hot == id) {
		kc = u.style.ButtonActive
	}
	u.emit(RectCommand{Rect: knob, Fill: &kc, Stroke: &u.style.WindowBorder})
	return changed
}

// Separator draws a thin horizontal rule.
func (u *UI) Separator() {
	r := u.row(1)
	u.emit(LineCommand{
		P0:    mathf.V2(r.X, r.Y),
		P1:    mathf.V2(r.Right(), r.Y),
		Color: u.style.WindowBorder,
	})
}

// Image draws an arbitrary texture (a render target preview, typically)
// scaled into a row of the given height.
func (u *UI) Image(tex core.Texture, height float32) {
	r := u.row(height)
	aspect := float32(tex.Width()) / float32(tex.Height())
	w := height * aspect
	if w > r.W {
		w = r.W
	}
	u.emit(RawTextureCommand{Rect: mathf.NewRect(r.X, r.Y, w, height), Texture: tex})
}

// --- layout and text plumbing ---

func (u *UI) emit(c Command) { u.cmds = append(u.cmds, c) }

// row reserves a full-width row of the given height at the layout cursor.
func (u *UI) row(h float32) mathf.Rect {
	m := u.style.Margin
	r := mathf.NewRect(u.winRect.X+m, u.cursorY, u.winRect.W-2*m, h)
	u.cursorY += h + rowSpacing
	return r
}

func (u *UI) lineHeight() float32 {
	m, err := u.font.Metrics(u.style.FontSize)
	if err != nil {
		return float32(u.style.FontSize)
	}
	return m.LineHeight()
}

// text records glyph commands for s with its top-left at (x,y), same
// layout rules as the world-space text renderer.
func (u *UI) text(x, y float32, s string, col colors.Color) {
	m, err := u.font.Metrics(u.style.FontSize)
	if err != nil {
		return
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
		g, err := u.font.Glyph(r, u.style.FontSize)
		if err != nil {
			if sp, err2 := u.font.Glyph(' ', u.style.FontSize); err2 == nil {
				penX += sp.Advance
			}
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += u.font.Kern(u.style.FontSize, prev, r)
		}
		if g.W > 0 && g.H > 0 {
			uv, _ := u.font.Atlas().UVRect(g.Key)
			dest := mathf.NewRect(penX+g.BearingX, baseY-g.BearingY, float32(g.W), float32(g.H))
			u.emit(GlyphCommand{Dest: dest, Src: uv, Color: col})
		}
		penX += g.Advance
		prev = r
	}
}

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
