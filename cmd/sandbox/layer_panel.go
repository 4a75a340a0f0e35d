package main

import (
	"log"

	"github.com/kilnengine/kiln/engine/assets"
	"github.com/kilnengine/kiln/engine/audio"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/gfx"
	"github.com/kilnengine/kiln/engine/mathf"
	"github.com/kilnengine/kiln/engine/profiler"
	"github.com/kilnengine/kiln/engine/ui"
)

// PanelLayer is the interactive control window for the demo scene.
type PanelLayer struct {
	ctx   *gfx.Context
	gui   *ui.UI
	lib   *assets.Library
	world *WorldLayer

	click *audio.Sound
}

func (l *PanelLayer) OnAttach(e *core.Engine) {
	// optional; the panel works without the sound asset
	s, err := l.lib.LoadSound("click.wav")
	if err != nil {
		log.Printf("no click sound: %v", err)
		return
	}
	l.click = s
}

func (l *PanelLayer) OnDetach(e *core.Engine) {}

func (l *PanelLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *PanelLayer) OnRender(e *core.Engine, alpha float64) {
	done := profiler.Start("PanelLayer.OnRender")
	defer done()

	g := l.gui
	g.Begin(ui.InputFromCore(e.Input))

	g.BeginWindow("scene", mathf.NewRect(980, 40, 260, 330))
	g.Label("camera: WASD pan, Q/E zoom")
	g.Separator()
	g.Checkbox("animate", &l.world.Spin)
	g.Slider("tree depth", &l.world.Branches, 1, 11)
	if g.Button("reset camera") {
		w, h := e.Window.FramebufferSize()
		l.world.camToPixels(w, h)
		l.playClick()
	}
	if g.Button("pulse in 1s") {
		e.Tasks.After(1, func() { l.playClick() })
	}
	g.Separator()
	g.Label("offscreen target")
	g.Image(l.world.rt.ColorTexture(), 96)
	g.EndWindow()

	g.End()
	if err := g.Draw(l.ctx); err != nil {
		log.Printf("ui draw: %v", err)
	}
}

func (l *PanelLayer) playClick() {
	if l.click == nil {
		return
	}
	if _, err := l.click.Play(audio.PlayOptions{Volume: 0.8}); err != nil {
		log.Printf("play click: %v", err)
	}
}

func (l *PanelLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	// swallow mouse events over the panel so the world camera ignores them
	if mv, ok := ev.(core.EventMouseButton); ok && mv.Down {
		mx, my := e.Input.Mouse()
		for _, list := range l.gui.Lists() {
			if list.Clip != nil && list.Clip.Contains(float32(mx), float32(my)) {
				return true
			}
		}
	}
	return false
}
