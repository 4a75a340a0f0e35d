package main

import (
	"log"

	"github.com/kilnengine/kiln/engine/assets"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/gfx"
	glbackend "github.com/kilnengine/kiln/engine/gfx/gl"
	"github.com/kilnengine/kiln/engine/platform"
	"github.com/kilnengine/kiln/engine/profiler"
	"github.com/kilnengine/kiln/engine/text"
	"github.com/kilnengine/kiln/engine/ui"
)

type App struct {
	ctx   *gfx.Context
	atlas *text.Atlas
	font  *text.Font
	gui   *ui.UI
	lib   *assets.Library

	world *WorldLayer
	panel *PanelLayer
	debug *DebugLayer
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 12)

	w, h := e.Window.FramebufferSize()
	ctx, err := gfx.NewContext(e.Renderer, w, h)
	if err != nil {
		panic(err)
	}
	a.ctx = ctx

	a.lib = assets.NewLibrary("assets")
	a.atlas = text.NewAtlas(e.Renderer, core.FilterNearest)
	a.font, err = a.lib.LoadFont("RobotoMono.ttf", a.atlas)
	if err != nil {
		panic(err)
	}
	a.gui = ui.New(a.font, ui.DefaultStyle())

	a.world = &WorldLayer{ctx: a.ctx}
	e.Layers.Push(a.world)

	a.panel = &PanelLayer{ctx: a.ctx, gui: a.gui, lib: a.lib, world: a.world}
	e.Layers.Push(a.panel)

	a.debug = &DebugLayer{ctx: a.ctx, font: a.font}
	e.Layers.Push(a.debug)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {}

// OnRender runs after every layer drew; the frame boundary drains all
// pending batches.
func (a *App) OnRender(e *core.Engine, alpha float64) {
	a.ctx.EndFrame()
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	switch v := ev.(type) {
	case core.EventResize:
		a.ctx.Resize(v.W, v.H)
	case core.EventKey:
		if v.Down && v.Key == core.KeyEscape {
			e.Window.RequestClose()
		}
	}
}

func (a *App) OnShutdown(e *core.Engine) {}

func main() {
	cfg, err := core.LoadConfig("kiln.toml")
	if err != nil {
		log.Fatal(err)
	}
	cfg.Title = "kiln sandbox"
	cfg.VSync = true
	cfg.ClearColor = [4]float32{0.16, 0.16, 0.18, 1}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(&App{}, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
