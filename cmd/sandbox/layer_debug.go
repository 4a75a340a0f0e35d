package main

import (
	"log"
	"time"

	"github.com/kilnengine/kiln/engine/colors"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/gfx"
	"github.com/kilnengine/kiln/engine/profiler"
	"github.com/kilnengine/kiln/engine/scratch"
	"github.com/kilnengine/kiln/engine/text"
)

// DebugLayer renders the stats overlay. F1 toggles it, Ctrl+E exports a
// profiler capture.
type DebugLayer struct {
	ctx  *gfx.Context
	font *text.Font

	visible   bool
	buf       *scratch.Buffer
	lastFrame time.Time
	frameMS   float32
}

func (l *DebugLayer) OnAttach(e *core.Engine) {
	l.visible = true
	l.buf = scratch.NewBuffer(2048)
}

func (l *DebugLayer) OnDetach(e *core.Engine) {}

func (l *DebugLayer) OnUpdate(e *core.Engine, dt float64) {
	now := time.Now()
	if !l.lastFrame.IsZero() {
		l.frameMS = float32(now.Sub(l.lastFrame).Seconds() * 1000)
	}
	l.lastFrame = now
}

func (l *DebugLayer) OnRender(e *core.Engine, alpha float64) {
	if !l.visible {
		return
	}
	done := profiler.Start("DebugLayer.OnRender")
	defer done()

	ctx := l.ctx
	stats := ctx.Stats()

	b := l.buf
	b.Reset()
	b.S("frame ").F(float64(l.frameMS), 2).S(" ms")
	if l.frameMS > 0 {
		b.S("  (").F(float64(1000/l.frameMS), 0).S(" fps)")
	}
	b.C('\n')
	b.S("draws ").I(stats.DrawCalls).
		S("  batches ").I(stats.Batches).
		S("  verts ").I(stats.Vertices).C('\n')
	b.S("mem ").F(float64(profiler.MemoryUsage())/(1<<20), 1).
		S(" MB  goroutines ").I(profiler.NumGoroutine()).C('\n')
	b.S("tasks ").I(e.Tasks.Pending())

	ctx.DrawRectangle(10, 10, 320, 84, colors.Black.WithAlpha(0.6))
	if err := text.DrawText(ctx, l.font, 18, 16, b.View(), 14, colors.Lime); err != nil {
		log.Printf("debug text: %v", err)
	}
}

func (l *DebugLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch {
	case k.Key == core.KeyF1:
		l.visible = !l.visible
		return true
	case k.Key == core.KeyE && k.Mods&core.ModCtrl != 0:
		path, err := profiler.Export()
		if err != nil {
			log.Printf("profiler export: %v", err)
		} else if path != "" {
			log.Printf("profiler capture: %s", path)
		}
		return true
	}
	return false
}
