package core

// Layer is a slice of app logic (world, debug overlay, UI) stacked by the
// engine. Events propagate top-down, updates and rendering run bottom-up.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // return true if handled; propagation stops
}

type LayerStack struct{ list []Layer }

func (ls *LayerStack) Push(l Layer) { ls.list = append(ls.list, l) }

func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list = ls.list[:i]
	return l, true
}

// Update ticks every layer bottom-up.
func (ls *LayerStack) Update(e *Engine, dt float64) {
	for _, l := range ls.list {
		l.OnUpdate(e, dt)
	}
}

// Render draws every layer bottom-up (UI layers pushed last draw on top).
func (ls *LayerStack) Render(e *Engine, alpha float64) {
	for _, l := range ls.list {
		l.OnRender(e, alpha)
	}
}

// Dispatch offers ev to layers top-down until one handles it.
func (ls *LayerStack) Dispatch(e *Engine, ev Event) bool {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if ls.list[i].OnEvent(e, ev) {
			return true
		}
	}
	return false
}
