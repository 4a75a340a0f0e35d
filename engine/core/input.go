package core

// Input tracks per-frame keyboard/mouse state derived from events.
// Pressed/Released edges are valid between BeginFrame calls.
type Input struct {
	keys           map[Key]bool
	buttons        [3]bool
	pressed        [3]bool
	released       [3]bool
	mouseX, mouseY float64
	scrollY        float64
	chars          []rune
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

// BeginFrame clears the per-frame edge and text state. Call once per tick,
// before polling events.
func (in *Input) BeginFrame() {
	in.pressed = [3]bool{}
	in.released = [3]bool{}
	in.scrollY = 0
	in.chars = in.chars[:0]
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button >= 0 && int(e.Button) < len(in.buttons) {
			if e.Down && !in.buttons[e.Button] {
				in.pressed[e.Button] = true
			}
			if !e.Down && in.buttons[e.Button] {
				in.released[e.Button] = true
			}
			in.buttons[e.Button] = e.Down
		}
	case EventScroll:
		in.scrollY += e.Yoff
	case EventChar:
		in.chars = append(in.chars, e.Rune)
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }
func (in *Input) ScrollY() float64          { return in.scrollY }
func (in *Input) Chars() []rune             { return in.chars }

func (in *Input) IsMouseDown(b MouseButton) bool { return in.buttons[b] }
func (in *Input) MousePressed(b MouseButton) bool {
	return in.pressed[b]
}
func (in *Input) MouseReleased(b MouseButton) bool {
	return in.released[b]
}
