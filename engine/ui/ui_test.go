package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/mathf"
	"github.com/kilnengine/kiln/engine/text"
)

type uiStubTexture struct{ w, h int }

func (t *uiStubTexture) Width() int  { return t.w }
func (t *uiStubTexture) Height() int { return t.h }

type uiStubRenderer struct{}

func (r *uiStubRenderer) Init() error              { return nil }
func (r *uiStubRenderer) Resize(int, int)          {}
func (r *uiStubRenderer) Clear(_, _, _, _ float32) {}
func (r *uiStubRenderer) CreateTexture(d core.TextureDesc) (core.Texture, error) {
	return &uiStubTexture{d.Width, d.Height}, nil
}
func (r *uiStubRenderer) UpdateTexture(core.Texture, []byte) error                { return nil }
func (r *uiStubRenderer) DeleteTexture(core.Texture)                              {}
func (r *uiStubRenderer) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) { return nil, nil }
func (r *uiStubRenderer) CreateRenderTarget(int, int) (core.RenderTarget, error)  { return nil, nil }
func (r *uiStubRenderer) BeginPass(core.RenderTarget, *[4]float32)                {}
func (r *uiStubRenderer) EndPass()                                                {}
func (r *uiStubRenderer) Draw(core.DrawCmd) error                                 { return nil }
func (r *uiStubRenderer) Shutdown()                                               {}

func newTestUI(t *testing.T) *UI {
	t.Helper()
	atlas := text.NewAtlas(&uiStubRenderer{}, core.FilterNearest)
	font, err := text.Load(goregular.TTF, atlas)
	require.NoError(t, err)
	return New(font, DefaultStyle())
}

// one widget frame: a window with a single button, pointer state given
func buttonFrame(u *UI, in Input) bool {
	u.Begin(in)
	u.BeginWindow("test", mathf.NewRect(0, 0, 200, 300))
	clicked := u.Button("ok")
	u.EndWindow()
	u.End()
	return clicked
}

func TestButtonClickProtocol(t *testing.T) {
	u := newTestUI(t)
	// first widget row: below the title bar plus margin
	inBtn := Input{MouseX: 20, MouseY: 35}

	assert.False(t, buttonFrame(u, inBtn), "hover only")
	assert.False(t, buttonFrame(u, Input{MouseX: 20, MouseY: 35, MouseDown: true, MousePressed: true}), "press arms, no click yet")
	assert.True(t, buttonFrame(u, Input{MouseX: 20, MouseY: 35, MouseReleased: true}), "release inside clicks")
}

func TestButtonReleaseOutsideDoesNotClick(t *testing.T) {
	u := newTestUI(t)

	buttonFrame(u, Input{MouseX: 20, MouseY: 35})
	buttonFrame(u, Input{MouseX: 20, MouseY: 35, MouseDown: true, MousePressed: true})
	// drag off the button before releasing
	buttonFrame(u, Input{MouseX: 20, MouseY: 250, MouseDown: true})
	assert.False(t, buttonFrame(u, Input{MouseX: 20, MouseY: 250, MouseReleased: true}))
}

func TestButtonNeedsHoverFrameBeforeArming(t *testing.T) {
	u := newTestUI(t)
	// pressing on the very first frame cannot arm: nothing is hot yet
	buttonFrame(u, Input{MouseX: 20, MouseY: 35, MouseDown: true, MousePressed: true})
	assert.False(t, buttonFrame(u, Input{MouseX: 20, MouseY: 35, MouseReleased: true}))
}

func TestCheckboxToggles(t *testing.T) {
	u := newTestUI(t)
	v := false
	frame := func(in Input) bool {
		u.Begin(in)
		u.BeginWindow("test", mathf.NewRect(0, 0, 200, 300))
		changed := u.Checkbox("flag", &v)
		u.EndWindow()
		u.End()
		return changed
	}

	frame(Input{MouseX: 10, MouseY: 35})
	frame(Input{MouseX: 10, MouseY: 35, MouseDown: true, MousePressed: true})
	assert.True(t, frame(Input{MouseX: 10, MouseY: 35, MouseReleased: true}))
	assert.True(t, v)
}

func TestSliderDragSetsValue(t *testing.T) {
	u := newTestUI(t)
	v := float32(0)
	frame := func(in Input) bool {
		u.Begin(in)
		u.BeginWindow("test", mathf.NewRect(0, 0, 212, 300))
		changed := u.Slider("amount", &v, 0, 100)
		u.EndWindow()
		u.End()
		return changed
	}

	// slider label row comes first; the track row sits below it
	lh := u.lineHeight()
	trackY := 22 + 6 + lh + 4 + 10

	frame(Input{MouseX: 106, MouseY: trackY})
	changed := frame(Input{MouseX: 106, MouseY: trackY, MouseDown: true, MousePressed: true})
	assert.True(t, changed)
	// track spans x=6..206; x=106 is halfway
	assert.InDelta(t, 50, v, 1)
}

func TestWindowDragMovesRetainedPosition(t *testing.T) {
	u := newTestUI(t)
	frame := func(in Input) {
		u.Begin(in)
		u.BeginWindow("drag", mathf.NewRect(0, 0, 200, 100))
		u.Label("body")
		u.EndWindow()
		u.End()
	}

	windowClip := func() *mathf.Rect {
		lists := u.Lists()
		require.NotEmpty(t, lists)
		return lists[0].Clip
	}

	frame(Input{MouseX: 50, MouseY: 10}) // hover the title bar
	require.NotNil(t, windowClip())
	assert.Equal(t, float32(0), windowClip().X)

	frame(Input{MouseX: 50, MouseY: 10, MouseDown: true, MousePressed: true})
	frame(Input{MouseX: 80, MouseY: 25, MouseDown: true})
	require.NotNil(t, windowClip())
	assert.Equal(t, float32(30), windowClip().X)
	assert.Equal(t, float32(15), windowClip().Y)

	// position survives the mouse release
	frame(Input{MouseX: 80, MouseY: 25, MouseReleased: true})
	frame(Input{MouseX: 0, MouseY: 0})
	assert.Equal(t, float32(30), windowClip().X)
}

func TestDrawListsSplitGlyphsFromRawTextures(t *testing.T) {
	u := newTestUI(t)
	tex := &uiStubTexture{32, 32}

	u.Begin(Input{})
	u.BeginWindow("mixed", mathf.NewRect(0, 0, 200, 300))
	u.Label("hello")
	u.Image(tex, 40)
	u.Label("world")
	u.EndWindow()
	u.End()

	lists := u.Lists()
	require.GreaterOrEqual(t, len(lists), 3)
	var rawSeen bool
	for _, l := range lists {
		if l.Texture == tex {
			rawSeen = true
		}
	}
	assert.True(t, rawSeen)
}
