package colors

// Color is RGBA with each channel in [0..1].
type Color [4]float32

// New builds a color from float components.
func New(r, g, b, a float32) Color { return Color{r, g, b, a} }

// FromRGBA builds a color from 0..255 components.
func FromRGBA(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// RGBA8 returns the color as 0..255 bytes.
func (c Color) RGBA8() [4]uint8 {
	return [4]uint8{uint8(c[0] * 255), uint8(c[1] * 255), uint8(c[2] * 255), uint8(c[3] * 255)}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

var (
	LightGray  = Color{0.78, 0.78, 0.78, 1}
	Gray       = Color{0.51, 0.51, 0.51, 1}
	DarkGray   = Color{0.31, 0.31, 0.31, 1}
	Yellow     = Color{0.99, 0.98, 0.00, 1}
	Gold       = Color{1.00, 0.80, 0.00, 1}
	Orange     = Color{1.00, 0.63, 0.00, 1}
	Pink       = Color{1.00, 0.43, 0.76, 1}
	Red        = Color{0.90, 0.16, 0.22, 1}
	Maroon     = Color{0.75, 0.13, 0.22, 1}
	Green      = Color{0.00, 0.89, 0.19, 1}
	Lime       = Color{0.00, 0.62, 0.18, 1}
	DarkGreen  = Color{0.00, 0.46, 0.17, 1}
	SkyBlue    = Color{0.40, 0.75, 1.00, 1}
	Blue       = Color{0.00, 0.47, 0.95, 1}
	DarkBlue   = Color{0.00, 0.32, 0.67, 1}
	Purple     = Color{0.78, 0.48, 1.00, 1}
	Violet     = Color{0.53, 0.24, 0.75, 1}
	DarkPurple = Color{0.44, 0.12, 0.49, 1}
	Beige      = Color{0.83, 0.69, 0.51, 1}
	Brown      = Color{0.50, 0.42, 0.31, 1}
	DarkBrown  = Color{0.30, 0.25, 0.18, 1}
	White      = Color{1, 1, 1, 1}
	Black      = Color{0, 0, 0, 1}
	Blank      = Color{0, 0, 0, 0}
	Magenta    = Color{1, 0, 1, 1}
)
