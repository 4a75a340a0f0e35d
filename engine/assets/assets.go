// Package assets loads textures, shaders, fonts, and sounds from a
// conventional on-disk layout:
//
//	<root>/textures/  PNG and JPEG images
//	<root>/shaders/   GLSL sources
//	<root>/fonts/     TTF/OTF fonts
//	<root>/sounds/    WAV and Ogg Vorbis clips
//
// Loaded resources are cached by relative path.
package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilnengine/kiln/engine/audio"
	"github.com/kilnengine/kiln/engine/core"
	"github.com/kilnengine/kiln/engine/text"
)

// Library resolves and caches assets under a root directory.
type Library struct {
	root string

	textures map[string]core.Texture
	fonts    map[string]*text.Font
	sounds   map[string]*audio.Sound
}

func NewLibrary(root string) *Library {
	if root == "" {
		root = "assets"
	}
	return &Library{
		root:     root,
		textures: map[string]core.Texture{},
		fonts:    map[string]*text.Font{},
		sounds:   map[string]*audio.Sound{},
	}
}

// LoadImage decodes a PNG or JPEG and returns width, height, and tightly
// packed RGBA8 pixels (row-major, top-left origin, stride == 4*w).
func (l *Library) LoadImage(relPath string) (w, h int, rgba []byte, err error) {
	path := filepath.Join(l.root, "textures", relPath)
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(relPath)) {
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	default:
		img, err = png.Decode(f)
	}
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode image %q: %w", path, err)
	}

	rgbaImg := imageToRGBA(img)
	w, h = rgbaImg.Bounds().Dx(), rgbaImg.Bounds().Dy()

	// repack in tight rows
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], rgbaImg.Pix[y*rgbaImg.Stride:y*rgbaImg.Stride+w*4])
	}
	return w, h, out, nil
}

// LoadTexture decodes an image and uploads it as a GPU texture.
func (l *Library) LoadTexture(r core.Renderer, relPath string, filter core.Filter) (core.Texture, error) {
	if t, ok := l.textures[relPath]; ok {
		return t, nil
	}
	w, h, pix, err := l.LoadImage(relPath)
	if err != nil {
		return nil, err
	}
	t, err := r.CreateTexture(core.TextureDesc{
		Width: w, Height: h, Pixels: pix,
		MinFilter: filter, MagFilter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("upload texture %q: %w", relPath, err)
	}
	l.textures[relPath] = t
	return t, nil
}

// LoadShader reads a GLSL file into a null-terminated string.
func (l *Library) LoadShader(name string) (string, error) {
	path := filepath.Join(l.root, "shaders", name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", path, err)
	}
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// LoadFont parses a TTF/OTF file; glyphs rasterize into atlas on demand.
func (l *Library) LoadFont(relPath string, atlas *text.Atlas) (*text.Font, error) {
	if f, ok := l.fonts[relPath]; ok {
		return f, nil
	}
	path := filepath.Join(l.root, "fonts", relPath)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", path, err)
	}
	f, err := text.Load(b, atlas)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", relPath, err)
	}
	l.fonts[relPath] = f
	return f, nil
}

// LoadSound decodes a WAV or Ogg Vorbis file fully into memory.
func (l *Library) LoadSound(relPath string) (*audio.Sound, error) {
	if s, ok := l.sounds[relPath]; ok {
		return s, nil
	}
	path := filepath.Join(l.root, "sounds", relPath)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sound %q: %w", path, err)
	}
	s, err := audio.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("sound %q: %w", relPath, err)
	}
	l.sounds[relPath] = s
	return s, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
