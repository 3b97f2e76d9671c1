// Package typeset rasterizes localized copy into images the renderer can upload as textures.
// Text is laid out with the Go font family: word-wrapped to a width, aligned, and drawn in one color.
package typeset

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Align is the horizontal placement of each line.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Style describes how a piece of text is drawn.
type Style struct {
	// Size is the font size in pixels.
	Size float64
	Bold bool

	// Color is a hex color string; empty means white.
	Color string

	// LineHeight multiplies the font size to get the baseline distance; 0 means 1.3.
	LineHeight float64
	Align      Align
}

func (s Style) lineAdvance() int {
	lh := s.LineHeight
	if lh <= 0 {
		lh = 1.3
	}
	return int(s.Size*lh + 0.5)
}

func (s Style) rgba() (color.NRGBA, error) {
	hex := common.Coalesce(s.Color, "#ffffff")
	c, err := common.ParseHexColor(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: uint8(c[0]*255 + 0.5), G: uint8(c[1]*255 + 0.5), B: uint8(c[2]*255 + 0.5), A: 255}, nil
}

type faceKey struct {
	size float64
	bold bool
}

// Typesetter owns parsed fonts and a cache of sized faces.
// Faces are not safe for concurrent use, so every method serializes on one mutex.
type Typesetter struct {
	mu      *sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

// New parses the embedded Go fonts.
//
// Returns:
//   - *Typesetter: the typesetter
//   - error: an error if a font fails to parse
func New() (*Typesetter, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Typesetter{
		mu:      &sync.Mutex{},
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (t *Typesetter) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: size, bold: bold}
	if f, ok := t.faces[key]; ok {
		return f, nil
	}
	src := t.regular
	if bold {
		src = t.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %.1fpx: %w", size, err)
	}
	t.faces[key] = f
	return f, nil
}

// Wrap breaks text into lines no wider than width pixels. Explicit newlines are kept;
// a single word wider than width gets a line of its own.
//
// Parameters:
//   - text: the copy to wrap
//   - st: the style whose font is measured
//   - width: the maximum line width in pixels
//
// Returns:
//   - []string: the lines
//   - error: an error if the face cannot be created
func (t *Typesetter) Wrap(text string, st Style, width int) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, err := t.face(st.Size, st.Bold)
	if err != nil {
		return nil, err
	}
	return wrap(f, text, width), nil
}

func wrap(f font.Face, text string, width int) []string {
	var lines []string
	limit := fixed.I(width)
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(f, candidate) <= limit {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// Height returns the pixel height the wrapped text occupies.
//
// Parameters:
//   - text: the copy to measure
//   - st: the style
//   - width: the wrap width in pixels
//
// Returns:
//   - int: the block height
//   - error: an error if the face cannot be created
func (t *Typesetter) Height(text string, st Style, width int) (int, error) {
	lines, err := t.Wrap(text, st, width)
	if err != nil {
		return 0, err
	}
	return len(lines) * st.lineAdvance(), nil
}

// Render draws wrapped text on a transparent image width pixels wide and as tall as the text.
//
// Parameters:
//   - text: the copy to draw
//   - st: the style
//   - width: the wrap width in pixels
//
// Returns:
//   - *image.RGBA: the text image with premultiplied alpha
//   - error: an error if the style is invalid
func (t *Typesetter) Render(text string, st Style, width int) (*image.RGBA, error) {
	lines, err := t.Wrap(text, st, width)
	if err != nil {
		return nil, err
	}
	h := max(1, len(lines)*st.lineAdvance())
	return t.draw(lines, st, width, h, 0)
}

// RenderBox draws text into a fixed-size image, vertically centered.
//
// Parameters:
//   - text: the copy to draw
//   - st: the style
//   - width, height: the image size in pixels
//
// Returns:
//   - *image.RGBA: the text image with premultiplied alpha
//   - error: an error if the style is invalid
func (t *Typesetter) RenderBox(text string, st Style, width, height int) (*image.RGBA, error) {
	lines, err := t.Wrap(text, st, width)
	if err != nil {
		return nil, err
	}
	top := (height - len(lines)*st.lineAdvance()) / 2
	return t.draw(lines, st, width, height, top)
}

func (t *Typesetter) draw(lines []string, st Style, width, height, top int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("typeset: empty canvas %dx%d", width, height)
	}
	c, err := st.rgba()
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	f, err := t.face(st.Size, st.Bold)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: f}
	m := f.Metrics()
	advance := st.lineAdvance()
	// Center the glyph box inside the line box.
	baseline := top + (advance-(m.Ascent+m.Descent).Ceil())/2 + m.Ascent.Ceil()
	for i, line := range lines {
		w := d.MeasureString(line).Ceil()
		x := 0
		switch st.Align {
		case AlignCenter:
			x = (width - w) / 2
		case AlignRight:
			x = width - w
		}
		d.Dot = fixed.P(x, baseline+i*advance)
		d.DrawString(line)
	}
	return img, nil
}

// Close releases the cached faces.
func (t *Typesetter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, f := range t.faces {
		if err := f.Close(); err != nil {
			return err
		}
		delete(t.faces, k)
	}
	return nil
}
