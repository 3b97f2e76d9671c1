package page

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphaAt(img *image.RGBA, x, y int) uint8 {
	return img.RGBAAt(x, y).A
}

func TestPainter_Errors(t *testing.T) {
	p := NewPainter(fakeText{}, 1)
	_, err := p.Paint(Block{ID: "empty"})
	assert.Error(t, err)

	_, err = p.Paint(Block{ID: "bad", Rect: reveal.Rect{W: 10, H: 10}, Parts: []Part{fill("nope", 0, 0, 10, 10, 0)}})
	assert.ErrorContains(t, err, "bad")
}

func TestPainter_ScalesTexture(t *testing.T) {
	b := Block{ID: "b", Rect: reveal.Rect{W: 40.5, H: 20}, Parts: []Part{fill(ColorDark, 0, 0, 40.5, 20, 0)}}
	img, err := NewPainter(fakeText{}, 2).Paint(b)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(81, 40), img.Bounds().Size())

	img, err = NewPainter(fakeText{}, 0.25).Paint(b)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(41, 20), img.Bounds().Size(), "scale never drops below 1")
}

func TestPainter_Shapes(t *testing.T) {
	p := NewPainter(fakeText{}, 1)
	tests := []struct {
		name  string
		part  Part
		inked [][2]int
		clear [][2]int
	}{
		{
			name:  "rounded rect leaves corners clear",
			part:  fill(ColorAccent, 0, 0, 64, 64, 24),
			inked: [][2]int{{32, 32}, {1, 32}},
			clear: [][2]int{{0, 0}, {63, 63}},
		},
		{
			name:  "star",
			part:  Part{Rect: reveal.Rect{W: 64, H: 64}, Fill: ColorAccent, Shape: ShapeStar},
			inked: [][2]int{{32, 32}, {32, 10}},
			clear: [][2]int{{2, 2}, {61, 2}},
		},
		{
			name:  "stroked ring is hollow",
			part:  Part{Rect: reveal.Rect{W: 64, H: 64}, Stroke: ColorDark, StrokeWidth: 6, Radius: 32},
			inked: [][2]int{{2, 32}, {32, 61}},
			clear: [][2]int{{32, 32}, {0, 0}},
		},
		{
			name:  "stroke with fill",
			part:  Part{Rect: reveal.Rect{W: 64, H: 64}, Stroke: ColorDark, Fill: ColorWhite},
			inked: [][2]int{{0, 32}, {32, 32}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := p.Paint(Block{ID: tt.name, Rect: reveal.Rect{W: 64, H: 64}, Parts: []Part{tt.part}})
			require.NoError(t, err)
			for _, pt := range tt.inked {
				assert.Equal(t, uint8(255), alphaAt(img, pt[0], pt[1]), "inked %v", pt)
			}
			for _, pt := range tt.clear {
				assert.Equal(t, uint8(0), alphaAt(img, pt[0], pt[1]), "clear %v", pt)
			}
		})
	}
}

func TestPainter_TextLandsInItsBox(t *testing.T) {
	b := Block{ID: "label", Rect: reveal.Rect{W: 100, H: 40}, Parts: []Part{
		box("hi", typeset.Style{Size: 14, Color: ColorDark}, 50, 0, 50, 40),
	}}
	img, err := NewPainter(fakeText{}, 1).Paint(b)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), alphaAt(img, 74, 19))
	assert.Equal(t, uint8(0), alphaAt(img, 24, 19))
}
