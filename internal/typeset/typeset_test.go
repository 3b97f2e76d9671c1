package typeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTypesetter(t *testing.T) *Typesetter {
	t.Helper()
	ts, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ts.Close() })
	return ts
}

func TestWrap(t *testing.T) {
	ts := newTypesetter(t)
	st := Style{Size: 16}

	tests := []struct {
		name    string
		text    string
		width   int
		atLeast int
		atMost  int
	}{
		{name: "fits", text: "NovaOS", width: 400, atLeast: 1, atMost: 1},
		{name: "wraps", text: "The operating system that moves with you", width: 120, atLeast: 2, atMost: 7},
		{name: "newline kept", text: "one\ntwo", width: 400, atLeast: 2, atMost: 2},
		{name: "long word alone", text: "supercalifragilistic", width: 10, atLeast: 1, atMost: 1},
		{name: "empty", text: "", width: 100, atLeast: 1, atMost: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := ts.Wrap(tt.text, st, tt.width)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(lines), tt.atLeast)
			assert.LessOrEqual(t, len(lines), tt.atMost)
		})
	}
}

func TestRender_SizeAndInk(t *testing.T) {
	ts := newTypesetter(t)
	st := Style{Size: 20, Bold: true, Color: "#3BAFFF", LineHeight: 1.5, Align: AlignCenter}

	img, err := ts.Render("12:42", st, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())

	var inked int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			inked++
		}
	}
	assert.Positive(t, inked)
	// Corners stay transparent.
	assert.Zero(t, img.RGBAAt(0, 0).A)
	assert.Zero(t, img.RGBAAt(199, 29).A)
}

func TestRenderBox_FixedSize(t *testing.T) {
	ts := newTypesetter(t)
	img, err := ts.RenderBox("12:42", Style{Size: 48}, 256, 128)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestRender_Errors(t *testing.T) {
	ts := newTypesetter(t)
	_, err := ts.Render("x", Style{Size: 12, Color: "#zzz"}, 50)
	assert.Error(t, err)
	_, err = ts.RenderBox("x", Style{Size: 12}, 0, 10)
	assert.Error(t, err)
}

func TestHeight(t *testing.T) {
	ts := newTypesetter(t)
	h, err := ts.Height("a\nb\nc", Style{Size: 10, LineHeight: 2}, 100)
	require.NoError(t, err)
	assert.Equal(t, 60, h)
}
