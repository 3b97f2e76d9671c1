package page

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// cornerSegments is the number of line segments approximating each rounded corner.
const cornerSegments = 6

// TextRenderer draws a label into a fixed box. *typeset.Typesetter implements it.
type TextRenderer interface {
	RenderBox(text string, st typeset.Style, width, height int) (*image.RGBA, error)
}

// Painter rasterizes blocks into textures. It is not safe for concurrent use.
type Painter struct {
	text  TextRenderer
	scale float64
	rast  *vector.Rasterizer
}

// NewPainter creates a painter.
//
// Parameters:
//   - text: draws the text parts
//   - scale: texture pixels per layout pixel; values below 1 are raised to 1
//
// Returns:
//   - *Painter: the painter
func NewPainter(text TextRenderer, scale float64) *Painter {
	return &Painter{text: text, scale: max(scale, 1), rast: vector.NewRasterizer(1, 1)}
}

// Paint draws a block into a transparent image of the block's size times the painter scale.
//
// Parameters:
//   - b: the block to draw
//
// Returns:
//   - *image.RGBA: the texture
//   - error: an error if the block is empty or a color or label cannot be drawn
func (p *Painter) Paint(b Block) (*image.RGBA, error) {
	w := int(math.Ceil(b.Rect.W * p.scale))
	h := int(math.Ceil(b.Rect.H * p.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("page: block %q is empty", b.ID)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, part := range b.Parts {
		if err := p.paintPart(dst, part); err != nil {
			return nil, fmt.Errorf("page: paint %s: %w", b.ID, err)
		}
	}
	return dst, nil
}

func (p *Painter) paintPart(dst *image.RGBA, part Part) error {
	r := reveal.Rect{X: part.Rect.X * p.scale, Y: part.Rect.Y * p.scale, W: part.Rect.W * p.scale, H: part.Rect.H * p.scale}
	radius := part.Radius * p.scale

	if part.Stroke != "" {
		stroke, err := hexColor(part.Stroke)
		if err != nil {
			return err
		}
		sw := common.Coalesce(part.StrokeWidth, 1) * p.scale
		inner := reveal.Rect{X: r.X + sw, Y: r.Y + sw, W: r.W - 2*sw, H: r.H - 2*sw}
		p.begin(dst)
		p.trace(outline(part.Shape, r, radius), false)
		if inner.W > 0 && inner.H > 0 {
			p.trace(outline(part.Shape, inner, max(radius-sw, 0)), true)
		}
		p.rast.Draw(dst, dst.Bounds(), image.NewUniform(stroke), image.Point{})
		if part.Fill != "" && inner.W > 0 && inner.H > 0 {
			if err := p.fill(dst, part.Fill, outline(part.Shape, inner, max(radius-sw, 0))); err != nil {
				return err
			}
		}
	} else if part.Fill != "" {
		if err := p.fill(dst, part.Fill, outline(part.Shape, r, radius)); err != nil {
			return err
		}
	}

	if part.Text == "" {
		return nil
	}
	st := part.Style
	st.Size *= p.scale
	bw, bh := int(math.Round(r.W)), int(math.Round(r.H))
	if bw <= 0 || bh <= 0 {
		return nil
	}
	label, err := p.text.RenderBox(part.Text, st, bw, bh)
	if err != nil {
		return err
	}
	at := image.Pt(int(math.Round(r.X)), int(math.Round(r.Y)))
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(label.Bounds().Size())}, label, image.Point{}, draw.Over)
	return nil
}

func (p *Painter) fill(dst *image.RGBA, hex string, pts [][2]float64) error {
	c, err := hexColor(hex)
	if err != nil {
		return err
	}
	p.begin(dst)
	p.trace(pts, false)
	p.rast.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	return nil
}

func (p *Painter) begin(dst *image.RGBA) {
	b := dst.Bounds()
	p.rast.Reset(b.Dx(), b.Dy())
}

// trace adds a closed polygon. A reversed polygon inside another one cuts a hole.
func (p *Painter) trace(pts [][2]float64, reverse bool) {
	if len(pts) == 0 {
		return
	}
	at := func(i int) (float32, float32) {
		if reverse {
			i = len(pts) - 1 - i
		}
		return float32(pts[i][0]), float32(pts[i][1])
	}
	p.rast.MoveTo(at(0))
	for i := 1; i < len(pts); i++ {
		p.rast.LineTo(at(i))
	}
	p.rast.ClosePath()
}

// outline returns the polygon of a shape inside r, clockwise in image coordinates.
func outline(shape Shape, r reveal.Rect, radius float64) [][2]float64 {
	if shape == ShapeStar {
		return star(r)
	}
	return roundRect(r, radius)
}

func roundRect(r reveal.Rect, radius float64) [][2]float64 {
	radius = common.Clamp(radius, 0, min(r.W, r.H)/2)
	if radius == 0 {
		return [][2]float64{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X + r.W, r.Y + r.H}, {r.X, r.Y + r.H}}
	}
	corners := [4][3]float64{
		{r.X + r.W - radius, r.Y + radius, -math.Pi / 2},
		{r.X + r.W - radius, r.Y + r.H - radius, 0},
		{r.X + radius, r.Y + r.H - radius, math.Pi / 2},
		{r.X + radius, r.Y + radius, math.Pi},
	}
	pts := make([][2]float64, 0, 4*(cornerSegments+1))
	for _, c := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := c[2] + float64(i)/cornerSegments*math.Pi/2
			pts = append(pts, [2]float64{c[0] + radius*math.Cos(a), c[1] + radius*math.Sin(a)})
		}
	}
	return pts
}

func star(r reveal.Rect) [][2]float64 {
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	outer := min(r.W, r.H) / 2
	inner := outer * 0.4
	pts := make([][2]float64, 10)
	for i := range pts {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = [2]float64{cx + rad*math.Cos(a), cy + rad*math.Sin(a)}
	}
	return pts
}

func hexColor(hex string) (color.NRGBA, error) {
	c, err := common.ParseHexColor(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: uint8(c[0]*255 + 0.5), G: uint8(c[1]*255 + 0.5), B: uint8(c[2]*255 + 0.5), A: 255}, nil
}
