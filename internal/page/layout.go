// Package page lays the landing page out in page space, tracks its scroll position and renders it,
// as textured quads for the showcase window and as HTML for export.
package page

import (
	"fmt"
	"strings"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
)

// Page colors.
const (
	ColorBackground = "#F7F7F7"
	ColorDark       = "#1A1A1A"
	ColorAccent     = "#3BAFFF"
	ColorWhite      = "#FFFFFF"
	ColorBody       = "#444444"
	ColorMuted      = "#6B7280"
	ColorSubtle     = "#9CA3AF"
	ColorBorder     = "#E5E7EB"
	ColorCTA        = "#E9F6FF"
)

const (
	// NavHeight is the height of the fixed navigation bar.
	NavHeight = 80.0
	// NavScrollOffset is the scroll distance past which the navigation bar gets its backdrop.
	NavScrollOffset = 50.0
	// Breakpoint is the narrowest width that gets the two-column desktop layout.
	Breakpoint = 768.0
)

// Section anchors.
const (
	SectionHero        = "hero"
	SectionFeatures    = "features"
	SectionTech        = "technology"
	SectionInterface   = "interface"
	SectionTestimonial = "testimonial"
	SectionCTA         = "cta"
	SectionFooter      = "footer"
)

// Canvas names. They match the showcase scene names.
const (
	CanvasHero   = "hero"
	CanvasLayers = "layers"
	CanvasIcon   = "icon"
)

// Block ids with behavior beyond plain reveal.
const (
	BlockNavBar   = "nav.bar"
	BlockNav      = "nav"
	BlockMenu     = "nav.menu"
	BlockToggle   = "toggle"
	BlockCarousel = "interface.carousel"
)

// Shape selects how a part's fill is painted.
type Shape uint8

const (
	// ShapeRect is a rectangle with optionally rounded corners.
	ShapeRect Shape = iota
	// ShapeStar is a five-pointed star inscribed in the part rectangle.
	ShapeStar
)

// Action is what a click on a part does.
type Action uint8

const (
	ActionNone Action = iota
	ActionToggleLocale
	ActionPrevSlide
	ActionNextSlide
	ActionScrollTo
	ActionToggleMenu
	ActionCloseMenu
)

// Part is one painted element of a block. Its rectangle is relative to the block.
// Text is centered vertically inside the rectangle.
type Part struct {
	Rect        reveal.Rect
	Text        string
	Style       typeset.Style
	Fill        string
	Stroke      string
	StrokeWidth float64
	Radius      float64
	Shape       Shape
	Action      Action
	Target      string
}

// Block is the unit that reveals on scroll and becomes one texture.
type Block struct {
	ID        string
	Section   string
	Rect      reveal.Rect
	Parts     []Part
	Delay     time.Duration
	Direction reveal.Direction
	// Fixed blocks are placed in viewport space. They never scroll and never reveal.
	Fixed bool
	// Menu blocks are fixed and only drawn while the narrow-layout menu is open.
	Menu bool
}

// Section is a full-width band of the page.
type Section struct {
	ID   string
	Rect reveal.Rect
	Fill string
}

// Canvas is the page rectangle a 3D scene is drawn into.
type Canvas struct {
	Scene     string
	Rect      reveal.Rect
	Reveal    bool
	Delay     time.Duration
	Direction reveal.Direction
	Opacity   float64
}

// Layout is the whole page for one width, viewport height and language.
type Layout struct {
	Width          float64
	ViewportHeight float64
	Height         float64
	Tag            locale.Tag

	Sections []Section
	Blocks   []Block
	// Slides are the interface carousel screens, placed for the first slide being active.
	Slides   []Block
	Canvases []Canvas
}

// Measurer reports the height of wrapped text. *typeset.Typesetter implements it.
type Measurer interface {
	Height(text string, st typeset.Style, width int) (int, error)
}

// Build lays the page out.
//
// Parameters:
//   - snap: the language to lay out
//   - m: measures wrapped text
//   - width: the page width in pixels
//   - viewportHeight: the visible height in pixels
//
// Returns:
//   - *Layout: the layout
//   - error: an error if the size is empty or text cannot be measured
func Build(snap *locale.Snapshot, m Measurer, width, viewportHeight float64) (*Layout, error) {
	if width <= 0 || viewportHeight <= 0 {
		return nil, fmt.Errorf("page: layout size %gx%g must be positive", width, viewportHeight)
	}
	b := &builder{
		m:       m,
		snap:    snap,
		desktop: width >= Breakpoint,
		layout:  &Layout{Width: width, ViewportHeight: viewportHeight, Tag: snap.Tag},
	}
	b.padX = 24
	b.padY = 80
	if b.desktop {
		b.padX = 0.06 * width
		b.padY = 128
	}

	y := b.hero()
	y = b.features(y)
	y = b.tech(y)
	y = b.showcase(y)
	y = b.testimonial(y)
	y = b.cta(y)
	y = b.footer(y)
	b.layout.Height = y
	b.nav()
	if b.err != nil {
		return nil, b.err
	}
	return b.layout, nil
}

// Section returns the section with the given anchor.
func (l *Layout) Section(id string) (Section, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Block returns the block or slide with the given id.
func (l *Layout) Block(id string) (Block, bool) {
	for _, b := range l.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	for _, b := range l.Slides {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// Canvas returns the canvas of a scene.
func (l *Layout) Canvas(scene string) (Canvas, bool) {
	for _, c := range l.Canvases {
		if c.Scene == scene {
			return c, true
		}
	}
	return Canvas{}, false
}

// Hit finds the clickable part under a viewport position. Fixed blocks are tested first.
//
// Parameters:
//   - x, y: the position in viewport pixels
//   - scrollY: the current scroll offset
//   - menuOpen: whether menu blocks take part; an open menu hides the page under it
//
// Returns:
//   - Part: the part hit
//   - bool: false when nothing clickable is there
func (l *Layout) Hit(x, y, scrollY float64, menuOpen bool) (Part, bool) {
	covered := false
	for _, fixed := range []bool{true, false} {
		if covered {
			break
		}
		py := y
		if !fixed {
			py += scrollY
		}
		for _, b := range l.Blocks {
			if b.Fixed != fixed || (b.Menu && !menuOpen) {
				continue
			}
			if b.Menu && b.Rect.Contains(x, y) {
				covered = true
			}
			for _, p := range b.Parts {
				if p.Action == ActionNone {
					continue
				}
				r := p.Rect
				r.X += b.Rect.X
				r.Y += b.Rect.Y
				if r.Contains(x, py) {
					return p, true
				}
			}
		}
	}
	return Part{}, false
}

// NavScrolled reports whether the navigation bar shows its backdrop at a scroll offset.
func NavScrolled(scrollY float64) bool {
	return scrollY > NavScrollOffset
}

type builder struct {
	m       Measurer
	snap    *locale.Snapshot
	layout  *Layout
	desktop bool
	padX    float64
	padY    float64
	err     error
}

func (b *builder) t(key string) string {
	return b.snap.T(key)
}

// text measures a wrapped text part placed at (x, y).
func (b *builder) text(text string, st typeset.Style, x, y, w float64) Part {
	p := Part{Rect: reveal.Rect{X: x, Y: y, W: w}, Text: text, Style: st}
	if b.err != nil {
		return p
	}
	h, err := b.m.Height(text, st, int(max(w, 1)))
	if err != nil {
		b.err = fmt.Errorf("page: measure %q: %w", text, err)
		return p
	}
	p.Rect.H = float64(h)
	return p
}

// add sizes a block to its parts and appends it.
func (b *builder) add(blk Block) Block {
	w, h := extent(blk.Parts)
	if blk.Rect.W == 0 {
		blk.Rect.W = w
	}
	if blk.Rect.H == 0 {
		blk.Rect.H = h
	}
	b.layout.Blocks = append(b.layout.Blocks, blk)
	return blk
}

func (b *builder) section(id string, top, bottom float64, fill string) {
	b.layout.Sections = append(b.layout.Sections, Section{
		ID:   id,
		Rect: reveal.Rect{Y: top, W: b.layout.Width, H: bottom - top},
		Fill: fill,
	})
}

func (b *builder) inner() float64 {
	return b.layout.Width - 2*b.padX
}

// extent is the size of the box from the block origin to the far corner of its parts.
func extent(parts []Part) (w, h float64) {
	for _, p := range parts {
		w = max(w, p.Rect.X+p.Rect.W)
		h = max(h, p.Rect.Y+p.Rect.H)
	}
	return w, h
}

// box is a single-line label centered vertically in a fixed rectangle.
func box(text string, st typeset.Style, x, y, w, h float64) Part {
	return Part{Rect: reveal.Rect{X: x, Y: y, W: w, H: h}, Text: text, Style: st}
}

// fill is a colored rectangle.
func fill(color string, x, y, w, h, radius float64) Part {
	return Part{Rect: reveal.Rect{X: x, Y: y, W: w, H: h}, Fill: color, Radius: radius}
}

func button(text string, x, y, w, h float64, solid bool) Part {
	st := typeset.Style{Size: 16, Bold: true, Align: typeset.AlignCenter, Color: ColorDark}
	p := box(text, st, x, y, w, h)
	p.Radius = 16
	if solid {
		p.Fill = ColorDark
		p.Style.Color = ColorWhite
	} else {
		p.Stroke = ColorDark
	}
	return p
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func (b *builder) hero() float64 {
	w := b.layout.Width
	vh := b.layout.ViewportHeight
	colW := b.inner()
	titleSize, subSize := 40.0, 16.0
	if b.desktop {
		colW = w/2 - b.padX - 32
		titleSize, subSize = 64, 20
	}

	titleSt := typeset.Style{Size: titleSize, Bold: true, Color: ColorDark, LineHeight: 1.1}
	t1 := b.text(b.t("hero.title1"), titleSt, 0, 0, colW)
	accent := titleSt
	accent.Color = ColorMuted
	t2 := b.text(b.t("hero.title2")+".", accent, 0, t1.Rect.H, colW)
	sub := b.text(b.t("hero.subtitle"), typeset.Style{Size: subSize, Color: ColorBody, LineHeight: 1.6}, 0, 0, min(colW, 500))

	var cta []Part
	if b.desktop {
		cta = []Part{button(b.t("hero.cta1"), 0, 0, 200, 52, true), button(b.t("hero.cta2"), 216, 0, 200, 52, false)}
	} else {
		cta = []Part{button(b.t("hero.cta1"), 0, 0, colW, 52, true), button(b.t("hero.cta2"), 0, 68, colW, 52, false)}
	}
	_, ctaH := extent(cta)
	titleH := t1.Rect.H + t2.Rect.H
	textH := titleH + 24 + sub.Rect.H + 40 + ctaH

	var top, height float64
	var canvas reveal.Rect
	if b.desktop {
		height = max(vh, 640)
		top = max((height-textH)/2, NavHeight+24)
		canvas = reveal.Rect{X: w / 2, W: w / 2, H: height}
	} else {
		canvasH := 0.45 * vh
		canvas = reveal.Rect{Y: NavHeight, W: w, H: canvasH}
		top = NavHeight + canvasH + 24
		height = top + textH + 64
	}

	b.add(Block{ID: "hero.title", Section: SectionHero, Rect: reveal.Rect{X: b.padX, Y: top}, Parts: []Part{t1, t2}})
	y := top + titleH + 24
	b.add(Block{ID: "hero.subtitle", Section: SectionHero, Rect: reveal.Rect{X: b.padX, Y: y}, Parts: []Part{sub}, Delay: ms(200)})
	y += sub.Rect.H + 40
	b.add(Block{ID: "hero.cta", Section: SectionHero, Rect: reveal.Rect{X: b.padX, Y: y}, Parts: cta, Delay: ms(400)})

	b.layout.Canvases = append(b.layout.Canvases, Canvas{Scene: CanvasHero, Rect: canvas, Opacity: 1})
	b.section(SectionHero, 0, height, ColorBackground)
	return height
}

func (b *builder) features(top float64) float64 {
	cols, gap := 1, 32.0
	if b.desktop {
		cols = 3
	}
	cardW := (b.inner() - gap*float64(cols-1)) / float64(cols)

	cards := make([][]Part, 3)
	heights := make([]float64, 3)
	tallest := 0.0
	for i := range cards {
		n := i + 1
		title := b.text(b.t(fmt.Sprintf("features.f%d_title", n)),
			typeset.Style{Size: 20, Bold: true, Color: ColorDark}, 32, 104, cardW-64)
		desc := b.text(b.t(fmt.Sprintf("features.f%d_desc", n)),
			typeset.Style{Size: 15, Color: ColorMuted, LineHeight: 1.6}, 32, 104+title.Rect.H+12, cardW-64)
		heights[i] = desc.Rect.Y + desc.Rect.H + 32
		tallest = max(tallest, heights[i])
		cards[i] = []Part{
			fill("#F9FAFB", 32, 32, 48, 48, 24),
			fill(ColorAccent, 52, 52, 8, 8, 4),
			title,
			desc,
		}
	}

	y := top + b.padY
	bottom := y
	for i, parts := range cards {
		h := heights[i]
		x := b.padX
		if b.desktop {
			h = tallest
			x += float64(i) * (cardW + gap)
		}
		card := append([]Part{fill(ColorWhite, 0, 0, cardW, h, 20)}, parts...)
		b.add(Block{
			ID:      fmt.Sprintf("features.f%d", i+1),
			Section: SectionFeatures,
			Rect:    reveal.Rect{X: x, Y: y},
			Parts:   card,
			Delay:   ms(i * 150),
		})
		bottom = max(bottom, y+h)
		if !b.desktop {
			y += h + gap
		}
	}
	bottom += b.padY
	b.section(SectionFeatures, top, bottom, ColorBackground)
	return bottom
}

func (b *builder) tech(top float64) float64 {
	padY := 80.0
	colW := b.inner()
	titleSize, canvasH := 30.0, 350.0
	if b.desktop {
		colW = (b.inner() - 48) / 2
		titleSize, canvasH = 36, 500
	}

	tag := box(strings.ToUpper(b.t("tech.tag")),
		typeset.Style{Size: 12, Bold: true, Color: "#4B5563", Align: typeset.AlignCenter}, 0, 0, 150, 28)
	tag.Fill = ColorBorder
	tag.Radius = 14
	title := b.text(b.t("tech.title"), typeset.Style{Size: titleSize, Bold: true, Color: ColorDark}, 0, 0, colW)
	desc := b.text(b.t("tech.desc"), typeset.Style{Size: 18, Color: "#4B5563", LineHeight: 1.6}, 0, 0, colW)

	type row struct {
		id    string
		parts []Part
		h     float64
	}
	var rows []row
	for i := 1; i <= 3; i++ {
		label := b.text(b.t(fmt.Sprintf("tech.p%d", i)), typeset.Style{Size: 16, Color: ColorDark}, 20, 0, colW-20)
		h := max(label.Rect.H, 24)
		rows = append(rows, row{
			id:    fmt.Sprintf("tech.p%d", i),
			parts: []Part{fill(ColorAccent, 0, h/2-4, 8, 8, 4), label},
			h:     h,
		})
	}

	textH := 28 + 16 + title.Rect.H + 16 + desc.Rect.H + 24
	for i, r := range rows {
		textH += r.h
		if i > 0 {
			textH += 16
		}
	}

	var textTop float64
	var canvas reveal.Rect
	var bottom float64
	if b.desktop {
		content := max(textH, canvasH)
		textTop = top + padY + (content-textH)/2
		canvas = reveal.Rect{X: b.padX + colW + 48, Y: top + padY + (content-canvasH)/2, W: colW, H: canvasH}
		bottom = top + padY + content + padY
	} else {
		textTop = top + padY
		canvas = reveal.Rect{X: b.padX, Y: textTop + textH + 48, W: colW, H: canvasH}
		bottom = canvas.Y + canvasH + padY
	}

	y := textTop
	place := func(id string, parts []Part, delay int) {
		blk := b.add(Block{ID: id, Section: SectionTech, Rect: reveal.Rect{X: b.padX, Y: y}, Parts: parts,
			Delay: ms(delay), Direction: reveal.DirectionRight})
		y += blk.Rect.H
	}
	place("tech.tag", []Part{tag}, 0)
	y += 16
	place("tech.title", []Part{title}, 100)
	y += 16
	place("tech.desc", []Part{desc}, 200)
	y += 24
	for i, r := range rows {
		if i > 0 {
			y += 16
		}
		place(r.id, r.parts, 300+i*100)
	}

	b.layout.Canvases = append(b.layout.Canvases, Canvas{
		Scene: CanvasLayers, Rect: canvas, Reveal: true, Delay: ms(200), Direction: reveal.DirectionLeft, Opacity: 1,
	})
	b.section(SectionTech, top, bottom, ColorBackground)
	return bottom
}

// showcase lays out the interface section: header, arrows and the carousel of screens.
func (b *builder) showcase(top float64) float64 {
	padY := 96.0
	titleSize, subSize := 30.0, 16.0
	slideW, slideH, gap := 260.0, 540.0, 24.0
	if b.desktop {
		titleSize, subSize = 36, 18
		slideW, slideH, gap = 280, 580, 32
	}
	headW := min(b.inner(), 576)
	title := b.text(b.t("interface.title"), typeset.Style{Size: titleSize, Bold: true, Color: ColorDark}, 0, 0, headW)
	sub := b.text(b.t("interface.subtitle"), typeset.Style{Size: subSize, Color: ColorMuted}, 0, title.Rect.H+8, headW)
	header := b.add(Block{ID: "interface.header", Section: SectionInterface, Rect: reveal.Rect{X: b.padX, Y: top + padY},
		Parts: []Part{title, sub}})
	headBottom := header.Rect.Y + header.Rect.H

	arrow := func(text string, x float64, action Action) Part {
		p := box(text, typeset.Style{Size: 20, Color: ColorDark, Align: typeset.AlignCenter}, x, 0, 48, 48)
		p.Stroke = ColorBorder
		p.Radius = 24
		p.Action = action
		return p
	}
	arrowsAt := reveal.Rect{X: b.padX, Y: headBottom + 24}
	if b.desktop {
		arrowsAt = reveal.Rect{X: b.layout.Width - b.padX - 112, Y: headBottom - 48}
	}
	arrows := b.add(Block{ID: "interface.arrows", Section: SectionInterface, Rect: arrowsAt,
		Parts: []Part{arrow("←", 0, ActionPrevSlide), arrow("→", 64, ActionNextSlide)}, Delay: ms(200)})

	y := max(headBottom, arrows.Rect.Y+arrows.Rect.H) + 48
	b.add(Block{
		ID:        BlockCarousel,
		Section:   SectionInterface,
		Rect:      reveal.Rect{X: b.padX, Y: y, W: b.layout.Width - b.padX, H: slideH},
		Delay:     ms(300),
		Direction: reveal.DirectionLeft,
	})
	for i, sc := range Screens {
		b.layout.Slides = append(b.layout.Slides, Block{
			ID:      SlideID(sc.Key),
			Section: SectionInterface,
			Rect:    reveal.Rect{X: b.padX + float64(i)*(slideW+gap), Y: y, W: slideW, H: slideH},
			Parts:   SlideParts(sc, b.t("interface.screens."+sc.Key), slideW, slideH),
		})
	}

	bottom := y + slideH + padY
	b.section(SectionInterface, top, bottom, ColorWhite)
	return bottom
}

func (b *builder) testimonial(top float64) float64 {
	colW := min(b.inner(), 700)
	colX := (b.layout.Width - colW) / 2
	textSize, iconSize := 24.0, 192.0
	if b.desktop {
		textSize, iconSize = 36, 256
	}

	y := top + b.padY
	stars := make([]Part, 5)
	for i := range stars {
		stars[i] = Part{Rect: reveal.Rect{X: float64(i) * 24, W: 20, H: 20}, Fill: ColorAccent, Shape: ShapeStar}
	}
	b.add(Block{ID: "testimonial.stars", Section: SectionTestimonial,
		Rect: reveal.Rect{X: b.layout.Width/2 - 58, Y: y}, Parts: stars})
	y += 20 + 24

	quote := b.text(b.t("testimonial.text"),
		typeset.Style{Size: textSize, Bold: true, Color: ColorDark, LineHeight: 1.25, Align: typeset.AlignCenter}, 0, 0, colW)
	b.add(Block{ID: "testimonial.text", Section: SectionTestimonial, Rect: reveal.Rect{X: colX, Y: y},
		Parts: []Part{quote}, Delay: ms(200)})
	y += quote.Rect.H + 32

	name := b.text("Alex V.", typeset.Style{Size: 16, Bold: true, Color: ColorDark, Align: typeset.AlignCenter}, 0, 76, colW)
	role := b.text(b.t("testimonial.role"), typeset.Style{Size: 14, Color: ColorMuted, Align: typeset.AlignCenter},
		0, 76+name.Rect.H+2, colW)
	author := b.add(Block{ID: "testimonial.author", Section: SectionTestimonial, Rect: reveal.Rect{X: colX, Y: y},
		Parts: []Part{fill(ColorBorder, colW/2-32, 0, 64, 64, 32), name, role}, Delay: ms(400)})

	b.layout.Canvases = append(b.layout.Canvases, Canvas{
		Scene:     CanvasIcon,
		Rect:      reveal.Rect{X: b.layout.Width - iconSize, Y: top, W: iconSize, H: iconSize},
		Reveal:    true,
		Delay:     ms(500),
		Direction: reveal.DirectionLeft,
		Opacity:   0.5,
	})
	bottom := author.Rect.Y + author.Rect.H + b.padY
	b.section(SectionTestimonial, top, bottom, ColorWhite)
	return bottom
}

func (b *builder) cta(top float64) float64 {
	colW := min(b.inner(), 672)
	colX := (b.layout.Width - colW) / 2
	titleSize, descSize := 30.0, 16.0
	if b.desktop {
		titleSize, descSize = 48, 18
	}

	y := top + b.padY
	title := b.text(b.t("cta.title"), typeset.Style{Size: titleSize, Bold: true, Color: ColorDark, Align: typeset.AlignCenter}, 0, 0, colW)
	b.add(Block{ID: "cta.title", Section: SectionCTA, Rect: reveal.Rect{X: colX, Y: y}, Parts: []Part{title}})
	y += title.Rect.H + 24

	desc := b.text(b.t("cta.desc"),
		typeset.Style{Size: descSize, Color: "#4B5563", LineHeight: 1.6, Align: typeset.AlignCenter}, 16, 0, colW-32)
	b.add(Block{ID: "cta.desc", Section: SectionCTA, Rect: reveal.Rect{X: colX, Y: y}, Parts: []Part{desc}, Delay: ms(200)})
	y += desc.Rect.H + 40

	var buttons []Part
	if b.desktop {
		left := colW/2 - 248
		buttons = []Part{button(b.t("cta.btn1"), left, 0, 240, 56, true), button(b.t("cta.btn2"), left+256, 0, 240, 56, false)}
	} else {
		buttons = []Part{button(b.t("cta.btn1"), 16, 0, colW-32, 56, true), button(b.t("cta.btn2"), 16, 72, colW-32, 56, false)}
	}
	row := b.add(Block{ID: "cta.buttons", Section: SectionCTA, Rect: reveal.Rect{X: colX, Y: y, W: colW}, Parts: buttons, Delay: ms(400)})

	bottom := row.Rect.Y + row.Rect.H + b.padY
	b.section(SectionCTA, top, bottom, ColorCTA)
	return bottom
}

// footerColumns lists the link keys under each footer heading.
var footerColumns = [][]string{
	{"features", "security", "enterprise", "roadmap"},
	{"about", "careers", "press", "contact"},
	{"privacy", "terms"},
}

func (b *builder) footer(top float64) float64 {
	padY := 64.0
	cols, gap := 1, 48.0
	if b.desktop {
		padY, cols = 80, 4
	}
	colW := (b.inner() - gap*float64(cols-1)) / float64(cols)

	y := top + padY
	x := b.padX
	bottom := y
	next := func(h float64) {
		bottom = max(bottom, y+h)
		if b.desktop {
			x += colW + gap
		} else {
			y += h + gap
		}
	}

	brand := box("NovaOS", typeset.Style{Size: 24, Bold: true, Color: ColorWhite}, 0, 0, colW, 32)
	desc := b.text(b.t("footer.desc"), typeset.Style{Size: 14, Color: ColorSubtle, LineHeight: 1.6}, 0, 56, colW)
	blk := b.add(Block{ID: "footer.brand", Section: SectionFooter, Rect: reveal.Rect{X: x, Y: y}, Parts: []Part{brand, desc}})
	next(blk.Rect.H)

	for i, links := range footerColumns {
		parts := []Part{box(b.t(fmt.Sprintf("footer.col%d", i+1)), typeset.Style{Size: 16, Bold: true, Color: "#E5E7EB"}, 0, 0, colW, 24)}
		for j, key := range links {
			parts = append(parts, box(b.t("footer.links."+key), typeset.Style{Size: 14, Color: ColorSubtle}, 0, 40+float64(j)*32, colW, 24))
		}
		blk := b.add(Block{ID: fmt.Sprintf("footer.col%d", i+1), Section: SectionFooter, Rect: reveal.Rect{X: x, Y: y},
			Parts: parts, Delay: ms((i + 1) * 100)})
		next(blk.Rect.H)
	}

	small := typeset.Style{Size: 12, Color: ColorMuted}
	var parts []Part
	if b.desktop {
		made := small
		made.Align = typeset.AlignRight
		parts = []Part{
			fill("#1F2937", 0, 0, b.inner(), 1, 0),
			box(b.t("footer.rights"), small, 0, 33, b.inner()/2, 18),
			box(b.t("footer.made"), made, b.inner()/2, 33, b.inner()/2, 18),
		}
	} else {
		small.Align = typeset.AlignCenter
		parts = []Part{
			fill("#1F2937", 0, 0, b.inner(), 1, 0),
			box(b.t("footer.rights"), small, 0, 33, b.inner(), 18),
			box(b.t("footer.made"), small, 0, 67, b.inner(), 18),
		}
	}
	bar := b.add(Block{ID: "footer.bottom", Section: SectionFooter, Rect: reveal.Rect{X: b.padX, Y: bottom + 64},
		Parts: parts, Delay: ms(400)})

	end := bar.Rect.Y + bar.Rect.H + padY
	b.section(SectionFooter, top, end, ColorDark)
	return end
}

// navLink is a navigation entry scrolling to a section.
type navLink struct{ key, target string }

// nav adds the fixed navigation bar and the language toggle.
func (b *builder) nav() {
	w := b.layout.Width
	b.layout.Blocks = append(b.layout.Blocks, Block{
		ID:    BlockNavBar,
		Rect:  reveal.Rect{W: w, H: NavHeight},
		Parts: []Part{fill(ColorBackground, 0, 0, w, NavHeight, 0)},
		Fixed: true,
	})

	brandSize := 20.0
	if b.desktop {
		brandSize = 24
	}
	parts := []Part{box("NovaOS", typeset.Style{Size: brandSize, Bold: true, Color: ColorDark}, b.padX, 0, 160, NavHeight)}
	beta := box(b.t("nav.beta"), typeset.Style{Size: 14, Color: ColorDark, Align: typeset.AlignCenter}, w-b.padX-120, 20, 120, 40)
	beta.Stroke = ColorDark
	beta.Radius = 20
	links := []navLink{
		{"nav.features", SectionFeatures},
		{"nav.tech", SectionTech},
		{"nav.interface", SectionInterface},
	}
	if !b.desktop {
		b.menu(links)
		x := w - b.padX - 24
		for i := range 3 {
			parts = append(parts, fill(ColorDark, x, 31+float64(i)*8, 24, 2, 1))
		}
		open := box("", typeset.Style{}, x-12, 16, 48, 48)
		open.Action = ActionToggleMenu
		parts = append(parts, open)
	} else {
		x := beta.Rect.X - 32 - float64(len(links))*120
		for _, l := range links {
			p := box(b.t(l.key), typeset.Style{Size: 14, Color: ColorMuted, Align: typeset.AlignCenter}, x, 20, 120, 40)
			p.Action = ActionScrollTo
			p.Target = l.target
			parts = append(parts, p)
			x += 120
		}
		parts = append(parts, beta)
	}
	b.layout.Blocks = append(b.layout.Blocks, Block{ID: BlockNav, Rect: reveal.Rect{W: w, H: NavHeight}, Parts: parts, Fixed: true})

	toggle := box(b.t("toggle.label"), typeset.Style{Size: 14, Bold: true, Color: ColorWhite, Align: typeset.AlignCenter}, 0, 0, 210, 48)
	toggle.Fill = ColorDark
	toggle.Stroke = "#374151"
	toggle.Radius = 24
	toggle.Action = ActionToggleLocale
	b.layout.Blocks = append(b.layout.Blocks, Block{
		ID:    BlockToggle,
		Rect:  reveal.Rect{X: 24, Y: b.layout.ViewportHeight - 72, W: 210, H: 48},
		Parts: []Part{toggle},
		Fixed: true,
	})
}

// menu adds the full-screen navigation menu of the narrow layout. It sits under the navigation bar
// so the menu button stays on top.
func (b *builder) menu(links []navLink) {
	w, vh := b.layout.Width, b.layout.ViewportHeight
	const linkW, linkH, gap, betaH = 240.0, 48.0, 32.0, 52.0
	x := (w - linkW) / 2
	y := (vh - float64(len(links))*(linkH+gap) - betaH) / 2

	parts := []Part{fill(ColorWhite, 0, 0, w, vh, 0)}
	for _, l := range links {
		p := box(b.t(l.key), typeset.Style{Size: 24, Color: ColorDark, Align: typeset.AlignCenter}, x, y, linkW, linkH)
		p.Action = ActionScrollTo
		p.Target = l.target
		parts = append(parts, p)
		y += linkH + gap
	}
	beta := button(b.t("nav.beta"), x+20, y, linkW-40, betaH, true)
	beta.Radius = betaH / 2
	beta.Action = ActionCloseMenu
	parts = append(parts, beta)

	b.layout.Blocks = append(b.layout.Blocks, Block{ID: BlockMenu, Rect: reveal.Rect{W: w, H: vh}, Parts: parts, Fixed: true, Menu: true})
}
