package preview

import (
	"context"
	"sync"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/Carmen-Shannon/nova-showcase/internal/page"
	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

const (
	// cellWidth and cellHeight convert reveal travel from pixels to cells.
	cellWidth  = 8.0
	cellHeight = 16.0

	headerRows = 1
	footerRows = 1
)

// Preview is a terminal rendition of the page. Everything except Run is driven by the caller and
// must stay on one goroutine.
type Preview struct {
	screen   tcell.Screen
	store    *locale.Store
	tracker  *reveal.Tracker
	carousel *page.Carousel
	logger   *zap.Logger
	tick     time.Duration
	bg       tcell.Color

	doc     *Document
	scrollY int
	width   int
	height  int
}

// New creates a preview on an initialized screen.
//
// Parameters:
//   - screen: the terminal screen, already initialized
//   - store: the active language; toggling it relays the document
//   - options: functional options for the preview
//
// Returns:
//   - *Preview: the preview
func New(screen tcell.Screen, store *locale.Store, options ...PreviewBuilderOption) *Preview {
	p := &Preview{
		screen:   screen,
		store:    store,
		carousel: page.NewCarousel(len(page.Screens)),
		logger:   zap.NewNop(),
		tick:     16 * time.Millisecond,
		bg:       tcell.GetColor(page.ColorDark),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.tracker == nil {
		p.tracker = reveal.NewTracker(reveal.WithBottomMargin(1), reveal.WithLogger(p.logger))
	}
	p.logger = p.logger.Named("preview")
	p.resize()
	return p
}

// Document returns the current document.
func (p *Preview) Document() *Document {
	return p.doc
}

// ScrollY returns the first document row shown under the header.
func (p *Preview) ScrollY() int {
	return p.scrollY
}

// Carousel returns the interface slider.
func (p *Preview) Carousel() *page.Carousel {
	return p.carousel
}

// Tracker returns the reveal tracker.
func (p *Preview) Tracker() *reveal.Tracker {
	return p.tracker
}

func (p *Preview) resize() {
	p.width, p.height = p.screen.Size()
	p.relayout(p.store.Snapshot())
}

// relayout composes the document and observes any new blocks. Known blocks keep their reveal state.
func (p *Preview) relayout(snap *locale.Snapshot) {
	p.doc = Compose(snap, p.width)
	for _, b := range p.doc.Blocks {
		bounds := b.Bounds(p.width)
		if rb := p.tracker.Block(b.ID); rb != nil {
			rb.SetBounds(bounds)
			continue
		}
		p.tracker.Observe(b.ID, bounds, reveal.WithDelay(b.Delay), reveal.WithDirection(b.Direction))
	}
	p.scrollTo(p.scrollY)
}

func (p *Preview) viewRows() int {
	return max(p.height-headerRows-footerRows, 1)
}

func (p *Preview) maxScroll() int {
	return max(p.doc.Height-p.viewRows(), 0)
}

func (p *Preview) scrollTo(y int) {
	p.scrollY = int(common.Clamp(float64(y), 0, float64(p.maxScroll())))
}

// HandleEvent applies one terminal event.
//
// Parameters:
//   - ev: the event
//   - now: the event time
//
// Returns:
//   - bool: false when the preview should quit
func (p *Preview) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			p.scrollTo(p.scrollY + 1)
		case tcell.KeyUp:
			p.scrollTo(p.scrollY - 1)
		case tcell.KeyPgDn:
			p.scrollTo(p.scrollY + p.viewRows() - 1)
		case tcell.KeyPgUp:
			p.scrollTo(p.scrollY - p.viewRows() + 1)
		case tcell.KeyHome:
			p.scrollTo(0)
		case tcell.KeyEnd:
			p.scrollTo(p.maxScroll())
		case tcell.KeyLeft:
			p.carousel.Prev(now)
		case tcell.KeyRight:
			p.carousel.Next(now)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'l', 'L', 't', 'T':
				snap := p.store.Toggle()
				p.relayout(snap)
			case ' ':
				p.scrollTo(p.scrollY + p.viewRows() - 1)
			case 'j':
				p.scrollTo(p.scrollY + 1)
			case 'k':
				p.scrollTo(p.scrollY - 1)
			}
		}
	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelDown != 0:
			p.scrollTo(p.scrollY + 3)
		case ev.Buttons()&tcell.WheelUp != 0:
			p.scrollTo(p.scrollY - 3)
		}
	case *tcell.EventResize:
		p.screen.Sync()
		p.resize()
	}
	return true
}

// Draw reveals the blocks in view and paints one frame.
//
// Parameters:
//   - now: the frame time
func (p *Preview) Draw(now time.Time) {
	view := reveal.Rect{Y: float64(p.scrollY), W: float64(p.width), H: float64(p.viewRows())}
	p.tracker.Update(view, now)

	base := tcell.StyleDefault.Background(p.bg)
	p.screen.Fill(' ', base)

	for _, b := range p.doc.Blocks {
		rb := p.tracker.Block(b.ID)
		if rb == nil {
			continue
		}
		progress := rb.Progress(now)
		if progress <= 0 {
			continue
		}
		dx, dy := rb.Offset(now)
		col := margin + int(dx/cellWidth)
		row := b.Top - p.scrollY + headerRows + int(dy/cellHeight)
		style := base.Foreground(fade(p.bg, tcell.GetColor(b.Color), progress)).Bold(b.Bold)

		if b.Tabs != nil {
			p.drawTabs(b.Tabs, col, row, style)
			continue
		}
		for i, line := range b.Lines {
			x := col
			if b.Center {
				x = max((p.width-runewidth.StringWidth(line))/2, 0) + int(dx/cellWidth)
			}
			p.print(x, row+i, line, style)
		}
	}

	p.drawChrome(base)
	p.screen.Show()
}

func (p *Preview) drawTabs(tabs []string, x, y int, style tcell.Style) {
	active := p.carousel.Active()
	for i, tab := range tabs {
		st := style
		if i == active {
			st = st.Reverse(true)
		}
		x = p.print(x, y, " "+tab+" ", st) + 1
	}
}

// drawChrome paints the fixed header and the language toggle over the content.
func (p *Preview) drawChrome(base tcell.Style) {
	t := p.store.T
	header := base.Foreground(tcell.GetColor(colorTitle)).Bold(true)
	if p.scrollY > 0 {
		header = header.Background(tcell.GetColor("#111111"))
	}
	for x := range p.width {
		p.screen.SetContent(x, 0, ' ', nil, header)
	}
	p.print(margin, 0, "NovaOS", header)
	nav := t("nav.features") + "  " + t("nav.tech") + "  " + t("nav.interface")
	p.print(p.width-margin-runewidth.StringWidth(nav), 0, nav, header.Bold(false))

	toggle := base.Foreground(tcell.GetColor(page.ColorDark)).Background(tcell.GetColor(page.ColorWhite))
	bottom := p.height - 1
	for x := range p.width {
		p.screen.SetContent(x, bottom, ' ', nil, base)
	}
	end := p.print(margin, bottom, " "+t("toggle.label")+" [L] ", toggle)
	p.print(end+2, bottom, "↑↓ PgUp PgDn  ←→  q", base.Foreground(tcell.GetColor(colorMuted)))
}

// print writes a string clipped to the content rows and returns the column after it.
func (p *Preview) print(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if y >= 0 && y < p.height && x >= 0 && x+w <= p.width {
			p.screen.SetContent(x, y, r, nil, style)
		}
		x += w
	}
	return x
}

// fade blends from the background toward a color as a block reveals.
func fade(bg, fg tcell.Color, t float64) tcell.Color {
	br, bgG, bb := bg.RGB()
	fr, fgG, fb := fg.RGB()
	mix := func(a, b int32) int32 {
		return int32(common.Lerp(float64(a), float64(b), common.Clamp(t, 0, 1)) + 0.5)
	}
	return tcell.NewRGBColor(mix(br, fr), mix(bgG, fgG), mix(bb, fb))
}

// Run polls terminal events and draws frames until the user quits or ctx ends. The screen is finalized on return.
//
// Parameters:
//   - ctx: cancels the preview
//
// Returns:
//   - error: always nil; the signature matches the other commands
func (p *Preview) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer func() {
		close(done)
		p.screen.Fini()
		wg.Wait()
	}()

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	p.logger.Info("preview started", zap.Int("width", p.width), zap.Int("height", p.height))
	p.Draw(time.Now())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !p.HandleEvent(ev, time.Now()) {
				p.logger.Info("preview closed")
				return nil
			}
		case now := <-ticker.C:
			p.Draw(now)
		}
	}
}
