// Package preview renders the localized landing page copy in a terminal, with scroll reveal,
// the interface carousel and the language toggle.
package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/Carmen-Shannon/nova-showcase/internal/page"
	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"github.com/mattn/go-runewidth"
)

// Terminal palette. The page colors read poorly on dark terminals, so body text is lighter.
const (
	colorTitle  = page.ColorWhite
	colorAccent = page.ColorAccent
	colorBody   = "#D1D5DB"
	colorMuted  = page.ColorSubtle
)

// margin is the left and right padding in cells.
const margin = 2

// Block is a run of wrapped lines that reveals as one unit.
type Block struct {
	ID      string
	Section string
	// Top is the first row of the block in document rows.
	Top    int
	Lines  []string
	Color  string
	Bold   bool
	Center bool
	// Tabs, when set, are drawn as a selectable row instead of Lines.
	Tabs      []string
	Delay     time.Duration
	Direction reveal.Direction
}

// Height is the number of rows the block occupies.
func (b Block) Height() int {
	if b.Tabs != nil {
		return 1
	}
	return len(b.Lines)
}

// Bounds is the block in document rows, as the reveal tracker sees it.
func (b Block) Bounds(width int) reveal.Rect {
	return reveal.Rect{Y: float64(b.Top), W: float64(width), H: float64(max(b.Height(), 1))}
}

// Document is the page laid out in terminal rows.
type Document struct {
	Width  int
	Height int
	Tag    locale.Tag
	Blocks []Block
	// Anchors maps a section id to its first row.
	Anchors map[string]int
}

type composer struct {
	snap    *locale.Snapshot
	width   int
	row     int
	section string
	doc     *Document
}

// Compose lays the page copy out for a terminal width.
//
// Parameters:
//   - snap: the language to lay out
//   - width: the terminal width in cells
//
// Returns:
//   - *Document: the document
func Compose(snap *locale.Snapshot, width int) *Document {
	c := &composer{
		snap:  snap,
		width: max(width, 2*margin+8),
		doc:   &Document{Width: width, Tag: snap.Tag, Anchors: make(map[string]int)},
	}
	t := snap.T

	// The first rows sit under the fixed header.
	c.row = 2
	c.begin(page.SectionHero)
	c.add(Block{ID: "hero.title", Lines: c.wrap(t("hero.title1") + " " + t("hero.title2") + "."), Color: colorTitle, Bold: true})
	c.add(Block{ID: "hero.subtitle", Lines: c.wrap(t("hero.subtitle")), Color: colorBody, Delay: ms(200)})
	c.gap(1)
	c.add(Block{ID: "hero.cta", Lines: c.wrap("[ " + t("hero.cta1") + " ]  [ " + t("hero.cta2") + " ]"), Color: colorAccent, Delay: ms(400)})

	c.begin(page.SectionFeatures)
	for i := 1; i <= 3; i++ {
		lines := append(c.wrap("◆ "+t(fmt.Sprintf("features.f%d_title", i))), c.wrapIndent(t(fmt.Sprintf("features.f%d_desc", i)), 2)...)
		c.add(Block{ID: fmt.Sprintf("features.f%d", i), Lines: lines, Color: colorBody, Delay: ms((i - 1) * 150)})
		c.gap(1)
	}

	c.begin(page.SectionTech)
	right := reveal.DirectionRight
	c.add(Block{ID: "tech.tag", Lines: c.wrap(strings.ToUpper(t("tech.tag"))), Color: colorAccent, Bold: true, Direction: right})
	c.add(Block{ID: "tech.title", Lines: c.wrap(t("tech.title")), Color: colorTitle, Bold: true, Delay: ms(100), Direction: right})
	c.add(Block{ID: "tech.desc", Lines: c.wrap(t("tech.desc")), Color: colorBody, Delay: ms(200), Direction: right})
	for i := 1; i <= 3; i++ {
		c.add(Block{ID: fmt.Sprintf("tech.p%d", i), Lines: c.wrap("• " + t(fmt.Sprintf("tech.p%d", i))),
			Color: colorBody, Delay: ms(300 + (i-1)*100), Direction: right})
	}

	c.begin(page.SectionInterface)
	c.add(Block{ID: "interface.header", Lines: append(c.wrap(t("interface.title")), c.wrap(t("interface.subtitle"))...), Color: colorTitle, Bold: true})
	c.gap(1)
	tabs := make([]string, len(page.Screens))
	for i, sc := range page.Screens {
		tabs[i] = t("interface.screens." + sc.Key)
	}
	c.add(Block{ID: page.BlockCarousel, Tabs: tabs, Color: colorBody, Delay: ms(300), Direction: reveal.DirectionLeft})
	c.add(Block{ID: "interface.arrows", Lines: []string{"← →"}, Color: colorMuted, Delay: ms(200)})

	c.begin(page.SectionTestimonial)
	c.add(Block{ID: "testimonial.stars", Lines: []string{"★★★★★"}, Color: colorAccent, Center: true})
	c.add(Block{ID: "testimonial.text", Lines: c.wrap(t("testimonial.text")), Color: colorTitle, Bold: true, Center: true, Delay: ms(200)})
	c.add(Block{ID: "testimonial.author", Lines: append([]string{"Alex V."}, c.wrap(t("testimonial.role"))...), Color: colorMuted, Center: true, Delay: ms(400)})

	c.begin(page.SectionCTA)
	c.add(Block{ID: "cta.title", Lines: c.wrap(t("cta.title")), Color: colorTitle, Bold: true, Center: true})
	c.add(Block{ID: "cta.desc", Lines: c.wrap(t("cta.desc")), Color: colorBody, Center: true, Delay: ms(200)})
	c.gap(1)
	c.add(Block{ID: "cta.buttons", Lines: c.wrap("[ " + t("cta.btn1") + " ]  [ " + t("cta.btn2") + " ]"),
		Color: colorAccent, Center: true, Delay: ms(400)})

	c.begin(page.SectionFooter)
	c.add(Block{ID: "footer.brand", Lines: append([]string{"NovaOS"}, c.wrap(t("footer.desc"))...), Color: colorMuted})
	for i := 1; i <= 3; i++ {
		c.gap(1)
		c.add(Block{ID: fmt.Sprintf("footer.col%d", i), Lines: c.wrap(t(fmt.Sprintf("footer.col%d", i))), Color: colorBody, Bold: true,
			Delay: ms(i * 100)})
	}
	c.gap(1)
	c.add(Block{ID: "footer.bottom", Lines: append(c.wrap(t("footer.rights")), c.wrap(t("footer.made"))...), Color: colorMuted, Delay: ms(400)})
	c.gap(3)

	c.doc.Height = c.row
	return c.doc
}

// Block returns the block with the given id.
func (d *Document) Block(id string) (Block, bool) {
	for _, b := range d.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

func (c *composer) begin(section string) {
	if section != page.SectionHero {
		c.gap(2)
	}
	c.section = section
	c.doc.Anchors[section] = c.row
}

func (c *composer) add(b Block) {
	b.Section = c.section
	b.Top = c.row
	c.doc.Blocks = append(c.doc.Blocks, b)
	c.row += b.Height()
}

func (c *composer) gap(rows int) {
	c.row += rows
}

func (c *composer) wrap(text string) []string {
	return c.wrapIndent(text, 0)
}

// wrapIndent breaks text into lines that fit the content width, at spaces when possible.
func (c *composer) wrapIndent(text string, indent int) []string {
	width := c.width - 2*margin - indent
	pad := strings.Repeat(" ", indent)
	var lines []string
	var line strings.Builder
	lineW := 0
	flush := func() {
		lines = append(lines, pad+line.String())
		line.Reset()
		lineW = 0
	}
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if lineW > 0 && lineW+1+ww > width {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			if lineW > 0 {
				flush()
			}
			line.WriteString(head)
			flush()
			word = strings.TrimPrefix(word, head)
			ww = runewidth.StringWidth(word)
		}
		if lineW > 0 {
			line.WriteByte(' ')
			lineW++
		}
		line.WriteString(word)
		lineW += ww
	}
	if lineW > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
