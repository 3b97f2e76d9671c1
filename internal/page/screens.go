package page

import (
	"strings"

	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
)

// Screen is one mock app shown in the interface carousel.
type Screen struct {
	Key        string
	Background string
	// Dark screens use light status bar text.
	Dark bool
}

// Screens are the carousel slides in order.
var Screens = []Screen{
	{Key: "home", Background: "#F3F4F6"},
	{Key: "wallet", Background: "#F8F9FA"},
	{Key: "music", Background: "#F1F0F0"},
	{Key: "health", Background: "#ECFDF5"},
	{Key: "camera", Background: "#000000", Dark: true},
}

// SlideID is the block id of a carousel screen.
func SlideID(key string) string {
	return "interface.slide." + key
}

type transaction struct {
	name, when, amount string
}

var transactions = []transaction{
	{"Coffee House", "Today", "-$4.50"},
	{"Uber Ride", "Yesterday", "-$14.20"},
	{"Transfer", "Oct 21", "+$200.00"},
}

// SlideParts draws a phone frame of size w x h showing the mock UI of one screen.
//
// Parameters:
//   - sc: the screen to draw
//   - title: the localized screen title
//   - w, h: the slide size
//
// Returns:
//   - []Part: the parts in slide coordinates, back to front
func SlideParts(sc Screen, title string, w, h float64) []Part {
	ink := "#111827"
	if sc.Dark {
		ink = ColorWhite
	}
	parts := []Part{
		fill("#1F2937", 0, 0, w, h, 32),
		fill(sc.Background, 8, 8, w-16, h-16, 24),
	}
	x, iw := 32.0, w-64
	st := func(size float64, bold bool, color string) typeset.Style {
		return typeset.Style{Size: size, Bold: bold, Color: color}
	}
	right := func(s typeset.Style) typeset.Style {
		s.Align = typeset.AlignRight
		return s
	}
	center := func(s typeset.Style) typeset.Style {
		s.Align = typeset.AlignCenter
		return s
	}

	switch sc.Key {
	case "home":
		parts = append(parts,
			box("09:41", st(44, false, "#1F2937"), x, 64, 160, 52),
			box("Wednesday, Oct 24", st(14, false, ColorMuted), x, 118, iw-64, 20),
			box("72°", right(st(20, false, "#1F2937")), x+iw-64, 72, 64, 28),
			Part{Rect: reveal.Rect{X: x, Y: 168, W: iw, H: 64}, Fill: ColorWhite, Stroke: "#F3F4F6", Radius: 16},
			fill("#DBEAFE", x+12, 182, 36, 36, 18),
			box("Design Review", st(14, true, "#1F2937"), x+60, 178, iw-72, 20),
			box("10:00 AM • Room 402", st(12, false, ColorSubtle), x+60, 200, iw-72, 18),
		)
		tile := (iw - 48) / 4
		ty := h - 40 - tile
		for i, c := range []string{"#1F2937", ColorWhite, "#22C55E", ColorBorder} {
			p := fill(c, x+float64(i)*(tile+16), ty, tile, tile, 16)
			if c == ColorWhite {
				p.Stroke = ColorBorder
			}
			parts = append(parts, p)
		}
		// The home screen has no status bar.
		return parts

	case "wallet":
		cardH := iw / 1.58
		parts = append(parts,
			box(title, st(24, true, ink), x, 48, iw, 32),
			fill(ink, x, 96, iw, cardH, 24),
			box("Nova Card", st(14, true, ColorWhite), x+24, 112, iw-48, 20),
			box("Balance", st(11, false, ColorSubtle), x+24, 96+cardH-76, iw-48, 16),
			box("$12,450.00", st(28, true, ColorWhite), x+24, 96+cardH-58, iw-48, 34),
			box("**** 4829", right(st(12, false, "#D1D5DB")), x+24, 112, iw-48, 20),
		)
		y := 96 + cardH + 24
		parts = append(parts,
			box("Recent", st(16, true, ink), x, y, iw/2, 22),
			box("View All", right(st(12, false, "#3B82F6")), x+iw/2, y, iw/2, 22),
		)
		y += 36
		for _, tr := range transactions {
			amount := "#1F2937"
			if strings.HasPrefix(tr.amount, "+") {
				amount = "#22C55E"
			}
			parts = append(parts,
				Part{Rect: reveal.Rect{X: x, Y: y, W: iw, H: 56}, Fill: ColorWhite, Stroke: "#F3F4F6", Radius: 16},
				fill("#F3F4F6", x+8, y+8, 40, 40, 20),
				box(tr.name, st(14, true, "#1F2937"), x+56, y+9, iw-150, 18),
				box(tr.when, st(12, false, ColorSubtle), x+56, y+29, iw-150, 16),
				box(tr.amount, right(st(14, true, amount)), x+iw-100, y+18, 88, 20),
			)
			y += 64
		}

	case "music":
		art := iw
		parts = append(parts,
			box("NOW PLAYING", center(st(12, true, ColorMuted)), x, 48, iw, 18),
			fill("#D1D5DB", x, 88, art, art, 32),
			fill("#F3F4F6", x+art/2-24, 88+art/2-24, 48, 48, 24),
		)
		y := 88 + art + 24
		parts = append(parts,
			box("Midnight City", st(24, true, "#1F2937"), x, y, iw, 30),
			box("M83", st(16, false, ColorMuted), x, y+32, iw, 20),
		)
		y += 72
		parts = append(parts,
			fill(ColorBorder, x, y, iw, 4, 2),
			fill("#1F2937", x, y, iw/3, 4, 2),
			fill("#1F2937", x+iw/3-6, y-4, 12, 12, 6),
			box("1:20", st(12, false, ColorSubtle), x, y+12, 60, 16),
			box("4:03", right(st(12, false, ColorSubtle)), x+iw-60, y+12, 60, 16),
		)
		y += 48
		play := box("►", center(st(22, false, ColorWhite)), w/2-32, y, 64, 64)
		play.Fill = "#1F2937"
		play.Radius = 32
		parts = append(parts, play)

	case "health":
		avatar := box("AS", center(st(12, true, "#059669")), x+iw-32, 48, 32, 32)
		avatar.Fill = "#D1FAE5"
		avatar.Radius = 16
		ring := Part{Rect: reveal.Rect{X: w/2 - 48, Y: 148, W: 96, H: 96}, Stroke: "#F97316", StrokeWidth: 10, Radius: 48}
		parts = append(parts,
			box(title, st(24, true, ink), x, 48, iw-40, 32),
			avatar,
			Part{Rect: reveal.Rect{X: x, Y: 100, W: iw, H: 160}, Fill: ColorWhite, Stroke: "#D1FAE5", Radius: 24},
			box("Move", st(16, true, "#1F2937"), x+20, 116, iw/2, 20),
			box("340/500", right(st(12, false, ColorSubtle)), x+iw/2, 116, iw/2-20, 20),
			ring,
			box("340", center(st(24, true, "#1F2937")), w/2-48, 172, 96, 30),
			box("KCAL", center(st(10, false, ColorSubtle)), w/2-48, 202, 96, 14),
		)
		tw := (iw - 16) / 2
		for i, stat := range [][2]string{{"5,240", "Steps"}, {"72", "BPM"}} {
			tx := x + float64(i)*(tw+16)
			parts = append(parts,
				Part{Rect: reveal.Rect{X: tx, Y: 276, W: tw, H: 96}, Fill: ColorWhite, Stroke: "#D1FAE5", Radius: 16},
				box(stat[0], st(20, true, "#1F2937"), tx+16, 300, tw-32, 26),
				box(stat[1], st(12, false, ColorSubtle), tx+16, 328, tw-32, 16),
			)
		}

	case "camera":
		parts = append(parts, fill("#1F2937", 8, 8, w-16, h-16, 24))
		for i := 1; i <= 2; i++ {
			f := float64(i) / 3
			parts = append(parts,
				fill("#4B5563", 8, 8+(h-16)*f, w-16, 1, 0),
				fill("#4B5563", 8+(w-16)*f, 8, 1, h-16, 0),
			)
		}
		raw := box("RAW", center(st(12, false, ColorWhite)), w/2-28, 56, 56, 24)
		raw.Fill = "#111827"
		raw.Radius = 12
		parts = append(parts, raw)

		zy := h - 208
		for i, z := range []string{".5", "1x", "3"} {
			c := ColorSubtle
			if z == "1x" {
				c = "#FACC15"
			}
			parts = append(parts, box(z, center(st(12, true, c)), w/2-68+float64(i)*48, zy, 40, 16))
		}
		cy := h - 160
		shutter := Part{Rect: reveal.Rect{X: w/2 - 32, Y: cy, W: 64, H: 64}, Stroke: ColorWhite, StrokeWidth: 4, Radius: 32}
		thumb := fill("#1F2937", x+16, cy+8, 48, 48, 8)
		thumb.Stroke = "#4B5563"
		parts = append(parts,
			thumb,
			shutter,
			fill(ColorWhite, w/2-26, cy+6, 52, 52, 26),
			fill("#374151", x+iw-64, cy+8, 48, 48, 24),
		)
		for i, mode := range []string{"VIDEO", "PHOTO", "PORTRAIT"} {
			c := ColorSubtle
			if mode == "PHOTO" {
				c = "#FACC15"
			}
			parts = append(parts, box(mode, center(st(11, true, c)), w/2-114+float64(i)*76, h-64, 76, 16))
		}
	}

	status := ink
	dim := "#D1D5DB"
	if sc.Dark {
		dim = ColorMuted
	}
	parts = append(parts,
		box("9:41", st(12, true, status), x, 16, 60, 16),
		fill(dim, w-x-48, 18, 12, 12, 6),
		fill(dim, w-x-32, 18, 12, 12, 6),
		fill(status, w-x-16, 18, 12, 12, 6),
	)
	return parts
}
