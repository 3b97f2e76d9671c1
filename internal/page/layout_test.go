package page

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeText measures roughly half an em per character and paints a solid square in the box center.
type fakeText struct{}

func (fakeText) Height(text string, st typeset.Style, width int) (int, error) {
	lh := st.LineHeight
	if lh == 0 {
		lh = 1.2
	}
	perLine := max(width/max(int(st.Size/2), 1), 1)
	lines := max((len(text)+perLine-1)/perLine, 1)
	return int(math.Ceil(float64(lines) * st.Size * lh)), nil
}

func (fakeText) RenderBox(_ string, _ typeset.Style, w, h int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := h/2 - 1; y <= h/2; y++ {
		for x := w/2 - 1; x <= w/2; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	return img, nil
}

type fakeSink struct {
	sizes map[string]image.Point
}

func (f *fakeSink) UpdateTexture(key string, img image.Image) error {
	if f.sizes == nil {
		f.sizes = make(map[string]image.Point)
	}
	f.sizes[key] = img.Bounds().Size()
	return nil
}

func snapshot(t *testing.T, tag locale.Tag) *locale.Snapshot {
	t.Helper()
	catalogs, err := locale.LoadEmbedded()
	require.NoError(t, err)
	return catalogs.Snapshot(tag)
}

func build(t *testing.T, tag locale.Tag, w, h float64) *Layout {
	t.Helper()
	l, err := Build(snapshot(t, tag), fakeText{}, w, h)
	require.NoError(t, err)
	return l
}

func TestBuild_RejectsEmptySize(t *testing.T) {
	snap := snapshot(t, locale.EN)
	for _, size := range [][2]float64{{0, 800}, {1280, 0}, {-1, -1}} {
		_, err := Build(snap, fakeText{}, size[0], size[1])
		assert.Error(t, err, "size %v", size)
	}
}

func TestBuild_SectionsTileThePage(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{name: "desktop", w: 1280, h: 800},
		{name: "mobile", w: 390, h: 844},
	}
	order := []string{SectionHero, SectionFeatures, SectionTech, SectionInterface, SectionTestimonial, SectionCTA, SectionFooter}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := build(t, locale.EN, tt.w, tt.h)
			require.Len(t, l.Sections, len(order))
			y := 0.0
			for i, s := range l.Sections {
				assert.Equal(t, order[i], s.ID)
				assert.InDelta(t, y, s.Rect.Y, 1e-9, "section %s", s.ID)
				assert.Greater(t, s.Rect.H, 0.0)
				assert.Equal(t, tt.w, s.Rect.W)
				y = s.Rect.Y + s.Rect.H
			}
			assert.InDelta(t, l.Height, y, 1e-9)

			for _, b := range l.Blocks {
				if b.Fixed {
					continue
				}
				s, ok := l.Section(b.Section)
				require.True(t, ok, "block %s", b.ID)
				assert.GreaterOrEqual(t, b.Rect.Y, s.Rect.Y, "block %s", b.ID)
				assert.LessOrEqual(t, b.Rect.Y+b.Rect.H, s.Rect.Y+s.Rect.H+1e-9, "block %s", b.ID)
			}
		})
	}
}

func TestBuild_Canvases(t *testing.T) {
	desk := build(t, locale.EN, 1280, 600)
	hero, ok := desk.Canvas(CanvasHero)
	require.True(t, ok)
	assert.Equal(t, 640.0, hero.Rect.X)
	assert.Equal(t, 640.0, hero.Rect.H, "hero is at least 640 tall")
	assert.False(t, hero.Reveal)

	layers, ok := desk.Canvas(CanvasLayers)
	require.True(t, ok)
	assert.True(t, layers.Reveal)
	assert.Equal(t, 500.0, layers.Rect.H)

	icon, ok := desk.Canvas(CanvasIcon)
	require.True(t, ok)
	assert.Equal(t, 0.5, icon.Opacity)

	mobile := build(t, locale.EN, 390, 800)
	hero, ok = mobile.Canvas(CanvasHero)
	require.True(t, ok)
	assert.Equal(t, float64(NavHeight), hero.Rect.Y)
	assert.InDelta(t, 360, hero.Rect.H, 1e-9)

	_, ok = mobile.Canvas("missing")
	assert.False(t, ok)
}

func TestLayout_Hit(t *testing.T) {
	l := build(t, locale.EN, 1280, 800)
	arrows, ok := l.Block("interface.arrows")
	require.True(t, ok)

	tests := []struct {
		name    string
		x, y    float64
		scrollY float64
		want    Action
		hit     bool
	}{
		{name: "toggle at top", x: 40, y: 800 - 50, want: ActionToggleLocale, hit: true},
		{name: "toggle scrolled", x: 40, y: 800 - 50, scrollY: 3000, want: ActionToggleLocale, hit: true},
		{name: "prev arrow", x: arrows.Rect.X + 24, y: 200, scrollY: arrows.Rect.Y - 176, want: ActionPrevSlide, hit: true},
		{name: "next arrow", x: arrows.Rect.X + 88, y: 200, scrollY: arrows.Rect.Y - 176, want: ActionNextSlide, hit: true},
		{name: "arrow scrolled away", x: arrows.Rect.X + 88, y: 200, hit: false},
		{name: "empty page", x: 640, y: 400, scrollY: 900, hit: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := l.Hit(tt.x, tt.y, tt.scrollY, false)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.Equal(t, tt.want, p.Action)
			}
		})
	}
}

func TestLayout_NavLinks(t *testing.T) {
	targets := func(l *Layout) []string {
		nav, ok := l.Block(BlockNav)
		require.True(t, ok)
		assert.True(t, nav.Fixed)
		var out []string
		for _, p := range nav.Parts {
			if p.Action == ActionScrollTo {
				out = append(out, p.Target)
				_, ok := l.Section(p.Target)
				assert.True(t, ok, "target %s", p.Target)
			}
		}
		return out
	}
	assert.Equal(t, []string{SectionFeatures, SectionTech, SectionInterface}, targets(build(t, locale.EN, 1280, 800)))
	assert.Empty(t, targets(build(t, locale.EN, 390, 800)))
}

// partAt returns the viewport center of the first part with the given action and target.
func partAt(t *testing.T, l *Layout, blockID string, action Action, target string) (float64, float64) {
	t.Helper()
	b, ok := l.Block(blockID)
	require.True(t, ok, blockID)
	for _, p := range b.Parts {
		if p.Action == action && p.Target == target {
			return b.Rect.X + p.Rect.X + p.Rect.W/2, b.Rect.Y + p.Rect.Y + p.Rect.H/2
		}
	}
	t.Fatalf("block %s has no part for action %d", blockID, action)
	return 0, 0
}

func TestLayout_MobileMenu(t *testing.T) {
	_, ok := build(t, locale.EN, 1280, 800).Block(BlockMenu)
	assert.False(t, ok, "the desktop layout shows its links in the bar")

	l := build(t, locale.EN, 390, 800)
	menu, ok := l.Block(BlockMenu)
	require.True(t, ok)
	assert.True(t, menu.Fixed)
	assert.True(t, menu.Menu)
	assert.Equal(t, 390.0, menu.Rect.W)
	assert.Equal(t, 800.0, menu.Rect.H)

	var targets []string
	for _, p := range menu.Parts {
		if p.Action == ActionScrollTo {
			targets = append(targets, p.Target)
		}
	}
	assert.Equal(t, []string{SectionFeatures, SectionTech, SectionInterface}, targets)

	bx, by := partAt(t, l, BlockNav, ActionToggleMenu, "")
	for _, open := range []bool{false, true} {
		p, ok := l.Hit(bx, by, 0, open)
		require.True(t, ok)
		assert.Equal(t, ActionToggleMenu, p.Action, "the menu button stays on top")
	}

	lx, ly := partAt(t, l, BlockMenu, ActionScrollTo, SectionTech)
	p, ok := l.Hit(lx, ly, 0, true)
	require.True(t, ok)
	assert.Equal(t, SectionTech, p.Target)
	if p, ok := l.Hit(lx, ly, 0, false); ok {
		assert.NotEqual(t, ActionScrollTo, p.Action, "a closed menu is not clickable")
	}

	arrows, ok := l.Block("interface.arrows")
	require.True(t, ok)
	scrollY := arrows.Rect.Y - 176
	_, ok = l.Hit(arrows.Rect.X+24, 200, scrollY, false)
	assert.True(t, ok)
	_, ok = l.Hit(arrows.Rect.X+24, 200, scrollY, true)
	assert.False(t, ok, "the open menu covers the page")

	p, ok = l.Hit(40, 800-50, 0, true)
	require.True(t, ok)
	assert.Equal(t, ActionToggleLocale, p.Action)
}

func TestBuild_FollowsLanguage(t *testing.T) {
	label := func(tag locale.Tag) string {
		l := build(t, tag, 1280, 800)
		assert.Equal(t, tag, l.Tag)
		b, ok := l.Block(BlockToggle)
		require.True(t, ok)
		return b.Parts[0].Text
	}
	assert.Equal(t, "Traduzir para PT", label(locale.EN))
	assert.Equal(t, "Translate to EN", label(locale.PT))
}

func TestBuild_Slides(t *testing.T) {
	l := build(t, locale.EN, 1280, 800)
	require.Len(t, l.Slides, len(Screens))
	for i, s := range l.Slides {
		assert.Equal(t, SlideID(Screens[i].Key), s.ID)
		assert.Equal(t, 280.0, s.Rect.W)
		assert.Equal(t, 580.0, s.Rect.H)
		if i > 0 {
			assert.InDelta(t, 312, s.Rect.X-l.Slides[i-1].Rect.X, 1e-9)
		}
		_, ok := l.Block(s.ID)
		assert.True(t, ok)
	}
}

func TestNavScrolled(t *testing.T) {
	assert.False(t, NavScrolled(0))
	assert.False(t, NavScrolled(50))
	assert.True(t, NavScrolled(51))
}
