package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Document builds the static HTML rendition of the page in one language.
//
// Parameters:
//   - snap: the language to render
//
// Returns:
//   - g.Node: the document, doctype included
func Document(snap *locale.Snapshot) g.Node {
	t := snap.T
	return h.Doctype(h.HTML(
		h.Lang(snap.Tag.String()),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.TitleEl(g.Text("NovaOS | "+t("hero.title2"))),
			h.StyleEl(g.Raw(stylesheet)),
		),
		h.Body(
			navNode(snap),
			h.Main(
				heroNode(t),
				featuresNode(t),
				techNode(t),
				interfaceNode(t),
				testimonialNode(t),
				ctaNode(t),
			),
			footerNode(t),
			h.A(h.Class("toggle"), h.Href("?lang="+snap.Tag.Other().String()), g.Text(t("toggle.label"))),
			h.Script(g.Raw(script)),
		),
	))
}

// Render writes the document for one language.
//
// Parameters:
//   - w: the destination
//   - snap: the language to render
//
// Returns:
//   - error: an error if writing fails
func Render(w io.Writer, snap *locale.Snapshot) error {
	return Document(snap).Render(w)
}

// Handler serves the page. The language comes from the lang query parameter, then the
// Accept-Language header, then the fallback.
//
// Parameters:
//   - catalogs: the loaded string tables
//   - fallback: the language used when the request names none
//   - logger: the request logger
//
// Returns:
//   - http.Handler: the handler
func Handler(catalogs locale.Catalogs, fallback locale.Tag, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		tag := fallback
		if lang := r.URL.Query().Get("lang"); lang != "" {
			tag = locale.Negotiate(lang)
		} else if accept := r.Header.Get("Accept-Language"); accept != "" {
			tag = locale.Negotiate(accept)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Language", tag.String())
		if err := Render(w, catalogs.Snapshot(tag)); err != nil {
			logger.Warn("render page", zap.Error(err))
			return
		}
		logger.Debug("page served", zap.Stringer("locale", tag), zap.String("remote", r.RemoteAddr))
	})
	return mux
}

// Serve runs an HTTP server until ctx ends, then shuts it down gracefully.
//
// Parameters:
//   - ctx: cancels the server
//   - addr: the listen address
//   - handler: the page handler
//   - logger: the server logger
//
// Returns:
//   - error: an error if the server fails or cannot shut down
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	logger.Info("page listening", zap.String("addr", addr))
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("page: shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("page: serve http: %w", err)
	}
}

// revealAttrs marks an element for the scroll reveal script.
func revealAttrs(dir string, delay int, classes ...string) g.Node {
	return g.Group([]g.Node{
		h.Class(strings.Join(append([]string{"reveal", dir}, classes...), " ")),
		h.Style(fmt.Sprintf("transition-delay:%dms", delay)),
	})
}

func navNode(snap *locale.Snapshot) g.Node {
	t := snap.T
	return h.Nav(h.ID("nav"),
		h.A(h.Class("brand"), h.Href("#"+SectionHero), g.Text("NovaOS")),
		h.Div(h.Class("links"),
			h.A(h.Href("#"+SectionFeatures), g.Text(t("nav.features"))),
			h.A(h.Href("#"+SectionTech), g.Text(t("nav.tech"))),
			h.A(h.Href("#"+SectionInterface), g.Text(t("nav.interface"))),
		),
		h.A(h.Class("btn outline beta"), h.Href("#"+SectionCTA), g.Text(t("nav.beta"))),
		h.Button(h.ID("menu-toggle"), h.Class("menu-toggle"), h.Type("button"), h.Aria("label", "Menu"),
			h.Aria("expanded", "false"), g.Text("☰")),
		h.Div(h.ID("menu"), h.Class("menu"),
			h.A(h.Href("#"+SectionFeatures), g.Text(t("nav.features"))),
			h.A(h.Href("#"+SectionTech), g.Text(t("nav.tech"))),
			h.A(h.Href("#"+SectionInterface), g.Text(t("nav.interface"))),
			h.A(h.Class("btn solid"), h.Href("#"+SectionCTA), g.Text(t("nav.beta"))),
		),
	)
}

func heroNode(t func(string) string) g.Node {
	return h.Section(h.ID(SectionHero),
		h.Div(h.Class("hero-copy"),
			h.H1(revealAttrs("up", 0),
				g.Text(t("hero.title1")), h.Br(),
				h.Span(h.Class("gradient"), g.Text(t("hero.title2"))),
			),
			h.P(revealAttrs("up", 200, "lead"), g.Text(t("hero.subtitle"))),
			h.Div(revealAttrs("up", 400, "row"),
				h.A(h.Class("btn solid"), h.Href("#"+SectionCTA), g.Text(t("hero.cta1"))),
				h.A(h.Class("btn outline"), h.Href("#"+SectionFeatures), g.Text(t("hero.cta2"))),
			),
		),
		h.Div(h.Class("canvas"), h.Data("scene", CanvasHero)),
	)
}

func featuresNode(t func(string) string) g.Node {
	cards := make([]g.Node, 0, 3)
	for i := 1; i <= 3; i++ {
		cards = append(cards, h.Div(revealAttrs("up", (i-1)*150, "card"),
			h.H3(g.Text(t(fmt.Sprintf("features.f%d_title", i)))),
			h.P(g.Text(t(fmt.Sprintf("features.f%d_desc", i)))),
		))
	}
	return h.Section(h.ID(SectionFeatures), h.Div(h.Class("grid"), g.Group(cards)))
}

func techNode(t func(string) string) g.Node {
	points := make([]g.Node, 0, 3)
	for i := 1; i <= 3; i++ {
		points = append(points, h.Li(revealAttrs("right", 200+i*100), g.Text(t(fmt.Sprintf("tech.p%d", i)))))
	}
	return h.Section(h.ID(SectionTech),
		h.Div(h.Class("split"),
			h.Div(
				h.Span(revealAttrs("right", 0, "tag"), g.Text(t("tech.tag"))),
				h.H2(revealAttrs("right", 100), g.Text(t("tech.title"))),
				h.P(revealAttrs("right", 200), g.Text(t("tech.desc"))),
				h.Ul(g.Group(points)),
			),
			h.Div(revealAttrs("left", 200, "canvas layers"), h.Data("scene", CanvasLayers)),
		),
	)
}

func interfaceNode(t func(string) string) g.Node {
	slides := make([]g.Node, 0, len(Screens))
	for _, sc := range Screens {
		slides = append(slides, slideNode(sc, t("interface.screens."+sc.Key)))
	}
	return h.Section(h.ID(SectionInterface),
		h.Div(h.Class("row between"),
			h.Div(revealAttrs("up", 0),
				h.H2(g.Text(t("interface.title"))),
				h.P(g.Text(t("interface.subtitle"))),
			),
			h.Div(revealAttrs("up", 200, "row"),
				h.Button(h.Class("arrow"), h.Data("step", "-1"), g.Text("←")),
				h.Button(h.Class("arrow"), h.Data("step", "1"), g.Text("→")),
			),
		),
		h.Div(revealAttrs("left", 300, "carousel"),
			h.Div(h.ID("track"), g.Group(slides)),
		),
	)
}

// slideNode lays the painted parts of a screen out as absolutely positioned boxes.
func slideNode(sc Screen, title string) g.Node {
	const w, hgt = 280.0, 580.0
	parts := SlideParts(sc, title, w, hgt)
	nodes := make([]g.Node, 0, len(parts))
	for _, p := range parts {
		nodes = append(nodes, partNode(p))
	}
	return h.Div(h.Class("slide"), h.Data("screen", sc.Key), g.Group(nodes))
}

func partNode(p Part) g.Node {
	var css strings.Builder
	fmt.Fprintf(&css, "left:%gpx;top:%gpx;width:%gpx;height:%gpx;", p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H)
	if p.Fill != "" {
		fmt.Fprintf(&css, "background:%s;", p.Fill)
	}
	if p.Stroke != "" {
		fmt.Fprintf(&css, "border:%gpx solid %s;", max(p.StrokeWidth, 1), p.Stroke)
	}
	if p.Radius > 0 {
		fmt.Fprintf(&css, "border-radius:%gpx;", p.Radius)
	}
	if p.Text != "" {
		fmt.Fprintf(&css, "font-size:%gpx;line-height:%gpx;color:%s;text-align:%s;", p.Style.Size, p.Rect.H, p.Style.Color, align(p.Style.Align))
		if p.Style.Bold {
			css.WriteString("font-weight:700;")
		}
	}
	return h.Div(h.Class("part"), h.Style(css.String()), g.If(p.Text != "", g.Text(p.Text)))
}

func align(a typeset.Align) string {
	switch a {
	case typeset.AlignCenter:
		return "center"
	case typeset.AlignRight:
		return "right"
	default:
		return "left"
	}
}

func testimonialNode(t func(string) string) g.Node {
	return h.Section(h.ID(SectionTestimonial),
		h.Div(revealAttrs("left", 500, "canvas icon"), h.Data("scene", CanvasIcon)),
		h.Div(revealAttrs("up", 0, "stars"), g.Text("★★★★★")),
		h.BlockQuote(revealAttrs("up", 200), g.Text(t("testimonial.text"))),
		h.Div(revealAttrs("up", 400, "author"),
			h.Div(h.Class("avatar")),
			h.Div(h.Strong(g.Text("Alex V.")), h.Br(), h.Span(g.Text(t("testimonial.role")))),
		),
	)
}

func ctaNode(t func(string) string) g.Node {
	return h.Section(h.ID(SectionCTA),
		h.H2(revealAttrs("up", 0), g.Text(t("cta.title"))),
		h.P(revealAttrs("up", 200), g.Text(t("cta.desc"))),
		h.Div(revealAttrs("up", 400, "row center"),
			h.A(h.Class("btn solid"), h.Href("#"), g.Text(t("cta.btn1"))),
			h.A(h.Class("btn outline"), h.Href("#"), g.Text(t("cta.btn2"))),
		),
	)
}

func footerNode(t func(string) string) g.Node {
	cols := make([]g.Node, 0, len(footerColumns))
	for i, links := range footerColumns {
		cols = append(cols, h.Div(revealAttrs("up", (i+1)*100),
			h.H4(g.Text(t(fmt.Sprintf("footer.col%d", i+1)))),
			h.Ul(g.Map(links, func(k string) g.Node {
				return h.Li(h.A(h.Href("#"), g.Text(t("footer.links."+k))))
			})),
		))
	}
	return h.Footer(h.ID(SectionFooter),
		h.Div(h.Class("grid four"),
			h.Div(revealAttrs("up", 0), h.Strong(g.Text("NovaOS")), h.P(g.Text(t("footer.desc")))),
			g.Group(cols),
		),
		h.Div(revealAttrs("up", 400, "row between bottom"),
			h.Span(g.Text(t("footer.rights"))),
			h.Span(g.Text(t("footer.made"))),
		),
	)
}

var stylesheet = strings.NewReplacer(
	"$bg", ColorBackground, "$dark", ColorDark, "$accent", ColorAccent, "$body", ColorBody,
	"$muted", ColorMuted, "$border", ColorBorder, "$cta", ColorCTA,
).Replace(`
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:Inter,system-ui,sans-serif;background:$bg;color:$dark}
a{color:inherit;text-decoration:none}
nav{position:fixed;top:0;left:0;right:0;height:80px;display:flex;align-items:center;justify-content:space-between;padding:0 6%;z-index:10;transition:background .3s}
nav.scrolled{background:rgba(247,247,247,.95);backdrop-filter:blur(12px)}
nav .brand{font-weight:700;font-size:24px}
nav .links a{margin:0 16px;color:$body;font-size:14px}
section,footer{padding:128px 6%}
h1{font-size:64px;line-height:1.1}
h2{font-size:40px;margin-bottom:16px}
.gradient{color:$muted}
.lead{color:$body;font-size:18px;margin:24px 0 32px;max-width:560px}
.row{display:flex;gap:16px;align-items:center}
.between{justify-content:space-between}
.center{justify-content:center}
.btn{display:inline-block;padding:12px 28px;border-radius:16px;font-weight:500}
.btn.solid{background:$dark;color:#fff}
.btn.outline{border:1px solid $dark}
#hero{display:grid;grid-template-columns:1fr 1fr;min-height:100vh;align-items:center}
.canvas{min-height:500px}
.grid{display:grid;grid-template-columns:repeat(3,1fr);gap:32px}
.grid.four{grid-template-columns:2fr 1fr 1fr 1fr}
.card{background:#fff;border-radius:20px;padding:32px;border:1px solid $border}
.card p{color:$muted;margin-top:12px}
.split{display:grid;grid-template-columns:1fr 1fr;gap:64px;align-items:center}
.tag{display:inline-block;padding:6px 16px;border-radius:14px;background:$border;color:#4B5563;text-transform:uppercase;font-weight:700;font-size:12px}
#technology p,#technology li{color:#4B5563;margin-top:16px}
.carousel{overflow:hidden;margin-top:48px}
#track{display:flex;gap:32px;transition:transform .7s cubic-bezier(.33,1,.68,1)}
.slide{position:relative;flex:0 0 280px;height:580px;transform:scale(.95);opacity:.6;transition:all .5s}
.slide.active{transform:none;opacity:1}
.part{position:absolute;overflow:hidden;white-space:nowrap}
.arrow{width:48px;height:48px;border-radius:24px;border:1px solid $border;background:#fff;cursor:pointer}
#testimonial{position:relative;text-align:center}
.icon{position:absolute;top:0;right:0;width:256px;height:256px;min-height:0;opacity:.5}
.stars{color:$accent;font-size:20px;letter-spacing:4px}
blockquote{font-size:28px;max-width:800px;margin:32px auto}
.author{display:flex;gap:12px;justify-content:center;align-items:center}
.avatar{width:48px;height:48px;border-radius:24px;background:$border}
#cta{background:$cta;text-align:center}
#cta p{max-width:560px;margin:16px auto 32px;color:$body}
footer{background:$dark;color:#fff;padding-bottom:48px}
footer h4{margin-bottom:16px}
footer li,footer p{list-style:none;color:#9CA3AF;margin-bottom:8px}
footer .bottom{margin-top:64px;padding-top:24px;border-top:1px solid #1F2937;color:$muted;font-size:12px}
.menu-toggle{display:none;position:relative;z-index:12;background:none;border:0;font-size:24px;color:$dark;cursor:pointer}
.menu{position:fixed;inset:0;z-index:11;background:#fff;display:none;flex-direction:column;align-items:center;justify-content:center;gap:32px;transform:translateX(100%);transition:transform .3s}
.menu a{font-size:24px;font-weight:500}
.menu a.btn{font-size:18px;padding:12px 32px}
nav.open .menu{transform:none}
nav.open .menu-toggle{font-size:0}
nav.open .menu-toggle::after{content:"✕";font-size:24px}
.toggle{position:fixed;left:24px;bottom:24px;padding:12px 20px;border-radius:24px;background:$dark;color:#fff;z-index:20}
.reveal{opacity:0;transition-property:opacity,transform;transition-duration:1s;transition-timing-function:cubic-bezier(.33,1,.68,1)}
.reveal.up{transform:translateY(48px)}
.reveal.down{transform:translateY(-48px)}
.reveal.left{transform:translateX(48px)}
.reveal.right{transform:translateX(-48px)}
.reveal.visible{opacity:1;transform:none}
@media (max-width:767px){
section,footer{padding:80px 24px}
nav{padding:0 24px}
nav .links,nav .beta{display:none}
.menu-toggle{display:block}
.menu{display:flex}
#hero,.split,.grid,.grid.four{grid-template-columns:1fr}
h1{font-size:44px}
.icon{width:192px;height:192px}
}
`)

const script = `
(function(){
var io=new IntersectionObserver(function(es){es.forEach(function(e){
if(e.isIntersecting){e.target.classList.add('visible');io.unobserve(e.target)}})},
{threshold:0.1,rootMargin:'0px 0px -50px 0px'});
document.querySelectorAll('.reveal').forEach(function(el){io.observe(el)});
var nav=document.getElementById('nav');
addEventListener('scroll',function(){nav.classList.toggle('scrolled',scrollY>50)});
var menuToggle=document.getElementById('menu-toggle');
function menu(open){nav.classList.toggle('open',open);menuToggle.setAttribute('aria-expanded',String(open))}
menuToggle.addEventListener('click',function(){menu(!nav.classList.contains('open'))});
document.querySelectorAll('#menu a').forEach(function(a){a.addEventListener('click',function(){menu(false)})});
var track=document.getElementById('track'),slides=track.children,active=0;
function show(i){active=(i+slides.length)%slides.length;
track.style.transform='translateX('+(-active*300)+'px)';
for(var k=0;k<slides.length;k++){slides[k].classList.toggle('active',k===active)}}
document.querySelectorAll('.arrow').forEach(function(b){
b.addEventListener('click',function(){show(active+Number(b.dataset.step))})});
show(0);
})();
`
