package server

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/rating/pkg/dom"
	"github.com/vango-dev/rating/pkg/render"
	"github.com/vango-dev/rating/pkg/star"
	"github.com/vango-dev/rating/pkg/tooltip"
	"github.com/vango-dev/rating/pkg/vdom"
)

// ClientPath is where the thin client script is served.
const ClientPath = "/client.js"

// LivePath is the WebSocket endpoint.
const LivePath = "/live"

const pageCSS = `:root { --star-yellow: %s; --star-placeholder: %s; }
body { font-family: sans-serif; margin: 0; padding: 48px; }
#rating { display: flex; gap: 8px; }
h1 { font-size: 20px; margin: 0 0 8px; }
.hint, .metrics { color: #666; font-size: 13px; }
.icon { display: inline-flex; }
#rating button { border: 0; background: none; padding: 4px; cursor: pointer; }
rating-tooltip { position: fixed; left: 0; top: 0; padding: 2px 6px; border-radius: 4px; background: #222; color: #fff; font-size: 12px; white-space: nowrap; }
`

func starID(i int) string { return "star-" + strconv.Itoa(i) }

func tipID(i int) string { return "tip-" + strconv.Itoa(i) }

func tipLabel(i, n int) string { return fmt.Sprintf("%d of %d", i, n) }

// page renders the demo document. Tooltips start hidden, matching the
// session mirror built by mirror.
func page(cfg *ServerConfig) *vdom.VNode {
	items := vdom.Repeat(cfg.Stars, func(i int) *vdom.VNode {
		n := i + 1
		return vdom.Fragment(
			vdom.Button(
				vdom.ID(starID(n)),
				vdom.Type("button"),
				vdom.AriaLabel(tipLabel(n, cfg.Stars)),
				vdom.Span(
					vdom.Class("icon"),
					vdom.AriaHidden(true),
					star.Element(cfg.StarSize, star.GradientID(n)),
				),
			),
			tooltip.Markup(
				vdom.ID(tipID(n)),
				vdom.StyleAttr("display: none;"),
				vdom.Textf("%d of %d", n, cfg.Stars),
			),
		)
	})

	return vdom.Html(
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Title("rating"),
			vdom.Style(vdom.Raw(fmt.Sprintf(pageCSS, cfg.Colors.Filled, cfg.Colors.Placeholder))),
		),
		vdom.Body(
			vdom.H1("Rating"),
			vdom.P(vdom.Class("hint"), "Hover or focus a star to see its tooltip. Any key or click hides it."),
			vdom.Div(vdom.ID("rating"), items),
			vdom.If(cfg.MetricsPath != "",
				vdom.P(vdom.Class("metrics"), vdom.Textf("Metrics are served at %s.", cfg.MetricsPath)),
			),
			vdom.Script(vdom.Src(ClientPath)),
		),
	)
}

// renderPage renders the demo document with a doctype.
func renderPage(cfg *ServerConfig) (string, error) {
	r := render.NewRenderer(render.RendererConfig{Doctype: true})
	return r.RenderToString(page(cfg))
}

// mirror builds the server-side copy of the demo page into doc and returns
// its tooltips in star order. Each tooltip resolves its star as the
// default target when it attaches.
func mirror(doc *dom.Document, cfg *ServerConfig, opts ...tooltip.Option) []*tooltip.Tooltip {
	root := doc.CreateElement("div")
	root.SetID("rating")

	opts = append([]tooltip.Option{tooltip.WithOffset(cfg.Offset)}, opts...)
	tips := make([]*tooltip.Tooltip, 0, cfg.Stars)
	for i := 1; i <= cfg.Stars; i++ {
		btn := doc.CreateElement("button")
		btn.SetID(starID(i))
		_ = root.AppendChild(btn)

		tip := tooltip.New(doc, opts...)
		tip.Element().SetID(tipID(i))
		_ = root.AppendChild(tip.Element())
		tips = append(tips, tip)
	}

	_ = doc.Body().AppendChild(root)
	return tips
}
