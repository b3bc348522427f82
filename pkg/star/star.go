package star

import (
	"fmt"
	"strconv"

	rerrors "github.com/vango-dev/rating/internal/errors"
	"github.com/vango-dev/rating/pkg/render"
	"github.com/vango-dev/rating/pkg/vdom"
)

// Size is a star size category.
type Size string

const (
	Small  Size = "s"
	Medium Size = "m"
	Large  Size = "l"
)

// Tag is the custom element name of a star.
const Tag = "rating-star"

// viewBox is the coordinate space of the star path.
const viewBox = "0 0 24 24"

// pathData outlines a five-pointed star in a 24x24 box.
const pathData = "M4.07512 22.3085L6.21423 14.999L0.476607 10.1393C0.269663 9.96838 0.120233 9.73794 0.0485476 9.4792C-0.0231375 9.22047 -0.0136153 8.94595 0.0758251 8.69282C0.165265 8.43968 0.330304 8.22015 0.548596 8.06394C0.766889 7.90774 1.02789 7.82241 1.29627 7.8195H8.29337L10.7823 0.859942C10.8692 0.60817 11.0324 0.394579 11.2492 0.239984C11.466 0.0853893 11.7256 0 11.9918 0C12.2581 0 12.5177 0.0853893 12.7345 0.239984C12.9513 0.394579 13.1145 0.60817 13.2013 0.859942L15.7103 7.8695H22.7074C22.977 7.87512 23.2384 7.96323 23.4564 8.12197C23.6744 8.28072 23.8386 8.50247 23.9268 8.75737C24.015 9.01227 24.023 9.28809 23.9498 9.54768C23.8765 9.80728 23.7255 10.0382 23.5171 10.2093L17.6195 15.049L19.9086 22.2385C20.0126 22.4941 20.0319 22.7711 19.9638 23.0385C19.8956 23.3058 19.7436 23.5439 19.53 23.7184C19.3164 23.8929 19.0524 23.985 18.7769 23.9984C18.5014 24.0118 18.2289 23.9414 17.9994 23.7884L12.0148 19.7187L6.00432 23.7884C5.78082 23.9337 5.51778 24.0088 5.2514 23.9984C4.98503 23.988 4.72841 23.8907 4.51687 23.7284C4.30534 23.5661 4.14927 23.3431 4.07016 23.0885C3.99105 22.8338 3.99278 22.5621 4.07512 22.3085Z"

// Colors are the two paints of a star.
type Colors struct {
	Filled      string
	Placeholder string
}

// ThemeColors reads the paints from the page's CSS variables.
var ThemeColors = Colors{
	Filled:      "var(--star-yellow)",
	Placeholder: "var(--star-placeholder)",
}

// Pixels returns the rendered width and height for size: 16 for s, 20 for
// m, 24 for l. Anything else renders at 16.
func Pixels(size Size) int {
	switch size {
	case Large:
		return 24
	case Medium:
		return 20
	default:
		return 16
	}
}

// ParseSize parses a size category. Unknown values return Small with an
// E201 error.
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case Small, Medium, Large:
		return Size(s), nil
	}
	return Small, rerrors.New("E201").
		WithDetail(fmt.Sprintf("got %q", s)).
		WithSuggestion("use s, m or l")
}

// Render returns the star SVG painted with ThemeColors.
func Render(size Size) *vdom.VNode {
	return RenderWith(size, ThemeColors, DefaultGradientID)
}

// DefaultGradientID names the paint gradient of a standalone star.
const DefaultGradientID = "grad"

// GradientID returns a gradient id unique to the n-th star of a page.
func GradientID(n int) string {
	return DefaultGradientID + "-" + strconv.Itoa(n)
}

// RenderWith returns the star SVG painted with c through a gradient named
// gradientID, or DefaultGradientID when empty. Stars inlined into the same
// document need distinct ids. The gradient is fully filled; partial fill is
// left to page styling.
func RenderWith(size Size, c Colors, gradientID string) *vdom.VNode {
	if gradientID == "" {
		gradientID = DefaultGradientID
	}
	px := Pixels(size)
	return vdom.Svg(
		vdom.Width(px),
		vdom.Height(px),
		vdom.ViewBox(viewBox),
		vdom.Fill("none"),
		vdom.Xmlns("http://www.w3.org/2000/svg"),
		vdom.Defs(
			vdom.LinearGradient(
				vdom.ID(gradientID),
				vdom.Stop(
					vdom.Attribute("offset", "100%"),
					vdom.Attribute("stop-color", c.Filled),
					vdom.Attribute("stop-opacity", "1"),
				),
				vdom.Stop(
					vdom.Attribute("offset", "0%"),
					vdom.Attribute("stop-color", c.Placeholder),
					vdom.Attribute("stop-opacity", "1"),
				),
			),
		),
		vdom.Path(
			vdom.D(pathData),
			vdom.Fill("url(#"+gradientID+")"),
			vdom.Stroke("none"),
		),
	)
}

// Element wraps the star SVG in its host element. gradientID is passed to
// RenderWith.
func Element(size Size, gradientID string) *vdom.VNode {
	return vdom.CustomElement(Tag,
		vdom.Data("size", string(size)),
		RenderWith(size, ThemeColors, gradientID),
	)
}

// Markup renders the star SVG to a string.
func Markup(size Size) (string, error) {
	return render.String(Render(size))
}
