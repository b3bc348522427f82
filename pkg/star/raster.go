package star

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/vango-dev/rating/pkg/render"
	"github.com/vango-dev/rating/pkg/vdom"
)

// maxScale bounds the device pixel ratio accepted by Rasterize.
const maxScale = 16

// Rasterize paints the star at Pixels(size)*scale pixels square on a
// transparent background. Stars are fully filled, so only c.Filled is
// painted; it must be a concrete color since CSS variables cannot be
// resolved here.
func Rasterize(size Size, c Colors, scale int) (image.Image, error) {
	if scale < 1 || scale > maxScale {
		return nil, fmt.Errorf("star: scale %d out of range 1..%d", scale, maxScale)
	}

	svg, err := render.String(solid(size, c))
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(svg)))
	if err != nil {
		return nil, fmt.Errorf("star: parse svg: %w", err)
	}

	w := Pixels(size) * scale
	icon.SetTarget(0, 0, float64(w), float64(w))

	dst := image.NewRGBA(image.Rect(0, 0, w, w))
	scanner := rasterx.NewScannerGV(w, w, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, w, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// WritePNG rasterizes the star and encodes it as PNG.
func WritePNG(w io.Writer, size Size, c Colors, scale int) error {
	img, err := Rasterize(size, c, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// solid is the star with the filled paint applied directly to the path.
func solid(size Size, c Colors) *vdom.VNode {
	px := Pixels(size)
	return vdom.Svg(
		vdom.Width(px),
		vdom.Height(px),
		vdom.ViewBox(viewBox),
		vdom.Xmlns("http://www.w3.org/2000/svg"),
		vdom.Path(
			vdom.D(pathData),
			vdom.Fill(c.Filled),
		),
	)
}
