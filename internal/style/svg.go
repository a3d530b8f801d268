package style

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/quiltlab/quilt/internal/common"
)

// WriteSVG renders the pattern as a standalone SVG element over a
// 0 0 100 100 viewBox. The element scales to any display size; the
// pattern's rotation is applied as a transform on the outer group, matching
// how the raster renderer pre-transforms its coordinates.
func WriteSVG(w io.Writer, p Pattern) error {
	paint, err := Of(p)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` + "\n")
	fmt.Fprintf(&b, "<g transform=\"rotate(%d 50 50)\">\n", paint.Rotation)

	switch {
	case paint.Fill != nil:
		writeRect(&b, 0, 0, common.CellUnit, common.CellUnit, *paint.Fill)
	case paint.Stripes != nil:
		writeStripes(&b, paint.Stripes)
	default:
		for _, poly := range paint.Polys {
			writePolygon(&b, poly)
		}
	}

	b.WriteString("</g>\n</svg>\n")
	_, err = io.WriteString(w, b.String())
	return err
}

func writeStripes(b *strings.Builder, s *Stripes) {
	const u = common.CellUnit
	band := u / common.StripeCount
	switch s.Angle {
	case AngleHorizontal:
		// Gradient axis points down: first color at the top.
		for i, c := range s.Colors {
			writeRect(b, 0, float64(i)*band, u, band, c)
		}
	case AngleVertical:
		// Gradient axis points right: first color at the left.
		for i, c := range s.Colors {
			writeRect(b, float64(i)*band, 0, band, u, c)
		}
	case AngleDiagonal:
		// Bands perpendicular to the 45-degree axis. The band run is the
		// square's diagonal, so each band is u*sqrt(2)/5 wide, drawn in a
		// frame rotated -45 degrees and clipped to the unrotated square.
		// The leftmost band lands at the bottom-left corner, where a CSS
		// 45-degree gradient starts.
		run := u * math.Sqrt2
		width := run / common.StripeCount
		b.WriteString(`<clipPath id="cell"><rect x="0" y="0" width="100" height="100"/></clipPath>` + "\n")
		b.WriteString(`<g clip-path="url(#cell)">` + "\n")
		b.WriteString(`<g transform="rotate(-45 50 50)">` + "\n")
		for i, c := range s.Colors {
			x := u/2 - run/2 + float64(i)*width
			writeRect(b, x, u/2-run/2, width, run, c)
		}
		b.WriteString("</g>\n</g>\n")
	}
}

func writeRect(b *strings.Builder, x, y, w, h float64, c color.NRGBA) {
	fmt.Fprintf(b, "<rect x=%q y=%q width=%q height=%q fill=%q/>\n",
		num(x), num(y), num(w), num(h), hexColor(c))
}

func writePolygon(b *strings.Builder, poly Polygon) {
	pts := make([]string, len(poly.Points))
	for i, pt := range poly.Points {
		pts[i] = num(pt.X) + "," + num(pt.Y)
	}
	fmt.Fprintf(b, "<polygon points=%q fill=%q/>\n",
		strings.Join(pts, " "), hexColor(poly.Color))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
