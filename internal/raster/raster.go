// Package raster renders patterns to pixels for export.
//
// Geometry comes from the style package's paint descriptions, scaled from
// the unit square to the target cell size, so raster output always agrees
// with the interactive SVG view. All boundary coordinates stay fractional
// until the rasterizer commits pixels; adjacent bands and sub-cells share
// exact boundaries with no gaps or overlaps.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/quiltlab/quilt/internal/common"
	"github.com/quiltlab/quilt/internal/style"
)

// Rasterize renders a single pattern into a fresh size x size RGBA image.
func Rasterize(p style.Pattern, size int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if err := Draw(img, 0, 0, size, p); err != nil {
		return nil, err
	}
	return img, nil
}

// Draw renders one pattern cell into dst with its top-left corner at (x, y).
// The pattern's rotation is applied as a coordinate pre-transform about the
// cell centre, so rotated raster output matches the rotated SVG view.
func Draw(dst draw.Image, x, y, size int, p style.Pattern) error {
	paint, err := style.Of(p)
	if err != nil {
		return err
	}
	rot := rotation(paint.Rotation, float64(size)/2)

	switch {
	case paint.Fill != nil:
		draw.Draw(dst, image.Rect(x, y, x+size, y+size),
			image.NewUniform(*paint.Fill), image.Point{}, draw.Src)
	case paint.Stripes != nil:
		drawStripes(dst, x, y, size, paint.Stripes, rot)
	default:
		z := vector.NewRasterizer(size, size)
		scale := float64(size) / common.CellUnit
		for _, poly := range paint.Polys {
			pts := make([][2]float64, len(poly.Points))
			for i, pt := range poly.Points {
				pts[i][0], pts[i][1] = rot.apply(pt.X*scale, pt.Y*scale)
			}
			fillPolygon(z, dst, x, y, size, pts, poly.Color)
		}
	}
	return nil
}

// WritePNG encodes an image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// drawStripes fills the five bands of a striped paint. Horizontal and
// vertical bands divide the cell directly; diagonal bands are computed in a
// frame rotated -45 degrees about the cell centre with a band width of
// size*sqrt(2)/5, clipped to the cell by the rasterizer bounds. That exactly
// reproduces a CSS 45-degree hard-stop gradient, whose run is the square's
// diagonal.
func drawStripes(dst draw.Image, x, y, size int, s *style.Stripes, rot xform) {
	z := vector.NewRasterizer(size, size)
	fsize := float64(size)
	band := fsize / common.StripeCount

	for i, c := range s.Colors {
		var pts [][2]float64
		switch s.Angle {
		case style.AngleHorizontal:
			top := float64(i) * band
			pts = [][2]float64{{0, top}, {fsize, top}, {fsize, top + band}, {0, top + band}}
		case style.AngleVertical:
			left := float64(i) * band
			pts = [][2]float64{{left, 0}, {left + band, 0}, {left + band, fsize}, {left, fsize}}
		case style.AngleDiagonal:
			run := fsize * math.Sqrt2
			width := run / common.StripeCount
			x0 := -run/2 + float64(i)*width
			pts = [][2]float64{
				{x0, -run / 2}, {x0 + width, -run / 2},
				{x0 + width, run / 2}, {x0, run / 2},
			}
			for j, pt := range pts {
				// Rotate the band frame -45 degrees, then recentre.
				rx := pt[0]*diagCos + pt[1]*diagSin
				ry := -pt[0]*diagSin + pt[1]*diagCos
				pts[j][0] = rx + fsize/2
				pts[j][1] = ry + fsize/2
			}
		}
		for j, pt := range pts {
			pts[j][0], pts[j][1] = rot.apply(pt[0], pt[1])
		}
		fillPolygon(z, dst, x, y, size, pts, c)
	}
}

// cos and sin of 45 degrees, for the diagonal band frame.
const (
	diagCos = math.Sqrt2 / 2
	diagSin = math.Sqrt2 / 2
)

// fillPolygon rasterizes one filled polygon given in cell-local coordinates
// into dst at offset (x, y). The rasterizer clips to the cell bounds.
func fillPolygon(z *vector.Rasterizer, dst draw.Image, x, y, size int, pts [][2]float64, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	z.Reset(size, size)
	z.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, pt := range pts[1:] {
		z.LineTo(float32(pt[0]), float32(pt[1]))
	}
	z.ClosePath()
	z.Draw(dst, image.Rect(x, y, x+size, y+size), image.NewUniform(c), image.Point{})
}

// xform is an exact rotation about a cell centre. Sines and cosines come
// from a table, so quarter-turn rotations map coordinates exactly.
type xform struct {
	sin, cos float64
	centre   float64
}

func rotation(deg int, centre float64) xform {
	t := xform{centre: centre}
	switch deg {
	case 90:
		t.sin, t.cos = 1, 0
	case 180:
		t.sin, t.cos = 0, -1
	case 270:
		t.sin, t.cos = -1, 0
	default:
		t.sin, t.cos = 0, 1
	}
	return t
}

// apply rotates (x, y) clockwise about the centre.
func (t xform) apply(x, y float64) (float64, float64) {
	dx := x - t.centre
	dy := y - t.centre
	return t.centre + dx*t.cos - dy*t.sin, t.centre + dx*t.sin + dy*t.cos
}
