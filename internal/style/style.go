// Package style converts patterns into paint descriptions: resolution
// independent fill, stripe and polygon geometry over a 0–100 unit square.
//
// The paint description is the single definition of every kind's geometry.
// The SVG writer in this package and the raster renderer both consume it, so
// the interactive view and the exported image cannot drift apart.
package style

import (
	"fmt"
	"image/color"

	"github.com/quiltlab/quilt/internal/common"
)

// Pattern is the internal, parsed form of a patch: colors are resolved to
// NRGBA and rotation is normalised to {0, 90, 180, 270}.
type Pattern struct {
	Kind     string
	Colors   []color.NRGBA
	Rotation int
}

// Point is a coordinate in the 0–100 unit square.
type Point struct {
	X float64
	Y float64
}

// Polygon is a filled closed region of the unit square.
type Polygon struct {
	Color  color.NRGBA
	Points []Point
}

// Stripe angle constants, CSS convention: 0 points up, increasing clockwise.
// Horizontal stripes run the gradient top to bottom, vertical stripes left
// to right, diagonal stripes bottom-left to top-right.
const (
	AngleHorizontal = 180.0
	AngleVertical   = 90.0
	AngleDiagonal   = 45.0
)

// Stripes describes five equal bands perpendicular to the gradient axis,
// Colors[0] first along the axis.
type Stripes struct {
	Angle  float64
	Colors [common.StripeCount]color.NRGBA
}

// Paint is a renderable description of one pattern. Exactly one of Fill,
// Stripes or Polys is set. Rotation is a presentation transform about the
// square's centre; it is never baked into the geometry.
type Paint struct {
	Fill     *color.NRGBA
	Stripes  *Stripes
	Polys    []Polygon
	Rotation int
}

// Of builds the paint description for a pattern. The color count must match
// the kind exactly; malformed patterns are rejected here so they can never
// reach a renderer.
func Of(p Pattern) (Paint, error) {
	want := common.ColorSlots(p.Kind)
	if want == 0 {
		return Paint{}, fmt.Errorf("%w: %q", common.ErrUnknownKind, p.Kind)
	}
	if len(p.Colors) != want {
		return Paint{}, fmt.Errorf("%w: %s needs %d colors, got %d",
			common.ErrMalformedPattern, p.Kind, want, len(p.Colors))
	}

	paint := Paint{Rotation: p.Rotation}
	switch p.Kind {
	case common.KindSolid:
		c := p.Colors[0]
		paint.Fill = &c
	case common.KindHorizontal:
		paint.Stripes = stripes(AngleHorizontal, p.Colors)
	case common.KindVertical:
		paint.Stripes = stripes(AngleVertical, p.Colors)
	case common.KindDiagonal:
		paint.Stripes = stripes(AngleDiagonal, p.Colors)
	case common.KindCheckerboard:
		paint.Polys = checkerboard(p.Colors)
	case common.KindQuarterSquare:
		paint.Polys = quarterSquare(p.Colors)
	case common.KindNinePatch:
		paint.Polys = ninePatch(p.Colors)
	case common.KindPinwheel:
		paint.Polys = pinwheel(p.Colors)
	case common.KindFlyingGeese:
		paint.Polys = flyingGeese(p.Colors)
	}
	return paint, nil
}

func stripes(angle float64, colors []color.NRGBA) *Stripes {
	s := &Stripes{Angle: angle}
	copy(s.Colors[:], colors)
	return s
}

// checkerboard is a 4x4 sub-grid alternating the two colors by (row+col)%2.
func checkerboard(colors []color.NRGBA) []Polygon {
	const n = 4
	cell := common.CellUnit / n
	polys := make([]Polygon, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			polys = append(polys, quad(
				float64(c)*cell, float64(r)*cell, cell, cell,
				colors[(r+c)%2],
			))
		}
	}
	return polys
}

// quarterSquare is four triangles with apex at the centre and bases on the
// four edges, clockwise from the top edge.
func quarterSquare(colors []color.NRGBA) []Polygon {
	const u = common.CellUnit
	centre := Point{u / 2, u / 2}
	corners := []Point{{0, 0}, {u, 0}, {u, u}, {0, u}}
	polys := make([]Polygon, 4)
	for i := 0; i < 4; i++ {
		polys[i] = Polygon{
			Color:  colors[i],
			Points: []Point{corners[i], corners[(i+1)%4], centre},
		}
	}
	return polys
}

// ninePatch is a 3x3 sub-grid; cell color wraps through the three slots as
// (row*3+col) % 3.
func ninePatch(colors []color.NRGBA) []Polygon {
	const n = 3
	cell := common.CellUnit / n
	polys := make([]Polygon, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			polys = append(polys, quad(
				float64(c)*cell, float64(r)*cell, cell, cell,
				colors[(r*n+c)%len(colors)],
			))
		}
	}
	return polys
}

// pinwheel is eight triangles with apex at the centre, each base spanning a
// corner to an adjacent edge midpoint, alternating the two colors clockwise
// from the top-left corner.
func pinwheel(colors []color.NRGBA) []Polygon {
	const u = common.CellUnit
	centre := Point{u / 2, u / 2}
	perimeter := []Point{
		{0, 0}, {u / 2, 0}, {u, 0}, {u, u / 2},
		{u, u}, {u / 2, u}, {0, u}, {0, u / 2},
	}
	polys := make([]Polygon, 8)
	for i := 0; i < 8; i++ {
		polys[i] = Polygon{
			Color:  colors[i%2],
			Points: []Point{perimeter[i], perimeter[(i+1)%8], centre},
		}
	}
	return polys
}

// flyingGeese is two right-pointing goose triangles, one per half, over four
// background corner triangles.
func flyingGeese(colors []color.NRGBA) []Polygon {
	const u = common.CellUnit
	bg := colors[2]
	return []Polygon{
		// Corner background, clockwise from top-left.
		{Color: bg, Points: []Point{{0, 0}, {u / 2, 0}, {u / 2, u / 2}}},
		{Color: bg, Points: []Point{{u / 2, 0}, {u, 0}, {u, u / 2}}},
		{Color: bg, Points: []Point{{u / 2, u}, {u, u}, {u, u / 2}}},
		{Color: bg, Points: []Point{{0, u}, {u / 2, u}, {u / 2, u / 2}}},
		// Left goose: base on the left edge, apex at the centre.
		{Color: colors[0], Points: []Point{{0, 0}, {u / 2, u / 2}, {0, u}}},
		// Right goose: base on the vertical midline, apex on the right edge.
		{Color: colors[1], Points: []Point{{u / 2, 0}, {u, u / 2}, {u / 2, u}}},
	}
}

func quad(x, y, w, h float64, c color.NRGBA) Polygon {
	return Polygon{
		Color:  c,
		Points: []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}},
	}
}
