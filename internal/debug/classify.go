package debug

// Pattern kind tags (matching internal/common/constants.go).
const (
	kindSolid         = "solid"
	kindHorizontal    = "horizontal"
	kindVertical      = "vertical"
	kindDiagonal      = "diagonal"
	kindCheckerboard  = "checkerboard"
	kindQuarterSquare = "quartersquare"
	kindNinePatch     = "ninepatch"
	kindPinwheel      = "pinwheel"
	kindFlyingGeese   = "flyinggeese"
)

// DescribeKind returns a short human-readable description of a pattern
// kind's paint class, for pretty debug output.
func DescribeKind(kind string) string {
	switch kind {
	case kindSolid:
		return "flat fill"
	case kindHorizontal:
		return "5 bands, top to bottom"
	case kindVertical:
		return "5 bands, left to right"
	case kindDiagonal:
		return "5 bands at 45 degrees"
	case kindCheckerboard:
		return "4x4 alternating sub-grid"
	case kindQuarterSquare:
		return "4 triangles, apex at centre"
	case kindNinePatch:
		return "3x3 wrapping sub-grid"
	case kindPinwheel:
		return "8 triangles, apex at centre"
	case kindFlyingGeese:
		return "2 geese over 4 corners"
	}
	return "unknown"
}

// ClassifyPaint groups a kind by how its renderer paints it: a flat fill,
// banded stripes, or pieced polygons.
func ClassifyPaint(kind string) string {
	switch kind {
	case kindSolid:
		return "fill"
	case kindHorizontal, kindVertical, kindDiagonal:
		return "stripes"
	case kindCheckerboard, kindQuarterSquare, kindNinePatch, kindPinwheel, kindFlyingGeese:
		return "pieced"
	}
	return "unknown"
}
