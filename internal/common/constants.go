// Package common provides shared constants for internal packages.
// These constants must match the public API in the quilt package.
package common

import "errors"

// Pattern kind tags (must match the Kind constants in the quilt package).
const (
	KindSolid         = "solid"
	KindHorizontal    = "horizontal"
	KindVertical      = "vertical"
	KindDiagonal      = "diagonal"
	KindCheckerboard  = "checkerboard"
	KindQuarterSquare = "quartersquare"
	KindNinePatch     = "ninepatch"
	KindPinwheel      = "pinwheel"
	KindFlyingGeese   = "flyinggeese"
)

// CellUnit is the side length of the unit square all paint geometry is
// expressed in. Renderers scale it to the target cell size.
const CellUnit = 100.0

// StripeCount is the number of bands in the striped kinds.
const StripeCount = 5

// ColorSlots returns the color-slot cardinality for a kind, or 0 for an
// unknown kind (must match RequiredColorCount in the quilt package).
func ColorSlots(kind string) int {
	switch kind {
	case KindSolid:
		return 1
	case KindHorizontal, KindVertical, KindDiagonal:
		return 5
	case KindCheckerboard, KindPinwheel:
		return 2
	case KindNinePatch, KindFlyingGeese:
		return 3
	case KindQuarterSquare:
		return 4
	}
	return 0
}

// Common errors (must match public API in the quilt package).
var (
	// ErrUnknownKind is returned for a kind outside the nine variants.
	ErrUnknownKind = errors.New("unknown pattern kind")
	// ErrMalformedPattern is returned when colors do not match the kind.
	ErrMalformedPattern = errors.New("malformed pattern")
)
