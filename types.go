package quilt

import "errors"

// Kind identifies one of the nine patch pattern variants.
type Kind string

// Pattern kinds supported by the renderers.
const (
	Solid         Kind = "solid"
	Horizontal    Kind = "horizontal"
	Vertical      Kind = "vertical"
	Diagonal      Kind = "diagonal"
	Checkerboard  Kind = "checkerboard"
	QuarterSquare Kind = "quartersquare"
	NinePatch     Kind = "ninepatch"
	Pinwheel      Kind = "pinwheel"
	FlyingGeese   Kind = "flyinggeese"
)

// kinds is the canonical ordering used for random selection.
var kinds = []Kind{
	Solid, Horizontal, Vertical, Diagonal, Checkerboard,
	QuarterSquare, NinePatch, Pinwheel, FlyingGeese,
}

// Kinds returns all pattern kinds in canonical order.
// The returned slice must not be modified by the caller.
func Kinds() []Kind {
	return kinds
}

// colorSlots maps each kind to its fixed color-slot cardinality.
var colorSlots = map[Kind]int{
	Solid:         1,
	Horizontal:    5,
	Vertical:      5,
	Diagonal:      5,
	Checkerboard:  2,
	QuarterSquare: 4,
	NinePatch:     3,
	Pinwheel:      2,
	FlyingGeese:   3,
}

// RequiredColorCount returns the number of color slots a kind requires,
// or 0 if the kind is unknown.
func RequiredColorCount(k Kind) int {
	return colorSlots[k]
}

// Pattern is a single patch: a kind tag, its ordered color slots, and a
// presentation rotation in degrees (0, 90, 180 or 270).
//
// A Pattern is a plain value; copying it with Clone gives an independent
// color slice so placed cells and library entries never share storage.
type Pattern struct {
	Kind     Kind     `json:"type"`
	Colors   []string `json:"colors"`
	Rotation int      `json:"rotation"`
}

// Common errors returned by the quilt package.
var (
	// ErrUnknownKind is returned for a pattern kind outside the nine variants.
	ErrUnknownKind = errors.New("unknown pattern kind")

	// ErrMalformedPattern is returned when a pattern's color count does not
	// match its kind's required count.
	ErrMalformedPattern = errors.New("malformed pattern")

	// ErrBadColor is returned when a color value cannot be parsed.
	ErrBadColor = errors.New("bad color value")

	// ErrBadSnapshot is returned when a session snapshot cannot be decoded.
	ErrBadSnapshot = errors.New("bad snapshot")

	// ErrBadGrid is returned for a grid configuration with rows or cols < 1.
	ErrBadGrid = errors.New("bad grid configuration")

	// ErrIndexRange is returned when a cell or library index is out of range.
	ErrIndexRange = errors.New("index out of range")

	// ErrGridMismatch is returned when a placed-pattern array does not hold
	// exactly rows*cols patterns.
	ErrGridMismatch = errors.New("pattern count does not match grid")
)

// Clone returns a deep copy of the pattern. The copy owns its own color
// slice, so mutating one never affects the other.
func (p Pattern) Clone() Pattern {
	colors := make([]string, len(p.Colors))
	copy(colors, p.Colors)
	return Pattern{Kind: p.Kind, Colors: colors, Rotation: p.Rotation}
}

// Rotated returns the pattern turned a further 90 degrees clockwise,
// wrapping modulo 360. Four rotations return the original orientation.
func (p Pattern) Rotated() Pattern {
	q := p.Clone()
	q.Rotation = (q.Rotation + 90) % 360
	return q
}

// Validate reports whether the pattern is well formed: a known kind, exactly
// the required number of color slots, and a rotation in {0, 90, 180, 270}.
func Validate(p Pattern) error {
	want, ok := colorSlots[p.Kind]
	if !ok {
		return ErrUnknownKind
	}
	if len(p.Colors) != want {
		return ErrMalformedPattern
	}
	switch p.Rotation {
	case 0, 90, 180, 270:
		return nil
	}
	return ErrMalformedPattern
}

// repairFill pads short color arrays during Repair.
const repairFill = "#cccccc"

// Repair coerces a loaded pattern into a valid one: the color array is
// clamped or padded to the kind's required count and the rotation is
// normalised to the nearest lower 90-degree step. An unknown kind cannot be
// repaired and returns ErrUnknownKind.
func Repair(p Pattern) (Pattern, error) {
	want, ok := colorSlots[p.Kind]
	if !ok {
		return Pattern{}, ErrUnknownKind
	}
	q := p.Clone()
	if len(q.Colors) > want {
		q.Colors = q.Colors[:want]
	}
	for len(q.Colors) < want {
		fill := repairFill
		if n := len(q.Colors); n > 0 {
			fill = q.Colors[n-1]
		}
		q.Colors = append(q.Colors, fill)
	}
	r := q.Rotation % 360
	if r < 0 {
		r += 360
	}
	q.Rotation = r - r%90
	return q, nil
}
