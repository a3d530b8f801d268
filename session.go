package quilt

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/quiltlab/quilt/internal/snapshot"
)

// DragSource identifies where an in-progress drag started.
type DragSource int

const (
	// DragNone means no drag is in progress.
	DragNone DragSource = iota
	// DragCell is a drag that started on a placed grid cell.
	DragCell
	// DragLibrary is a drag that started on a library entry.
	DragLibrary
)

// Session owns the designer's mutable state: the placed-pattern array, the
// pattern library, the grid configuration, and the transient drag tracker.
//
// The placed-pattern array is the source of truth, stored row-major over the
// logical grid. It is never reordered for display; callers translate display
// indices through a DisplayGrid before mutating.
//
// A Session is not safe for concurrent use. Hosts that serve several clients
// serialise access externally (see SessionStore).
type Session struct {
	Grid     GridConfig
	Patterns []Pattern
	Library  []Pattern

	rng *rand.Rand

	dragSource DragSource
	dragIndex  int
}

// NewSession creates a session over cfg with freshly generated random
// patterns. A nil rng falls back to a time-seeded one.
func NewSession(cfg GridConfig, rng *rand.Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{Grid: cfg, rng: rng}
	s.Shuffle()
	return s, nil
}

// Shuffle replaces every placed pattern with a fresh random one.
func (s *Session) Shuffle() {
	s.Patterns = make([]Pattern, s.Grid.Cells())
	for i := range s.Patterns {
		s.Patterns[i] = NewRandomPattern(s.rng)
	}
}

// EnsurePatterns regenerates the placed-pattern array if its length no
// longer matches the grid. Mapping indices into a mismatched array is
// undefined, so every operation that walks the grid calls this first.
func (s *Session) EnsurePatterns() {
	if len(s.Patterns) != s.Grid.Cells() {
		s.Shuffle()
	}
}

// SetGrid changes the logical grid shape and regenerates the placed
// patterns. The library is unaffected.
func (s *Session) SetGrid(cfg GridConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.Grid = cfg
	s.Shuffle()
	return nil
}

// SwapCells exchanges the patterns at two logical cell indices.
func (s *Session) SwapCells(a, b int) error {
	s.EnsurePatterns()
	if a < 0 || a >= len(s.Patterns) || b < 0 || b >= len(s.Patterns) {
		return fmt.Errorf("%w: swap %d, %d", ErrIndexRange, a, b)
	}
	s.Patterns[a], s.Patterns[b] = s.Patterns[b], s.Patterns[a]
	return nil
}

// RotateCell turns the pattern at a logical cell index a further 90 degrees.
func (s *Session) RotateCell(i int) error {
	s.EnsurePatterns()
	if i < 0 || i >= len(s.Patterns) {
		return fmt.Errorf("%w: cell %d", ErrIndexRange, i)
	}
	s.Patterns[i] = s.Patterns[i].Rotated()
	return nil
}

// PlaceFromLibrary copies library entry li onto logical cell index. The
// placed copy is independent of the library entry.
func (s *Session) PlaceFromLibrary(li, cell int) error {
	s.EnsurePatterns()
	if li < 0 || li >= len(s.Library) {
		return fmt.Errorf("%w: library %d", ErrIndexRange, li)
	}
	if cell < 0 || cell >= len(s.Patterns) {
		return fmt.Errorf("%w: cell %d", ErrIndexRange, cell)
	}
	s.Patterns[cell] = s.Library[li].Clone()
	return nil
}

// CopyToLibrary appends a deep copy of the pattern at a logical cell index
// to the library.
func (s *Session) CopyToLibrary(cell int) error {
	s.EnsurePatterns()
	if cell < 0 || cell >= len(s.Patterns) {
		return fmt.Errorf("%w: cell %d", ErrIndexRange, cell)
	}
	s.Library = append(s.Library, s.Patterns[cell].Clone())
	return nil
}

// RemoveFromLibrary deletes a library entry. An out-of-range index is a
// no-op, not an error — removing from an empty library must not fail.
func (s *Session) RemoveFromLibrary(i int) {
	if i < 0 || i >= len(s.Library) {
		return
	}
	s.Library = append(s.Library[:i], s.Library[i+1:]...)
}

// BeginDrag records the start of a drag from a grid cell or library entry.
// A drag already in progress is replaced.
func (s *Session) BeginDrag(src DragSource, index int) error {
	s.EnsurePatterns()
	switch src {
	case DragCell:
		if index < 0 || index >= len(s.Patterns) {
			return fmt.Errorf("%w: drag cell %d", ErrIndexRange, index)
		}
	case DragLibrary:
		if index < 0 || index >= len(s.Library) {
			return fmt.Errorf("%w: drag library %d", ErrIndexRange, index)
		}
	default:
		return fmt.Errorf("%w: drag source %d", ErrIndexRange, int(src))
	}
	s.dragSource = src
	s.dragIndex = index
	return nil
}

// Dragging returns the current drag source and index, if any.
func (s *Session) Dragging() (DragSource, int, bool) {
	if s.dragSource == DragNone {
		return DragNone, 0, false
	}
	return s.dragSource, s.dragIndex, true
}

// Drop completes the drag onto a logical cell index: a cell drag swaps the
// two cells, a library drag places a copy. The drag state is cleared on
// every exit path; a drop with no drag in progress or onto an invalid
// target is a no-op.
func (s *Session) Drop(target int) error {
	src, from, ok := s.Dragging()
	s.CancelDrag()
	if !ok {
		return nil
	}
	s.EnsurePatterns()
	if target < 0 || target >= len(s.Patterns) {
		return nil
	}
	switch src {
	case DragCell:
		return s.SwapCells(from, target)
	case DragLibrary:
		if from >= len(s.Library) {
			// Library shrank mid-drag; treat like an empty-library drop.
			return nil
		}
		return s.PlaceFromLibrary(from, target)
	}
	return nil
}

// CancelDrag clears the drag tracker.
func (s *Session) CancelDrag() {
	s.dragSource = DragNone
	s.dragIndex = 0
}

// EncodeSnapshot serialises the session to the snapshot JSON document.
func (s *Session) EncodeSnapshot(now time.Time) ([]byte, error) {
	s.EnsurePatterns()
	return snapshot.Encode(
		toWirePatterns(s.Patterns),
		toWirePatterns(s.Library),
		snapshot.Grid{Rows: s.Grid.Rows, Cols: s.Grid.Cols},
		now,
	)
}

// LoadSnapshot applies a snapshot document to the session. Fields are
// applied independently: a document carrying only a library replaces only
// the library. Grid config is applied before patterns so a snapshot that
// carries both stays consistent; after all fields apply, a placed-pattern
// array that no longer matches the grid is regenerated.
//
// A document that does not parse mutates nothing and returns an error
// wrapping ErrBadSnapshot.
func (s *Session) LoadSnapshot(data []byte) error {
	f, err := snapshot.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if f.Grid != nil {
		cfg := GridConfig{Rows: f.Grid.Rows, Cols: f.Grid.Cols}
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.Grid = cfg
	}
	if f.HasPatterns {
		patterns, err := fromWirePatterns(f.Patterns)
		if err != nil {
			return err
		}
		s.Patterns = patterns
	}
	if f.HasLibrary {
		library, err := fromWirePatterns(f.Library)
		if err != nil {
			return err
		}
		s.Library = library
	}
	s.EnsurePatterns()
	return nil
}

// Export renders the session's quilt for the given viewport. The placed
// array is regenerated first if a grid change left it mismatched.
func (s *Session) Export(vp Viewport, opts ...Option) (*image.RGBA, error) {
	s.EnsurePatterns()
	return Export(s.Patterns, s.Grid, append([]Option{WithViewport(vp)}, opts...)...)
}

func toWirePatterns(patterns []Pattern) []snapshot.Pattern {
	out := make([]snapshot.Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = snapshot.Pattern{
			Type:     string(p.Kind),
			Colors:   append([]string(nil), p.Colors...),
			Rotation: p.Rotation,
		}
	}
	return out
}

// fromWirePatterns converts and repairs loaded patterns. Color counts are
// clamped or padded; a pattern with an unknown kind rejects the field.
func fromWirePatterns(wire []snapshot.Pattern) ([]Pattern, error) {
	out := make([]Pattern, len(wire))
	for i, w := range wire {
		p, err := Repair(Pattern{Kind: Kind(w.Type), Colors: w.Colors, Rotation: w.Rotation})
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}
