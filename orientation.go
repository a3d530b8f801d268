package quilt

// GridConfig is the logical, orientation-independent grid shape chosen by
// the user. The placed-pattern array is always stored row-major over this
// shape regardless of how the grid is displayed.
type GridConfig struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Validate reports whether the configuration is usable (rows, cols >= 1).
func (g GridConfig) Validate() error {
	if g.Rows < 1 || g.Cols < 1 {
		return ErrBadGrid
	}
	return nil
}

// Cells returns the number of cells in the grid.
func (g GridConfig) Cells() int {
	return g.Rows * g.Cols
}

// Viewport is the size of the area the grid is displayed in. Only its
// aspect matters to the orientation mapper.
type Viewport struct {
	Width  int
	Height int
}

// Portrait reports whether the viewport is strictly taller than wide.
func (v Viewport) Portrait() bool {
	return v.Height > v.Width
}

// DisplayGrid describes how a logical grid is presented in a viewport and
// translates between display and logical cell indices. It holds no state of
// its own — recompute it whenever the viewport or grid config changes.
type DisplayGrid struct {
	// Rows and Cols are the displayed shape (swapped from the logical shape
	// when Transposed).
	Rows int
	Cols int

	// Transposed is set when the display is the 90-degree rotation of the
	// logical grid.
	Transposed bool

	cfg GridConfig
}

// DisplayFor computes the display arrangement of cfg inside vp.
//
// The grid transposes only when the configured aspect disagrees with the
// viewport aspect: a wide grid in a portrait viewport, or a tall grid in a
// landscape viewport. A square grid never transposes.
func DisplayFor(cfg GridConfig, vp Viewport) DisplayGrid {
	portrait := vp.Portrait()
	transposed := (portrait && cfg.Cols > cfg.Rows) || (!portrait && cfg.Rows > cfg.Cols)
	d := DisplayGrid{Rows: cfg.Rows, Cols: cfg.Cols, Transposed: transposed, cfg: cfg}
	if transposed {
		d.Rows, d.Cols = cfg.Cols, cfg.Rows
	}
	return d
}

// IdentityDisplay returns the display arrangement that shows the grid in its
// logical orientation, regardless of viewport.
func IdentityDisplay(cfg GridConfig) DisplayGrid {
	return DisplayGrid{Rows: cfg.Rows, Cols: cfg.Cols, cfg: cfg}
}

// Cells returns the number of displayed cells, always equal to the logical
// cell count.
func (d DisplayGrid) Cells() int {
	return d.Rows * d.Cols
}

// DisplayToLogical maps a linear display index to its logical index.
//
// When transposed the display is a clockwise 90-degree rotation of the
// logical grid, so display cell (row, col) reads logical cell
// (row=col, col=displayRows-1-row). Otherwise the mapping is the identity.
func (d DisplayGrid) DisplayToLogical(i int) int {
	if !d.Transposed {
		return i
	}
	row := i / d.Cols
	col := i % d.Cols
	logicalRow := col
	logicalCol := d.Rows - 1 - row
	return logicalRow*d.cfg.Cols + logicalCol
}

// LogicalToDisplay is the inverse of DisplayToLogical.
func (d DisplayGrid) LogicalToDisplay(i int) int {
	if !d.Transposed {
		return i
	}
	logicalRow := i / d.cfg.Cols
	logicalCol := i % d.cfg.Cols
	row := d.Rows - 1 - logicalCol
	col := logicalRow
	return row*d.Cols + col
}
