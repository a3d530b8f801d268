// Package quilt is a quilt pattern design engine: procedurally generated
// patch patterns arranged on a logical grid, rendered either as scalable
// SVG for interactive display or as raster images for export.
//
// The placed-pattern array is always stored row-major over the logical grid
// the user configured. When a viewport's aspect disagrees with the grid's,
// the display is a 90-degree rotation of the logical grid, resolved purely
// through index translation (see DisplayFor) — the array itself is never
// reordered.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	session, err := quilt.NewSession(quilt.GridConfig{Rows: 6, Cols: 8}, rng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img, err := quilt.Export(session.Patterns, session.Grid)
package quilt

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"time"

	"github.com/quiltlab/quilt/internal/debug"
	"github.com/quiltlab/quilt/internal/raster"
	"github.com/quiltlab/quilt/internal/style"
)

// DefaultCellSize is the per-cell export resolution in pixels, giving the
// standard cols*100 x rows*100 export image.
const DefaultCellSize = 100

// Option configures rendering and export behavior.
type Option func(*options)

type options struct {
	cellSize int
	viewport *Viewport
	debug    *debug.Session
}

func defaultOptions() *options {
	return &options{cellSize: DefaultCellSize}
}

// WithCellSize sets the per-cell pixel size used by Export.
func WithCellSize(px int) Option {
	return func(o *options) {
		o.cellSize = px
	}
}

// WithViewport makes Export walk the display grid for the given viewport,
// transposing the arrangement when the viewport aspect disagrees with the
// grid aspect. Without this option the logical orientation is exported.
func WithViewport(vp Viewport) Option {
	return func(o *options) {
		v := vp
		o.viewport = &v
	}
}

// WithDebug attaches a debug session that receives export trace events.
func WithDebug(s *debug.Session) Option {
	return func(o *options) {
		o.debug = s
	}
}

// RenderSVG writes the pattern as a standalone SVG element scaled to a
// 100 x 100 viewBox, the form served to the interactive display.
func RenderSVG(w io.Writer, p Pattern) error {
	sp, err := toStylePattern(p)
	if err != nil {
		return err
	}
	return style.WriteSVG(w, sp)
}

// Rasterize renders one pattern into a size x size image, reproducing the
// SVG geometry exactly at the given resolution.
func Rasterize(p Pattern, size int) (*image.RGBA, error) {
	if size < 1 {
		return nil, fmt.Errorf("cell size must be positive, got %d", size)
	}
	sp, err := toStylePattern(p)
	if err != nil {
		return nil, err
	}
	return raster.Rasterize(sp, size)
}

// Export renders the full quilt onto a white canvas, one cell per pattern,
// walking the display grid in row-major order and resolving each display
// cell to its logical pattern through the orientation mapping.
//
// The pattern slice must hold exactly cfg.Rows*cfg.Cols patterns; callers
// holding a possibly stale array regenerate it first (Session does this via
// EnsurePatterns).
func Export(patterns []Pattern, cfg GridConfig, opts ...Option) (*image.RGBA, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(patterns) != cfg.Cells() {
		return nil, fmt.Errorf("%w: have %d patterns, grid wants %d",
			ErrGridMismatch, len(patterns), cfg.Cells())
	}
	if o.cellSize < 1 {
		return nil, fmt.Errorf("cell size must be positive, got %d", o.cellSize)
	}

	disp := IdentityDisplay(cfg)
	if o.viewport != nil {
		disp = DisplayFor(cfg, *o.viewport)
	}

	start := time.Now()
	o.debug.Emit("export", "Start", debug.ExportStartData{
		Rows:       disp.Rows,
		Cols:       disp.Cols,
		CellSize:   o.cellSize,
		Transposed: disp.Transposed,
	})

	img := image.NewRGBA(image.Rect(0, 0, disp.Cols*o.cellSize, disp.Rows*o.cellSize))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for i := 0; i < disp.Cells(); i++ {
		li := disp.DisplayToLogical(i)
		row := i / disp.Cols
		col := i % disp.Cols
		sp, err := toStylePattern(patterns[li])
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", li, err)
		}
		o.debug.Emit("export", "Cell", debug.CellData{
			DisplayIndex: i,
			LogicalIndex: li,
			Row:          row,
			Col:          col,
			Kind:         string(patterns[li].Kind),
			Rotation:     patterns[li].Rotation,
		})
		if err := raster.Draw(img, col*o.cellSize, row*o.cellSize, o.cellSize, sp); err != nil {
			return nil, fmt.Errorf("cell %d: %w", li, err)
		}
	}

	o.debug.Emit("export", "End", debug.ExportEndData{
		Cells:     disp.Cells(),
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
	return img, nil
}

// ExportPNG renders the full quilt and encodes it as PNG.
func ExportPNG(w io.Writer, patterns []Pattern, cfg GridConfig, opts ...Option) error {
	img, err := Export(patterns, cfg, opts...)
	if err != nil {
		return err
	}
	return raster.WritePNG(w, img)
}

// ExportFilename returns the download name for an export taken at t:
// quilt-<unix-ms>.png.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("quilt-%d.png", t.UnixMilli())
}

// toStylePattern validates a public pattern and converts it to the internal
// renderer representation with parsed colors. Malformed patterns are
// rejected here; they never reach a renderer.
func toStylePattern(p Pattern) (style.Pattern, error) {
	if err := Validate(p); err != nil {
		return style.Pattern{}, err
	}
	colors := make([]color.NRGBA, len(p.Colors))
	for i, s := range p.Colors {
		c, err := ParseColor(s)
		if err != nil {
			return style.Pattern{}, err
		}
		colors[i] = c
	}
	return style.Pattern{Kind: string(p.Kind), Colors: colors, Rotation: p.Rotation}, nil
}
