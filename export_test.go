package quilt

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
	"time"
)

func solid(hex string) Pattern {
	return Pattern{Kind: Solid, Colors: []string{hex}}
}

func TestExportDimensions(t *testing.T) {
	s := newTestSession(t, 3, 5)
	img, err := Export(s.Patterns, s.Grid)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 500 || got.Dy() != 300 {
		t.Errorf("export size = %dx%d, want 500x300", got.Dx(), got.Dy())
	}
}

func TestExportCellSize(t *testing.T) {
	s := newTestSession(t, 2, 2)
	img, err := Export(s.Patterns, s.Grid, WithCellSize(40))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 80 || got.Dy() != 80 {
		t.Errorf("export size = %dx%d, want 80x80", got.Dx(), got.Dy())
	}
}

func TestExportCellPlacement(t *testing.T) {
	// A 1x2 grid of known solids: red on the left, blue on the right.
	patterns := []Pattern{solid("#ff0000"), solid("#0000ff")}
	cfg := GridConfig{Rows: 1, Cols: 2}

	img, err := Export(patterns, cfg)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := img.At(50, 50); got != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("left cell = %+v, want red", got)
	}
	if got := img.At(150, 50); got != (color.RGBA{0, 0, 0xff, 0xff}) {
		t.Errorf("right cell = %+v, want blue", got)
	}
}

func TestExportTransposedPlacement(t *testing.T) {
	// The same 1x2 grid in a portrait viewport rotates clockwise: the last
	// logical column becomes the top display row, so blue lands on top.
	patterns := []Pattern{solid("#ff0000"), solid("#0000ff")}
	cfg := GridConfig{Rows: 1, Cols: 2}

	img, err := Export(patterns, cfg, WithViewport(Viewport{Width: 300, Height: 400}))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 100 || got.Dy() != 200 {
		t.Fatalf("export size = %dx%d, want 100x200", got.Dx(), got.Dy())
	}
	if got := img.At(50, 50); got != (color.RGBA{0, 0, 0xff, 0xff}) {
		t.Errorf("top cell = %+v, want blue", got)
	}
	if got := img.At(50, 150); got != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("bottom cell = %+v, want red", got)
	}
}

func TestExportErrors(t *testing.T) {
	patterns := []Pattern{solid("#fff"), solid("#000")}
	cfg := GridConfig{Rows: 1, Cols: 2}

	if _, err := Export(patterns, GridConfig{Rows: 0, Cols: 2}); !errors.Is(err, ErrBadGrid) {
		t.Errorf("bad grid error = %v, want ErrBadGrid", err)
	}
	if _, err := Export(patterns[:1], cfg); !errors.Is(err, ErrGridMismatch) {
		t.Errorf("mismatch error = %v, want ErrGridMismatch", err)
	}
	if _, err := Export(patterns, cfg, WithCellSize(0)); err == nil {
		t.Error("zero cell size accepted")
	}

	bad := []Pattern{solid("#fff"), {Kind: "paisley", Colors: []string{"#fff"}}}
	if _, err := Export(bad, cfg); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind error = %v, want ErrUnknownKind", err)
	}
}

func TestExportPNGSignature(t *testing.T) {
	s := newTestSession(t, 2, 2)
	var buf bytes.Buffer
	if err := ExportPNG(&buf, s.Patterns, s.Grid, WithCellSize(10)); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	want := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(buf.Bytes(), want) {
		t.Errorf("output does not start with PNG signature: % x", buf.Bytes()[:8])
	}
}

func TestExportFilename(t *testing.T) {
	ts := time.UnixMilli(1756000000000)
	if got := ExportFilename(ts); got != "quilt-1756000000000.png" {
		t.Errorf("ExportFilename = %q, want quilt-1756000000000.png", got)
	}
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize(solid("#00ff00"), 64)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 64 || got.Dy() != 64 {
		t.Errorf("size = %dx%d, want 64x64", got.Dx(), got.Dy())
	}
	if got := img.At(32, 32); got != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Errorf("centre = %+v, want green", got)
	}

	if _, err := Rasterize(solid("#00ff00"), 0); err == nil {
		t.Error("zero size accepted")
	}
	if _, err := Rasterize(Pattern{Kind: Checkerboard, Colors: []string{"#fff"}}, 32); !errors.Is(err, ErrMalformedPattern) {
		t.Errorf("malformed pattern error = %v, want ErrMalformedPattern", err)
	}
}

func TestRenderSVGRejectsMalformed(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSVG(&buf, Pattern{Kind: Solid, Colors: []string{"not-a-color"}})
	if !errors.Is(err, ErrBadColor) {
		t.Errorf("RenderSVG error = %v, want ErrBadColor", err)
	}
	if buf.Len() != 0 {
		t.Errorf("RenderSVG wrote %d bytes before failing", buf.Len())
	}
}
