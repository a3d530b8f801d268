// Command quilt generates, loads, saves and exports quilt designs.
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quiltlab/quilt"
	"github.com/quiltlab/quilt/internal/debug"
	"github.com/spf13/pflag"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		gridSpec     string
		seed         int64
		loadPath     string
		savePath     string
		outPath      string
		cellSize     int
		viewportSpec string
		svgCell      int
		showVersion  bool
		showHelp     bool
		debugMode    bool
		debugFile    string
		debugPretty  bool
	)

	pflag.StringVarP(&gridSpec, "grid", "g", "4x4", "Logical grid shape as ROWSxCOLS")
	pflag.Int64Var(&seed, "seed", 0, "Random seed for generated patterns (0=time-based)")
	pflag.StringVarP(&loadPath, "load", "l", "", "Load a session snapshot JSON file")
	pflag.StringVarP(&savePath, "save", "s", "", "Save the session snapshot to a JSON file")
	pflag.StringVarP(&outPath, "out", "o", "", "Export PNG path (default: quilt-<timestamp>.png)")
	pflag.IntVarP(&cellSize, "cell-size", "c", quilt.DefaultCellSize, "Export resolution per cell in pixels")
	pflag.StringVar(&viewportSpec, "viewport", "", "Viewport as WIDTHxHEIGHT; orients the exported grid")
	pflag.IntVar(&svgCell, "svg", -1, "Print the SVG of one logical cell to stdout and exit")
	pflag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help message")
	pflag.BoolVar(&debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	pflag.StringVar(&debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	pflag.BoolVar(&debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	pflag.Parse()

	if showHelp {
		printHelp()
		return 0
	}

	if showVersion {
		fmt.Printf("quilt version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	cfg, err := parseGridSpec(gridSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing grid: %v\n", err)
		return 1
	}

	rng := rand.New(rand.NewSource(seed))
	if seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	session, err := quilt.NewSession(cfg, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		return 1
	}

	if loadPath != "" {
		data, err := os.ReadFile(loadPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading snapshot: %v\n", err)
			return 1
		}
		if err := session.LoadSnapshot(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
			return 1
		}
	}

	// Setup debug if enabled
	var debugSession *debug.Session
	if debugMode || debugFile != "" || os.Getenv("QUILT_DEBUG") == "1" {
		debug.SetEnabled(true)
		debug.InitFromEnv()

		var output io.Writer = os.Stderr
		if debugFile != "" {
			file, err := os.Create(debugFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating debug file: %v\n", err)
				return 1
			}
			defer file.Close()
			output = file
		}

		var sink debug.Sink
		if debugPretty || os.Getenv("QUILT_DEBUG_PRETTY") == "1" {
			sink = debug.NewPrettySink(output)
		} else {
			sink = debug.NewJSONSink(output)
		}

		debugSession = debug.NewSession(sink)
		if debugSession != nil {
			defer debugSession.Close()
		}
	}

	if svgCell >= 0 {
		if svgCell >= len(session.Patterns) {
			fmt.Fprintf(os.Stderr, "Error: cell %d out of range (grid has %d cells)\n",
				svgCell, len(session.Patterns))
			return 1
		}
		if err := quilt.RenderSVG(os.Stdout, session.Patterns[svgCell]); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering SVG: %v\n", err)
			return 1
		}
		return 0
	}

	if savePath != "" {
		data, err := session.EncodeSnapshot(time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
			return 1
		}
		if err := os.WriteFile(savePath, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			return 1
		}
		fmt.Printf("Saved snapshot to %s\n", savePath)
		if outPath == "" {
			return 0
		}
	}

	exportOpts := []quilt.Option{
		quilt.WithCellSize(cellSize),
		quilt.WithDebug(debugSession),
	}
	if viewportSpec != "" {
		w, h, err := parseDims(viewportSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing viewport: %v\n", err)
			return 1
		}
		exportOpts = append(exportOpts, quilt.WithViewport(quilt.Viewport{Width: w, Height: h}))
	}

	if outPath == "" {
		outPath = quilt.ExportFilename(time.Now())
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		return 1
	}
	defer out.Close()

	if err := quilt.ExportPNG(out, session.Patterns, session.Grid, exportOpts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return 1
	}
	fmt.Printf("Exported %s\n", outPath)
	return 0
}

// parseGridSpec parses "ROWSxCOLS" (e.g. "6x8") into a grid configuration.
func parseGridSpec(s string) (quilt.GridConfig, error) {
	rows, cols, err := parseDims(s)
	if err != nil {
		return quilt.GridConfig{}, err
	}
	cfg := quilt.GridConfig{Rows: rows, Cols: cols}
	if err := cfg.Validate(); err != nil {
		return quilt.GridConfig{}, fmt.Errorf("%w: %q", err, s)
	}
	return cfg, nil
}

// parseDims parses "AxB" into two positive integers. The separator accepts
// both 'x' and 'X'.
func parseDims(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid dimensions %q, want AxB", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dimensions %q: %v", s, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dimensions %q: %v", s, err)
	}
	if a < 1 || b < 1 {
		return 0, 0, fmt.Errorf("dimensions must be positive, got %q", s)
	}
	return a, b, nil
}

func printHelp() {
	fmt.Println("quilt - quilt design generator and exporter")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  quilt [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	pflag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  quilt -g 6x8 --seed 1 -o design.png")
	fmt.Println("  quilt -g 6x8 -s design.json")
	fmt.Println("  quilt -l design.json --viewport 600x800 -o design.png")
	fmt.Println("  quilt -l design.json --svg 0")
}
