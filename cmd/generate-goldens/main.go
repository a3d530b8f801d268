// Command generate-goldens regenerates the SVG golden files used by the
// rendering tests. Each golden is a markdown file with YAML front matter
// describing the pattern and a fenced code block holding the expected SVG.
package main

import (
	"bytes"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quiltlab/quilt"
)

// goldenMetadata is the YAML front matter in golden files.
// This should match the struct in golden_test.go.
type goldenMetadata struct {
	Type           string   `yaml:"type"`
	Colors         []string `yaml:"colors"`
	Rotation       int      `yaml:"rotation"`
	Generated      string   `yaml:"generated"`
	Generator      string   `yaml:"generator"`
	ChecksumSHA256 string   `yaml:"checksum_sha256"`
}

var outDir = flag.String("out", "testdata/goldens", "Output directory")

// stripePalette is shared by the three stripe kinds so their goldens differ
// only in orientation.
var stripePalette = []string{"#264653", "#2a9d8f", "#e9c46a", "#f4a261", "#e76f51"}

// goldenPatterns is one deterministic pattern per kind, with a spread of
// rotations across the set.
var goldenPatterns = []quilt.Pattern{
	{Kind: quilt.Solid, Colors: []string{"#e07a5f"}, Rotation: 0},
	{Kind: quilt.Horizontal, Colors: stripePalette, Rotation: 0},
	{Kind: quilt.Vertical, Colors: stripePalette, Rotation: 90},
	{Kind: quilt.Diagonal, Colors: stripePalette, Rotation: 0},
	{Kind: quilt.Checkerboard, Colors: []string{"#ff0000", "#0000ff"}, Rotation: 0},
	{Kind: quilt.QuarterSquare, Colors: []string{"#e07a5f", "#3d405b", "#81b29a", "#f2cc8f"}, Rotation: 0},
	{Kind: quilt.NinePatch, Colors: []string{"#006d77", "#83c5be", "#edf6f9"}, Rotation: 90},
	{Kind: quilt.Pinwheel, Colors: []string{"#9b5de5", "#fee440"}, Rotation: 270},
	{Kind: quilt.FlyingGeese, Colors: []string{"#0081a7", "#00afb9", "#fdfcdc"}, Rotation: 180},
}

func main() {
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory %s: %v", *outDir, err)
	}

	for _, p := range goldenPatterns {
		if err := generateGoldenFile(p); err != nil {
			log.Fatalf("Failed to generate golden file: %v", err)
		}
	}

	log.Println("Golden file generation complete")
}

func generateGoldenFile(p quilt.Pattern) error {
	outFile := filepath.Join(*outDir, string(p.Kind)+".md")
	log.Printf("Generating %s", outFile)

	var svg bytes.Buffer
	if err := quilt.RenderSVG(&svg, p); err != nil {
		return fmt.Errorf("rendering %s: %w", p.Kind, err)
	}

	metadata := goldenMetadata{
		Type:           string(p.Kind),
		Colors:         p.Colors,
		Rotation:       p.Rotation,
		Generated:      time.Now().UTC().Format("2006-01-02"),
		Generator:      "generate-goldens",
		ChecksumSHA256: fmt.Sprintf("%x", sha256.Sum256(svg.Bytes())),
	}

	yamlData, err := yaml.Marshal(&metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	buf.WriteString("```xml\n")
	buf.Write(svg.Bytes())
	buf.WriteString("```\n")

	if err := os.WriteFile(outFile, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", outFile, err)
	}
	return nil
}
