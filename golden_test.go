package quilt

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// goldenMetadata is the YAML front matter in golden files.
// This should match the struct in cmd/generate-goldens.
type goldenMetadata struct {
	Type           string   `yaml:"type"`
	Colors         []string `yaml:"colors"`
	Rotation       int      `yaml:"rotation"`
	Generated      string   `yaml:"generated"`
	Generator      string   `yaml:"generator"`
	ChecksumSHA256 string   `yaml:"checksum_sha256"`
}

// parseGoldenFile extracts the front matter and the fenced SVG block from a
// golden markdown file.
func parseGoldenFile(path string) (*goldenMetadata, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open golden file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	var frontMatter []string
	inFrontMatter := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			if !inFrontMatter {
				inFrontMatter = true
				continue
			}
			break
		}
		if inFrontMatter {
			frontMatter = append(frontMatter, line)
		}
	}

	metadata := &goldenMetadata{}
	if err := yaml.Unmarshal([]byte(strings.Join(frontMatter, "\n")), metadata); err != nil {
		return nil, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	var svgLines []string
	inCodeBlock := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "```xml") {
			inCodeBlock = true
			continue
		}
		if strings.HasPrefix(line, "```") && inCodeBlock {
			break
		}
		if inCodeBlock {
			svgLines = append(svgLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("error reading golden file: %w", err)
	}

	return metadata, strings.Join(svgLines, "\n"), nil
}

func TestGoldenFiles(t *testing.T) {
	goldenDir := filepath.Join("testdata", "goldens")
	if _, err := os.Stat(goldenDir); os.IsNotExist(err) {
		t.Skip("Golden files not found. Run cmd/generate-goldens to generate them.")
	}

	var goldenFiles []string
	err := filepath.WalkDir(goldenDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			goldenFiles = append(goldenFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk golden directory: %v", err)
	}
	if len(goldenFiles) == 0 {
		t.Skip("No golden files found")
	}

	for _, goldenFile := range goldenFiles {
		name := strings.TrimSuffix(filepath.Base(goldenFile), ".md")
		t.Run(name, func(t *testing.T) {
			metadata, want, err := parseGoldenFile(goldenFile)
			if err != nil {
				t.Fatalf("Failed to parse golden file: %v", err)
			}

			pattern := Pattern{
				Kind:     Kind(metadata.Type),
				Colors:   metadata.Colors,
				Rotation: metadata.Rotation,
			}
			var buf strings.Builder
			if err := RenderSVG(&buf, pattern); err != nil {
				t.Fatalf("RenderSVG(%s) error: %v", metadata.Type, err)
			}
			got := buf.String()

			if metadata.ChecksumSHA256 != "" {
				sum := fmt.Sprintf("%x", sha256.Sum256([]byte(got)))
				if sum != metadata.ChecksumSHA256 {
					t.Errorf("SVG checksum = %s, golden has %s", sum, metadata.ChecksumSHA256)
				}
			}

			got = strings.TrimSuffix(got, "\n")
			want = strings.TrimSuffix(want, "\n")
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("SVG mismatch for %s (-want +got):\n%s", name, diff)
			}
		})
	}
}
