package main

import (
	"testing"

	"github.com/quiltlab/quilt"
)

func TestParseGridSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    quilt.GridConfig
		wantErr bool
	}{
		{"simple", "6x8", quilt.GridConfig{Rows: 6, Cols: 8}, false},
		{"square", "4x4", quilt.GridConfig{Rows: 4, Cols: 4}, false},
		{"single cell", "1x1", quilt.GridConfig{Rows: 1, Cols: 1}, false},
		{"uppercase separator", "3X5", quilt.GridConfig{Rows: 3, Cols: 5}, false},
		{"spaces", " 2 x 3 ", quilt.GridConfig{Rows: 2, Cols: 3}, false},

		{"empty", "", quilt.GridConfig{}, true},
		{"missing separator", "68", quilt.GridConfig{}, true},
		{"missing cols", "6x", quilt.GridConfig{}, true},
		{"zero rows", "0x8", quilt.GridConfig{}, true},
		{"negative cols", "6x-8", quilt.GridConfig{}, true},
		{"not a number", "sixxeight", quilt.GridConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGridSpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseGridSpec(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("parseGridSpec(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDims(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantA   int
		wantB   int
		wantErr bool
	}{
		{"viewport landscape", "800x600", 800, 600, false},
		{"viewport portrait", "600x800", 600, 800, false},
		{"zero width", "0x600", 0, 0, true},
		{"garbage", "wide", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, err := parseDims(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDims(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if a != tt.wantA || b != tt.wantB {
				t.Errorf("parseDims(%q) = %d, %d, want %d, %d", tt.input, a, b, tt.wantA, tt.wantB)
			}
		})
	}
}
