package quilt

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"six digit hex", "#e07a5f", color.NRGBA{0xe0, 0x7a, 0x5f, 0xff}, false},
		{"uppercase hex", "#FFAA00", color.NRGBA{0xff, 0xaa, 0x00, 0xff}, false},
		{"short hex", "#f80", color.NRGBA{0xff, 0x88, 0x00, 0xff}, false},
		{"black", "#000000", color.NRGBA{0, 0, 0, 0xff}, false},
		{"surrounding spaces", "  #ffffff ", color.NRGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"hsl red", "hsl(0, 100%, 50%)", color.NRGBA{0xff, 0, 0, 0xff}, false},
		{"hsl green", "hsl(120, 100%, 50%)", color.NRGBA{0, 0xff, 0, 0xff}, false},
		{"hsl blue", "hsl(240, 100%, 50%)", color.NRGBA{0, 0, 0xff, 0xff}, false},
		{"hsl white", "hsl(0, 0%, 100%)", color.NRGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"hsl gray", "hsl(0, 0%, 50%)", color.NRGBA{0x80, 0x80, 0x80, 0xff}, false},
		{"hsl uppercase", "HSL(240, 100%, 50%)", color.NRGBA{0, 0, 0xff, 0xff}, false},

		{"empty", "", color.NRGBA{}, true},
		{"no prefix", "e07a5f", color.NRGBA{}, true},
		{"bad hex length", "#ffff", color.NRGBA{}, true},
		{"bad hex digits", "#zzzzzz", color.NRGBA{}, true},
		{"hsl missing part", "hsl(0, 100%)", color.NRGBA{}, true},
		{"hsl garbage", "hsl(red, a%, b%)", color.NRGBA{}, true},
		{"named color", "cornflowerblue", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrBadColor) {
					t.Errorf("ParseColor(%q) error = %v, want ErrBadColor", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	c := color.NRGBA{0xe0, 0x7a, 0x5f, 0xff}
	if got := FormatColor(c); got != "#e07a5f" {
		t.Errorf("FormatColor = %q, want %q", got, "#e07a5f")
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"#000000", "#ffffff", "#e07a5f", "#123abc"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", s, err)
		}
		if got := FormatColor(c); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestHSLPastelsAreLight(t *testing.T) {
	// Every color the random generator can emit must stay clearly lighter
	// than mid-gray, whatever the hue.
	for h := 0; h < 360; h += 15 {
		c := HSL(float64(h), 0.75, 0.70)
		luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		if luma < 100 {
			t.Errorf("HSL(%d, 75%%, 70%%) = %+v too dark (luma %.0f)", h, c, luma)
		}
	}
}

func TestHSLWrapsHue(t *testing.T) {
	if HSL(360, 1, 0.5) != HSL(0, 1, 0.5) {
		t.Error("hue 360 != hue 0")
	}
	if HSL(-120, 1, 0.5) != HSL(240, 1, 0.5) {
		t.Error("hue -120 != hue 240")
	}
}
