package quilt

import (
	"fmt"
	"math/rand"
)

// NewRandomPattern picks a kind uniformly at random and fills every color
// slot with an independently sampled pastel. Rotation starts at 0.
//
// Each slot draws its own hue, saturation and lightness — a multi-color kind
// never gets one random color repeated across slots.
func NewRandomPattern(rng *rand.Rand) Pattern {
	k := kinds[rng.Intn(len(kinds))]
	colors := make([]string, RequiredColorCount(k))
	for i := range colors {
		colors[i] = randomPastel(rng)
	}
	return Pattern{Kind: k, Colors: colors, Rotation: 0}
}

// randomPastel samples a pastel color: hue uniform over [0,360), saturation
// over [60,90) percent, lightness over [60,80) percent.
func randomPastel(rng *rand.Rand) string {
	h := rng.Intn(360)
	s := 60 + rng.Intn(30)
	l := 60 + rng.Intn(20)
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l)
}
