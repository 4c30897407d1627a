package editor

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Sizes is the font-size menu. Relative sizes stored in spans are
// Points[i] / Base.
type Sizes struct {
	Points  []fixed.Int26_6
	Base    fixed.Int26_6
	Default int // index selected for unsized text
}

// DefaultSizes offers 10 to 48 points around a 14 point base.
var DefaultSizes = Sizes{
	Points: []fixed.Int26_6{
		fixed.I(10), fixed.I(14), fixed.I(16), fixed.I(18),
		fixed.I(24), fixed.I(32), fixed.I(48),
	},
	Base:    fixed.I(14),
	Default: 1,
}

// Len returns the number of menu entries.
func (s Sizes) Len() int {
	return len(s.Points)
}

// Valid reports whether i names a menu entry.
func (s Sizes) Valid(i int) bool {
	return i >= 0 && i < len(s.Points)
}

// Relative returns the span multiplier for entry i, or 1 when i is out
// of range.
func (s Sizes) Relative(i int) float64 {
	if !s.Valid(i) || s.Base == 0 {
		return 1
	}
	return float64(s.Points[i]) / float64(s.Base)
}

// Index finds the entry whose whole point size matches rel * Base.
func (s Sizes) Index(rel float64) (int, bool) {
	abs := fixed.Int26_6(math.Round(rel * float64(s.Base)))
	for i, p := range s.Points {
		if p.Round() == abs.Round() {
			return i, true
		}
	}
	return -1, false
}

// sameSize compares relative sizes that went through float conversion.
func sameSize(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
