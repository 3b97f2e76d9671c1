package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Lerp linearly interpolates from a toward b by the fraction t.
// With 0 < t < 1 and repeated calls, the result approaches b geometrically and never overshoots it.
//
// Parameters:
//   - a: the starting value
//   - b: the target value
//   - t: the interpolation fraction
//
// Returns:
//   - float64: a + (b-a)*t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: the clamped value
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MapLinear remaps x from the range [a1, a2] to the range [b1, b2] without clamping.
//
// Parameters:
//   - x: the value to remap
//   - a1, a2: the source range
//   - b1, b2: the destination range
//
// Returns:
//   - float64: the remapped value
func MapLinear(x, a1, a2, b1, b2 float64) float64 {
	return b1 + (x-a1)*(b2-b1)/(a2-a1)
}

// WrapAngle reduces an angle in radians to the range [0, 2π).
// Accumulating rotations grow without bound; consumers that need an absolute orientation wrap them here.
//
// Parameters:
//   - a: angle in radians
//
// Returns:
//   - float64: the equivalent angle in [0, 2π)
func WrapAngle(a float64) float64 {
	w := math.Mod(a, 2*math.Pi)
	if w < 0 {
		w += 2 * math.Pi
	}
	return w
}

// EaseOutCubic maps a linear progress value in [0, 1] to a decelerating curve.
//
// Parameters:
//   - t: linear progress, clamped to [0, 1]
//
// Returns:
//   - float64: eased progress
func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	u := 1 - t
	return 1 - u*u*u
}

// ParseHexColor parses a CSS-style hex color ("#rgb" or "#rrggbb") into linear-agnostic RGB floats in [0, 1].
//
// Parameters:
//   - s: the hex color string, with or without the leading '#'
//
// Returns:
//   - [3]float32: the color components
//   - error: error if the string is not a valid hex color
func ParseHexColor(s string) ([3]float32, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return [3]float32{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return [3]float32{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// MustHexColor is ParseHexColor for compile-time constant colors. It panics on malformed input.
func MustHexColor(s string) [3]float32 {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
