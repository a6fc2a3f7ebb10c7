package math

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Clamp returns v limited to [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Mod2Pi normalizes an angle into [0, 2*pi). The result is always
// non-negative, unlike the remainder of a plain division.
func Mod2Pi(angle float32) float32 {
	m := math.Mod(float64(angle), TwoPi)
	if m < 0 {
		m += TwoPi
	}
	return float32(m)
}
