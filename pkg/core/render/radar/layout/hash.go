package layout

import (
	"math"
	"unicode/utf16"
)

// Hash folds the UTF-16 code units of s into a 32-bit accumulator:
// acc = acc*31 + code (mod 2^32).
func Hash(s string) uint32 {
	var acc uint32
	for _, code := range utf16.Encode([]rune(s)) {
		acc = acc*31 + uint32(code)
	}
	return acc
}

// HashUnit maps s to a float in [0, 1) by dividing Hash(s) by 2^32-1.
// The empty string maps to 0.
func HashUnit(s string) float64 {
	acc := Hash(s)
	if acc == math.MaxUint32 {
		// The only accumulator that would reach 1.0.
		return math.Nextafter(1, 0)
	}
	return float64(acc) / math.MaxUint32
}
