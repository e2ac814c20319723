package utils

import "math/rand"

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt64 returns a random int64 between min and max (inclusive)
func RandomInt64(min, max int64) int64 {
	if min > max {
		return min
	}
	return rand.Int63n(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}
