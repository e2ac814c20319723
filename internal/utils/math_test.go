package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRandomFloat tests the random float generator
func TestRandomFloat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		result := RandomFloat()
		assert.GreaterOrEqual(t, result, 0.0)
		assert.Less(t, result, 1.0)
	}
}

func TestRandomInt(t *testing.T) {
	tests := []struct {
		name string
		min  int
		max  int
	}{
		{"normal range", 1, 10},
		{"single value", 5, 5},
		{"negative range", -10, -1},
		{"spanning zero", -5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				result := RandomInt(tt.min, tt.max)
				assert.GreaterOrEqual(t, result, tt.min)
				assert.LessOrEqual(t, result, tt.max)
			}
		})
	}

	t.Run("min greater than max returns min", func(t *testing.T) {
		assert.Equal(t, 10, RandomInt(10, 1))
	})
}

func TestRandomInt64(t *testing.T) {
	for i := 0; i < 100; i++ {
		result := RandomInt64(50, 149)
		assert.GreaterOrEqual(t, result, int64(50))
		assert.LessOrEqual(t, result, int64(149))
	}

	assert.Equal(t, int64(10), RandomInt64(10, 1))
}
