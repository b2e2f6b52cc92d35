package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestL2Normalize(t *testing.T) {
	t.Run("produces a unit vector", func(t *testing.T) {
		out := l2Normalize([]float32{3, 4})

		assert.InDelta(t, 0.6, out[0], 1e-6)
		assert.InDelta(t, 0.8, out[1], 1e-6)

		var sum float64
		for _, v := range out {
			sum += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
	})

	t.Run("leaves the zero vector untouched", func(t *testing.T) {
		out := l2Normalize([]float32{0, 0, 0})

		assert.Equal(t, []float32{0, 0, 0}, out)
	})
}
