package ml

import (
	"math"
	"math/rand"
)

// InitHe fills data with He-initialized weights: normal draws scaled by
// sqrt(2/fanIn), the usual choice in front of ReLU layers.
func InitHe(rnd *rand.Rand, data []float32, fanIn int) {
	var scale = math.Sqrt(2.0 / float64(fanIn))
	for i := range data {
		data[i] = float32(rnd.NormFloat64() * scale)
	}
}
