package ml

import "math"

func ReLU(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

func ReLUPrime(x float32) float32 {
	if x > 0 {
		return 1
	}
	return 0
}

// SoftmaxRows turns every row of m into a probability distribution.
// The row maximum is subtracted before exponentiation for numerical stability.
func SoftmaxRows(m *Matrix) {
	for row := 0; row < m.Rows; row++ {
		var data = m.Row(row)
		var max = data[0]
		for _, x := range data {
			if x > max {
				max = x
			}
		}
		var sum float64
		for i, x := range data {
			var e = math.Exp(float64(x - max))
			data[i] = float32(e)
			sum += e
		}
		for i := range data {
			data[i] = float32(float64(data[i]) / sum)
		}
	}
}
