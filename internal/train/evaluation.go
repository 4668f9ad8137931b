package train

import (
	"github.com/pickbot/colornet/internal/ml"
)

// Accuracy is the fraction of samples whose predicted class (argmax of the
// output row) matches the one-hot target class.
func Accuracy(net *Network, d Dataset) float64 {
	if d.Len() == 0 {
		return 0
	}
	var predicted = net.Forward(d.Features)
	var correct int
	for row := 0; row < predicted.Rows; row++ {
		if argmax(predicted.Row(row)) == argmax(d.Targets.Row(row)) {
			correct++
		}
	}
	return float64(correct) / float64(d.Len())
}

// Predict classifies a single feature row and returns the class index.
func Predict(net *Network, features []float32) int {
	var batch = ml.Matrix{Data: features, Rows: 1, Cols: len(features)}
	var out = net.Forward(batch)
	return argmax(out.Row(0))
}

func argmax(row []float32) int {
	var best = 0
	for i, x := range row {
		if x > row[best] {
			best = i
		}
	}
	return best
}
