package ml

// MSE is the mean squared error over all entries of target and predicted.
// Accumulation happens in float64 so large batches do not lose precision.
func MSE(target, predicted *Matrix) float32 {
	var sum float64
	for i := range target.Data {
		var x = float64(target.Data[i] - predicted.Data[i])
		sum += x * x
	}
	return float32(sum / float64(len(target.Data)))
}
