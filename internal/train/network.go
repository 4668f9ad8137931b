package train

import (
	"math/rand"

	"github.com/pickbot/colornet/internal/ml"
)

// Layer sizes of the color classifier. They are fixed: the embedded consumer
// declares its weight arrays with these exact dimensions.
const (
	InputSize   = 4
	HiddenSize1 = 16
	HiddenSize2 = 8
	OutputSize  = 4
)

// Network is the 4-16-8-4 multilayer perceptron. The weight matrices are
// row-major with one row per input neuron, the layout the weight export and
// the embedded inference code agree on.
//
// The lower-case fields cache the activations of the last Forward call;
// Backward consumes them and every Forward overwrites them.
type Network struct {
	InputWeights   ml.Matrix // InputSize x HiddenSize1
	HiddenWeights1 ml.Matrix // HiddenSize1 x HiddenSize2
	HiddenWeights2 ml.Matrix // HiddenSize2 x OutputSize
	HiddenBias1    []float32
	HiddenBias2    []float32
	OutputBias     []float32

	hidden1Pre ml.Matrix
	hidden1    ml.Matrix
	hidden2Pre ml.Matrix
	hidden2    ml.Matrix
	output     ml.Matrix
}

// NewNetwork builds a network with He-initialized weights drawn from rnd and
// zero biases. Passing an explicit source keeps initialization reproducible.
func NewNetwork(rnd *rand.Rand) *Network {
	var n = &Network{
		InputWeights:   ml.NewMatrix(InputSize, HiddenSize1),
		HiddenWeights1: ml.NewMatrix(HiddenSize1, HiddenSize2),
		HiddenWeights2: ml.NewMatrix(HiddenSize2, OutputSize),
		HiddenBias1:    make([]float32, HiddenSize1),
		HiddenBias2:    make([]float32, HiddenSize2),
		OutputBias:     make([]float32, OutputSize),
	}
	ml.InitHe(rnd, n.InputWeights.Data, InputSize)
	ml.InitHe(rnd, n.HiddenWeights1.Data, HiddenSize1)
	ml.InitHe(rnd, n.HiddenWeights2.Data, HiddenSize2)
	return n
}

// Forward runs the batch through the network and returns the output matrix,
// one row-stochastic probability row per sample.
func (n *Network) Forward(batch ml.Matrix) ml.Matrix {
	n.hidden1Pre = affine(batch, n.InputWeights, n.HiddenBias1)
	n.hidden1 = reluOf(n.hidden1Pre)
	n.hidden2Pre = affine(n.hidden1, n.HiddenWeights1, n.HiddenBias2)
	n.hidden2 = reluOf(n.hidden2Pre)
	n.output = affine(n.hidden2, n.HiddenWeights2, n.OutputBias)
	ml.SoftmaxRows(&n.output)
	return n.output
}

// Backward updates every weight and bias from one batch. The error signal is
// target − predicted and all updates are added, scaled by learningRate and
// summed over the batch. No momentum, no regularization, no clipping.
func (n *Network) Backward(batch, target, predicted ml.Matrix, learningRate float32) {
	var outputError = subtract(target, predicted)
	var hidden2Error = mulTransposed(outputError, n.HiddenWeights2)
	var hidden1Error = mulTransposed(hidden2Error, n.HiddenWeights1)

	var hidden2Delta = hadamardReLUPrime(hidden2Error, n.hidden2Pre)
	var hidden1Delta = hadamardReLUPrime(hidden1Error, n.hidden1Pre)

	addTransposedMul(&n.HiddenWeights2, n.hidden2, outputError, learningRate)
	addTransposedMul(&n.HiddenWeights1, n.hidden1, hidden2Delta, learningRate)
	addTransposedMul(&n.InputWeights, batch, hidden1Delta, learningRate)

	addColumnSums(n.OutputBias, outputError, learningRate)
	addColumnSums(n.HiddenBias2, hidden2Delta, learningRate)
	addColumnSums(n.HiddenBias1, hidden1Delta, learningRate)
}

// affine computes input · weights + bias, bias broadcast over rows.
func affine(input, weights ml.Matrix, bias []float32) ml.Matrix {
	var result = ml.NewMatrix(input.Rows, weights.Cols)
	for row := 0; row < input.Rows; row++ {
		var out = result.Row(row)
		copy(out, bias)
		var in = input.Row(row)
		for k, x := range in {
			if x == 0 {
				continue
			}
			var wRow = weights.Row(k)
			for col := range out {
				out[col] += x * wRow[col]
			}
		}
	}
	return result
}

func reluOf(m ml.Matrix) ml.Matrix {
	var result = ml.NewMatrix(m.Rows, m.Cols)
	for i, x := range m.Data {
		result.Data[i] = ml.ReLU(x)
	}
	return result
}

func subtract(a, b ml.Matrix) ml.Matrix {
	var result = ml.NewMatrix(a.Rows, a.Cols)
	for i := range a.Data {
		result.Data[i] = a.Data[i] - b.Data[i]
	}
	return result
}

// mulTransposed computes m · weights^T, propagating errors one layer back.
func mulTransposed(m, weights ml.Matrix) ml.Matrix {
	var result = ml.NewMatrix(m.Rows, weights.Rows)
	for row := 0; row < m.Rows; row++ {
		var in = m.Row(row)
		var out = result.Row(row)
		for k := 0; k < weights.Rows; k++ {
			var wRow = weights.Row(k)
			var sum float32
			for col := range in {
				sum += in[col] * wRow[col]
			}
			out[k] = sum
		}
	}
	return result
}

// hadamardReLUPrime multiplies errors elementwise with the ReLU derivative of
// the cached pre-activations.
func hadamardReLUPrime(errs, preActivation ml.Matrix) ml.Matrix {
	var result = ml.NewMatrix(errs.Rows, errs.Cols)
	for i := range errs.Data {
		result.Data[i] = errs.Data[i] * ml.ReLUPrime(preActivation.Data[i])
	}
	return result
}

// addTransposedMul adds learningRate · (input^T · delta) to weights in place.
func addTransposedMul(weights *ml.Matrix, input, delta ml.Matrix, learningRate float32) {
	for row := 0; row < input.Rows; row++ {
		var in = input.Row(row)
		var d = delta.Row(row)
		for k, x := range in {
			if x == 0 {
				continue
			}
			var wRow = weights.Row(k)
			for col := range d {
				wRow[col] += learningRate * x * d[col]
			}
		}
	}
}

// addColumnSums adds learningRate · (column sums of delta) to bias in place.
func addColumnSums(bias []float32, delta ml.Matrix, learningRate float32) {
	for row := 0; row < delta.Rows; row++ {
		var d = delta.Row(row)
		for col := range bias {
			bias[col] += learningRate * d[col]
		}
	}
}
