package train

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/pickbot/colornet/internal/ml"
)

// TestForwardAgainstGonum checks the hand-rolled forward pass against an
// independent implementation of the same pipeline on gonum dense matrices.
func TestForwardAgainstGonum(t *testing.T) {
	var net = NewNetwork(rand.New(rand.NewSource(7)))
	var batch = randomBatch(rand.New(rand.NewSource(8)), 5)

	var got = net.Forward(batch)
	var want = referenceForward(net, batch)

	for row := 0; row < got.Rows; row++ {
		for col := 0; col < got.Cols; col++ {
			var diff = math.Abs(float64(got.At(row, col)) - want.At(row, col))
			if diff > 1e-4 {
				t.Errorf("output[%v][%v] = %v, reference %v",
					row, col, got.At(row, col), want.At(row, col))
			}
		}
	}
}

func TestForwardRowStochastic(t *testing.T) {
	var net = NewNetwork(rand.New(rand.NewSource(3)))
	var out = net.Forward(randomBatch(rand.New(rand.NewSource(4)), 16))
	for row := 0; row < out.Rows; row++ {
		var sum float64
		for _, x := range out.Row(row) {
			if x < 0 || x > 1 {
				t.Errorf("row %v entry %v outside [0,1]", row, x)
			}
			sum += float64(x)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("row %v sums to %v", row, sum)
		}
	}
}

func TestInitDeterminism(t *testing.T) {
	var a = NewNetwork(rand.New(rand.NewSource(42)))
	var b = NewNetwork(rand.New(rand.NewSource(42)))
	for i := range a.InputWeights.Data {
		if a.InputWeights.Data[i] != b.InputWeights.Data[i] {
			t.Fatal("same seed should produce identical weights")
		}
	}
	for _, bias := range [][]float32{a.HiddenBias1, a.HiddenBias2, a.OutputBias} {
		for _, x := range bias {
			if x != 0 {
				t.Fatal("biases should start at zero")
			}
		}
	}
}

func randomBatch(rnd *rand.Rand, rows int) ml.Matrix {
	var batch = ml.NewMatrix(rows, InputSize)
	for i := range batch.Data {
		batch.Data[i] = rnd.Float32()
	}
	return batch
}

// referenceForward mirrors Forward using float64 gonum matrices.
func referenceForward(net *Network, batch ml.Matrix) *mat.Dense {
	var x = toDense(batch)
	var h1 = affineDense(x, toDense(net.InputWeights), net.HiddenBias1)
	reluDense(h1)
	var h2 = affineDense(h1, toDense(net.HiddenWeights1), net.HiddenBias2)
	reluDense(h2)
	var out = affineDense(h2, toDense(net.HiddenWeights2), net.OutputBias)
	softmaxDense(out)
	return out
}

func toDense(m ml.Matrix) *mat.Dense {
	var data = make([]float64, len(m.Data))
	for i, x := range m.Data {
		data[i] = float64(x)
	}
	return mat.NewDense(m.Rows, m.Cols, data)
}

func affineDense(x, w *mat.Dense, bias []float32) *mat.Dense {
	var result mat.Dense
	result.Mul(x, w)
	rows, cols := result.Dims()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			result.Set(row, col, result.At(row, col)+float64(bias[col]))
		}
	}
	return &result
}

func reluDense(m *mat.Dense) {
	rows, cols := m.Dims()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if m.At(row, col) < 0 {
				m.Set(row, col, 0)
			}
		}
	}
}

func softmaxDense(m *mat.Dense) {
	rows, cols := m.Dims()
	for row := 0; row < rows; row++ {
		var max = m.At(row, 0)
		for col := 1; col < cols; col++ {
			if m.At(row, col) > max {
				max = m.At(row, col)
			}
		}
		var sum float64
		for col := 0; col < cols; col++ {
			var e = math.Exp(m.At(row, col) - max)
			m.Set(row, col, e)
			sum += e
		}
		for col := 0; col < cols; col++ {
			m.Set(row, col, m.At(row, col)/sum)
		}
	}
}
