package train

import (
	"fmt"
	"math/rand"

	"github.com/pickbot/colornet/internal/ml"
)

// Dataset is a pair of parallel matrices: one feature row and one one-hot
// target row per sample.
type Dataset struct {
	Features ml.Matrix
	Targets  ml.Matrix
}

func NewDataset(features, targets ml.Matrix) (Dataset, error) {
	if features.Rows != targets.Rows {
		return Dataset{}, fmt.Errorf("dataset size mismatch: %v features, %v targets",
			features.Rows, targets.Rows)
	}
	return Dataset{Features: features, Targets: targets}, nil
}

func (d Dataset) Len() int {
	return d.Features.Rows
}

// Slice returns the contiguous sub-dataset of rows [from, to), sharing data.
func (d Dataset) Slice(from, to int) Dataset {
	return Dataset{
		Features: d.Features.SliceRows(from, to),
		Targets:  d.Targets.SliceRows(from, to),
	}
}

// Split shuffles the samples with rnd and partitions them into disjoint
// training and validation sets, the first ratio of the rows going to
// training. The same source yields the same split on every run.
func (d Dataset) Split(rnd *rand.Rand, ratio float64) (training, validation Dataset) {
	var n = d.Len()
	var shuffled = Dataset{
		Features: ml.NewMatrix(n, d.Features.Cols),
		Targets:  ml.NewMatrix(n, d.Targets.Cols),
	}
	for i, j := range rnd.Perm(n) {
		copy(shuffled.Features.Row(i), d.Features.Row(j))
		copy(shuffled.Targets.Row(i), d.Targets.Row(j))
	}
	var trainSize = int(float64(n) * ratio)
	return shuffled.Slice(0, trainSize), shuffled.Slice(trainSize, n)
}
