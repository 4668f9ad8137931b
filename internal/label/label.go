package label

import (
	"fmt"

	"github.com/pickbot/colornet/internal/ml"
)

// Vocabulary is the closed, ordered set of color classes. The order defines
// the one-hot index and the output-neuron index of the trained network, so
// it must match the embedded consumer and never grow at runtime.
var Vocabulary = [...]string{"Red", "Black", "Green", "White"}

// Index returns the vocabulary position of name.
func Index(name string) (int, bool) {
	for i, v := range Vocabulary {
		if v == name {
			return i, true
		}
	}
	return 0, false
}

// Name returns the label at vocabulary position index.
func Name(index int) string {
	return Vocabulary[index]
}

// OneHot encodes labels as a matrix with one row per label and exactly one
// 1 per row, at the label's vocabulary index. A label outside the vocabulary
// is an error; training must not proceed with a partially encoded dataset.
func OneHot(labels []string) (ml.Matrix, error) {
	var encoded = ml.NewMatrix(len(labels), len(Vocabulary))
	for i, name := range labels {
		var index, ok = Index(name)
		if !ok {
			return ml.Matrix{}, fmt.Errorf("unknown color label %q", name)
		}
		encoded.Set(i, index, 1)
	}
	return encoded, nil
}
