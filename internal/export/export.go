// Package export renders trained parameters as C array initializers whose
// entries are the raw IEEE-754 bit patterns of the float32 values. The
// embedded firmware reinterprets the literals back into floats, so the
// mapping must be lossless in both directions.
package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pickbot/colornet/internal/ml"
	"github.com/pickbot/colornet/internal/train"
)

// HexFloat32 renders the bit pattern of f as an 8-hex-digit literal.
// Packing as little-endian float32 and reading the bytes back as a
// little-endian uint32 is the identity on bits, so Float32bits suffices.
func HexFloat32(f float32) string {
	return fmt.Sprintf("0x%08x", math.Float32bits(f))
}

// Float32FromHex is the exact inverse of HexFloat32.
func Float32FromHex(s string) (float32, error) {
	var bits, err = strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "bad hex literal %q", s)
	}
	return math.Float32frombits(uint32(bits)), nil
}

// WriteNetwork emits one array-initializer block per parameter tensor, in the
// order the firmware declares them: the three weight matrices, then the three
// bias vectors. Matrix rows are emitted row-major, one brace group per row.
func WriteNetwork(w io.Writer, net *train.Network) error {
	if _, err := fmt.Fprintln(w, "C-compatible array initializers:"); err != nil {
		return err
	}
	var blocks = []func() error{
		func() error {
			return writeMatrix(w, "input_weights", "INPUT_SIZE", "HIDDEN_SIZE1", net.InputWeights)
		},
		func() error {
			return writeMatrix(w, "hidden_weights1", "HIDDEN_SIZE1", "HIDDEN_SIZE2", net.HiddenWeights1)
		},
		func() error {
			return writeMatrix(w, "hidden_weights2", "HIDDEN_SIZE2", "OUTPUT_SIZE", net.HiddenWeights2)
		},
		func() error {
			return writeVector(w, "hidden_bias1", "HIDDEN_SIZE1", net.HiddenBias1)
		},
		func() error {
			return writeVector(w, "hidden_bias2", "HIDDEN_SIZE2", net.HiddenBias2)
		},
		func() error {
			return writeVector(w, "output_bias", "OUTPUT_SIZE", net.OutputBias)
		},
	}
	for _, write := range blocks {
		if err := write(); err != nil {
			return err
		}
	}
	return nil
}

func writeMatrix(w io.Writer, name, rowsDim, colsDim string, m ml.Matrix) error {
	if _, err := fmt.Fprintf(w, "\nuint32_t %s[%s][%s] = {\n", name, rowsDim, colsDim); err != nil {
		return err
	}
	for row := 0; row < m.Rows; row++ {
		if _, err := fmt.Fprintf(w, "    {%s},\n", hexList(m.Row(row))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "};")
	return err
}

func writeVector(w io.Writer, name, dim string, v []float32) error {
	_, err := fmt.Fprintf(w, "\nuint32_t %s[%s] = {%s};\n", name, dim, hexList(v))
	return err
}

func hexList(values []float32) string {
	var literals = make([]string, len(values))
	for i, v := range values {
		literals[i] = HexFloat32(v)
	}
	return strings.Join(literals, ", ")
}
