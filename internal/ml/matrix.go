package ml

// Matrix is a dense row-major float32 matrix. Network parameters stay in
// float32 so the exported bit patterns are the bit patterns actually trained.
type Matrix struct {
	Data []float32
	Rows int
	Cols int
}

func NewMatrix(rows, cols int) Matrix {
	return Matrix{
		Data: make([]float32, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

func (m *Matrix) At(row, col int) float32 {
	return m.Data[row*m.Cols+col]
}

func (m *Matrix) Set(row, col int, v float32) {
	m.Data[row*m.Cols+col] = v
}

func (m *Matrix) Add(row, col int, delta float32) {
	m.Data[row*m.Cols+col] += delta
}

// Row returns the backing slice of one row.
func (m *Matrix) Row(row int) []float32 {
	return m.Data[row*m.Cols : (row+1)*m.Cols]
}

// SliceRows returns a view over rows [from, to); the data is shared.
func (m *Matrix) SliceRows(from, to int) Matrix {
	return Matrix{
		Data: m.Data[from*m.Cols : to*m.Cols],
		Rows: to - from,
		Cols: m.Cols,
	}
}
