package utils

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a row-major dense matrix backed by gonum. DataP aliases the
// storage of M so hot loops can index it directly as DataP[i*nc+j].
type Matrix struct {
	M        *mat.Dense
	DataP    []float64
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var (
		m    *mat.Dense
		data []float64
	)
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v",
				nr, nc, len(dataO[0]))
			panic(err)
		}
		data = dataO[0]
	} else {
		data = make([]float64, nr*nc)
	}
	m = mat.NewDense(nr, nc, data)
	R = Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
		name:  "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix       { return m.M.T() }

func (m Matrix) IsEmpty() bool { return m.M == nil }

func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m *Matrix) SetWritable() Matrix {
	m.readOnly = false
	return *m
}

func (m Matrix) IsReadOnly() bool { return m.readOnly }

func (m Matrix) checkWritable() {
	if m.readOnly {
		panic(fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name))
	}
}

func (m Matrix) Set(i, j int, val float64) Matrix {
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) (row []float64) {
	var (
		_, nc = m.Dims()
	)
	row = make([]float64, nc)
	copy(row, m.DataP[i*nc:(i+1)*nc])
	return
}

// Col returns a copy of column j.
func (m Matrix) Col(j int) (col []float64) {
	var (
		nr, nc = m.Dims()
	)
	col = make([]float64, nr)
	for i := 0; i < nr; i++ {
		col[i] = m.DataP[i*nc+j]
	}
	return
}

func (m Matrix) SetCol(j int, col []float64) Matrix {
	var (
		nr, nc = m.Dims()
	)
	m.checkWritable()
	if len(col) != nr {
		panic(fmt.Errorf("column length %d does not match matrix rows %d", len(col), nr))
	}
	for i := 0; i < nr; i++ {
		m.DataP[i*nc+j] = col[i]
	}
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, m.DataP)
	R = NewMatrix(nr, nc, dataR)
	return
}

// CopyFrom overwrites the receiver's storage with A's values.
func (m Matrix) CopyFrom(A Matrix) Matrix {
	m.checkWritable()
	if len(A.DataP) != len(m.DataP) {
		panic(fmt.Errorf("dimension mismatch in CopyFrom: %d vs %d", len(A.DataP), len(m.DataP)))
	}
	copy(m.DataP, A.DataP)
	return m
}

func (m Matrix) Max() float64 { return floats.Max(m.DataP) }
func (m Matrix) Min() float64 { return floats.Min(m.DataP) }

// Equal is exact, element by element.
func (m Matrix) Equal(A Matrix) bool {
	return floats.Equal(m.DataP, A.DataP)
}

func (m Matrix) Print(msgI ...string) (o string) {
	var (
		name = ""
	)
	if len(msgI) != 0 {
		name = msgI[0]
	}
	fm := mat.Formatted(m.M, mat.Squeeze())
	return fmt.Sprintf("%s = \n%10.8v\n", name, fm)
}
