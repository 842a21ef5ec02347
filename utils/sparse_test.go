package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	{ // DOK assembly and CSR counts
		m := NewDOK(3, 4)
		m.Set(0, 0, 1)
		m.Set(0, 3, 2)
		m.Set(2, 1, 3)
		m.Set(2, 1, 4) // overwrite
		assert.Equal(t, 4., m.At(2, 1))
		csr := m.ToCSR()
		assert.Equal(t, 3, csr.NNZ())
		assert.Equal(t, []int{2, 0, 1}, csr.RowCounts())
		assert.Equal(t, []int{1, 1, 0, 1}, csr.ColCounts())
		r, c := csr.Dims()
		assert.Equal(t, [2]int{3, 4}, [2]int{r, c})
	}
	{ // Out of range and read only writes panic
		m := NewDOK(2, 2)
		assert.Panics(t, func() { m.Set(2, 0, 1) })
		m.SetReadOnly("incidence")
		assert.Panics(t, func() { m.Set(0, 0, 1) })
	}
}
