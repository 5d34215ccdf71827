package phi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestStochasticMatrixRowsSumToOne(t *testing.T) {
	m := stochasticMatrix([]byte("genesis"), []byte("\x01tau"), 5)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += m.At(i, j)
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	}
}

func TestStochasticMatrixEntriesNonNegative(t *testing.T) {
	m := stochasticMatrix([]byte("genesis"), []byte("\x02gwt"), 4)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.GreaterOrEqual(t, m.At(i, j), 0.0)
		}
	}
}

func TestStochasticMatrixDeterministic(t *testing.T) {
	a := stochasticMatrix([]byte("genesis"), []byte("\x01tau"), 3)
	b := stochasticMatrix([]byte("genesis"), []byte("\x01tau"), 3)
	assert.True(t, mat.Equal(a, b))
}

func TestStochasticMatrixDiffersBySuffix(t *testing.T) {
	a := stochasticMatrix([]byte("genesis"), []byte("\x01tau"), 3)
	b := stochasticMatrix([]byte("genesis"), []byte("\x02gwt"), 3)
	assert.False(t, mat.Equal(a, b))
}
