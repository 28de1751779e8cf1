package spectra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewDatasetShape(t *testing.T) {
	y := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})

	ds, err := NewDataset([]float64{10, 20, 30}, y)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, 2, ds.Cols())
	assert.False(t, ds.Fourier())
	assert.Nil(t, ds.Imag())
	assert.Nil(t, ds.Phase())

	_, err = NewDataset([]float64{10, 20}, y)
	require.ErrorIs(t, err, ErrShape)

	_, err = NewDataset(nil, nil)
	require.ErrorIs(t, err, ErrShape)
}

func TestDatasetColumnIsCopy(t *testing.T) {
	ds, err := NewDataset([]float64{0, 1}, mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	require.NoError(t, err)

	col := ds.Column(1)
	assert.Equal(t, []float64{2, 4}, col)
	col[0] = 100
	assert.Equal(t, 2.0, ds.Y.At(0, 1))

	ds.SetColumn(0, []float64{-1, -3})
	assert.Equal(t, []float64{-1, -3}, ds.Column(0))
}

func TestDatasetCloneIsDeep(t *testing.T) {
	ds, err := NewDataset([]float64{0, 1}, mat.NewDense(2, 4, []float64{1, 2, 3, 4, 5, 6, 7, 8}))
	require.NoError(t, err)
	require.NoError(t, ds.FourierTransform())

	c := ds.Clone()
	c.X[0] = 42
	c.Y.Set(0, 0, 42)
	c.Imag().Set(0, 1, 42)
	c.Phase().Set(0, 1, 42)

	assert.Equal(t, 0.0, ds.X[0])
	assert.NotEqual(t, 42.0, ds.Y.At(0, 0))
	assert.NotEqual(t, 42.0, ds.Imag().At(0, 1))
	assert.NotEqual(t, 42.0, ds.Phase().At(0, 1))
	assert.True(t, c.Fourier())
}
