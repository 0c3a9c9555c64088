package clean

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTukeyBoundsWorkedExample(t *testing.T) {
	b, err := TukeyBounds([]float64{1, 2, 3, 4, 5, 100}, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, -1.5, b.Lower, 1e-12)
	assert.InDelta(t, 8.5, b.Upper, 1e-12)
	assert.True(t, b.Outside(100))
	assert.False(t, b.Outside(5))
	assert.False(t, b.Outside(math.NaN()))
}

func TestTukeyBoundsIgnoresMissing(t *testing.T) {
	b, err := TukeyBounds([]float64{math.NaN(), 1, 2, 3, 4, 5, 100, math.NaN()}, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, -1.5, b.Lower, 1e-12)
	assert.InDelta(t, 8.5, b.Upper, 1e-12)

	_, err = TukeyBounds([]float64{math.NaN()}, 1.5)
	assert.True(t, errors.Is(err, ErrNoObservations))
}

func TestQuantileLinear(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, quantile(s, 0))
	assert.Equal(t, 4.0, quantile(s, 1))
	assert.InDelta(t, 2.5, quantile(s, 0.5), 1e-12)
	assert.InDelta(t, 1.75, quantile(s, 0.25), 1e-12)
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.75))
}

func TestModeTieBreaksOnSmallestKey(t *testing.T) {
	m, ok := modeOf([]string{"b", "a", "b", "a", ""}, []bool{false, false, false, false, true})
	require.True(t, ok)
	assert.Equal(t, "a", m)

	_, ok = modeOf([]string{""}, []bool{true})
	assert.False(t, ok)
}

func TestPearsonPairwiseComplete(t *testing.T) {
	nan := math.NaN()
	r := pearson([]float64{1, 2, nan, 4}, []float64{2, 4, 100, 8})
	assert.InDelta(t, 1.0, r, 1e-12)

	assert.True(t, math.IsNaN(pearson([]float64{1, nan}, []float64{nan, 2})))
	assert.True(t, math.IsNaN(pearson([]float64{1, 1, 1}, []float64{1, 2, 3})))
}

func TestCorrelationMatrix(t *testing.T) {
	tbl := table(t, `
a,b,c
1,2,3
2,4,1
3,6,2
`)
	m, err := correlationMatrix(tbl, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.At(2, 2))
	assert.InDelta(t, 1.0, m.At(0, 1), 1e-12)
	assert.Equal(t, m.At(0, 2), m.At(2, 0))

	_, err = correlationMatrix(tbl, nil)
	assert.Error(t, err)
}
