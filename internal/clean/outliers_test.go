package clean

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/tabclean/internal/frame"
)

const outlierData = `
x,y,label
1,10,a
2,11,b
3,12,c
4,13,d
5,14,e
100,15,f
`

func TestSurveyOutliersWorkedExample(t *testing.T) {
	c, buf := capture()
	stats, safe, err := c.SurveyOutliers(table(t, outlierData), []string{"x", "y"}, DefaultOutlierThreshold)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	x := stats[0]
	assert.Equal(t, "x", x.Column)
	assert.Equal(t, 1, x.Count)
	assert.Equal(t, 6, x.Total)
	assert.InDelta(t, 100.0/6, x.Percent, 1e-9)
	assert.InDelta(t, -1.5, x.Bounds.Lower, 1e-12)
	assert.InDelta(t, 8.5, x.Bounds.Upper, 1e-12)

	assert.Equal(t, 0.0, stats[1].Percent)
	assert.Equal(t, []string{"y"}, safe)
	assert.Contains(t, buf.String(), "x: 16.67%")
}

func TestSurveyOutliersZeroIQR(t *testing.T) {
	tbl := table(t, `
v
5
5
5
5
6
`)
	stats, _, err := New(nil).SurveyOutliers(tbl, []string{"v"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[0].Count)
	assert.InDelta(t, 20.0, stats[0].Percent, 1e-9)
}

func TestSurveyOutliersMissingCountsTowardTotal(t *testing.T) {
	tbl := table(t, `
v
1
2
3
4
5
100
NA
NA
`)
	stats, _, err := New(nil).SurveyOutliers(tbl, []string{"v"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[0].Count)
	assert.InDelta(t, 12.5, stats[0].Percent, 1e-9)
}

func TestOutlierColumnErrors(t *testing.T) {
	tbl := table(t, outlierData)
	c := New(nil)

	_, _, err := c.SurveyOutliers(tbl, []string{"label"}, 10)
	assert.True(t, errors.Is(err, frame.ErrNotNumeric))

	_, err = c.RemoveOutliers(tbl, []string{"x", "nope"}, DefaultRemoveOptions())
	assert.True(t, errors.Is(err, frame.ErrColumnNotFound))
}

func TestRemoveOutliersWorkedExample(t *testing.T) {
	tbl := table(t, outlierData)
	res, err := New(nil).RemoveOutliers(tbl, []string{"x"}, DefaultRemoveOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Table.Nrow())
	x, err := res.Table.Floats("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, x)
	labels, _, err := res.Table.Values("label")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, labels)
	require.Len(t, res.Removed, 1)
	assert.Equal(t, ColumnRemoval{Column: "x", Bounds: Bounds{Lower: -1.5, Upper: 8.5}, Outliers: 1, Removed: 1}, res.Removed[0])

	assert.Equal(t, 6, tbl.Nrow())
}

// Sorted: [-50 1 2 3 4 5 6 7 8 9 10 50 60]; Q1=3, Q3=9, fences [-6, 18].
const tailData = `
v
1
2
50
3
4
-50
5
6
7
60
8
9
10
`

func TestRemoveOutliersDropPercent(t *testing.T) {
	cases := []struct {
		pct     float64
		removed int
	}{
		{100, 3},
		{50, 2},
		{34, 2},
		{10, 0},
		{0, 0},
		{-10, 0},
	}
	for _, tc := range cases {
		res, err := New(nil).RemoveOutliers(table(t, tailData), []string{"v"}, RemoveOptions{Multiplier: 1.5, DropPercent: tc.pct})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Removed[0].Outliers)
		assert.Equal(t, tc.removed, res.Removed[0].Removed, "drop percent %v", tc.pct)
		assert.Equal(t, 13-tc.removed, res.Table.Nrow())
	}

	// With 50% the lowest and highest go and the middle outlier stays.
	res, err := New(nil).RemoveOutliers(table(t, tailData), []string{"v"}, RemoveOptions{Multiplier: 1.5, DropPercent: 50})
	require.NoError(t, err)
	v, err := res.Table.Floats("v")
	require.NoError(t, err)
	assert.Contains(t, v, 50.0)
	assert.NotContains(t, v, 60.0)
	assert.NotContains(t, v, -50.0)
}

const sequentialData = `
p,q
1,1
2,2
3,3
4,4
5,10
100,1000
`

func TestRemoveOutliersSequentialVsSnapshot(t *testing.T) {
	seq, err := New(nil).RemoveOutliers(table(t, sequentialData), []string{"p", "q"}, DefaultRemoveOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, seq.Table.Nrow())
	assert.Equal(t, Bounds{Lower: -1, Upper: 7}, seq.Removed[1].Bounds)

	opt := DefaultRemoveOptions()
	opt.Snapshot = true
	snap, err := New(nil).RemoveOutliers(table(t, sequentialData), []string{"p", "q"}, opt)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Table.Nrow())
	assert.InDelta(t, -7.125, snap.Removed[1].Bounds.Lower, 1e-12)
	assert.InDelta(t, 17.875, snap.Removed[1].Bounds.Upper, 1e-12)
	assert.Equal(t, 0, snap.Removed[1].Removed)
}
