package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, header []string, rows [][]string) *Table {
	t.Helper()
	tbl, err := FromRecords(header, rows, DefaultOptions())
	require.NoError(t, err)
	return tbl
}

func TestFromRecordsInfersKinds(t *testing.T) {
	tbl := mustTable(t,
		[]string{"n", "s", "mixed", "empty"},
		[][]string{
			{"1", "a", "1", ""},
			{"2.5", "b", "x", "NA"},
			{"NA", "", "3", "null"},
		})
	assert.Equal(t, []string{"n", "s", "mixed", "empty"}, tbl.Names())
	assert.Equal(t, []string{"n"}, tbl.NumericNames())
	for name, want := range map[string]Kind{"n": Numeric, "s": Categorical, "mixed": Categorical, "empty": Categorical} {
		k, err := tbl.Kind(name)
		require.NoError(t, err)
		assert.Equal(t, want, k, name)
	}

	n, err := tbl.Floats("n")
	require.NoError(t, err)
	assert.Equal(t, 1.0, n[0])
	assert.Equal(t, 2.5, n[1])
	assert.True(t, math.IsNaN(n[2]))

	miss, err := tbl.Missing("s")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true}, miss)

	keys, miss, err := tbl.Values("empty")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", ""}, keys)
	assert.Equal(t, []bool{true, true, true}, miss)
}

func TestFromRecordsUnitsAndLocale(t *testing.T) {
	opt := DefaultOptions()
	opt.UnitNormalize = true
	tbl, err := FromRecords(
		[]string{"Concentration (g/L)", "Temp (°F)", "Share", "Amount"},
		[][]string{
			{"0,5", "32", "10%", "1.000,5"},
			{"1,5", "212", "20 %", "2.000,0"},
		}, opt)
	require.NoError(t, err)
	assert.Equal(t, []string{"Concentration", "Temp", "Share", "Amount"}, tbl.Names())
	assert.Equal(t, "mg/L", tbl.Unit("Concentration"))
	assert.Equal(t, "°C", tbl.Unit("Temp"))
	assert.Equal(t, "%", tbl.Unit("Share"))
	assert.Equal(t, "", tbl.Unit("Amount"))

	conc, err := tbl.Floats("Concentration")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{500, 1500}, conc, 1e-9)
	temp, err := tbl.Floats("Temp")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 100}, temp, 1e-9)
	share, err := tbl.Floats("Share")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, share)
	amount, err := tbl.Floats("Amount")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000.5, 2000}, amount)
}

func TestPercentUnitOnlyOnNumericColumns(t *testing.T) {
	tbl := mustTable(t,
		[]string{"share", "note"},
		[][]string{{"10%", "50% off"}, {"20%", "sold out"}})
	assert.Equal(t, "%", tbl.Unit("share"))
	k, err := tbl.Kind("note")
	require.NoError(t, err)
	assert.Equal(t, Categorical, k)
	assert.Equal(t, "", tbl.Unit("note"))
}

func TestFromRecordsErrors(t *testing.T) {
	_, err := FromRecords([]string{"a", " "}, nil, Options{})
	assert.True(t, errors.Is(err, ErrEmptyHeader))

	_, err = FromRecords([]string{"a", "a [mg/L]"}, nil, Options{})
	assert.True(t, errors.Is(err, ErrDuplicateColumn))

	_, err = FromRecords([]string{"a"}, [][]string{{"1", "2"}}, Options{})
	assert.Error(t, err)
}

func TestFromRecordsPadsShortRows(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	miss, err := tbl.Missing("b")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, miss)
}

func TestColumnErrors(t *testing.T) {
	tbl := mustTable(t, []string{"a", "s"}, [][]string{{"1", "x"}})

	_, err := tbl.Floats("nope")
	var ce *ColumnError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "nope", ce.Column)
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	_, err = tbl.Floats("s")
	assert.True(t, errors.Is(err, ErrNotNumeric))

	err = tbl.SetFloats("a", []float64{1, 2})
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestSetColumns(t *testing.T) {
	tbl := mustTable(t, []string{"a", "s"}, [][]string{{"1", "x"}, {"NA", ""}})
	require.NoError(t, tbl.SetFloats("a", []float64{1, 7}))
	require.NoError(t, tbl.SetStrings("s", []string{"x", "y"}, []bool{false, false}))

	a, err := tbl.Floats("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 7}, a)
	keys, miss, err := tbl.Values("s")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, keys)
	assert.Equal(t, []bool{false, false}, miss)
	assert.Equal(t, []string{"a", "s"}, tbl.Names())
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := mustTable(t, []string{"a"}, [][]string{{"1"}, {"2"}})
	cp := tbl.Clone()
	require.NoError(t, cp.SetFloats("a", []float64{9, 9}))
	a, err := tbl.Floats("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, a)
}

func TestDrop(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b [ppm]", "c"}, [][]string{{"1", "2", "3"}})
	out, err := tbl.Drop("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, out.Names())
	assert.Equal(t, "", out.Unit("b"))
	assert.Equal(t, "ppm", tbl.Unit("b"))
	assert.Equal(t, 3, tbl.Ncol())

	_, err = tbl.Drop("a", "zzz")
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	all, err := tbl.Drop("a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, 0, all.Ncol())
	assert.Empty(t, all.Names())
}

func TestDropRepeatedName(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"}, [][]string{{"1", "2"}})
	out, err := tbl.Drop("a", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, out.Names())
}

func TestSubset(t *testing.T) {
	tbl := mustTable(t, []string{"a", "s"}, [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}})
	out, err := tbl.Subset([]int{2, 0})
	require.NoError(t, err)
	a, err := out.Floats("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, a)
	assert.Equal(t, 3, tbl.Nrow())

	none, err := tbl.Subset(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, none.Nrow())
	assert.Equal(t, []string{"a", "s"}, none.Names())
	k, err := none.Kind("a")
	require.NoError(t, err)
	assert.Equal(t, Numeric, k)

	_, err = tbl.Subset([]int{3})
	assert.Error(t, err)
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", " ", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", " NA "} {
		assert.True(t, IsMissing(s), s)
	}
	for _, s := range []string{"0", "none", "-", "n/a"} {
		assert.False(t, IsMissing(s), s)
	}
}

func TestFromDataFrame(t *testing.T) {
	df := dataframe.New(
		series.New([]int{1, 2, 3}, series.Int, "i"),
		series.New([]string{"a", "b", "a"}, series.String, "s"),
	)
	tbl, err := FromDataFrame(df)
	require.NoError(t, err)
	assert.Equal(t, []string{"i"}, tbl.NumericNames())
	i, err := tbl.Floats("i")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, i)

	require.NoError(t, tbl.SetFloats("i", []float64{4, 5, 6}))
	back := tbl.DataFrame()
	assert.Equal(t, 3, back.Nrow())
	assert.Equal(t, []float64{4, 5, 6}, back.Col("i").Float())
	// the copy is detached from the table
	assert.Equal(t, []float64{1, 2, 3}, df.Col("i").Float())

	_, err = FromDataFrame(dataframe.DataFrame{Err: assert.AnError})
	assert.ErrorIs(t, err, assert.AnError)
}
