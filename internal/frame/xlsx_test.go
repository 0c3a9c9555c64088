package frame

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"id", "value (mg/L)", "label"},
		{1, 2.5, "a"},
		{2, 3.5, "b"},
		{3, 4.5},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Data", "A1", &[]any{"x", "y"}))
	require.NoError(t, f.SetSheetRow("Data", "A2", &[]any{10, "p"}))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSXFirstSheet(t *testing.T) {
	path := writeWorkbook(t)
	tbl, err := ReadXLSX(path, DefaultOptions(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", tbl.Name)
	assert.Equal(t, []string{"id", "value", "label"}, tbl.Names())
	assert.Equal(t, "mg/L", tbl.Unit("value"))
	assert.Equal(t, 3, tbl.Nrow())

	v, err := tbl.Floats("value")
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 3.5, 4.5}, v)
	miss, err := tbl.Missing("label")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true}, miss)
}

func TestReadXLSXSheetSelection(t *testing.T) {
	path := writeWorkbook(t)

	byName, err := Load(path, DefaultOptions(), "data", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, byName.Names())

	byIndex, err := ReadXLSX(path, DefaultOptions(), "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, byIndex.Names())

	_, err = ReadXLSX(path, DefaultOptions(), "", 3)
	assert.ErrorContains(t, err, "out of range")

	_, err = ReadXLSX(path, DefaultOptions(), "nope", 0)
	assert.ErrorContains(t, err, "Available sheets: Sheet1, Data")
}

func TestReadXLSXMissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "none.xlsx"), DefaultOptions(), "", 0)
	assert.Error(t, err)
}
