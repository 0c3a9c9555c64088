package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind is the inferred type of a column.
type Kind string

const (
	Numeric     Kind = "numeric"
	Categorical Kind = "categorical"
)

// Table is an ordered set of equally long, named columns.
//
// Operations that return a *Table never modify the receiver. The Set*
// methods are the only in-place mutations and are documented as such.
type Table struct {
	// Name is the source the table was loaded from, if any.
	Name  string
	df    dataframe.DataFrame
	units map[string]string
}

// FromDataFrame copies an existing gota DataFrame into a Table. Int and
// Float series are numeric; every other series type is categorical.
func FromDataFrame(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("wrap dataframe: %w", df.Err)
	}
	t := &Table{units: map[string]string{}}
	if df.Ncol() > 0 {
		t.df = df.Copy()
	}
	return t, nil
}

// FromRecords builds a Table from a header and raw string rows, inferring
// each column's kind. Rows shorter than the header are padded with missing
// cells.
func FromRecords(header []string, rows [][]string, opt Options) (*Table, error) {
	ncol := len(header)
	names := make([]string, ncol)
	units := make([]string, ncol)
	seen := make(map[string]struct{}, ncol)
	for i, h := range header {
		clean, unit := splitUnits(h)
		if clean == "" {
			return nil, fmt.Errorf("header cell %d: %w", i+1, ErrEmptyHeader)
		}
		if _, dup := seen[clean]; dup {
			return nil, columnErr(clean, ErrDuplicateColumn)
		}
		seen[clean] = struct{}{}
		names[i], units[i] = clean, unit
	}

	cells := make([][]string, ncol)
	for i := range cells {
		cells[i] = make([]string, len(rows))
	}
	for r, rec := range rows {
		if len(rec) > ncol {
			return nil, fmt.Errorf("row %d: %d cells for %d columns", r+1, len(rec), ncol)
		}
		for j := 0; j < ncol; j++ {
			if j < len(rec) {
				cells[j][r] = strings.TrimSpace(rec[j])
			}
		}
	}

	t := &Table{units: map[string]string{}}
	cols := make([]series.Series, ncol)
	for j := range names {
		s, unit := inferSeries(names[j], units[j], cells[j], opt)
		if unit != "" {
			t.units[names[j]] = unit
		}
		cols[j] = s
	}
	if ncol == 0 {
		return t, nil
	}
	t.df = dataframe.New(cols...)
	if t.df.Err != nil {
		return nil, fmt.Errorf("build table: %w", t.df.Err)
	}
	return t, nil
}

// inferSeries returns a Float series when every present cell parses as a
// number and a String series otherwise. A "%" in the cells only becomes the
// unit of a numeric column.
func inferSeries(name, unit string, cells []string, opt Options) (series.Series, string) {
	present := 0
	headerUnit := unit
	if unit == "" {
		for _, c := range cells {
			if !IsMissing(c) && strings.Contains(c, "%") {
				unit = "%"
				break
			}
		}
	}
	origUnit := unit
	nums := make([]float64, len(cells))
	numeric := true
	for i, c := range cells {
		if IsMissing(c) {
			nums[i] = math.NaN()
			continue
		}
		present++
		x, ok := parseNumeric(c, opt)
		if !ok {
			numeric = false
			break
		}
		if opt.UnitNormalize && origUnit != "" {
			if nx, nu, okc := normalizeUnit(x, origUnit, opt); okc {
				x = nx
				unit = nu
			}
		}
		nums[i] = x
	}
	if numeric && present > 0 {
		return floatSeries(name, nums), unit
	}
	vals := make([]string, len(cells))
	miss := make([]bool, len(cells))
	for i, c := range cells {
		vals[i] = c
		miss[i] = IsMissing(c)
	}
	return stringSeries(name, vals, miss), headerUnit
}

func floatSeries(name string, vals []float64) series.Series {
	recs := make([]string, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			recs[i] = "NaN"
			continue
		}
		recs[i] = formatFloat(v)
	}
	return series.New(recs, series.Float, name)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func stringSeries(name string, vals []string, missing []bool) series.Series {
	recs := make([]string, len(vals))
	for i, v := range vals {
		if missing[i] {
			recs[i] = "NaN"
			continue
		}
		recs[i] = v
	}
	return series.New(recs, series.String, name)
}

// DataFrame returns a copy of the underlying gota DataFrame.
func (t *Table) DataFrame() dataframe.DataFrame { return t.Clone().df }

// Names returns the column names in table order.
func (t *Table) Names() []string { return t.df.Names() }

// Nrow returns the number of rows.
func (t *Table) Nrow() int { return t.df.Nrow() }

// Ncol returns the number of columns.
func (t *Table) Ncol() int { return t.df.Ncol() }

// Has reports whether the table contains a column with the given name.
func (t *Table) Has(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Unit returns the unit parsed from the column header, if any.
func (t *Table) Unit(name string) string { return t.units[name] }

func (t *Table) col(name string) (series.Series, error) {
	if !t.Has(name) {
		return series.Series{}, columnErr(name, ErrColumnNotFound)
	}
	return t.df.Col(name), nil
}

func isNumericType(tp series.Type) bool {
	return tp == series.Float || tp == series.Int
}

// Kind returns the inferred kind of a column.
func (t *Table) Kind(name string) (Kind, error) {
	s, err := t.col(name)
	if err != nil {
		return "", err
	}
	if isNumericType(s.Type()) {
		return Numeric, nil
	}
	return Categorical, nil
}

// NumericNames returns the numeric columns in table order.
func (t *Table) NumericNames() []string {
	var out []string
	for i, tp := range t.df.Types() {
		if isNumericType(tp) {
			out = append(out, t.df.Names()[i])
		}
	}
	return out
}

// Floats returns a copy of a numeric column with NaN marking missing values.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, err
	}
	if !isNumericType(s.Type()) {
		return nil, columnErr(name, ErrNotNumeric)
	}
	vals := s.Float()
	na := s.IsNaN()
	for i := range vals {
		if na[i] {
			vals[i] = math.NaN()
		}
	}
	return vals, nil
}

// Missing returns a per-row mask of missing values.
func (t *Table) Missing(name string) ([]bool, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, err
	}
	mask := s.IsNaN()
	if isNumericType(s.Type()) {
		for i, v := range s.Float() {
			if math.IsNaN(v) {
				mask[i] = true
			}
		}
	}
	return mask, nil
}

// Values returns each cell as a comparable key together with the missing
// mask. Numeric cells use the shortest exact float formatting so equal
// numbers share a key.
func (t *Table) Values(name string) ([]string, []bool, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, nil, err
	}
	miss, err := t.Missing(name)
	if err != nil {
		return nil, nil, err
	}
	if isNumericType(s.Type()) {
		fl := s.Float()
		keys := make([]string, len(fl))
		for i, v := range fl {
			if !miss[i] {
				keys[i] = formatFloat(v)
			}
		}
		return keys, miss, nil
	}
	keys := s.Records()
	for i := range keys {
		if miss[i] {
			keys[i] = ""
		}
	}
	return keys, miss, nil
}

// SetFloats replaces a numeric column in place. NaN marks missing values.
func (t *Table) SetFloats(name string, vals []float64) error {
	if _, err := t.col(name); err != nil {
		return err
	}
	if len(vals) != t.Nrow() {
		return columnErr(name, ErrLengthMismatch)
	}
	return t.mutate(floatSeries(name, vals))
}

// SetStrings replaces a column in place with categorical values.
func (t *Table) SetStrings(name string, vals []string, missing []bool) error {
	if _, err := t.col(name); err != nil {
		return err
	}
	if len(vals) != t.Nrow() || len(missing) != len(vals) {
		return columnErr(name, ErrLengthMismatch)
	}
	return t.mutate(stringSeries(name, vals, missing))
}

func (t *Table) mutate(s series.Series) error {
	df := t.df.Mutate(s)
	if df.Err != nil {
		return fmt.Errorf("replace column %q: %w", s.Name, df.Err)
	}
	t.df = df
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	units := make(map[string]string, len(t.units))
	for k, v := range t.units {
		units[k] = v
	}
	out := &Table{Name: t.Name, units: units}
	if t.Ncol() > 0 {
		out.df = t.df.Copy()
	}
	return out
}

// Drop returns a new table without the named columns.
func (t *Table) Drop(names ...string) (*Table, error) {
	for _, n := range names {
		if !t.Has(n) {
			return nil, columnErr(n, ErrColumnNotFound)
		}
	}
	seen := make(map[string]struct{}, len(names))
	uniq := names[:0:0]
	for _, n := range names {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			uniq = append(uniq, n)
		}
	}
	names = uniq
	out := t.Clone()
	if len(names) == 0 {
		return out, nil
	}
	if len(names) == t.Ncol() {
		out.df = dataframe.DataFrame{}
		out.units = map[string]string{}
		return out, nil
	}
	df := t.df.Drop(names)
	if df.Err != nil {
		return nil, fmt.Errorf("drop columns: %w", df.Err)
	}
	out.df = df
	for _, n := range names {
		delete(out.units, n)
	}
	return out, nil
}

// Subset returns a new table holding only the given rows, in the given
// order, re-indexed from zero.
func (t *Table) Subset(rows []int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.Nrow() {
			return nil, fmt.Errorf("subset: row %d out of range [0,%d)", r, t.Nrow())
		}
	}
	out := t.Clone()
	if t.Ncol() == 0 {
		return out, nil
	}
	if len(rows) == 0 {
		cols := make([]series.Series, 0, t.Ncol())
		for i, name := range t.df.Names() {
			cols = append(cols, series.New([]string{}, t.df.Types()[i], name))
		}
		out.df = dataframe.New(cols...)
		if out.df.Err != nil {
			return nil, fmt.Errorf("subset rows: %w", out.df.Err)
		}
		return out, nil
	}
	df := t.df.Subset(rows)
	if df.Err != nil {
		return nil, fmt.Errorf("subset rows: %w", df.Err)
	}
	out.df = df
	return out, nil
}
