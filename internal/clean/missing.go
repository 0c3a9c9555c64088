package clean

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/KaramelBytes/tabclean/internal/frame"
)

// MissingStat is the missing-value share of one column.
type MissingStat struct {
	Column string
	Count  int
	// Percent of rows, rounded to one decimal.
	Percent float64
}

// MissingReport lists the columns that have missing values, most affected first.
type MissingReport struct {
	Columns int
	Rows    int
	Stats   []MissingStat
}

// MissingReport counts missing values per column. Columns without missing
// values are left out; ties in percentage keep table order.
func (c *Cleaner) MissingReport(t *frame.Table) (*MissingReport, error) {
	rep := &MissingReport{Columns: t.Ncol(), Rows: t.Nrow()}
	if rep.Rows > 0 {
		for _, name := range t.Names() {
			miss, err := t.Missing(name)
			if err != nil {
				return nil, err
			}
			n := countTrue(miss)
			if n == 0 {
				continue
			}
			pct := 100 * float64(n) / float64(rep.Rows)
			rep.Stats = append(rep.Stats, MissingStat{
				Column:  name,
				Count:   n,
				Percent: math.RoundToEven(pct*10) / 10,
			})
		}
	}
	sort.SliceStable(rep.Stats, func(i, j int) bool {
		return rep.Stats[i].Percent > rep.Stats[j].Percent
	})
	c.log.Info(fmt.Sprintf("Your selected dataframe has %d columns. There are %d columns that have missing values.", rep.Columns, len(rep.Stats)),
		slog.Int("columns", rep.Columns),
		slog.Int("with_missing", len(rep.Stats)))
	return rep, nil
}

// ListMissing logs every column with missing values and returns, in table
// order, those whose missing percentage is below threshold. Columns at or
// above threshold need a heavier imputation strategy and are only logged.
func (c *Cleaner) ListMissing(t *frame.Table, threshold float64) ([]string, error) {
	var out []string
	for _, name := range t.Names() {
		miss, err := t.Missing(name)
		if err != nil {
			return nil, err
		}
		if len(miss) == 0 {
			continue
		}
		n := countTrue(miss)
		pct := float64(n) / float64(len(miss)) * 100
		if pct == 0 {
			continue
		}
		if pct < threshold {
			out = append(out, name)
		}
		kind, _ := t.Kind(name)
		c.log.Info(fmt.Sprintf("Column %s: %.2f%% missing values", name, pct),
			slog.String("column", name),
			slog.Float64("percent", pct),
			slog.String("kind", string(kind)))
	}
	return out, nil
}

// FillMissing replaces missing values in place: numeric columns get the
// column mean, categorical columns the most frequent value. All columns are
// checked before the table is touched, so an error leaves t unchanged.
func (c *Cleaner) FillMissing(t *frame.Table, columns []string) error {
	type fill struct {
		name    string
		numeric bool
		vals    []float64
		keys    []string
		miss    []bool
		mean    float64
		mode    string
	}
	plan := make([]fill, 0, len(columns))
	for _, name := range columns {
		kind, err := t.Kind(name)
		if err != nil {
			return err
		}
		f := fill{name: name, numeric: kind == frame.Numeric}
		if f.numeric {
			if f.vals, err = t.Floats(name); err != nil {
				return err
			}
			m, ok := meanOf(f.vals)
			if !ok {
				return noObservations(name)
			}
			f.mean = m
		} else {
			if f.keys, f.miss, err = t.Values(name); err != nil {
				return err
			}
			m, ok := modeOf(f.keys, f.miss)
			if !ok {
				return noObservations(name)
			}
			f.mode = m
		}
		plan = append(plan, f)
	}

	for _, f := range plan {
		if f.numeric {
			filled := 0
			for i, v := range f.vals {
				if math.IsNaN(v) {
					f.vals[i] = f.mean
					filled++
				}
			}
			if err := t.SetFloats(f.name, f.vals); err != nil {
				return err
			}
			c.log.Debug("filled with mean", slog.String("column", f.name), slog.Float64("value", f.mean), slog.Int("filled", filled))
			continue
		}
		filled := 0
		for i := range f.keys {
			if f.miss[i] {
				f.keys[i] = f.mode
				f.miss[i] = false
				filled++
			}
		}
		if err := t.SetStrings(f.name, f.keys, f.miss); err != nil {
			return err
		}
		c.log.Debug("filled with mode", slog.String("column", f.name), slog.String("value", f.mode), slog.Int("filled", filled))
	}
	return nil
}

func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}
