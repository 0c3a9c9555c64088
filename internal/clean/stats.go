package clean

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/tabclean/internal/frame"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Bounds is the closed inlier interval of a Tukey fence.
type Bounds struct {
	Lower float64
	Upper float64
}

// Outside reports whether v lies strictly outside the bounds. Missing
// values (NaN) are never outside.
func (b Bounds) Outside(v float64) bool {
	return v < b.Lower || v > b.Upper
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%.4g, %.4g]", b.Lower, b.Upper)
}

// TukeyBounds returns [Q1-k*IQR, Q3+k*IQR] over the non-missing values.
func TukeyBounds(vals []float64, k float64) (Bounds, error) {
	cp := presentValues(vals)
	if len(cp) == 0 {
		return Bounds{}, ErrNoObservations
	}
	sort.Float64s(cp)
	q1 := quantile(cp, 0.25)
	q3 := quantile(cp, 0.75)
	iqr := q3 - q1
	return Bounds{Lower: q1 - k*iqr, Upper: q3 + k*iqr}, nil
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func presentValues(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// meanOf averages the non-missing values.
func meanOf(vals []float64) (float64, bool) {
	p := presentValues(vals)
	if len(p) == 0 {
		return 0, false
	}
	return stat.Mean(p, nil), true
}

// modeOf returns the most frequent present key. Ties go to the smallest
// key in sort order.
func modeOf(keys []string, missing []bool) (string, bool) {
	counts := map[string]int{}
	for i, k := range keys {
		if !missing[i] {
			counts[k]++
		}
	}
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best, bestN > 0
}

// topCount returns how often the most frequent present key occurs.
func topCount(keys []string, missing []bool) int {
	counts := map[string]int{}
	top := 0
	for i, k := range keys {
		if missing[i] {
			continue
		}
		counts[k]++
		if counts[k] > top {
			top = counts[k]
		}
	}
	return top
}

// pearson correlates x and y over the rows where both are present. Fewer
// than two complete rows or a constant input yields NaN.
func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

// correlationMatrix builds the symmetric pairwise-complete Pearson matrix
// for the named numeric columns.
func correlationMatrix(t *frame.Table, names []string) (*mat.SymDense, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("correlation matrix: no columns")
	}
	cols := make([][]float64, len(names))
	for i, name := range names {
		v, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		cols[i] = v
	}
	m := mat.NewSymDense(len(names), nil)
	for i := range names {
		m.SetSym(i, i, 1)
		for j := 0; j < i; j++ {
			m.SetSym(i, j, pearson(cols[i], cols[j]))
		}
	}
	return m, nil
}
