package clean

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/KaramelBytes/tabclean/internal/frame"
)

// CollinearOptions configures DropCollinear.
type CollinearOptions struct {
	// Threshold is the |r| at or above which a feature pair counts as collinear.
	Threshold float64
	// Target is excluded from the feature matrix and decides which feature
	// of a pair survives.
	Target string
	// Verbose logs every collinear pair and the drop decision.
	Verbose bool
	// AbsTarget compares target correlations by magnitude. The default
	// compares signed values, so a strongly negative feature loses to a
	// weakly positive one.
	AbsTarget bool
}

// CorrelatedPair is one collinear feature pair and the decision taken.
type CorrelatedPair struct {
	A, B string
	R    float64
	// Correlation of A and B with the target.
	TargetA, TargetB float64
	Dropped          string
}

// CollinearResult is the pruned table and an account of the pruning.
type CollinearResult struct {
	Table   *frame.Table
	Pairs   []CorrelatedPair
	Dropped []string
	Kept    []string
}

// DropCollinear removes one feature of every numeric pair whose Pearson
// correlation reaches opt.Threshold, dropping the one less correlated with
// the target. Pairs are visited once each, column by column over the upper
// triangle of the correlation matrix; a feature dropped by an earlier pair
// still takes part in later comparisons. Categorical columns are never
// candidates and the target is never dropped.
func (c *Cleaner) DropCollinear(t *frame.Table, opt CollinearOptions) (*CollinearResult, error) {
	target, err := t.Floats(opt.Target)
	if err != nil {
		return nil, err
	}
	var features []string
	for _, name := range t.NumericNames() {
		if name != opt.Target {
			features = append(features, name)
		}
	}
	targetCorr := make([]float64, len(features))
	for i, name := range features {
		v, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		targetCorr[i] = pearson(v, target)
	}

	res := &CollinearResult{}
	seen := map[string]bool{}
	if len(features) >= 2 {
		m, err := correlationMatrix(t, features)
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(features)-1; i++ {
			for j := 0; j <= i; j++ {
				r := m.At(j, i+1)
				if !(math.Abs(r) >= opt.Threshold) {
					continue
				}
				col, row := features[i+1], features[j]
				colCorr, rowCorr := targetCorr[i+1], targetCorr[j]
				p := CorrelatedPair{A: col, B: row, R: r, TargetA: colCorr, TargetB: rowCorr}
				if opt.Verbose {
					c.log.Info(fmt.Sprintf("%s | %s | %.2f", col, row, math.Abs(r)),
						slog.String("a", col), slog.String("b", row), slog.Float64("r", r))
					c.log.Info(fmt.Sprintf("%s: %.3f", col, colCorr), slog.String("column", col), slog.Float64("target_r", colCorr))
					c.log.Info(fmt.Sprintf("%s: %.3f", row, rowCorr), slog.String("column", row), slog.Float64("target_r", rowCorr))
				}
				if opt.AbsTarget {
					colCorr, rowCorr = math.Abs(colCorr), math.Abs(rowCorr)
				}
				if colCorr < rowCorr {
					p.Dropped = col
				} else {
					p.Dropped = row
				}
				if opt.Verbose {
					c.log.Info("dropped: "+p.Dropped, slog.String("column", p.Dropped))
				}
				res.Pairs = append(res.Pairs, p)
				if !seen[p.Dropped] {
					seen[p.Dropped] = true
					res.Dropped = append(res.Dropped, p.Dropped)
				}
			}
		}
	}

	out, err := t.Drop(res.Dropped...)
	if err != nil {
		return nil, err
	}
	res.Table = out
	res.Kept = out.Names()
	c.log.Info(fmt.Sprintf("dropped columns: %v", res.Dropped), slog.Any("dropped", res.Dropped))
	c.log.Info(fmt.Sprintf("used columns: %v", res.Kept), slog.Any("kept", res.Kept))
	return res, nil
}
