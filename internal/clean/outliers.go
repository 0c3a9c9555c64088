package clean

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/KaramelBytes/tabclean/internal/frame"
)

const (
	// DefaultOutlierThreshold is the survey cut-off, in percent of rows.
	DefaultOutlierThreshold = 10.0
	// DefaultMultiplier is Tukey's fence multiplier.
	DefaultMultiplier = 1.5
	// DefaultDropPercent removes every detected outlier.
	DefaultDropPercent = 100.0
)

// OutlierStat is the Tukey outlier share of one column.
type OutlierStat struct {
	Column  string
	Bounds  Bounds
	Count   int
	Total   int
	Percent float64
}

// SurveyOutliers measures, for each column, the share of rows outside
// the 1.5*IQR fences and returns all stats plus the columns under threshold
// percent, which are considered safe to clean.
func (c *Cleaner) SurveyOutliers(t *frame.Table, columns []string, threshold float64) ([]OutlierStat, []string, error) {
	var stats []OutlierStat
	var safe []string
	for _, name := range columns {
		vals, err := t.Floats(name)
		if err != nil {
			return nil, nil, err
		}
		b, err := TukeyBounds(vals, DefaultMultiplier)
		if err != nil {
			return nil, nil, noObservations(name)
		}
		st := OutlierStat{Column: name, Bounds: b, Total: len(vals)}
		for _, v := range vals {
			if b.Outside(v) {
				st.Count++
			}
		}
		if st.Total > 0 {
			st.Percent = float64(st.Count) / float64(st.Total) * 100
		}
		if st.Percent < threshold {
			safe = append(safe, name)
		}
		c.log.Info(fmt.Sprintf("%s: %.2f%%", name, st.Percent),
			slog.String("column", name),
			slog.Float64("percent", st.Percent),
			slog.Int("outliers", st.Count))
		stats = append(stats, st)
	}
	return stats, safe, nil
}

// RemoveOptions configures RemoveOutliers.
type RemoveOptions struct {
	// Multiplier is the Tukey fence multiplier k.
	Multiplier float64
	// DropPercent is the share of each column's outliers to remove from
	// each tail of the value-sorted outlier list. 100 removes all.
	DropPercent float64
	// Snapshot computes every column's fences on the input table up front
	// instead of on the table as filtered by the preceding columns.
	Snapshot bool
}

// DefaultRemoveOptions returns k=1.5, remove every outlier, sequential fences.
func DefaultRemoveOptions() RemoveOptions {
	return RemoveOptions{Multiplier: DefaultMultiplier, DropPercent: DefaultDropPercent}
}

// ColumnRemoval records what RemoveOutliers did for one column.
type ColumnRemoval struct {
	Column   string
	Bounds   Bounds
	Outliers int
	Removed  int
}

// RemovalResult is the filtered table and the per-column account.
type RemovalResult struct {
	Table   *frame.Table
	Removed []ColumnRemoval
}

// RemoveOutliers drops Tukey outlier rows column by column, in the order
// given. For each column the outliers are sorted by value and the lowest n
// and highest n are removed, n = floor(outliers*DropPercent/100); with few
// outliers the two ends overlap and fewer than 2n rows go. Rows are
// re-indexed after every column, and unless opt.Snapshot is set later
// columns see the already filtered table, so column order matters.
func (c *Cleaner) RemoveOutliers(t *frame.Table, columns []string, opt RemoveOptions) (*RemovalResult, error) {
	bounds := make([]Bounds, len(columns))
	for i, name := range columns {
		vals, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		if !opt.Snapshot {
			continue
		}
		if bounds[i], err = TukeyBounds(vals, opt.Multiplier); err != nil {
			return nil, noObservations(name)
		}
	}

	res := &RemovalResult{}
	cur := t.Clone()
	for i, name := range columns {
		vals, err := cur.Floats(name)
		if err != nil {
			return nil, err
		}
		b := bounds[i]
		if !opt.Snapshot {
			if b, err = TukeyBounds(vals, opt.Multiplier); err != nil {
				return nil, noObservations(name)
			}
		}
		var hits []int
		for r, v := range vals {
			if b.Outside(v) {
				hits = append(hits, r)
			}
		}
		sort.SliceStable(hits, func(a, z int) bool { return vals[hits[a]] < vals[hits[z]] })

		n := int(math.Floor(float64(len(hits)) * opt.DropPercent / 100))
		if n > len(hits) {
			n = len(hits)
		}
		if n < 0 {
			n = 0
		}
		remove := make(map[int]bool, 2*n)
		for _, r := range hits[:n] {
			remove[r] = true
		}
		for _, r := range hits[len(hits)-n:] {
			remove[r] = true
		}
		keep := make([]int, 0, len(vals)-len(remove))
		for r := range vals {
			if !remove[r] {
				keep = append(keep, r)
			}
		}
		if len(remove) > 0 {
			if cur, err = cur.Subset(keep); err != nil {
				return nil, err
			}
		}
		res.Removed = append(res.Removed, ColumnRemoval{Column: name, Bounds: b, Outliers: len(hits), Removed: len(remove)})
		c.log.Info("removed outliers",
			slog.String("column", name),
			slog.String("bounds", b.String()),
			slog.Int("outliers", len(hits)),
			slog.Int("removed", len(remove)),
			slog.Int("rows", cur.Nrow()))
	}
	res.Table = cur
	return res, nil
}
