package clean

import (
	"log/slog"

	"github.com/KaramelBytes/tabclean/internal/frame"
)

// DropNearConstant removes every column whose most frequent value covers at
// least threshold percent of the rows. Missing cells count toward the row
// total but never toward a value. It returns the new table and the dropped
// names in table order. A zero-row table keeps its columns unless
// threshold <= 0.
func (c *Cleaner) DropNearConstant(t *frame.Table, threshold float64) (*frame.Table, []string, error) {
	rows := float64(t.Nrow())
	var drop []string
	for _, name := range t.Names() {
		keys, miss, err := t.Values(name)
		if err != nil {
			return nil, nil, err
		}
		top := topCount(keys, miss)
		// A zero-row table has no share to measure.
		if rows == 0 && threshold > 0 {
			continue
		}
		if float64(top) >= rows*(threshold/100) {
			drop = append(drop, name)
			c.log.Debug("near-constant column", slog.String("column", name), slog.Int("top_count", top), slog.Int("rows", t.Nrow()))
		}
	}
	out, err := t.Drop(drop...)
	if err != nil {
		return nil, nil, err
	}
	return out, drop, nil
}
