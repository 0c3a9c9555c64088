package recipe

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/KaramelBytes/tabclean/internal/clean"
	"github.com/KaramelBytes/tabclean/internal/frame"
)

// Defaults fill in step parameters a recipe leaves out.
type Defaults struct {
	MissingThreshold      float64
	CollinearThreshold    float64
	NearConstantThreshold float64
	OutlierThreshold      float64
	Multiplier            float64
	DropPercent           float64
}

// DefaultDefaults mirrors the configuration defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		MissingThreshold:      20,
		CollinearThreshold:    0.9,
		NearConstantThreshold: 95,
		OutlierThreshold:      clean.DefaultOutlierThreshold,
		Multiplier:            clean.DefaultMultiplier,
		DropPercent:           clean.DefaultDropPercent,
	}
}

// StepResult is the effect of one step on the table.
type StepResult struct {
	Op         string
	RowsBefore int
	RowsAfter  int
	ColsBefore int
	ColsAfter  int
	// Columns dropped or filled by the step.
	Dropped []string
	Filled  []string
	// Rows removed by remove-outliers.
	Removed  int
	Outliers []clean.OutlierStat
}

// Result is the outcome of one recipe run.
type Result struct {
	ID    uuid.UUID
	Name  string
	Table *frame.Table
	Steps []StepResult
}

// Runner executes recipes.
type Runner struct {
	log      *slog.Logger
	defaults Defaults
}

// NewRunner returns a Runner logging to logger (nil discards).
func NewRunner(logger *slog.Logger, d Defaults) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{log: logger, defaults: d}
}

// Run applies every step of r to a copy of t. The input table is never
// modified. The first failing step aborts the run.
func (rn *Runner) Run(t *frame.Table, r *Recipe) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	res := &Result{ID: uuid.New(), Name: r.Name}
	log := rn.log.With(slog.String("run_id", res.ID.String()))
	c := clean.New(log)
	cur := t.Clone()
	log.Info("recipe started", slog.String("recipe", r.Name), slog.Int("steps", len(r.Steps)))
	for i, s := range r.Steps {
		sr := StepResult{Op: s.Op, RowsBefore: cur.Nrow(), ColsBefore: cur.Ncol()}
		next, err := rn.apply(c, cur, r, s, &sr)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.Op, err)
		}
		cur = next
		sr.RowsAfter, sr.ColsAfter = cur.Nrow(), cur.Ncol()
		res.Steps = append(res.Steps, sr)
		log.Info("step done",
			slog.Int("step", i+1),
			slog.String("op", s.Op),
			slog.Int("rows", sr.RowsAfter),
			slog.Int("cols", sr.ColsAfter))
	}
	res.Table = cur
	return res, nil
}

func (rn *Runner) apply(c *clean.Cleaner, t *frame.Table, r *Recipe, s Step, sr *StepResult) (*frame.Table, error) {
	switch s.Op {
	case OpFillAuto:
		cols, err := c.ListMissing(t, or(s.Threshold, rn.defaults.MissingThreshold))
		if err != nil {
			return nil, err
		}
		if err := c.FillMissing(t, cols); err != nil {
			return nil, err
		}
		sr.Filled = cols
		return t, nil
	case OpFill:
		if err := c.FillMissing(t, s.Columns); err != nil {
			return nil, err
		}
		sr.Filled = s.Columns
		return t, nil
	case OpDropConstant:
		out, dropped, err := c.DropNearConstant(t, or(s.Threshold, rn.defaults.NearConstantThreshold))
		if err != nil {
			return nil, err
		}
		sr.Dropped = dropped
		return out, nil
	case OpDropCollinear:
		target := s.Target
		if target == "" {
			target = r.Target
		}
		res, err := c.DropCollinear(t, clean.CollinearOptions{
			Threshold: or(s.Threshold, rn.defaults.CollinearThreshold),
			Target:    target,
			Verbose:   s.Verbose,
			AbsTarget: s.AbsTarget,
		})
		if err != nil {
			return nil, err
		}
		sr.Dropped = res.Dropped
		return res.Table, nil
	case OpRemoveOutliers:
		res, err := c.RemoveOutliers(t, rn.columns(t, r, s), clean.RemoveOptions{
			Multiplier:  or(s.Multiplier, rn.defaults.Multiplier),
			DropPercent: or(s.DropPercent, rn.defaults.DropPercent),
			Snapshot:    s.Snapshot,
		})
		if err != nil {
			return nil, err
		}
		for _, cr := range res.Removed {
			sr.Removed += cr.Removed
		}
		return res.Table, nil
	case OpSurveyOutliers:
		stats, _, err := c.SurveyOutliers(t, rn.columns(t, r, s), or(s.Threshold, rn.defaults.OutlierThreshold))
		if err != nil {
			return nil, err
		}
		sr.Outliers = stats
		return t, nil
	default:
		return nil, fmt.Errorf("unknown op %q", s.Op)
	}
}

// columns returns the step's columns, or every numeric column except the
// recipe target when none are listed.
func (rn *Runner) columns(t *frame.Table, r *Recipe, s Step) []string {
	if len(s.Columns) > 0 {
		return s.Columns
	}
	var out []string
	for _, name := range t.NumericNames() {
		if name != r.Target {
			out = append(out, name)
		}
	}
	return out
}

func or(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}
