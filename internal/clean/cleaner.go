// Package clean holds the table cleaning operations: missing value
// reporting and imputation, collinear feature pruning, near-constant column
// removal, and Tukey (IQR) outlier survey and removal.
//
// Every operation is a method on Cleaner, which carries nothing but a
// logger. Operations other than FillMissing return new tables and leave
// their input untouched; FillMissing mutates the table it is given.
// Threshold arguments are used as given and never range-checked.
package clean

import (
	"errors"
	"io"
	"log/slog"

	"github.com/KaramelBytes/tabclean/internal/frame"
)

// ErrNoObservations indicates a statistic over a column with no present values.
var ErrNoObservations = errors.New("clean: column has no non-missing values")

// Cleaner runs cleaning operations and reports progress through its logger.
type Cleaner struct {
	log *slog.Logger
}

// New returns a Cleaner logging to logger. A nil logger discards output.
func New(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cleaner{log: logger.With(slog.String("component", "clean"))}
}

func noObservations(column string) error {
	return &frame.ColumnError{Column: column, Err: ErrNoObservations}
}
