package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/tabclean/internal/config"
	"github.com/spf13/cobra"
)

var (
	missThreshold float64

	fillColumns   []string
	fillAuto      bool
	fillThreshold float64
)

var missingCmd = &cobra.Command{
	Use:   "missing <file>",
	Short: "Report missing values per column and list auto-fill candidates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		threshold := setting(cmd, "threshold", missThreshold, func(c *cfgpkg.Global) float64 { return c.MissingThreshold })
		c := newCleaner()
		rep, err := c.MissingReport(t)
		if err != nil {
			return err
		}
		cols, err := c.ListMissing(t, threshold)
		if err != nil {
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Rows: %d\nColumns: %d\n", rep.Rows, rep.Columns)
		if len(rep.Stats) == 0 {
			b.WriteString("No missing values\n")
		} else {
			fmt.Fprintf(&b, "\n%-24s %8s %8s\n", "column", "missing", "percent")
			for _, s := range rep.Stats {
				fmt.Fprintf(&b, "%-24s %8d %7.1f%%\n", s.Column, s.Count, s.Percent)
			}
		}
		if len(cols) > 0 {
			fmt.Fprintf(&b, "\nAuto-fill candidates (< %g%% missing): %s\n", threshold, strings.Join(cols, ", "))
		}
		return writeText(cmd, b.String())
	},
}

var fillCmd = &cobra.Command{
	Use:   "fill <file>",
	Short: "Fill missing values with the column mean (numeric) or mode (categorical)",
	Long: `Fill missing values in the named columns, or with --auto in every column
whose missing share is below --threshold percent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if fillAuto == (len(fillColumns) > 0) {
			return fmt.Errorf("specify exactly one of --columns or --auto")
		}
		t, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		c := newCleaner()
		cols := fillColumns
		if fillAuto {
			threshold := setting(cmd, "threshold", fillThreshold, func(c *cfgpkg.Global) float64 { return c.MissingThreshold })
			if cols, err = c.ListMissing(t, threshold); err != nil {
				return err
			}
		}
		if err := c.FillMissing(t, cols); err != nil {
			return err
		}
		if len(cols) == 0 {
			notef(cmd, "⚠ Warning: no columns to fill\n")
		} else {
			notef(cmd, "✓ Filled %s\n", strings.Join(cols, ", "))
		}
		return writeTable(cmd, t)
	},
}

func init() {
	rootCmd.AddCommand(missingCmd)
	addInputFlags(missingCmd)
	addOutputFlag(missingCmd, "report")
	missingCmd.Flags().Float64Var(&missThreshold, "threshold", 20, "missing percentage below which a column is an auto-fill candidate (overrides config)")

	rootCmd.AddCommand(fillCmd)
	addInputFlags(fillCmd)
	addOutputFlag(fillCmd, "cleaned CSV")
	fillCmd.Flags().StringSliceVar(&fillColumns, "columns", nil, "comma-separated columns to fill")
	fillCmd.Flags().BoolVar(&fillAuto, "auto", false, "fill every column whose missing share is below --threshold")
	fillCmd.Flags().Float64Var(&fillThreshold, "threshold", 20, "missing percentage cut-off for --auto (overrides config)")
}
