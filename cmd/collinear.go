package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tabclean/internal/clean"
	cfgpkg "github.com/KaramelBytes/tabclean/internal/config"
	"github.com/spf13/cobra"
)

var (
	colTarget    string
	colThreshold float64
	colVerbose   bool
	colAbsTarget bool
)

var collinearCmd = &cobra.Command{
	Use:   "collinear <file>",
	Short: "Drop one feature of every highly correlated pair, keeping the one closer to the target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := clean.CollinearOptions{
			Target:    setting(cmd, "target", colTarget, func(c *cfgpkg.Global) string { return c.Target }),
			Threshold: setting(cmd, "threshold", colThreshold, func(c *cfgpkg.Global) float64 { return c.CollinearThreshold }),
			Verbose:   setting(cmd, "verbose", colVerbose, func(c *cfgpkg.Global) bool { return c.Verbose }),
			AbsTarget: setting(cmd, "abs-target", colAbsTarget, func(c *cfgpkg.Global) bool { return c.AbsTarget }),
		}
		if opt.Target == "" {
			return fmt.Errorf("--target is required (or set 'target' in config)")
		}
		t, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		res, err := newCleaner().DropCollinear(t, opt)
		if err != nil {
			return err
		}
		if len(res.Dropped) == 0 {
			notef(cmd, "✓ No collinear features at |r| >= %g\n", opt.Threshold)
		} else {
			notef(cmd, "✓ Dropped %d collinear feature(s): %s\n", len(res.Dropped), strings.Join(res.Dropped, ", "))
		}
		return writeTable(cmd, res.Table)
	},
}

func init() {
	rootCmd.AddCommand(collinearCmd)
	addInputFlags(collinearCmd)
	addOutputFlag(collinearCmd, "cleaned CSV")
	collinearCmd.Flags().StringVar(&colTarget, "target", "", "target column (overrides config)")
	collinearCmd.Flags().Float64Var(&colThreshold, "threshold", 0.9, "absolute correlation at which a pair counts as collinear (overrides config)")
	collinearCmd.Flags().BoolVar(&colVerbose, "verbose", false, "log every collinear pair and decision")
	collinearCmd.Flags().BoolVar(&colAbsTarget, "abs-target", false, "compare target correlations by magnitude instead of signed value")
}
