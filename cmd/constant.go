package cmd

import (
	"strings"

	cfgpkg "github.com/KaramelBytes/tabclean/internal/config"
	"github.com/spf13/cobra"
)

var constThreshold float64

var constantCmd = &cobra.Command{
	Use:   "constant <file>",
	Short: "Drop columns dominated by a single value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		threshold := setting(cmd, "threshold", constThreshold, func(c *cfgpkg.Global) float64 { return c.NearConstantThreshold })
		out, dropped, err := newCleaner().DropNearConstant(t, threshold)
		if err != nil {
			return err
		}
		if len(dropped) == 0 {
			notef(cmd, "✓ No near-constant columns at %g%%\n", threshold)
		} else {
			notef(cmd, "✓ Dropped %d near-constant column(s): %s\n", len(dropped), strings.Join(dropped, ", "))
		}
		return writeTable(cmd, out)
	},
}

func init() {
	rootCmd.AddCommand(constantCmd)
	addInputFlags(constantCmd)
	addOutputFlag(constantCmd, "cleaned CSV")
	constantCmd.Flags().Float64Var(&constThreshold, "threshold", 95, "share of rows (percent) the most frequent value must reach (overrides config)")
}
