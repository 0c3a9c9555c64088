package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tabclean/internal/clean"
	cfgpkg "github.com/KaramelBytes/tabclean/internal/config"
	"github.com/spf13/cobra"
)

var (
	outColumns   []string
	outThreshold float64

	rmColumns     []string
	rmMultiplier  float64
	rmDropPercent float64
	rmSnapshot    bool
)

var outliersCmd = &cobra.Command{
	Use:   "outliers <file>",
	Short: "Survey the share of Tukey (1.5*IQR) outliers per numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		cols := outColumns
		if len(cols) == 0 {
			cols = t.NumericNames()
		}
		threshold := setting(cmd, "threshold", outThreshold, func(c *cfgpkg.Global) float64 { return c.OutlierThreshold })
		stats, safe, err := newCleaner().SurveyOutliers(t, cols, threshold)
		if err != nil {
			return err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%-24s %8s %8s  %s\n", "column", "outliers", "percent", "bounds")
		for _, s := range stats {
			fmt.Fprintf(&b, "%-24s %8d %7.2f%%  %s\n", s.Column, s.Count, s.Percent, s.Bounds)
		}
		fmt.Fprintf(&b, "\nSafe to clean (< %g%% outliers): %s\n", threshold, strings.Join(safe, ", "))
		return writeText(cmd, b.String())
	},
}

var removeOutliersCmd = &cobra.Command{
	Use:   "remove-outliers <file>",
	Short: "Remove Tukey outlier rows column by column",
	Long: `Remove rows whose value lies outside [Q1-k*IQR, Q3+k*IQR], one column at a
time in the order given. --drop-percent removes that share of each column's
outliers from each tail of the value-sorted outlier list. Fences are
recomputed on the filtered table for every column unless --snapshot is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		opt := clean.RemoveOptions{
			Multiplier:  setting(cmd, "multiplier", rmMultiplier, func(c *cfgpkg.Global) float64 { return c.TukeyMultiplier }),
			DropPercent: setting(cmd, "drop-percent", rmDropPercent, func(c *cfgpkg.Global) float64 { return c.DropPercent }),
			Snapshot:    setting(cmd, "snapshot", rmSnapshot, func(c *cfgpkg.Global) bool { return c.OutlierSnapshot }),
		}
		res, err := newCleaner().RemoveOutliers(t, rmColumns, opt)
		if err != nil {
			return err
		}
		for _, r := range res.Removed {
			notef(cmd, "✓ %s: removed %d of %d outliers outside %s\n", r.Column, r.Removed, r.Outliers, r.Bounds)
		}
		return writeTable(cmd, res.Table)
	},
}

func init() {
	rootCmd.AddCommand(outliersCmd)
	addInputFlags(outliersCmd)
	addOutputFlag(outliersCmd, "report")
	outliersCmd.Flags().StringSliceVar(&outColumns, "columns", nil, "comma-separated numeric columns (all numeric columns if omitted)")
	outliersCmd.Flags().Float64Var(&outThreshold, "threshold", clean.DefaultOutlierThreshold, "outlier percentage below which a column is safe to clean (overrides config)")

	rootCmd.AddCommand(removeOutliersCmd)
	addInputFlags(removeOutliersCmd)
	addOutputFlag(removeOutliersCmd, "cleaned CSV")
	removeOutliersCmd.Flags().StringSliceVar(&rmColumns, "columns", nil, "comma-separated numeric columns, processed in order")
	removeOutliersCmd.Flags().Float64Var(&rmMultiplier, "multiplier", clean.DefaultMultiplier, "Tukey fence multiplier k (overrides config)")
	removeOutliersCmd.Flags().Float64Var(&rmDropPercent, "drop-percent", clean.DefaultDropPercent, "percent of outliers removed from each tail (overrides config)")
	removeOutliersCmd.Flags().BoolVar(&rmSnapshot, "snapshot", false, "compute every column's fences on the input table up front")
	_ = removeOutliersCmd.MarkFlagRequired("columns")
}
