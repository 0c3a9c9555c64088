package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/tabclean/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tabclean configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "missing_threshold: %g\n", cfg.MissingThreshold)
		fmt.Fprintf(out, "collinear_threshold: %g\n", cfg.CollinearThreshold)
		if cfg.Target != "" {
			fmt.Fprintf(out, "target: %s\n", cfg.Target)
		}
		fmt.Fprintf(out, "abs_target: %t\n", cfg.AbsTarget)
		fmt.Fprintf(out, "verbose: %t\n", cfg.Verbose)
		fmt.Fprintf(out, "near_constant_threshold: %g\n", cfg.NearConstantThreshold)
		fmt.Fprintf(out, "outlier_threshold: %g\n", cfg.OutlierThreshold)
		fmt.Fprintf(out, "tukey_multiplier: %g\n", cfg.TukeyMultiplier)
		fmt.Fprintf(out, "drop_percent: %g\n", cfg.DropPercent)
		fmt.Fprintf(out, "outlier_snapshot: %t\n", cfg.OutlierSnapshot)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		for _, kv := range [][2]string{{"delimiter", cfg.Delimiter}, {"decimal", cfg.Decimal}, {"thousands", cfg.Thousands}} {
			if kv[1] != "" {
				fmt.Fprintf(out, "%s: %q\n", kv[0], kv[1])
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		floatKeys := map[string]*float64{
			"missing_threshold":       &cfg.MissingThreshold,
			"collinear_threshold":     &cfg.CollinearThreshold,
			"near_constant_threshold": &cfg.NearConstantThreshold,
			"outlier_threshold":       &cfg.OutlierThreshold,
			"tukey_multiplier":        &cfg.TukeyMultiplier,
			"drop_percent":            &cfg.DropPercent,
		}
		boolKeys := map[string]*bool{
			"abs_target":       &cfg.AbsTarget,
			"verbose":          &cfg.Verbose,
			"outlier_snapshot": &cfg.OutlierSnapshot,
		}
		stringKeys := map[string]*string{
			"target":     &cfg.Target,
			"log_level":  &cfg.LogLevel,
			"log_format": &cfg.LogFormat,
			"delimiter":  &cfg.Delimiter,
			"decimal":    &cfg.Decimal,
			"thousands":  &cfg.Thousands,
		}
		if p, ok := floatKeys[key]; ok {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for %s: %v", key, val)
			}
			*p = f
		} else if p, ok := boolKeys[key]; ok {
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			*p = b
		} else if p, ok := stringKeys[key]; ok {
			*p = val
		} else {
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
