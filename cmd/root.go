package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/tabclean/internal/config"
	"github.com/KaramelBytes/tabclean/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Logger shared by every command; built before each run.
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tabclean",
	Short: "tabclean: clean tabular data before modeling",
	Long: `tabclean loads a CSV/TSV/XLSX table and cleans it: missing value reports and
imputation, collinear feature pruning, near-constant column removal, and
Tukey (IQR) outlier survey and removal. Cleaned tables are written as CSV.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, format := "info", "text"
		if cfg != nil {
			level, format = cfg.LogLevel, cfg.LogFormat
		}
		if debug {
			level = "debug"
		}
		if cmd.Flags().Changed("log-format") {
			format = logFormat
		}
		l, err := logging.New(cmd.ErrOrStderr(), level, format)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tabclean/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text | json")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
}
