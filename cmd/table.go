package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/tabclean/internal/clean"
	cfgpkg "github.com/KaramelBytes/tabclean/internal/config"
	"github.com/KaramelBytes/tabclean/internal/frame"
	"github.com/KaramelBytes/tabclean/internal/recipe"
	"github.com/KaramelBytes/tabclean/internal/utils"
	"github.com/spf13/cobra"
)

// Input/output flags shared by the table commands.
var (
	inDelimiter  string
	inDecimal    string
	inThousands  string
	inSheetName  string
	inSheetIndex int
	inMaxRows    int
	inNormalize  bool
	outputPath   string
)

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&inDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (sniffed if omitted)")
	c.Flags().StringVar(&inDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	c.Flags().StringVar(&inThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	c.Flags().StringVar(&inSheetName, "sheet-name", "", "XLSX: sheet name to load")
	c.Flags().IntVar(&inSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	c.Flags().IntVar(&inMaxRows, "max-rows", 0, "maximum rows to load (0 = unlimited)")
	c.Flags().BoolVar(&inNormalize, "normalize-units", false, "convert g/L and ug/L to mg/L and °F to °C while loading")
}

func addOutputFlag(c *cobra.Command, what string) {
	c.Flags().StringVarP(&outputPath, "output", "o", "", "path to write the "+what+" (stdout if omitted)")
}

// loadOptions merges the input flags over the configured parsing settings.
func loadOptions(cmd *cobra.Command) (frame.Options, error) {
	opt := frame.DefaultOptions()
	opt.MaxRows = inMaxRows
	opt.UnitNormalize = inNormalize

	delim, dec, thou := inDelimiter, inDecimal, inThousands
	if cfg != nil {
		if !cmd.Flags().Changed("delimiter") {
			delim = cfg.Delimiter
		}
		if !cmd.Flags().Changed("decimal") {
			dec = cfg.Decimal
		}
		if !cmd.Flags().Changed("thousands") {
			thou = cfg.Thousands
		}
	}
	d, err := cfgpkg.ParseDelimiter(delim)
	if err != nil {
		return opt, fmt.Errorf("--delimiter: %w", err)
	}
	opt.Delimiter = d

	switch strings.ToLower(strings.TrimSpace(dec)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", dec)
	}
	switch strings.ToLower(thou) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", thou)
	}
	return opt, nil
}

func loadTable(cmd *cobra.Command, path string) (*frame.Table, error) {
	opt, err := loadOptions(cmd)
	if err != nil {
		return nil, err
	}
	t, err := frame.Load(path, opt, inSheetName, inSheetIndex)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded table", "file", path, "rows", t.Nrow(), "cols", t.Ncol())
	return t, nil
}

// writeTable writes t as CSV to --output, or to stdout when no path is set.
func writeTable(cmd *cobra.Command, t *frame.Table) error {
	if outputPath == "" {
		return t.WriteCSV(cmd.OutOrStdout())
	}
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(outputPath, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	notef(cmd, "✓ Wrote %d rows x %d columns to %s\n", t.Nrow(), t.Ncol(), outputPath)
	return nil
}

// writeText writes a report to --output or stdout.
func writeText(cmd *cobra.Command, text string) error {
	if outputPath == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	if err := utils.SafeWriteFile(outputPath, []byte(text)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	notef(cmd, "✓ Wrote report to %s\n", outputPath)
	return nil
}

// notef prints status lines to stderr so stdout stays a clean table.
func notef(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}

func newCleaner() *clean.Cleaner { return clean.New(logger) }

// setting returns the flag value when the user set it, else the configured one.
func setting[T any](cmd *cobra.Command, flag string, flagVal T, fromCfg func(*cfgpkg.Global) T) T {
	if cmd.Flags().Changed(flag) || cfg == nil {
		return flagVal
	}
	return fromCfg(cfg)
}

// recipeDefaults maps the loaded configuration onto recipe step defaults.
func recipeDefaults() recipe.Defaults {
	d := recipe.DefaultDefaults()
	if cfg == nil {
		return d
	}
	d.MissingThreshold = cfg.MissingThreshold
	d.CollinearThreshold = cfg.CollinearThreshold
	d.NearConstantThreshold = cfg.NearConstantThreshold
	d.OutlierThreshold = cfg.OutlierThreshold
	d.Multiplier = cfg.TukeyMultiplier
	d.DropPercent = cfg.DropPercent
	return d
}
