package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tabclean/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Missing values
	MissingThreshold float64 `mapstructure:"missing_threshold" yaml:"missing_threshold"`

	// Collinear pruning
	CollinearThreshold float64 `mapstructure:"collinear_threshold" yaml:"collinear_threshold"`
	AbsTarget          bool    `mapstructure:"abs_target" yaml:"abs_target"`
	Target             string  `mapstructure:"target" yaml:"target"`
	Verbose            bool    `mapstructure:"verbose" yaml:"verbose"`

	NearConstantThreshold float64 `mapstructure:"near_constant_threshold" yaml:"near_constant_threshold"`

	// Outliers
	OutlierThreshold float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
	TukeyMultiplier  float64 `mapstructure:"tukey_multiplier" yaml:"tukey_multiplier"`
	DropPercent      float64 `mapstructure:"drop_percent" yaml:"drop_percent"`
	OutlierSnapshot  bool    `mapstructure:"outlier_snapshot" yaml:"outlier_snapshot"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"omitempty,oneof=text json"`

	// Input parsing; empty means auto-detect.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter" validate:"delimiter"`
	Decimal   string `mapstructure:"decimal" yaml:"decimal"`
	Thousands string `mapstructure:"thousands" yaml:"thousands"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		_, err := ParseDelimiter(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseDelimiter maps a configured delimiter to a rune. Empty means sniff.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",", ";", "|":
		return rune(s[0]), nil
	case "tab", "\\t", "\t":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q (use , ; | or tab)", s)
	}
}

// Validate checks the enumerated settings. Numeric thresholds are passed
// through unchecked.
func (c *Global) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				if fe.Tag() == "delimiter" {
					msgs = append(msgs, fmt.Sprintf("%s=%q is not a supported delimiter", fe.Field(), fe.Value()))
					continue
				}
				msgs = append(msgs, fmt.Sprintf("%s=%q is not one of [%s]", fe.Field(), fe.Value(), fe.Param()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tabclean"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tabclean/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABCLEAN")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// A named file that does not exist yet is fine; "config set" creates it.
		if _, err := os.Stat(cfgFile); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("missing_threshold", 20.0)
	v.SetDefault("collinear_threshold", 0.9)
	v.SetDefault("abs_target", false)
	v.SetDefault("target", "")
	v.SetDefault("verbose", false)
	v.SetDefault("near_constant_threshold", 95.0)
	v.SetDefault("outlier_threshold", 10.0)
	v.SetDefault("tukey_multiplier", 1.5)
	v.SetDefault("drop_percent", 100.0)
	v.SetDefault("outlier_snapshot", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal", "")
	v.SetDefault("thousands", "")
}
