// Package recipe applies an ordered, YAML-described list of cleaning steps
// to a table.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Step operations.
const (
	OpFillAuto       = "fill-auto"
	OpFill           = "fill"
	OpDropConstant   = "drop-constant"
	OpDropCollinear  = "drop-collinear"
	OpRemoveOutliers = "remove-outliers"
	OpSurveyOutliers = "survey-outliers"
)

// ErrTargetRequired is returned when a drop-collinear step has no target
// at either the step or the recipe level.
var ErrTargetRequired = errors.New("recipe: drop-collinear needs a target")

// Recipe is a named sequence of steps sharing an optional target column.
type Recipe struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target,omitempty"`
	Steps  []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step is one cleaning operation. Nil numeric fields take the runner's
// defaults.
type Step struct {
	Op          string   `yaml:"op" validate:"required,oneof=fill-auto fill drop-constant drop-collinear remove-outliers survey-outliers"`
	Columns     []string `yaml:"columns,omitempty" validate:"required_if=Op fill,dive,required"`
	Target      string   `yaml:"target,omitempty"`
	Threshold   *float64 `yaml:"threshold,omitempty"`
	Verbose     bool     `yaml:"verbose,omitempty"`
	AbsTarget   bool     `yaml:"abs_target,omitempty"`
	Multiplier  *float64 `yaml:"multiplier,omitempty" validate:"omitempty,gte=0"`
	DropPercent *float64 `yaml:"drop_percent,omitempty"`
	Snapshot    bool     `yaml:"snapshot,omitempty"`
}

var validate = validator.New()

// Load reads and validates a recipe file.
func Load(path string) (*Recipe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML recipe, rejecting unknown keys, and validates it.
func Parse(data []byte) (*Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Recipe
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the step list.
func (r *Recipe) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate recipe: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return fmt.Errorf("invalid recipe: %s", strings.Join(msgs, "; "))
	}
	for i, s := range r.Steps {
		if s.Op == OpDropCollinear && s.Target == "" && r.Target == "" {
			return fmt.Errorf("step %d: %w", i+1, ErrTargetRequired)
		}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Recipe.")
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s %q is not one of [%s]", field, fe.Value(), fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s fails %s", field, fe.Tag())
	}
}
