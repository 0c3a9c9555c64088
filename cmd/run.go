package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tabclean/internal/recipe"
	"github.com/spf13/cobra"
)

var runRecipePath string

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Apply a YAML recipe of cleaning steps to a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := recipe.Load(runRecipePath)
		if err != nil {
			return err
		}
		t, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		res, err := recipe.NewRunner(logger, recipeDefaults()).Run(t, r)
		if err != nil {
			return err
		}
		name := res.Name
		if name == "" {
			name = runRecipePath
		}
		notef(cmd, "✓ Recipe '%s' run %s\n", name, res.ID)
		for i, s := range res.Steps {
			notef(cmd, "  %d. %-16s rows %d -> %d, cols %d -> %d%s\n",
				i+1, s.Op, s.RowsBefore, s.RowsAfter, s.ColsBefore, s.ColsAfter, stepDetail(s))
		}
		return writeTable(cmd, res.Table)
	},
}

func stepDetail(s recipe.StepResult) string {
	switch {
	case len(s.Filled) > 0:
		return "; filled " + strings.Join(s.Filled, ", ")
	case len(s.Dropped) > 0:
		return "; dropped " + strings.Join(s.Dropped, ", ")
	case s.Removed > 0:
		return fmt.Sprintf("; removed %d rows", s.Removed)
	case len(s.Outliers) > 0:
		parts := make([]string, 0, len(s.Outliers))
		for _, o := range s.Outliers {
			parts = append(parts, fmt.Sprintf("%s %.2f%%", o.Column, o.Percent))
		}
		return "; outliers " + strings.Join(parts, ", ")
	}
	return ""
}

func init() {
	rootCmd.AddCommand(runCmd)
	addInputFlags(runCmd)
	addOutputFlag(runCmd, "cleaned CSV")
	runCmd.Flags().StringVarP(&runRecipePath, "recipe", "r", "", "path to the recipe YAML")
	_ = runCmd.MarkFlagRequired("recipe")
}
