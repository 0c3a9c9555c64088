package cmd

import (
	"github.com/KaramelBytes/tabclean/internal/frame"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Print a Markdown summary of a table's columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		sum, err := frame.Describe(t)
		if err != nil {
			return err
		}
		return writeText(cmd, sum.Markdown())
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	addInputFlags(describeCmd)
	addOutputFlag(describeCmd, "summary (Markdown)")
}
