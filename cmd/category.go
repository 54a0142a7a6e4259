package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category [id]",
	Short: "List a category's skills with their status for a selection",
	Long:  "Without an ID, every category is listed in authored order.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCategory,
}

func init() {
	categoryCmd.Flags().StringSliceP("select", "s", nil, "skills already selected (comma-separated)")
	rootCmd.AddCommand(categoryCmd)
}

func runCategory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	eng, err := a.loadEngine(nil)
	if err != nil {
		return err
	}
	refs, _ := cmd.Flags().GetStringSlice("select")
	sel := a.selection(eng, refs)

	ids := eng.Categories()
	if len(args) == 1 {
		if _, ok := eng.Index().Category(args[0]); !ok {
			return fmt.Errorf("unknown category %q", args[0])
		}
		ids = args
	}
	for _, id := range ids {
		cat, _ := eng.Index().Category(id)
		a.printer.CategoryTable(cat, eng.SkillsInCategory(sel, id))
	}
	return nil
}
