package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest skills for a selection and check it for problems",
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringSliceP("select", "s", nil, "skills already selected (comma-separated)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
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

	a.printer.Suggestions(eng.Suggestions(sel))
	violations := eng.Check(sel)
	a.printer.Violations(violations)
	if len(violations) > 0 {
		return fmt.Errorf("selection has %d problem(s)", len(violations))
	}
	return nil
}
