package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <skill>",
	Short: "Report whether a skill is selectable and recommended given a selection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringSliceP("select", "s", nil, "skills already selected (comma-separated)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	eng, err := a.loadEngine(nil)
	if err != nil {
		return err
	}
	id, ok := eng.Resolve(args[0])
	if !ok {
		return fmt.Errorf("%w %q", errNoSkill, args[0])
	}
	refs, _ := cmd.Flags().GetStringSlice("select")
	sel := a.selection(eng, refs)

	disabled, why := eng.IsDisabled(sel, id)
	recommended, reasons := eng.IsRecommended(sel, id)
	a.printer.SkillStatus(eng.Index().Name(id), disabled, why, recommended, reasons)
	return nil
}
