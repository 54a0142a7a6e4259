package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/skillmesh/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Choose skills interactively, one category at a time",
	Long: `Walks through every category, withholding skills that conflict with earlier
choices and marking recommended ones. The accepted selection is printed to
stdout, one skill ID per line.`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringSliceP("select", "s", nil, "skills to start with (comma-separated)")
	wizardCmd.Flags().Bool("accessible", false, "use plain prompts for screen readers")
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, _ []string) error {
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
	accessible, _ := cmd.Flags().GetBool("accessible")
	seed := a.selection(eng, refs)

	w := wizard.New(eng, wizard.HuhPrompter{Accessible: accessible},
		wizard.WithEmitter(a.events),
		wizard.WithLogger(a.log),
		wizard.WithInitial(seed.IDs()...),
	)
	sel, err := w.Run()
	if errors.Is(err, wizard.ErrAborted) {
		a.printer.Info("selection discarded")
		return nil
	}
	if err != nil {
		return err
	}

	a.printer.Selection(eng.Index(), sel.IDs())
	a.printer.Violations(eng.Check(sel))
	for _, id := range sel.IDs() {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
