package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/skillmesh/internal/model"
	"github.com/papapumpkin/skillmesh/internal/telemetry"
)

var validateCmd = &cobra.Command{
	Use:   "validate [model]",
	Short: "Check a relationship model for unknown references, cycles, and contradictions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return a.validate(a.modelPath(args))
}

// validate loads and validates the model at path, printing every issue.
func (a *app) validate(path string) error {
	m, err := model.Load(path)
	if err != nil {
		return err
	}
	return a.report(path, m)
}

// report validates a loaded model and prints the result.
func (a *app) report(path string, m *model.Model) error {
	issues := model.Validate(m)
	nErr := model.CountErrors(issues)
	_ = a.events.Record(telemetry.KindValidate, "", map[string]any{"model": path, "errors": nErr, "warnings": len(issues) - nErr})

	a.printer.ValidateResult(path, len(m.Skills), issues)
	if nErr > 0 {
		return fmt.Errorf("validation failed with %d error(s)", nErr)
	}
	if a.cfg.Strict && len(issues) > 0 {
		return fmt.Errorf("validation failed with %d warning(s) in strict mode", len(issues))
	}
	return nil
}
