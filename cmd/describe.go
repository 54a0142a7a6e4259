package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <skill>",
	Short: "Show everything known about one skill",
	Long:  "Shows a skill's conflicts, requirements (direct and transitive), dependents, recommendations, and alternatives. The skill may be named by ID, alias, or path.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	eng, err := a.loadEngine(nil)
	if err != nil {
		return err
	}
	s, ok := eng.DescribeSkill(args[0])
	if !ok {
		return fmt.Errorf("%w %q", errNoSkill, args[0])
	}
	a.printer.Describe(s, eng.Index(), eng.TransitiveRequirements(s.ID), eng.TransitiveDependents(s.ID))
	return nil
}
