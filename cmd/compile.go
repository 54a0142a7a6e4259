package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/skillmesh/internal/index"
)

var compileCmd = &cobra.Command{
	Use:   "compile [model]",
	Short: "Compile a relationship model into a cached skill index",
	Long: `Validates the model and merges its group-centric rules into a per-skill
index. The index is written to --out, or into cache_dir when configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("out", "o", "", "write the compiled index to this file")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out, _ := cmd.Flags().GetString("out")
	path := a.modelPath(args)
	idx, err := a.compile(path)
	if err != nil {
		return err
	}

	if out == "" && a.cfg.CacheEnabled() {
		out = index.CachePath(a.cfg.CacheDir, idx.Fingerprint())
	}
	if out != "" {
		if err := index.SaveCache(out, idx); err != nil {
			return err
		}
	}
	a.printer.Compiled(path, idx, out)
	if out == "" {
		a.printer.Info("no cache written; pass --out or set cache_dir")
	}
	return nil
}
