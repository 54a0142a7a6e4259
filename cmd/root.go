package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "skillmesh",
	Short: "Skill compatibility resolution engine",
	Long: `Skillmesh validates a declarative skill relationship model (categories,
conflicts, requirements, recommendations, alternatives) and answers which
skills may be combined given a selection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .skillmesh.yaml)")
	flags.StringP("model", "m", "", "relationship model file (default skills.toml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("cache-dir", "", "directory for compiled index caches (disabled when empty)")
	flags.String("telemetry", "", "append session events to this JSONL file")
	flags.Bool("strict", false, "treat validation warnings as errors")

	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("no_color", flags.Lookup("no-color"))
	_ = viper.BindPFlag("cache_dir", flags.Lookup("cache-dir"))
	_ = viper.BindPFlag("telemetry_path", flags.Lookup("telemetry"))
	_ = viper.BindPFlag("strict", flags.Lookup("strict"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".skillmesh")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SKILLMESH")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
