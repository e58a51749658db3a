// Package cmd implements the appstream-generator CLI commands using Cobra.
package cmd

import (
	"fmt"
	"strings"

	"github.com/iainlane/appstream-generator/internal/adapters/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time version information, set via SetVersionInfo from main.go.
var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// Persistent flag values accessible to all subcommands.
var (
	cfgFile     string
	ProjectRoot string
	Verbose     bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "asgen",
	Short: "AppStream metadata generator",
	Long: `asgen extracts AppStream component metadata from a binary package
repository, normalizes it into a unified component model, and emits both
machine-readable catalog files and human-oriented issue reports.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.Root())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file, used in place of the global XDG config.toml")
	rootCmd.PersistentFlags().StringVarP(&ProjectRoot, "project", "p", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command. This is the entry point called from main.go.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets build-time version information from ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("asgen %s (commit: %s, built: %s)\n", version, commit, date),
	)
}

// initConfig loads defaults, then the --config file (or the global XDG
// config.toml when --config is unset), then asgen.toml from the working
// directory into Viper, and enables ASGEN_* environment lookups. Flags are
// not bound into Viper, and the commands do not read their configuration
// from Viper: buildPipeline loads it through config.Loader, which reads
// only the config file and the project asgen.toml.
func initConfig(root *cobra.Command) error {
	viper.SetConfigType("toml")

	viper.SetDefault("workspace_dir", "./workspace")
	viper.SetDefault("project_name", "default")
	viper.SetDefault("html_base_url", "")
	viper.SetDefault("format_version", 18)
	viper.SetDefault("tmp_dir", "./workspace/tmp")
	viper.SetDefault("max_workers", 4)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		paths := config.NewXDGPathResolver()
		viper.SetConfigFile(paths.ConfigFile())
		_ = viper.ReadInConfig() // Silent fail if not found.
	}

	viper.SetConfigFile("asgen.toml")
	_ = viper.MergeInConfig() // Silent fail if not found.

	viper.SetEnvPrefix("ASGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = root
	return nil
}
