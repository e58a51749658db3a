package cmd

import "github.com/spf13/cobra"

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate catalog metadata and issue reports",
	Long: `Run the full metadata-extraction pipeline: enumerate packages for every
configured suite/section/architecture, parse their desktop-entry files,
persist raised hints, and render HTML reports plus JSON/TOON catalog
exports under the workspace directory.`,
	Example: `  asgen generate
  asgen generate --project ./myrepo`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return NewGenerateCommand(ProjectRoot).Execute(cmd.Context())
}
