package cmd

import "github.com/spf13/cobra"

var validateIgnoreNoDisplay bool

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"val"},
	Short:   "Parse the repository and report issues without writing output",
	Long: `Run the parsing and aggregation stages of the pipeline without rendering
HTML reports or writing catalog exports, printing a severity-grouped
summary of the hints raised. Exits non-zero if any error-severity hints
were found.`,
	Example: `  asgen validate
  asgen validate --ignore-no-display`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateIgnoreNoDisplay, "ignore-no-display", false, "include desktop entries marked NoDisplay=true")
}

func runValidate(cmd *cobra.Command, args []string) error {
	return NewValidateCommand(ProjectRoot).WithIgnoreNoDisplay(validateIgnoreNoDisplay).Execute(cmd.Context())
}
