package cmd

import "github.com/spf13/cobra"

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print recorded statistics series",
	Long: `Read back every persisted statistics snapshot and print each
(suite, section) pair's error-count series, ordered ascending by
timestamp.`,
	Example: `  asgen stats`,
	RunE:    runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	return NewStatsCommand(ProjectRoot).Execute(cmd.Context())
}
