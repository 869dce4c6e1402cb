package main

import (
	"github.com/spf13/cobra"
)

func init() {
	submitNamesCmd.Flags().BoolVar(&flagStub, "stub", false, "Import profiles as stubs")
	submitNamesCmd.Flags().IntVar(&flagChunk, "chunk", 1, "Number of profiles to submit with each request")
	submitNamesCmd.Flags().Float64Var(&flagInterval, "interval", 5, "Request interval in seconds")
	rootCmd.AddCommand(submitNamesCmd)
}

var submitNamesCmd = &cobra.Command{
	Use:   "submit-names <input> <site>",
	Short: "Submit profiles by username",
	Long: `Submit profiles by username, read one per line from the input file
("-" reads from stdin). Blank lines are skipped and an empty file is a
non-fatal early exit.

Examples:
  qpi submit-names usernames.csv twitter --interval=5
  cat usernames.csv | qpi submit-names - twitter --chunk=10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(args[0], args[1], false)
	},
}
