package main

import (
	"github.com/spf13/cobra"
)

func init() {
	submitIDsCmd.Flags().BoolVar(&flagStub, "stub", false, "Import profiles as stubs")
	submitIDsCmd.Flags().IntVar(&flagChunk, "chunk", 1, "Number of profiles to submit with each request")
	submitIDsCmd.Flags().Float64Var(&flagInterval, "interval", 5, "Request interval in seconds")
	rootCmd.AddCommand(submitIDsCmd)
}

var submitIDsCmd = &cobra.Command{
	Use:   "submit-ids <input> <site>",
	Short: "Submit profiles by upstream platform ID",
	Long: `Submit profiles by their upstream platform ID, read one per line
from the input file ("-" reads from stdin). Blank lines are skipped and an
empty file is a non-fatal early exit.

Examples:
  qpi submit-ids user_ids.csv twitter
  qpi submit-ids user_ids.csv instagram --stub`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(args[0], args[1], true)
	},
}
