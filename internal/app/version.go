package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

const Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of cad2model",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cad2model v%s\n", Version)
		if buildInfo.Commit != "" {
			fmt.Fprintf(out, "commit %s built %s %s (%s)\n", buildInfo.Commit, buildInfo.Date, buildInfo.Time, buildInfo.UUID)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
