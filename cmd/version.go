package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build variables, set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "boardnotifier version %s\n", Version)
		fmt.Fprintf(w, "commit: %s\n", Commit)
		fmt.Fprintf(w, "built:  %s\n", Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
