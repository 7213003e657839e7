package cmd

import (
	"strings"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	outputFormat string
	databaseFlag string
)

var rootCmd = &cobra.Command{
	Use:   "boardnotifier",
	Short: "Send Notion task digests to WhatsApp",
	Long: `boardnotifier reads tasks from a Notion database and sends digests over WhatsApp:
one message per assignee with the work in flight, and one message per epic
with the cards still waiting to be picked up.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupPersistentPreRun,
	RunE:              runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logs and HTTP traffic on stderr)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&databaseFlag, "database", "d", "", "Notion database ID, URL or title (default: configured database)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// Cobra's argument validators and flag parsing return plain errors.
		// Wrap them as usage errors so they exit with code 2.
		if _, ok := err.(*exitcode.Error); !ok && isCobraUsageError(err) {
			return exitcode.Usage(err.Error())
		}
	}
	return err
}

// isCobraUsageError returns true if the error looks like a Cobra argument
// validation or flag parsing error.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "arg(s)") ||
		strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "invalid argument") ||
		strings.HasPrefix(msg, "if any flags in the group")
}
