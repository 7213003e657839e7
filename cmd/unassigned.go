package cmd

import (
	"fmt"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/digest"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/output"
	"github.com/spf13/cobra"
)

var (
	unassignedDryRun   bool
	unassignedTo       string
	unassignedStatuses []string
)

var unassignedCmd = &cobra.Command{
	Use:   "unassigned",
	Short: "Send the cards waiting to be picked up, per epic",
	Long: `Query tasks that have not been started, group them by epic, and send one
WhatsApp message per epic listing the cards still to play.

A failed message is reported and the remaining epics are still sent. The
command exits non-zero if any message failed.`,
	Args: cobra.NoArgs,
	RunE: runUnassigned,
}

func init() {
	unassignedCmd.Flags().BoolVar(&unassignedDryRun, "dry-run", false, "Print the messages instead of sending them")
	unassignedCmd.Flags().StringVar(&unassignedTo, "to", "", "Recipient phone number (default: WHATSAPP_NUMBER)")
	unassignedCmd.Flags().StringSliceVar(&unassignedStatuses, "status", nil, "Status to include (repeatable)")
	rootCmd.AddCommand(unassignedCmd)
}

func resetUnassignedFlags() {
	unassignedDryRun = false
	unassignedTo = ""
	unassignedStatuses = nil
}

func runUnassigned(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd).Named("unassigned")
	defer func() { _ = logger.Sync() }()

	client := newClient(cfg, logger)
	databaseID, err := requireDatabase(cfg, client)
	if err != nil {
		return err
	}

	names := digest.NamesFromConfig(cfg.Properties)
	filter := digest.UnassignedFilter(names, statusesOrDefault(unassignedStatuses, cfg.Statuses.Unassigned))
	tasks, err := fetchTasks(client, databaseID, &filter, 0, names, logger)
	if err != nil {
		return err
	}

	groups := digest.GroupByEpic(tasks)
	if len(groups) == 0 {
		if output.IsJSON(outputFormat) {
			return output.JSON(cmd.OutOrStdout(), deliveryJSON{DryRun: unassignedDryRun, Messages: []messageJSONItem{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No unassigned tasks found.")
		return nil
	}

	report, err := deliver(cmd, cfg, logger, deliveryPlan{
		groups: groups,
		render: digest.UnassignedMessage,
		dryRun: unassignedDryRun,
		to:     unassignedTo,
		sentLine: func(g digest.Group) string {
			return fmt.Sprintf("Sent unassigned tasks for epic '%s'", g.Name)
		},
		failedLine: func(g digest.Group, err error) string {
			return output.Redf("Failed to send tasks for epic '%s': %v", g.Name, err)
		},
	})
	if err != nil {
		return err
	}
	if n := len(report.Failed); n > 0 {
		return exitcode.Generalf("%d of %d message(s) failed", n, len(groups))
	}
	return nil
}
