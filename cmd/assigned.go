package cmd

import (
	"fmt"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/digest"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/output"
	"github.com/spf13/cobra"
)

var (
	assignedDryRun   bool
	assignedTo       string
	assignedStatuses []string
)

var assignedCmd = &cobra.Command{
	Use:   "assigned",
	Short: "Send each assignee's in-flight tasks",
	Long: `Query tasks that have an assignee and an active status ("In progress" or
"Assigned" by default), group them by their first assignee, and send one
WhatsApp message per assignee.

Delivery stops at the first message that fails.`,
	Args: cobra.NoArgs,
	RunE: runAssigned,
}

func init() {
	assignedCmd.Flags().BoolVar(&assignedDryRun, "dry-run", false, "Print the messages instead of sending them")
	assignedCmd.Flags().StringVar(&assignedTo, "to", "", "Recipient phone number (default: WHATSAPP_NUMBER)")
	assignedCmd.Flags().StringSliceVar(&assignedStatuses, "status", nil, "Status to include (repeatable)")
	rootCmd.AddCommand(assignedCmd)
}

func resetAssignedFlags() {
	assignedDryRun = false
	assignedTo = ""
	assignedStatuses = nil
}

func runAssigned(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd).Named("assigned")
	defer func() { _ = logger.Sync() }()

	client := newClient(cfg, logger)
	databaseID, err := requireDatabase(cfg, client)
	if err != nil {
		return err
	}

	names := digest.NamesFromConfig(cfg.Properties)
	filter := digest.AssignedFilter(names, statusesOrDefault(assignedStatuses, cfg.Statuses.Assigned))
	tasks, err := fetchTasks(client, databaseID, &filter, 0, names, logger)
	if err != nil {
		return err
	}

	groups := digest.GroupByAssignee(tasks)
	if len(groups) == 0 {
		if output.IsJSON(outputFormat) {
			return output.JSON(cmd.OutOrStdout(), deliveryJSON{DryRun: assignedDryRun, Messages: []messageJSONItem{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No assigned tasks found.")
		return nil
	}

	report, err := deliver(cmd, cfg, logger, deliveryPlan{
		groups:      groups,
		render:      digest.AssignedMessage,
		stopOnError: true,
		dryRun:      assignedDryRun,
		to:          assignedTo,
		sentLine: func(g digest.Group) string {
			return fmt.Sprintf("Sent %d tasks for %s", len(g.Tasks), g.Name)
		},
	})
	if err != nil {
		if n := len(report.Failed); n > 0 {
			return fmt.Errorf("failed to send WhatsApp message for %s: %w", report.Failed[n-1].Group.Name, err)
		}
		return err
	}
	return nil
}
