package cmd

import (
	"fmt"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/digest"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/output"
	"github.com/spf13/cobra"
)

var (
	tasksStatuses []string
	tasksLimit    int
	tasksAll      bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks in the database",
	Long: `List tasks with their status, assignee, epic and date. Use --status to
narrow the listing; without it every task is shown.`,
	Args: cobra.NoArgs,
	RunE: runTasks,
}

func init() {
	tasksCmd.Flags().StringSliceVar(&tasksStatuses, "status", nil, "Only show tasks with this status (repeatable)")
	output.AddPaginationFlags(tasksCmd, &tasksLimit, &tasksAll)
	rootCmd.AddCommand(tasksCmd)
}

func resetTasksFlags() {
	tasksStatuses = nil
	tasksLimit = output.DefaultLimit
	tasksAll = false
}

func runTasks(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd).Named("tasks")
	defer func() { _ = logger.Sync() }()

	client := newClient(cfg, logger)
	databaseID, err := requireDatabase(cfg, client)
	if err != nil {
		return err
	}

	names := digest.NamesFromConfig(cfg.Properties)
	// One page past the limit tells whether the listing was cut short.
	limit := output.EffectiveLimit(tasksLimit, tasksAll)
	fetch := limit
	if limit > 0 {
		fetch = limit + 1
	}
	fetched, err := fetchTasks(client, databaseID, digest.StatusFilter(names, tasksStatuses), fetch, names, logger)
	if err != nil {
		return err
	}
	shown, more := output.Truncate(fetched, limit)

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, shown)
	}

	if len(shown) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	lw := output.NewListWriter(w, "TASK", "STATUS", "ASSIGNEE", "EPIC", "DATE")
	for _, t := range shown {
		assignee := t.Assignee
		if assignee == "" {
			assignee = output.TableMissing
		}
		lw.Row(t.Title, t.Status, assignee, t.Epic, t.When)
	}
	lw.FlushWithFooter(output.ListFooter(len(shown), more, "task"))
	return nil
}
