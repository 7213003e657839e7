package output

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DefaultLimit is the default maximum number of tasks a listing shows.
const DefaultLimit = 100

// AddPaginationFlags registers --limit and --all on a command.
func AddPaginationFlags(cmd *cobra.Command, limit *int, all *bool) {
	cmd.Flags().IntVar(limit, "limit", DefaultLimit, "Maximum number of tasks to display")
	cmd.Flags().BoolVar(all, "all", false, "Show all matching tasks (ignore --limit)")
	cmd.MarkFlagsMutuallyExclusive("limit", "all")
}

// EffectiveLimit returns 0 (unlimited) when --all is set, otherwise the
// --limit value.
func EffectiveLimit(limit int, all bool) int {
	if all {
		return 0
	}
	return limit
}

// Truncate returns at most limit items from the slice. A limit of 0 or less
// means no cap. The second return value reports whether items were dropped.
func Truncate[T any](items []T, limit int) ([]T, bool) {
	if limit <= 0 || len(items) <= limit {
		return items, false
	}
	return items[:limit], true
}

// ListFooter returns the "Total" footer for a listing. When more is set the
// listing stopped at its limit and the full count is unknown.
func ListFooter(shown int, more bool, noun string) string {
	if more {
		return fmt.Sprintf("Showing the first %d %s(s) (use --all to see everything)", shown, noun)
	}
	return fmt.Sprintf("Total: %d %s(s)", shown, noun)
}
