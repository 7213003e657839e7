package digest

import "github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"

// Default statuses selected by each digest.
var (
	DefaultAssignedStatuses   = []string{"In progress", "Assigned"}
	DefaultUnassignedStatuses = []string{"Not started"}
)

// AssignedFilter selects tasks with somebody assigned and a status in
// statuses.
func AssignedFilter(names PropertyNames, statuses []string) api.Filter {
	if len(statuses) == 0 {
		statuses = DefaultAssignedStatuses
	}
	return api.And(
		api.PeopleIsNotEmpty(names.Assignee),
		statusFilter(names.Status, statuses),
	)
}

// UnassignedFilter selects tasks waiting to be picked up.
func UnassignedFilter(names PropertyNames, statuses []string) api.Filter {
	if len(statuses) == 0 {
		statuses = DefaultUnassignedStatuses
	}
	return statusFilter(names.Status, statuses)
}

// StatusFilter selects tasks with a status in statuses. An empty list
// selects everything and returns nil.
func StatusFilter(names PropertyNames, statuses []string) *api.Filter {
	if len(statuses) == 0 {
		return nil
	}
	f := statusFilter(names.Status, statuses)
	return &f
}

func statusFilter(property string, statuses []string) api.Filter {
	filters := make([]api.Filter, len(statuses))
	for i, s := range statuses {
		filters[i] = api.StatusEquals(property, s)
	}
	return api.Or(filters...)
}
