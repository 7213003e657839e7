package digest

// Group is a named set of tasks; one group becomes one message.
type Group struct {
	Name  string
	Tasks []Task
}

// GroupByAssignee groups tasks by assignee in first-seen order. Tasks
// without an assignee are skipped.
func GroupByAssignee(tasks []Task) []Group {
	return groupBy(tasks, func(t Task) (string, bool) {
		return t.Assignee, t.Assignee != ""
	})
}

// GroupByEpic groups tasks by epic in first-seen order.
func GroupByEpic(tasks []Task) []Group {
	return groupBy(tasks, func(t Task) (string, bool) {
		if t.Epic == "" {
			return NoEpic, true
		}
		return t.Epic, true
	})
}

func groupBy(tasks []Task, key func(Task) (string, bool)) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, t := range tasks {
		name, ok := key(t)
		if !ok {
			continue
		}
		i, seen := index[name]
		if !seen {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}
