package digest

import (
	"fmt"
	"strings"
)

// Renderer builds the message body for a group.
type Renderer func(Group) string

// AssignedMessage renders an assignee's digest:
//
//	`Tasks played by Alice`
//
//	_Task_ | _Status_ | _Start Date_
//
//	1. Write docs *|* In progress *|* May 10 - 12, 2024
func AssignedMessage(g Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "`Tasks played by %s`\n\n", g.Name)
	b.WriteString("_Task_ | _Status_ | _Start Date_\n\n")

	lines := make([]string, len(g.Tasks))
	for i, t := range g.Tasks {
		lines[i] = fmt.Sprintf("%d. %s *|* %s *|* %s\n", i+1, t.Title, t.Status, t.When)
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// UnassignedMessage renders the open cards of one epic:
//
//	`Backend` | *2* cards to play
//
//	1. Write migrations
//	2. Add indexes
func UnassignedMessage(g Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s` | *%d* cards to play\n\n", g.Name, len(g.Tasks))

	lines := make([]string, len(g.Tasks))
	for i, t := range g.Tasks {
		lines[i] = fmt.Sprintf("%d. %s", i+1, t.Title)
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
