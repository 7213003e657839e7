// Package digest turns Notion task pages into grouped WhatsApp digests and
// delivers them.
package digest

import (
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/config"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/output"
)

// Placeholders used when a page is missing a property.
const (
	NoTask     = "No Task"
	NoStatus   = "No Status"
	NoEpic     = "No Epica"
	Unassigned = "Unassigned"
)

// PropertyNames are the Notion property names tasks are read from.
type PropertyNames struct {
	Task     string
	Status   string
	Assignee string
	Date     string
	Epic     string
}

// DefaultPropertyNames matches the board layout the notifier was built for.
var DefaultPropertyNames = PropertyNames{
	Task:     "Task",
	Status:   "Status",
	Assignee: "Assign",
	Date:     "Start Date",
	Epic:     "Epica",
}

// NamesFromConfig fills unset names with the defaults.
func NamesFromConfig(pc config.PropertyConfig) PropertyNames {
	names := DefaultPropertyNames
	if pc.Task != "" {
		names.Task = pc.Task
	}
	if pc.Status != "" {
		names.Status = pc.Status
	}
	if pc.Assignee != "" {
		names.Assignee = pc.Assignee
	}
	if pc.Date != "" {
		names.Date = pc.Date
	}
	if pc.Epic != "" {
		names.Epic = pc.Epic
	}
	return names
}

// Task is the flattened view of one task page.
type Task struct {
	ID       string           `json:"id"`
	URL      string           `json:"url"`
	Title    string           `json:"title"`
	Status   string           `json:"status"`
	Assignee string           `json:"assignee,omitempty"`
	Epic     string           `json:"epic"`
	Date     output.DateRange `json:"date"`
	When     string           `json:"when"`
}

// FromPage extracts a Task from a page. Assignee is the first person's name,
// or empty when nobody is assigned.
func FromPage(page api.Page, names PropertyNames) Task {
	t := Task{
		ID:     page.ID,
		URL:    page.URL,
		Title:  NoTask,
		Status: NoStatus,
		Epic:   NoEpic,
	}
	if title, ok := page.Title(names.Task); ok {
		t.Title = title
	}
	if status, ok := page.StatusName(names.Status); ok {
		t.Status = status
	}
	if epic, ok := page.StatusName(names.Epic); ok {
		t.Epic = epic
	}
	if people := page.People(names.Assignee); len(people) > 0 {
		t.Assignee = people[0].Name
		if t.Assignee == "" {
			t.Assignee = Unassigned
		}
	}
	if d := page.Date(names.Date); d != nil {
		t.Date.Start = d.Start
		if d.End != nil {
			t.Date.End = *d.End
		}
	}
	t.When = output.FormatDateRange(t.Date)
	return t
}

// FromPages extracts tasks from pages, preserving order.
func FromPages(pages []api.Page, names PropertyNames) []Task {
	tasks := make([]Task, 0, len(pages))
	for _, p := range pages {
		tasks = append(tasks, FromPage(p, names))
	}
	return tasks
}
