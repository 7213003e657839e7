package digest

import (
	"encoding/json"
	"testing"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/config"
)

const assignedPage = `{
  "object": "page",
  "id": "0f4e5a1c-0000-4000-8000-000000000001",
  "url": "https://www.notion.so/Write-docs-0f4e5a1c",
  "properties": {
    "Task": {"id": "title", "type": "title", "title": [{"plain_text": "Write docs", "text": {"content": "Write docs"}}]},
    "Status": {"id": "s", "type": "status", "status": {"name": "In progress"}},
    "Assign": {"id": "a", "type": "people", "people": [{"object": "user", "id": "u1", "name": "Alice"}, {"object": "user", "id": "u2", "name": "Bob"}]},
    "Start Date": {"id": "d", "type": "date", "date": {"start": "2024-05-10", "end": "2024-05-12"}},
    "Epica": {"id": "e", "type": "status", "status": {"name": "Backend"}}
  }
}`

func decodePage(t *testing.T, data string) api.Page {
	t.Helper()
	var p api.Page
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("decoding page: %v", err)
	}
	return p
}

func TestFromPage(t *testing.T) {
	task := FromPage(decodePage(t, assignedPage), DefaultPropertyNames)

	want := Task{
		ID:       "0f4e5a1c-0000-4000-8000-000000000001",
		URL:      "https://www.notion.so/Write-docs-0f4e5a1c",
		Title:    "Write docs",
		Status:   "In progress",
		Assignee: "Alice",
		Epic:     "Backend",
		When:     "May 10 - 12, 2024",
	}
	want.Date.Start = "2024-05-10"
	want.Date.End = "2024-05-12"
	if task != want {
		t.Errorf("FromPage() =\n%+v\nwant\n%+v", task, want)
	}
}

func TestFromPageMissingProperties(t *testing.T) {
	task := FromPage(decodePage(t, `{"id": "p2", "properties": {}}`), DefaultPropertyNames)

	if task.Title != NoTask {
		t.Errorf("Title = %q, want %q", task.Title, NoTask)
	}
	if task.Status != NoStatus {
		t.Errorf("Status = %q, want %q", task.Status, NoStatus)
	}
	if task.Epic != NoEpic {
		t.Errorf("Epic = %q, want %q", task.Epic, NoEpic)
	}
	if task.Assignee != "" {
		t.Errorf("Assignee = %q, want empty", task.Assignee)
	}
	if task.When != "No Date" {
		t.Errorf("When = %q, want No Date", task.When)
	}
}

func TestFromPageNamelessAssignee(t *testing.T) {
	page := decodePage(t, `{"id": "p3", "properties": {
		"Assign": {"type": "people", "people": [{"object": "user", "id": "u9"}]},
		"Start Date": {"type": "date", "date": {"start": "2024-13-01"}}
	}}`)
	task := FromPage(page, DefaultPropertyNames)
	if task.Assignee != Unassigned {
		t.Errorf("Assignee = %q, want %q", task.Assignee, Unassigned)
	}
	if task.When != "Invalid Date" {
		t.Errorf("When = %q, want Invalid Date", task.When)
	}
}

func TestFromPageCustomNames(t *testing.T) {
	page := decodePage(t, `{"id": "p4", "properties": {
		"Name": {"type": "title", "title": [{"plain_text": "Ship it"}]},
		"Stage": {"type": "select", "select": {"name": "Doing"}},
		"Area": {"type": "select", "select": {"name": "Ops"}}
	}}`)
	names := NamesFromConfig(config.PropertyConfig{Task: "Name", Status: "Stage", Epic: "Area"})
	task := FromPage(page, names)

	if task.Title != "Ship it" || task.Status != "Doing" || task.Epic != "Ops" {
		t.Errorf("unexpected task: %+v", task)
	}
	if names.Assignee != "Assign" || names.Date != "Start Date" {
		t.Errorf("unset names should keep defaults: %+v", names)
	}
}
