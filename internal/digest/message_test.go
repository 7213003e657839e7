package digest

import "testing"

func TestAssignedMessage(t *testing.T) {
	g := Group{Name: "Alice", Tasks: []Task{
		{Title: "Write docs", Status: "In progress", When: "May 10 - 12, 2024"},
		{Title: "Review PR", Status: "Assigned", When: "No Date"},
	}}
	want := "`Tasks played by Alice`\n\n" +
		"_Task_ | _Status_ | _Start Date_\n\n" +
		"1. Write docs *|* In progress *|* May 10 - 12, 2024\n" +
		"\n" +
		"2. Review PR *|* Assigned *|* No Date\n"
	if got := AssignedMessage(g); got != want {
		t.Errorf("AssignedMessage() =\n%q\nwant\n%q", got, want)
	}
}

func TestAssignedMessageSingleTask(t *testing.T) {
	g := Group{Name: "Bob", Tasks: []Task{{Title: "Deploy", Status: "Assigned", When: "Jan 2, 2024"}}}
	want := "`Tasks played by Bob`\n\n_Task_ | _Status_ | _Start Date_\n\n1. Deploy *|* Assigned *|* Jan 2, 2024\n"
	if got := AssignedMessage(g); got != want {
		t.Errorf("AssignedMessage() = %q, want %q", got, want)
	}
}

func TestUnassignedMessage(t *testing.T) {
	g := Group{Name: "Backend", Tasks: []Task{{Title: "Write migrations"}, {Title: "Add indexes"}}}
	want := "`Backend` | *2* cards to play\n\n1. Write migrations\n2. Add indexes"
	if got := UnassignedMessage(g); got != want {
		t.Errorf("UnassignedMessage() = %q, want %q", got, want)
	}
}
