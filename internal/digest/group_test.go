package digest

import "testing"

func TestGroupByAssignee(t *testing.T) {
	tasks := []Task{
		{Title: "a", Assignee: "Bob"},
		{Title: "b", Assignee: "Alice"},
		{Title: "c"},
		{Title: "d", Assignee: "Bob"},
		{Title: "e", Assignee: Unassigned},
	}
	groups := GroupByAssignee(tasks)

	want := []struct {
		name   string
		titles []string
	}{
		{"Bob", []string{"a", "d"}},
		{"Alice", []string{"b"}},
		{Unassigned, []string{"e"}},
	}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i, w := range want {
		if groups[i].Name != w.name {
			t.Errorf("group %d name = %q, want %q", i, groups[i].Name, w.name)
		}
		if len(groups[i].Tasks) != len(w.titles) {
			t.Fatalf("group %q has %d tasks, want %d", w.name, len(groups[i].Tasks), len(w.titles))
		}
		for j, title := range w.titles {
			if groups[i].Tasks[j].Title != title {
				t.Errorf("group %q task %d = %q, want %q", w.name, j, groups[i].Tasks[j].Title, title)
			}
		}
	}
}

func TestGroupByEpic(t *testing.T) {
	tasks := []Task{
		{Title: "a", Epic: "Frontend"},
		{Title: "b", Epic: "Backend"},
		{Title: "c", Epic: "Frontend"},
		{Title: "d"},
	}
	groups := GroupByEpic(tasks)

	names := []string{"Frontend", "Backend", NoEpic}
	if len(groups) != len(names) {
		t.Fatalf("got %d groups, want %d", len(groups), len(names))
	}
	for i, name := range names {
		if groups[i].Name != name {
			t.Errorf("group %d = %q, want %q", i, groups[i].Name, name)
		}
	}
	if len(groups[0].Tasks) != 2 {
		t.Errorf("Frontend should have 2 tasks, got %d", len(groups[0].Tasks))
	}
}

func TestGroupEmpty(t *testing.T) {
	if groups := GroupByAssignee(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
	if groups := GroupByAssignee([]Task{{Title: "x"}}); len(groups) != 0 {
		t.Errorf("unassigned tasks should be skipped, got %d groups", len(groups))
	}
}
