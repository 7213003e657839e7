package cmd

import (
	"strings"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/output"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// databaseItem is a Notion database in a selection list.
type databaseItem struct {
	id     string
	title  string
	edited string
}

func (i databaseItem) Title() string { return i.title }
func (i databaseItem) Description() string {
	if i.edited == "" {
		return i.id
	}
	return i.id + "  ·  edited " + i.edited
}
func (i databaseItem) FilterValue() string { return i.title }

func databaseItems(dbs []api.Database) []databaseItem {
	items := make([]databaseItem, 0, len(dbs))
	for _, db := range dbs {
		title := db.PlainTitle()
		if title == "" {
			title = "Untitled"
		}
		item := databaseItem{id: db.ID, title: title}
		if t, ok := output.ParseDate(db.LastEditedTime); ok {
			item.edited = output.FormatDate(t)
		}
		items = append(items, item)
	}
	return items
}

func newDatabaseList(title string, items []databaseItem, width int) list.Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(listItems, delegate, width, min(len(items)*3+8, 25))
	l.Title = title
	l.SetShowStatusBar(len(items) > 5)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	return l
}

// pickerModel is the Bubble Tea model for choosing a database.
type pickerModel struct {
	list      list.Model
	selected  *databaseItem
	cancelled bool
}

func newPickerModel(title string, items []databaseItem) pickerModel {
	return pickerModel{list: newDatabaseList(title, items, 70)}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			item, ok := m.list.SelectedItem().(databaseItem)
			if !ok {
				return m, nil
			}
			m.selected = &item
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.selected != nil || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Enter to select, / to filter, Esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// runPicker shows items in a list on stderr and returns the chosen one.
func runPicker(cmd *cobra.Command, title string, items []databaseItem) (*databaseItem, error) {
	if len(items) == 0 {
		return nil, exitcode.NotFoundError("no databases are shared with this integration")
	}

	p := tea.NewProgram(newPickerModel(title, items), tea.WithOutput(cmd.ErrOrStderr()))
	final, err := p.Run()
	if err != nil {
		return nil, exitcode.General("interactive selection", err)
	}

	m := final.(pickerModel)
	if m.cancelled || m.selected == nil {
		return nil, exitcode.General("selection cancelled", nil)
	}
	return m.selected, nil
}
