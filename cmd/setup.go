package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/config"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/output"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/whatsapp"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// setupCmd is exposed as `boardnotifier setup` for manual re-configuration.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure boardnotifier interactively",
	Long:  `Run the setup wizard to configure your Notion integration token, the task database, and the WhatsApp number digests are sent to.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// needsSetup reports whether the cold start wizard should run.
func needsSetup() bool {
	cfg, err := config.Load()
	if err != nil {
		return true
	}
	return cfg.NotionToken == ""
}

// isInteractive reports whether the terminal is interactive (both stdin and
// stdout are TTYs). It's a variable so tests can override it.
var isInteractive = func() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		if stat.Mode()&os.ModeCharDevice == 0 {
			return false
		}
	}
	return true
}

// runSetup implements the cold start wizard.
func runSetup(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return exitcode.General("setup requires an interactive terminal, set NOTION_TOKEN, DATABASE_ID and WHATSAPP_NUMBER for non-interactive use", nil)
	}

	p := tea.NewProgram(newSetupModel(), tea.WithOutput(cmd.ErrOrStderr()))
	finalModel, err := p.Run()
	if err != nil {
		return exitcode.General("setup wizard", err)
	}

	result := finalModel.(setupModel)
	if result.cancelled {
		fmt.Fprintln(cmd.OutOrStdout(), "Setup cancelled.")
		return nil
	}
	if result.err != nil {
		return result.err
	}

	return saveSetup(cmd, result)
}

// saveSetup merges the wizard answers into the config file and writes it.
// Values from the environment and .env are not copied into the file.
func saveSetup(cmd *cobra.Command, result setupModel) error {
	cfg, err := config.LoadFile()
	if err != nil {
		cfg = &config.Config{}
	}
	cfg.NotionToken = result.token
	cfg.DatabaseID = result.databaseID
	if result.number != "" {
		cfg.WhatsApp.Number = result.number
	}
	if err := config.Write(cfg); err != nil {
		return exitcode.General("saving config", err)
	}

	// The hints below describe the settings that will apply on the next run.
	effective, err := config.Load()
	if err != nil {
		effective = cfg
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.Green("Configuration saved."))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  File:      %s\n", config.Path())
	fmt.Fprintf(w, "  Database:  %s\n", result.databaseTitle)
	number := effective.WhatsApp.Number
	if number == "" {
		number = output.DetailMissing
	}
	fmt.Fprintf(w, "  WhatsApp:  %s\n", number)
	fmt.Fprintln(w)
	if effective.WhatsApp.Token == "" || effective.WhatsApp.PhoneNumberID == "" {
		fmt.Fprintln(w, "Set "+output.Bold("WHATSAPP_TOKEN")+" and "+output.Bold("WHATSAPP_PHONE_NUMBER_ID")+" to send messages.")
	}
	fmt.Fprintln(w, "Run "+output.Bold("boardnotifier assigned --dry-run")+" to preview a digest.")
	return nil
}

// --- Bubble Tea model ---

type setupStep int

const (
	stepToken setupStep = iota
	stepValidating
	stepSelectDatabase
	stepNumber
	stepDone
)

type setupModel struct {
	step setupStep
	err  error

	tokenInput  textinput.Model
	numberInput textinput.Model
	statusMsg   string

	databases []databaseItem
	dbList    list.Model

	// Results
	token         string
	databaseID    string
	databaseTitle string
	number        string
	cancelled     bool
}

type tokenValidatedMsg struct {
	databases []databaseItem
	err       error
}

func newSetupModel() setupModel {
	token := textinput.New()
	token.Placeholder = "secret_xxx... or ntn_xxx..."
	token.Focus()
	token.CharLimit = 256
	token.Width = 50
	token.EchoMode = textinput.EchoPassword

	number := textinput.New()
	number.Placeholder = "+55 11 99999-0000"
	number.CharLimit = 32
	number.Width = 30

	return setupModel{
		step:        stepToken,
		tokenInput:  token,
		numberInput: number,
	}
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.step == stepSelectDatabase && m.dbList.FilterState() == list.Filtering {
				break
			}
			m.cancelled = true
			return m, tea.Quit
		}
	case tokenValidatedMsg:
		if msg.err != nil {
			m.step = stepToken
			m.statusMsg = output.Red("Invalid token: " + msg.err.Error())
			m.tokenInput.Focus()
			return m, textinput.Blink
		}
		if len(msg.databases) == 0 {
			m.step = stepToken
			m.statusMsg = output.Red("No databases are shared with this integration. Share your task board with it in Notion and try again.")
			m.tokenInput.Focus()
			return m, textinput.Blink
		}
		m.databases = msg.databases
		m.statusMsg = ""
		m.step = stepSelectDatabase
		m.dbList = newDatabaseList("Select the task database", m.databases, 70)
		return m, nil
	}

	switch m.step {
	case stepToken:
		return m.updateToken(msg)
	case stepSelectDatabase:
		return m.updateDatabaseSelect(msg)
	case stepNumber:
		return m.updateNumber(msg)
	}

	return m, nil
}

func (m setupModel) updateToken(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		value := strings.TrimSpace(m.tokenInput.Value())
		if value == "" {
			m.statusMsg = output.Red("Notion token is required")
			return m, nil
		}
		m.token = value
		m.step = stepValidating
		m.statusMsg = "Validating token..."
		return m, m.validateToken
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

func (m setupModel) updateDatabaseSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" && m.dbList.FilterState() != list.Filtering {
		selected, ok := m.dbList.SelectedItem().(databaseItem)
		if !ok {
			return m, nil
		}
		m.databaseID = selected.id
		m.databaseTitle = selected.title
		m.step = stepNumber
		m.statusMsg = ""
		m.numberInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.dbList, cmd = m.dbList.Update(msg)
	return m, cmd
}

func (m setupModel) updateNumber(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		value := strings.TrimSpace(m.numberInput.Value())
		if value != "" {
			if _, err := whatsapp.NormalizeNumber(value); err != nil {
				m.statusMsg = output.Red(err.Error())
				return m, nil
			}
		}
		m.number = value
		m.step = stepDone
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.numberInput, cmd = m.numberInput.Update(msg)
	return m, cmd
}

// Commands

func (m setupModel) validateToken() tea.Msg {
	databases, err := validateTokenNonInteractive(m.token)
	return tokenValidatedMsg{databases: databases, err: err}
}

// validateTokenNonInteractive checks a token by listing the databases it
// can see.
func validateTokenNonInteractive(token string) ([]databaseItem, error) {
	client := apiNewFunc(token)
	dbs, err := client.SearchDatabases("")
	if err != nil {
		return nil, err
	}
	return databaseItems(dbs), nil
}

// View

func (m setupModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true)
	b.WriteString(titleStyle.Render("boardnotifier setup"))
	b.WriteString("\n\n")

	switch m.step {
	case stepToken:
		b.WriteString("Enter your Notion integration token:\n")
		b.WriteString("(Create one at https://www.notion.so/my-integrations)\n\n")
		b.WriteString(m.tokenInput.View())
		b.WriteString("\n")
	case stepValidating:
		b.WriteString(m.statusMsg)
		b.WriteString("\n")
	case stepSelectDatabase:
		b.WriteString(m.dbList.View())
		b.WriteString("\n")
	case stepNumber:
		b.WriteString("WhatsApp number to send digests to (with country code):\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("Leave empty to keep the current setting."))
		b.WriteString("\n\n")
		b.WriteString(m.numberInput.View())
		b.WriteString("\n")
	}
	if m.statusMsg != "" && m.step != stepValidating {
		b.WriteString("\n" + m.statusMsg + "\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Esc to cancel"))
	b.WriteString("\n")

	return b.String()
}

// runRoot is the RunE for the bare `boardnotifier` command.
// On first run (no config), it launches the setup wizard.
// Otherwise, it shows help.
func runRoot(cmd *cobra.Command, args []string) error {
	if needsSetup() {
		if !isInteractive() {
			return cmd.Help()
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Welcome to boardnotifier! Let's get you set up.")
		return runSetup(cmd, nil)
	}
	return cmd.Help()
}

// setupPersistentPreRun is installed as PersistentPreRunE on the root command.
// It runs the wizard before any subcommand that needs a Notion token when
// none is configured.
func setupPersistentPreRun(cmd *cobra.Command, args []string) error {
	path := cmd.CommandPath()
	for _, skip := range []string{"boardnotifier version", "boardnotifier help", "boardnotifier setup", "boardnotifier completion"} {
		if path == skip || strings.HasPrefix(path, skip+" ") {
			return nil
		}
	}
	if path == "boardnotifier" {
		return nil
	}

	if !needsSetup() {
		return nil
	}

	if !isInteractive() {
		return exitcode.Auth("no Notion token configured, set NOTION_TOKEN or run 'boardnotifier setup' in a terminal", nil)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Welcome to boardnotifier! Let's get you set up.")
	return runSetup(cmd, nil)
}
