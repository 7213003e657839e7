package cmd

import (
	"sort"
	"strings"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/digest"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/output"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/resolve"
	"github.com/spf13/cobra"
)

var databaseInteractive bool

var databaseCmd = &cobra.Command{
	Use:   "database [name-or-id]",
	Short: "Show a database and how its properties are used",
	Long: `Show the title, ID and property schema of a Notion database. Without an
argument the configured database is shown. The USED AS column marks the
properties digests read from, so a renamed column shows up as missing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDatabase,
}

func init() {
	databaseCmd.Flags().BoolVarP(&databaseInteractive, "interactive", "i", false, "Select a database from a list")
	rootCmd.AddCommand(databaseCmd)
}

func resetDatabaseFlags() {
	databaseInteractive = false
}

func runDatabase(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd).Named("database")
	defer func() { _ = logger.Sync() }()

	client := newClient(cfg, logger)

	var databaseID string
	switch {
	case databaseInteractive:
		picked, err := pickDatabase(cmd, client)
		if err != nil {
			return err
		}
		databaseID = picked.id
	case len(args) > 0:
		db, err := resolve.Database(client, args[0])
		if err != nil {
			return err
		}
		databaseID = db.ID
	default:
		if databaseID, err = requireDatabase(cfg, client); err != nil {
			return err
		}
	}

	db, err := client.RetrieveDatabase(databaseID)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output.IsJSON(outputFormat) {
		return output.JSON(w, db)
	}

	lastEdited := ""
	if t, ok := output.ParseDate(db.LastEditedTime); ok {
		lastEdited = output.FormatDate(t)
	}

	d := output.NewDetailWriter(w, "DATABASE", db.PlainTitle())
	d.Fields([]output.KeyValue{
		output.KV("ID", output.Cyan(db.ID)),
		output.KV("URL", db.URL),
		output.KV("Last edited", lastEdited),
	})

	names := digest.NamesFromConfig(cfg.Properties)
	d.Section("PROPERTIES")
	usage := propertyUsage(names)
	lw := output.NewListWriter(w, "NAME", "TYPE", "USED AS")
	for _, p := range sortedProperties(db) {
		used := strings.Join(usage[p.Name], ", ")
		if used == "" {
			used = output.TableMissing
		}
		lw.Row(p.Name, p.Type, used)
	}
	lw.Flush()

	var missing []string
	for _, role := range propertyRoles {
		name := role.name(names)
		if _, ok := db.Properties[name]; !ok {
			missing = append(missing, role.label+" ("+name+")")
		}
	}
	if len(missing) > 0 {
		d.Section("MISSING PROPERTIES")
		for _, m := range missing {
			output.MutationSingle(w, output.Red("  "+m))
		}
	}
	return nil
}

// propertyRoles lists what each configured property name is used for.
var propertyRoles = []struct {
	label string
	name  func(digest.PropertyNames) string
}{
	{"task", func(n digest.PropertyNames) string { return n.Task }},
	{"status", func(n digest.PropertyNames) string { return n.Status }},
	{"assignee", func(n digest.PropertyNames) string { return n.Assignee }},
	{"date", func(n digest.PropertyNames) string { return n.Date }},
	{"epic", func(n digest.PropertyNames) string { return n.Epic }},
}

func propertyUsage(names digest.PropertyNames) map[string][]string {
	usage := make(map[string][]string)
	for _, role := range propertyRoles {
		name := role.name(names)
		usage[name] = append(usage[name], role.label)
	}
	return usage
}

// sortedProperties returns the schema ordered by property name. The map key
// is authoritative; Notion repeats it in PropertySchema.Name.
func sortedProperties(db *api.Database) []api.PropertySchema {
	props := make([]api.PropertySchema, 0, len(db.Properties))
	for name, p := range db.Properties {
		p.Name = name
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return props
}

// pickDatabase lets the user choose one of the databases shared with the
// integration.
func pickDatabase(cmd *cobra.Command, client *api.Client) (*databaseItem, error) {
	if !isInteractive() {
		return nil, exitcode.Usage("--interactive requires a terminal, pass a database name or ID instead")
	}
	dbs, err := client.SearchDatabases("")
	if err != nil {
		return nil, err
	}
	return runPicker(cmd, "Select a database", databaseItems(dbs))
}
