// Package resolve turns user-supplied database identifiers into Notion
// database IDs.
//
// An identifier is either a Notion ID (dashed, undashed, or a database URL)
// or a title. Titles resolve by exact match (case-insensitive) and then by
// unique substring match against the databases shared with the integration.
package resolve

import (
	"fmt"
	"strings"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
)

// DatabaseSearcher lists the databases visible to the integration.
type DatabaseSearcher interface {
	SearchDatabases(query string) ([]api.Database, error)
}

// DatabaseResult is the resolved database returned to callers. Title is
// empty when the identifier was already an ID.
type DatabaseResult struct {
	ID    string
	Title string
}

// Database resolves identifier to a database. IDs are returned without a
// lookup; titles are matched against a search of all shared databases.
func Database(client DatabaseSearcher, identifier string) (*DatabaseResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, exitcode.Usage("no database given, set DATABASE_ID or run 'boardnotifier setup'")
	}
	if id, ok := api.NormalizeID(identifier); ok {
		return &DatabaseResult{ID: id}, nil
	}

	dbs, err := client.SearchDatabases("")
	if err != nil {
		return nil, err
	}

	if db, found := matchDatabase(dbs, identifier); found {
		return db, nil
	}
	if err := checkDatabaseAmbiguous(dbs, identifier); err != nil {
		return nil, err
	}
	return nil, exitcode.NotFoundError(fmt.Sprintf("database %q not found, make sure it is shared with your integration", identifier))
}

func matchDatabase(dbs []api.Database, identifier string) (*DatabaseResult, bool) {
	idLower := strings.ToLower(identifier)

	for _, db := range dbs {
		if strings.ToLower(db.PlainTitle()) == idLower {
			return &DatabaseResult{ID: db.ID, Title: db.PlainTitle()}, true
		}
	}

	var matches []api.Database
	for _, db := range dbs {
		if strings.Contains(strings.ToLower(db.PlainTitle()), idLower) {
			matches = append(matches, db)
		}
	}
	if len(matches) == 1 {
		return &DatabaseResult{ID: matches[0].ID, Title: matches[0].PlainTitle()}, true
	}

	return nil, false
}

func checkDatabaseAmbiguous(dbs []api.Database, identifier string) error {
	idLower := strings.ToLower(identifier)
	var matches []string
	for _, db := range dbs {
		if strings.Contains(strings.ToLower(db.PlainTitle()), idLower) {
			matches = append(matches, fmt.Sprintf("%s [%s]", db.PlainTitle(), db.ID))
		}
	}
	if len(matches) > 1 {
		msg := fmt.Sprintf("database %q is ambiguous, matches %d databases:\n", identifier, len(matches))
		for _, m := range matches {
			msg += "  - " + m + "\n"
		}
		msg += "\nUse a more specific title or the database ID."
		return exitcode.Usage(msg)
	}
	return nil
}
