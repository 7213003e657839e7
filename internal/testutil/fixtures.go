package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fixturesDir returns the absolute path to the test/fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "test", "fixtures")
}

// LoadFixture reads a file from test/fixtures/, failing the test if it is
// missing. Fixtures are canned Notion and WhatsApp API responses.
func LoadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixturesDir(), name))
	if err != nil {
		t.Fatalf("failed to load fixture %q: %v", name, err)
	}
	return data
}
