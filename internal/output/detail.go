package output

import (
	"fmt"
	"io"
	"strings"
)

const separatorWidth = 80

var (
	doubleSeparator = strings.Repeat("═", separatorWidth)
	singleSeparator = strings.Repeat("─", separatorWidth)
)

// DetailWriter builds a detail view for a single entity.
//
// Usage:
//
//	d := output.NewDetailWriter(w, "DATABASE", "Marketplace Board")
//	d.Fields([]output.KeyValue{
//		output.KV("ID", db.ID),
//		output.KV("URL", db.URL),
//	})
//	d.Section("PROPERTIES")
type DetailWriter struct {
	w io.Writer
}

// NewDetailWriter writes the entity title line and a double separator.
// entityType should be ALL CAPS.
func NewDetailWriter(w io.Writer, entityType, title string) *DetailWriter {
	fmt.Fprintf(w, "%s: %s\n", Bold(entityType), Bold(title))
	fmt.Fprintln(w, doubleSeparator)
	fmt.Fprintln(w)
	return &DetailWriter{w: w}
}

// KeyValue is a key-value pair for use with Fields.
type KeyValue struct {
	Key   string
	Value string
}

// KV is a convenience constructor for KeyValue.
func KV(key, value string) KeyValue {
	return KeyValue{Key: key, Value: value}
}

// Fields writes key-value lines with keys right-aligned to the longest key.
// Empty values render as DetailMissing.
func (d *DetailWriter) Fields(fields []KeyValue) {
	width := 0
	for _, f := range fields {
		if len(f.Key) > width {
			width = len(f.Key)
		}
	}
	for _, f := range fields {
		value := f.Value
		if value == "" {
			value = DetailMissing
		}
		fmt.Fprintf(d.w, "%*s:  %s\n", width, f.Key, value)
	}
}

// Section writes a section header followed by a single-line separator.
func (d *DetailWriter) Section(name string) {
	fmt.Fprintln(d.w)
	fmt.Fprintln(d.w, Bold(name))
	fmt.Fprintln(d.w, singleSeparator)
}
