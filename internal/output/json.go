package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON writes v as indented JSON to w, followed by a newline.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// IsJSON reports whether the --output flag selects JSON.
func IsJSON(format string) bool {
	return format == "json"
}
