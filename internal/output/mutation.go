package output

import (
	"fmt"
	"io"
)

// MutationItem is one message that was (or would be) delivered.
type MutationItem struct {
	Ref     string // group name, e.g. "Alice" or "Backend"
	Title   string // e.g. "3 task(s)"
	Context string // e.g. "(to 5511999999999)" for dry-run
}

// FailedItem is a message that could not be delivered.
type FailedItem struct {
	Ref    string
	Reason string
}

// MutationSingle prints a single-line confirmation, e.g.
// "Sent 3 tasks for Alice".
func MutationSingle(w io.Writer, message string) {
	fmt.Fprintln(w, message)
}

// MutationBatch prints a summary header with an indented list.
//
//	Sent 2 digest(s):
//
//	  Alice 3 task(s)
//	  Bob   1 task(s)
func MutationBatch(w io.Writer, header string, items []MutationItem) {
	fmt.Fprintln(w, header)
	fmt.Fprintln(w)
	printItems(w, items)
}

// MutationPartialFailure prints the delivered items followed by failures.
func MutationPartialFailure(w io.Writer, header string, succeeded []MutationItem, failed []FailedItem) {
	fmt.Fprintln(w, header)
	if len(succeeded) > 0 {
		fmt.Fprintln(w)
		printItems(w, succeeded)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, Red("Failed:"))
	fmt.Fprintln(w)
	for _, f := range failed {
		fmt.Fprintf(w, "  %s  %s\n", f.Ref, Red(f.Reason))
	}
}

// MutationDryRun prints what would be delivered, using a "Would" header.
func MutationDryRun(w io.Writer, header string, items []MutationItem) {
	fmt.Fprintln(w, Yellow(header))
	fmt.Fprintln(w)
	for _, item := range items {
		line := "  " + item.Ref
		if item.Title != "" {
			line += " " + item.Title
		}
		if item.Context != "" {
			line += " " + Dim(item.Context)
		}
		fmt.Fprintln(w, Yellow(line))
	}
}

func printItems(w io.Writer, items []MutationItem) {
	maxRef := 0
	for _, item := range items {
		if len(item.Ref) > maxRef {
			maxRef = len(item.Ref)
		}
	}
	for _, item := range items {
		fmt.Fprintf(w, "  %-*s %s\n", maxRef, item.Ref, item.Title)
	}
}
