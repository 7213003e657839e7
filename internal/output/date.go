package output

import "time"

// Sentinel strings shown in place of a task date.
const (
	NoDate      = "No Date"
	InvalidDate = "Invalid Date"
)

// DateRange is a task's start/end pair as returned by the task store. Both
// values are raw ISO 8601 strings; an empty string means the value is absent.
// End is only meaningful when Start is present.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// dateLayouts are the ISO 8601 shapes accepted for Start and End, tried in
// order. Fractional seconds are accepted after any seconds field. Offsets
// may be written extended (+02:00) or basic (+0200).
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02T15Z07:00",
	"2006-01-02T15",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15",
}

// ParseDate parses an ISO 8601 date or date-time string. Values carrying an
// offset keep it, so calendar fields read as written.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate formats a time as a standalone date: "Jan 20, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateRange renders a task date for a digest.
//
//	{}                                   → "No Date"
//	{Start: "2024-05-10"}                → "May 10, 2024"
//	{Start: "2024-05-10", End: "...-12"} → "May 10 - 12, 2024"
//	{Start: "2024-05-10", End: "06-12"}  → "May 10 - Jun 12, 2024"
//	{Start: "2023-12-30", End: "01-02"}  → "Dec 30, 2023 - Jan 2, 2024"
//
// Unparseable values yield "Invalid Date". A range collapses to a single day
// only when End is byte-for-byte equal to Start.
func FormatDateRange(r DateRange) string {
	if r.Start == "" {
		return NoDate
	}
	start, ok := ParseDate(r.Start)
	if !ok {
		return InvalidDate
	}
	if r.End == "" || r.End == r.Start {
		return FormatDate(start)
	}
	end, ok := ParseDate(r.End)
	if !ok {
		return InvalidDate
	}

	if start.Year() == end.Year() && start.Month() == end.Month() {
		return start.Format("Jan 2") + " - " + end.Format("2, 2006")
	}
	if start.Year() == end.Year() {
		return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	}
	return FormatDate(start) + " - " + FormatDate(end)
}
