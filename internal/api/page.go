package api

import "strings"

// Page is a Notion page returned from a database query. Each page is one
// task row.
type Page struct {
	Object         string                   `json:"object"`
	ID             string                   `json:"id"`
	URL            string                   `json:"url"`
	CreatedTime    string                   `json:"created_time"`
	LastEditedTime string                   `json:"last_edited_time"`
	Properties     map[string]PropertyValue `json:"properties"`
}

// PropertyValue is a page property. Only the field matching Type is set.
type PropertyValue struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Status   *SelectOption `json:"status,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	People   []User        `json:"people,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
}

// RichText is one segment of a title or rich text value.
type RichText struct {
	PlainText string `json:"plain_text"`
	Text      *struct {
		Content string `json:"content"`
	} `json:"text,omitempty"`
}

// SelectOption is the value of a status or select property.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// User is a Notion person.
type User struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	Name   string `json:"name"`
}

// DateValue is the value of a date property. End is nil for single dates.
type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end"`
	TimeZone *string `json:"time_zone"`
}

// PlainText joins rich text segments. Segments without plain_text fall back
// to their text content.
func PlainText(segments []RichText) string {
	var b strings.Builder
	for _, s := range segments {
		switch {
		case s.PlainText != "":
			b.WriteString(s.PlainText)
		case s.Text != nil:
			b.WriteString(s.Text.Content)
		}
	}
	return b.String()
}

// Title returns the text of the title property with the given name.
func (p Page) Title(name string) (string, bool) {
	prop, ok := p.Properties[name]
	if !ok {
		return "", false
	}
	segments := prop.Title
	if len(segments) == 0 {
		segments = prop.RichText
	}
	text := PlainText(segments)
	return text, text != ""
}

// StatusName returns the option name of a status or select property.
func (p Page) StatusName(name string) (string, bool) {
	prop, ok := p.Properties[name]
	if !ok {
		return "", false
	}
	opt := prop.Status
	if opt == nil {
		opt = prop.Select
	}
	if opt == nil || opt.Name == "" {
		return "", false
	}
	return opt.Name, true
}

// People returns the people in a people property, in Notion's order.
func (p Page) People(name string) []User {
	return p.Properties[name].People
}

// Date returns the value of a date property, or nil when the property is
// missing or empty.
func (p Page) Date(name string) *DateValue {
	return p.Properties[name].Date
}
