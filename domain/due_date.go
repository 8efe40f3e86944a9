package domain

import (
	"strings"
	"time"
)

const (
	// DefaultDateLayout matches the short US date shown by the browser client.
	DefaultDateLayout = "1/2/2006"

	noDueDate = "No due date"
)

var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/1/2",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseDueDate parses the date formats the task API and date inputs produce.
func ParseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDueDate renders a due date for display. A missing or empty date
// yields "No due date"; a value that does not parse is returned unchanged.
func FormatDueDate(due *string, layout string) string {
	if due == nil || *due == "" {
		return noDueDate
	}
	t, ok := ParseDueDate(*due)
	if !ok {
		return *due
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}
