package orderform

import (
	"strings"
	"time"
)

const (
	// wireDateLayout is MM/DD/YYYY.
	wireDateLayout = "01/02/2006"

	dashDateLayout  = "2-1-2006"
	slashDateLayout = "1/2/2006"
)

// FormatWireDate renders d as MM/DD/YYYY, or "" when d is nil.
func FormatWireDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(wireDateLayout)
}

// ParseStoredDate reads a date written by any client version. A "-"
// separator means DD-MM-YYYY and "/" means MM/DD/YYYY. Anything else,
// including a date that does not exist, yields nil.
func ParseStoredDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	var layout string
	switch {
	case strings.Contains(s, "-"):
		layout = dashDateLayout
	case strings.Contains(s, "/"):
		layout = slashDateLayout
	default:
		return nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}
	return &t
}
