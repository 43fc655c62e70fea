// Package timefmt renders timestamps as short relative strings for the
// dashboard and table cards.
package timefmt

import (
	"fmt"
	"time"
)

// Relative turns a timestamp into a coarse human string relative to now.
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hr ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}

// RelativeRFC3339 parses an RFC3339 timestamp and renders it relative to
// now. Unparseable input yields an empty string rather than an error; the
// backend is not trusted to always send well-formed timestamps.
func RelativeRFC3339(s string, now time.Time) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ""
	}
	return Relative(t, now)
}
