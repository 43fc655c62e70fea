package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	shortLabelRe = regexp.MustCompile(`(?i)^T\s*0*(\d+)$`)
	longLabelRe  = regexp.MustCompile(`(?i)^Table\s+0*(\d+)$`)
)

// LabelNumber extracts the numeric suffix from a table label. Both the
// compact form ("T01") and the verbose form ("Table 7") are recognized.
func LabelNumber(label string) (int, bool) {
	s := strings.TrimSpace(label)
	for _, re := range []*regexp.Regexp{shortLabelRe, longLabelRe} {
		if m := re.FindStringSubmatch(s); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// NextLabel computes the label for a newly added table: one past the highest
// numeric suffix among the existing labels, zero-padded to two digits.
// Labels that match neither pattern are ignored; an empty floor yields "T01".
func NextLabel(existing []string) string {
	max := 0
	for _, label := range existing {
		if n, ok := LabelNumber(label); ok && n > max {
			max = n
		}
	}
	return FormatLabel(max + 1)
}

// FormatLabel renders a table number in the canonical compact form.
func FormatLabel(n int) string {
	return fmt.Sprintf("T%02d", n)
}
