package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelNumber(t *testing.T) {
	testCases := []struct {
		name     string
		label    string
		expected int
		ok       bool
	}{
		{
			name:     "Compact form",
			label:    "T01",
			expected: 1,
			ok:       true,
		},
		{
			name:     "Compact form without padding",
			label:    "T3",
			expected: 3,
			ok:       true,
		},
		{
			name:     "Verbose form",
			label:    "Table 7",
			expected: 7,
			ok:       true,
		},
		{
			name:     "Verbose form with padding",
			label:    "Table 012",
			expected: 12,
			ok:       true,
		},
		{
			name:     "Lowercase compact",
			label:    "t9",
			expected: 9,
			ok:       true,
		},
		{
			name:     "Surrounding whitespace",
			label:    "  T04  ",
			expected: 4,
			ok:       true,
		},
		{
			name:  "Free-form label",
			label: "Window Booth",
			ok:    false,
		},
		{
			name:  "Number embedded mid-word",
			label: "Terrace 2 West",
			ok:    false,
		},
		{
			name:  "Empty",
			label: "",
			ok:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, ok := LabelNumber(tc.label)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, n)
			}
		})
	}
}

func TestNextLabel(t *testing.T) {
	testCases := []struct {
		name     string
		existing []string
		expected string
	}{
		{
			name:     "Mixed label forms",
			existing: []string{"T01", "T03", "Table 7"},
			expected: "T08",
		},
		{
			name:     "Empty floor",
			existing: nil,
			expected: "T01",
		},
		{
			name:     "Only free-form labels",
			existing: []string{"Bar", "Patio"},
			expected: "T01",
		},
		{
			name:     "Double digits",
			existing: []string{"T09", "T10"},
			expected: "T11",
		},
		{
			name:     "Crosses padding width",
			existing: []string{"T99"},
			expected: "T100",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NextLabel(tc.existing))
		})
	}
}
