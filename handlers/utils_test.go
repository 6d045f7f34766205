package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-01-29", "2026-01-29"},
		{"29-01-2026", "2026-01-29"},
		{"29/01/2026", "2026-01-29"},
		{"2026/01/29", "2026-01-29"},
		// Unparseable input passes through untouched
		{"not-a-date", "not-a-date"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeDate(tc.in), "input %q", tc.in)
	}
}
