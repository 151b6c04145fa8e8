package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Drink Water", "drink-water"},
		{"drink_water", "drink-water"},
		{"DRINK-WATER", "drink-water"},
		{"  multi   word ", "multi-word"},
		{"🏃 Run!", "run"},
		{"--leading--", "leading"},
		{"read/books", "read-books"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"read": true, "read-2": true}
	isTaken := func(s string) bool { return taken[s] }

	assert.Equal(t, "write", UniqueSlug("write", isTaken))
	assert.Equal(t, "read-3", UniqueSlug("read", isTaken))
}
