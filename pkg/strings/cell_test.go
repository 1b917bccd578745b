package strings

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short", "present", 10, "present"},
		{"exact", "abcdefghij", 10, "abcdefghij"},
		{"long", "Quarterly review of the sales pipeline", 12, "Quarterly..."},
		{"multiline remarks", "Good work.\nKeep it up.", 60, "Good work. Keep it up."},
		{"tabs and spaces", "  a \t b  ", 60, "a b"},
		{"empty", "", 10, ""},
		{"runes", "Évaluation très réussie", 10, "Évaluat..."},
		{"width clamped", "abcdef", 1, "a..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cell(tt.in, tt.width))
		})
	}
}

func TestCell_NeverSplitsRunes(t *testing.T) {
	got := Cell(strings.Repeat("ü", 100), 60)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 60, utf8.RuneCountInString(got))
}
