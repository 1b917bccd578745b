package formatting

import (
	"fmt"
	"strings"
)

// OutputFormat represents the desired output format.
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Plain table of the main columns
	FormatWide  OutputFormat = "wide"  // Table with every column
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []OutputFormat{FormatTable, FormatWide, FormatJSON, FormatYAML}

// ParseFormat converts a --output value into an OutputFormat. An empty
// value selects FormatTable.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTable, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unsupported output format %q (use one of: %s)", s, strings.Join(names, ", "))
}

// Structured reports whether f is a machine-readable format.
func (f OutputFormat) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Options configures rendering.
type Options struct {
	Format    OutputFormat
	NoHeaders bool
	// Color enables ANSI colors in table output.
	Color bool
}
