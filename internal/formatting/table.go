package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	emsstrings "emsctl/pkg/strings"
)

// maxCellWidth truncates long cells in table output.
const maxCellWidth = 60

// Table is a list result. Each row holds one cell per column in Columns
// followed by one per column in WideColumns.
type Table struct {
	// Resource names the listed records in the empty-result message,
	// e.g. "attendance records".
	Resource    string
	Columns     []string
	WideColumns []string
	Rows        [][]string
	// Data is encoded as is by the JSON and YAML formats.
	Data interface{}
}

// Field is one labelled value of a single record.
type Field struct {
	Name  string
	Value string
}

// plainStyle renders kubectl-style tables: no borders, upper-case headers
// and three spaces between columns.
func plainStyle() table.Style {
	style := table.StyleDefault
	style.Name = "plain"
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "   "
	style.Format.Header = text.FormatUpper
	style.Options.DrawBorder = false
	style.Options.SeparateColumns = false
	style.Options.SeparateHeader = false
	style.Options.SeparateFooter = false
	style.Options.SeparateRows = false
	return style
}

func paint(opts Options, color text.Color, s string) string {
	if !opts.Color {
		return s
	}
	return color.Sprint(s)
}

// RenderTable writes t to w in the format selected by opts.
func RenderTable(w io.Writer, t Table, opts Options) error {
	if opts.Format.Structured() {
		data := t.Data
		if data == nil {
			data = []interface{}{}
		}
		return writeStructured(w, opts.Format, data)
	}

	if len(t.Rows) == 0 {
		resource := t.Resource
		if resource == "" {
			resource = "items"
		}
		_, err := fmt.Fprintln(w, paint(opts, text.FgYellow, fmt.Sprintf("No %s found", resource)))
		return err
	}

	wide := opts.Format == FormatWide
	columns := t.Columns
	if wide {
		columns = append(append([]string{}, t.Columns...), t.WideColumns...)
	}

	tw := table.NewWriter()
	tw.SetStyle(plainStyle())
	if !opts.NoHeaders {
		header := make(table.Row, len(columns))
		for i, c := range columns {
			header[i] = c
		}
		tw.AppendHeader(header)
	}
	for _, r := range t.Rows {
		row := make(table.Row, len(columns))
		for i := range columns {
			if i < len(r) {
				row[i] = emsstrings.Cell(r[i], maxCellWidth)
			} else {
				row[i] = ""
			}
		}
		tw.AppendRow(row)
	}

	for _, line := range strings.Split(tw.Render(), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// RenderFields writes a single record as aligned "Name: value" lines, or
// encodes data for the structured formats.
func RenderFields(w io.Writer, fields []Field, data interface{}, opts Options) error {
	if opts.Format.Structured() {
		return writeStructured(w, opts.Format, data)
	}

	width := 0
	for _, f := range fields {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}
	for _, f := range fields {
		label := fmt.Sprintf("%-*s", width+1, f.Name+":")
		value := f.Value
		if value == "" {
			value = "-"
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", paint(opts, text.FgHiCyan, label), value); err != nil {
			return err
		}
	}
	return nil
}

// Success formats a confirmation line.
func Success(opts Options, msg string) string {
	return paint(opts, text.FgGreen, "✓ "+msg)
}

// Warning formats a warning line.
func Warning(opts Options, msg string) string {
	return paint(opts, text.FgYellow, "⚠ "+msg)
}
