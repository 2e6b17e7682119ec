package formatter

import (
	"fmt"
	"io"
)

// Formatter renders timestamp rows and report summaries.
type Formatter interface {
	FormatRows(rows []RowView) error
	FormatDays(days []DayView) error
}

// New returns the formatter for the requested output format.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table, json or csv)", format)
}
