package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/wbx/go-timer-workbench/internal/util"
)

const minNotesWidth = 5

// TableFormatter renders rows as a bordered terminal table. Notes are free
// text and may contain wide runes, so all width math goes through runewidth.
type TableFormatter struct {
	w        io.Writer
	maxWidth int
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	maxWidth := 0
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			maxWidth = cols
		}
	}
	return &TableFormatter{w: w, maxWidth: maxWidth}
}

// FormatRows prints the normalized timestamp rows.
func (f *TableFormatter) FormatRows(rows []RowView) error {
	headers := []string{"Time", "Type", "Elapsed", "Notes"}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{
			row.Time,
			row.Type,
			util.FormatElapsed(row.Elapsed),
			row.Notes,
		}
	}

	widths := f.columnWidths(headers, cells)
	f.printBorder(widths, "top")
	f.printRow(headers, widths, nil)
	f.printBorder(widths, "middle")
	for _, row := range cells {
		row[3] = runewidth.Truncate(row[3], widths[3], "…")
		f.printRow(row, widths, map[int]bool{2: true})
	}
	f.printBorder(widths, "bottom")
	return nil
}

// FormatDays prints the per-day report with a trailing total row.
func (f *TableFormatter) FormatDays(days []DayView) error {
	headers := []string{"Date", "Rows", "Hours"}

	var totalRows int
	var totalHours float64
	cells := make([][]string, len(days))
	for i, day := range days {
		cells[i] = []string{
			day.Date,
			fmt.Sprintf("%d", day.Rows),
			util.FormatHours(day.Hours),
		}
		totalRows += day.Rows
		totalHours += day.Hours
	}
	total := []string{"Total", fmt.Sprintf("%d", totalRows), util.FormatHours(totalHours)}

	widths := f.columnWidths(headers, append(append([][]string{}, cells...), total))
	rightAlign := map[int]bool{1: true, 2: true}

	f.printBorder(widths, "top")
	f.printRow(headers, widths, nil)
	f.printBorder(widths, "middle")
	for _, row := range cells {
		f.printRow(row, widths, rightAlign)
	}
	f.printBorder(widths, "middle")
	f.printRow(total, widths, rightAlign)
	f.printBorder(widths, "bottom")
	return nil
}

// columnWidths determines the width of each column from its content, capping
// the last column so the table fits the terminal.
func (f *TableFormatter) columnWidths(headers []string, cells [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range cells {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if f.maxWidth > 0 {
		// Borders and padding: 3 chars per column plus the closing border.
		fixed := 1
		for i := 0; i < len(widths)-1; i++ {
			fixed += widths[i] + 3
		}
		last := len(widths) - 1
		if available := f.maxWidth - fixed - 3; available >= minNotesWidth && widths[last] > available {
			widths[last] = available
		}
	}

	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Fprint(f.w, left)
	for i, width := range widths {
		fmt.Fprint(f.w, strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Fprint(f.w, middle)
		}
	}
	fmt.Fprintln(f.w, right)
}

func (f *TableFormatter) printRow(values []string, widths []int, rightAlign map[int]bool) {
	fmt.Fprint(f.w, "│")
	for i, value := range values {
		padding := widths[i] - runewidth.StringWidth(value)
		if padding < 0 {
			padding = 0
		}
		if rightAlign[i] {
			fmt.Fprintf(f.w, " %s%s │", strings.Repeat(" ", padding), value)
		} else {
			fmt.Fprintf(f.w, " %s%s │", value, strings.Repeat(" ", padding))
		}
	}
	fmt.Fprintln(f.w)
}
