package formatter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/wbx/go-timer-workbench/internal/util"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) FormatRows(rows []RowView) error {
	w := csv.NewWriter(f.w)
	defer w.Flush()

	if err := w.Write([]string{"Time", "Type", "Elapsed", "Notes"}); err != nil {
		return err
	}

	for _, row := range rows {
		elapsed := ""
		if row.Elapsed != nil {
			elapsed = fmt.Sprintf("%.1f", *row.Elapsed)
		}
		if err := w.Write([]string{row.Time, row.Type, elapsed, row.Notes}); err != nil {
			return err
		}
	}

	return nil
}

func (f *CSVFormatter) FormatDays(days []DayView) error {
	w := csv.NewWriter(f.w)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Rows", "Hours"}); err != nil {
		return err
	}

	for _, day := range days {
		record := []string{
			day.Date,
			fmt.Sprintf("%d", day.Rows),
			util.FormatHours(day.Hours),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
