package formatter

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) FormatRows(rows []RowView) error {
	return f.encode(rows)
}

func (f *JSONFormatter) FormatDays(days []DayView) error {
	return f.encode(days)
}

func (f *JSONFormatter) encode(v interface{}) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}
