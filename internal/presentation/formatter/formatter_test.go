package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbx/go-timer-workbench/internal/core/model"
	"github.com/wbx/go-timer-workbench/internal/util"
)

func hours(h float64) *float64 {
	return &h
}

func sampleRows() []RowView {
	return []RowView{
		{Time: "2020-02-20 09:00", Type: "start", Elapsed: nil, Notes: "morning"},
		{Time: "2020-02-20 09:40", Type: "split", Elapsed: hours(0.7), Notes: ""},
		{Time: "2020-02-20 10:55", Type: "stop", Elapsed: hours(1.3), Notes: "讓我們休息"},
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []string{"", "table", "json", "csv"} {
		f, err := New(format, &buf)
		assert.NoError(t, err, format)
		assert.NotNil(t, f, format)
	}

	_, err := New("yaml", &buf)
	assert.Error(t, err)
}

func TestRowViews(t *testing.T) {
	tp := &util.TimeProvider{}
	require.NoError(t, tp.SetTimezone("UTC"))

	rows := []model.NormalizedRow{
		{
			Elapsed: hours(0.5),
			Kind:    model.KindStop,
			Timestamp: model.TimestampEvent{
				Kind:      model.KindStop,
				CreatedAt: time.Date(2020, 2, 20, 9, 30, 0, 0, time.UTC),
				Notes:     "done",
			},
		},
	}

	views := RowViews(rows, tp)
	require.Len(t, views, 1)
	assert.Equal(t, "2020-02-20 09:30", views[0].Time)
	assert.Equal(t, "stop", views[0].Type)
	assert.Equal(t, hours(0.5), views[0].Elapsed)
	assert.Equal(t, "done", views[0].Notes)
}

func TestTableFormatRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).FormatRows(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "│ Time")
	assert.Contains(t, out, "start")
	assert.Contains(t, out, "0.7h")
	// nil elapsed renders as a dash
	assert.Contains(t, out, " - ")
	assert.Contains(t, out, "讓我們休息")

	// Every line has the same display width.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
}

func TestTableFormatDays(t *testing.T) {
	var buf bytes.Buffer
	days := []DayView{
		{Date: "2020-02-20", Rows: 3, Hours: 2.0},
		{Date: "2020-02-21", Rows: 2, Hours: 1.0},
	}
	require.NoError(t, NewTableFormatter(&buf).FormatDays(days))

	out := buf.String()
	assert.Contains(t, out, "2020-02-20")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "3.0h")
}

func TestJSONFormatRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).FormatRows(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, `"type": "start"`)
	assert.Contains(t, out, `"elapsed": null`)
	assert.Contains(t, out, `"elapsed": 0.7`)
}

func TestCSVFormatRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(&buf).FormatRows(sampleRows()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Time,Type,Elapsed,Notes", lines[0])
	assert.Contains(t, lines[1], ",start,,morning")
	assert.Contains(t, lines[2], "0.7")
}

func TestCSVFormatDays(t *testing.T) {
	var buf bytes.Buffer
	days := []DayView{{Date: "2020-02-20", Rows: 2, Hours: 0.5}}
	require.NoError(t, NewCSVFormatter(&buf).FormatDays(days))

	out := buf.String()
	assert.Contains(t, out, "Date,Rows,Hours")
	assert.Contains(t, out, "2020-02-20,2,0.5h")
}
