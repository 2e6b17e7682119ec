package formatter

import (
	"github.com/wbx/go-timer-workbench/internal/core/model"
	"github.com/wbx/go-timer-workbench/internal/util"
)

// RowView is the display form of one normalized timestamp row.
type RowView struct {
	Time    string   `json:"time"`
	Type    string   `json:"type"`
	Elapsed *float64 `json:"elapsed"`
	Notes   string   `json:"notes,omitempty"`
}

// DayView is the display form of one report line.
type DayView struct {
	Date  string  `json:"date"`
	Rows  int     `json:"rows"`
	Hours float64 `json:"hours"`
}

// RowViews converts normalized rows for display, formatting times in the
// configured timezone.
func RowViews(rows []model.NormalizedRow, tp *util.TimeProvider) []RowView {
	views := make([]RowView, len(rows))
	for i, row := range rows {
		views[i] = RowView{
			Time:    tp.Format(row.Timestamp.CreatedAt, "2006-01-02 15:04"),
			Type:    row.Kind.String(),
			Elapsed: row.Elapsed,
			Notes:   row.Timestamp.Notes,
		}
	}
	return views
}
