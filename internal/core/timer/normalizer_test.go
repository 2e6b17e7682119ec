package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbx/go-timer-workbench/internal/core/model"
)

var day = time.Date(2020, 2, 20, 9, 0, 0, 0, time.UTC)

func event(id int64, kind model.Kind, minutes int) model.TimestampEvent {
	return model.TimestampEvent{
		ID:        id,
		UserID:    1,
		Kind:      kind,
		CreatedAt: day.Add(time.Duration(minutes) * time.Minute),
	}
}

func kinds(rows []model.NormalizedRow) []model.Kind {
	out := make([]model.Kind, len(rows))
	for i, row := range rows {
		out[i] = row.Kind
	}
	return out
}

func elapsed(rows []model.NormalizedRow) []*float64 {
	out := make([]*float64, len(rows))
	for i, row := range rows {
		out[i] = row.Elapsed
	}
	return out
}

func hours(h float64) *float64 {
	return &h
}

func TestNormalizeScenario(t *testing.T) {
	rows := Normalize([]model.TimestampEvent{
		// Stray stops before the first start are skipped entirely.
		event(1, model.KindStop, -80),
		event(2, model.KindStop, -60),
		event(3, model.KindStart, 0),
		event(4, model.KindSplit, 40),
		event(5, model.KindSplit, 60),
		event(6, model.KindStop, 115),
		event(7, model.KindSplit, 140),
		event(8, model.KindStop, 160),
	}, nil)

	require.Len(t, rows, 6)
	assert.Equal(t, []model.Kind{
		model.KindStart,
		model.KindSplit,
		model.KindSplit,
		model.KindStop,
		model.KindStart, // was: split
		model.KindStop,
	}, kinds(rows))
	assert.Equal(t, []*float64{
		nil,
		hours(0.7),
		hours(0.4),
		hours(1.0),
		nil, // directly after a stop
		hours(0.4),
	}, elapsed(rows))

	// Retained events keep their input order and identity.
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.Timestamp.ID
	}
	assert.Equal(t, []int64{3, 4, 5, 6, 7, 8}, ids)
}

func TestNormalizeStartAfterStart(t *testing.T) {
	rows := Normalize([]model.TimestampEvent{
		event(1, model.KindStart, 0),
		event(2, model.KindStart, 29),
	}, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, []model.Kind{model.KindStart, model.KindSplit}, kinds(rows))
	assert.Equal(t, []*float64{nil, hours(0.5)}, elapsed(rows))
}

func TestNormalizeStopAfterStop(t *testing.T) {
	rows := Normalize([]model.TimestampEvent{
		event(1, model.KindStart, 0),
		event(2, model.KindStop, 30),
		event(3, model.KindStop, 40),
	}, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, []model.Kind{model.KindStart, model.KindStop}, kinds(rows))
	assert.Equal(t, []*float64{nil, hours(0.5)}, elapsed(rows))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(nil, nil))
	assert.Empty(t, Normalize([]model.TimestampEvent{}, nil))
}

func TestNormalizeSeedBetweenEvents(t *testing.T) {
	rows := Normalize([]model.TimestampEvent{
		event(1, model.KindStart, 0),
		event(2, model.KindSplit, 20),
	}, &Seed{At: day.Add(10 * time.Minute), Notes: "Logbook: ABC"})

	require.Len(t, rows, 3)

	assert.Nil(t, rows[0].Elapsed)
	assert.Nil(t, rows[1].Elapsed)
	// 10 minutes from the seed baseline, rounded up.
	assert.Equal(t, hours(0.2), rows[2].Elapsed)

	assert.Equal(t, int64(1), rows[0].Timestamp.ID)
	assert.Contains(t, rows[1].Timestamp.Notes, "ABC")
	assert.Equal(t, int64(2), rows[2].Timestamp.ID)
	assert.Equal(t, model.KindSplit, rows[2].Kind)
}

func TestNormalizeSeedAfterAllEvents(t *testing.T) {
	rows := Normalize([]model.TimestampEvent{
		event(1, model.KindStart, 0),
		event(2, model.KindStop, 30),
	}, &Seed{At: day.Add(45 * time.Minute)})

	require.Len(t, rows, 3)
	assert.Equal(t, []model.Kind{model.KindStart, model.KindStop, model.KindStart}, kinds(rows))
	assert.Nil(t, rows[2].Elapsed)
	assert.Equal(t, day.Add(45*time.Minute), rows[2].Timestamp.CreatedAt)
}

func TestNormalizeSeedOnly(t *testing.T) {
	rows := Normalize(nil, &Seed{At: day, Notes: "Logbook: X"})

	require.Len(t, rows, 1)
	assert.Equal(t, model.KindStart, rows[0].Kind)
	assert.Nil(t, rows[0].Elapsed)
}

func TestNormalizeOutputNeverLongerThanInput(t *testing.T) {
	events := []model.TimestampEvent{
		event(1, model.KindStop, 0),
		event(2, model.KindStart, 5),
		event(3, model.KindStart, 10),
		event(4, model.KindStop, 15),
		event(5, model.KindStop, 20),
		event(6, model.KindSplit, 25),
	}
	rows := Normalize(events, nil)
	assert.LessOrEqual(t, len(rows), len(events))

	// Relative order of retained events is preserved.
	var last int64
	for _, row := range rows {
		assert.Greater(t, row.Timestamp.ID, last)
		last = row.Timestamp.ID
	}
}

func TestRoundHoursUp(t *testing.T) {
	tests := []struct {
		minutes  int
		expected float64
	}{
		{0, 0},
		{1, 0.1},
		{6, 0.1},
		{7, 0.2},
		{10, 0.2},
		{20, 0.4},
		{29, 0.5},
		{30, 0.5},
		{40, 0.7},
		{55, 1.0},
		{60, 1.0},
		{115, 2.0},
	}

	for _, tt := range tests {
		got := RoundHoursUp(time.Duration(tt.minutes) * time.Minute)
		assert.InDelta(t, tt.expected, got, 1e-9, "%d minutes", tt.minutes)
	}
}
