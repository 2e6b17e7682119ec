// Package timer canonicalizes a user's raw timer events. A workday produces a
// chronological log of start/split/stop button presses which may violate the
// implicit state machine (two stops in a row, a start while already running).
// The normalizer performs a single deterministic pass that drops redundant
// events, reclassifies the rest based on context and derives the elapsed
// decimal hours between successive retained events.
package timer

import (
	"math"
	"time"

	"github.com/wbx/go-timer-workbench/internal/core/model"
)

// Seed is an optional baseline injected from outside the timestamp log: the
// creation time of the user's latest logged-hours entry. It is merged into the
// pass at its chronological position as a synthetic start row with no elapsed
// value, leaving the machine running so the next real event is measured
// against it.
type Seed struct {
	At    time.Time
	Notes string
}

// RoundHoursUp converts a duration into decimal hours with one fractional
// digit, rounding up to the next tenth: 29 minutes become 0.5 hours, 20
// minutes 0.4, 55 minutes 1.0. A started tenth always counts in full.
func RoundHoursUp(d time.Duration) float64 {
	return math.Ceil(d.Seconds()/360) / 10
}

// Normalize runs the canonicalization pass over a user's timestamp events.
//
// The caller must supply the events ordered by creation time ascending, ties
// broken by insertion order; the pass does not re-sort and will derive
// nonsensical elapsed values from unordered input. The rules, in order:
//
//   - a stop with no open run is dropped and leaves no trace,
//   - a start while running is demoted to a split,
//   - a split while not running is promoted to a start,
//   - elapsed is computed only while a run is open, from the previous
//     retained timestamp, and is nil otherwise.
//
// Empty input yields empty output. The input slice is not modified.
func Normalize(events []model.TimestampEvent, seed *Seed) []model.NormalizedRow {
	rows := make([]model.NormalizedRow, 0, len(events)+1)
	state := StateNone
	var prev time.Time

	emit := func(kind model.Kind, ev model.TimestampEvent) {
		var elapsed *float64
		if state.Running() {
			h := RoundHoursUp(ev.CreatedAt.Sub(prev))
			elapsed = &h
		}
		rows = append(rows, model.NormalizedRow{Elapsed: elapsed, Kind: kind, Timestamp: ev})
		state = advance(kind)
		prev = ev.CreatedAt
	}

	seeded := seed == nil
	emitSeed := func() {
		rows = append(rows, model.NormalizedRow{
			Kind: model.KindStart,
			Timestamp: model.TimestampEvent{
				Kind:      model.KindStart,
				CreatedAt: seed.At,
				Notes:     seed.Notes,
			},
		})
		state = StateRunningStart
		prev = seed.At
		seeded = true
	}

	for _, ev := range events {
		if !seeded && !seed.At.After(ev.CreatedAt) {
			emitSeed()
		}
		kind, keep := reclassify(state, ev.Kind)
		if !keep {
			continue
		}
		emit(kind, ev)
	}
	if !seeded {
		emitSeed()
	}
	return rows
}
