package model

import (
	"fmt"
	"time"
)

// Kind is the stored classification of a timestamp event.
type Kind string

const (
	KindStart Kind = "start"
	KindSplit Kind = "split"
	KindStop  Kind = "stop"
)

// ParseKind validates a raw kind value at the boundary. Anything outside the
// three-valued set is a data integrity violation and must fail here, before an
// event is ever constructed, never inside the normalizer.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindStart, KindSplit, KindStop:
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid timestamp kind %q (want start, split or stop)", s)
}

func (k Kind) String() string {
	return string(k)
}

// TimestampEvent is a single timer button press. Events are immutable once
// stored; the normalizer may present one under a different derived kind, but
// the stored record is never rewritten.
type TimestampEvent struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Kind      Kind      `json:"type" db:"type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
}

// WorkEntry is a duration-based entry created through the separate
// hours-logging workflow. The normalizer only cares about the creation time
// and description of the latest entry, which can stand in for an implicit
// start marker.
type WorkEntry struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Hours       float64   `json:"hours" db:"hours"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// NormalizedRow is one output unit of the normalizer: the original event under
// its derived kind, plus the elapsed decimal hours since the previous retained
// event. Elapsed is nil for the first row and for any row directly following
// an effective stop.
type NormalizedRow struct {
	Elapsed   *float64       `json:"elapsed"`
	Kind      Kind           `json:"type"`
	Timestamp TimestampEvent `json:"timestamp"`
}
