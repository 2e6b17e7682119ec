package timer

import "github.com/wbx/go-timer-workbench/internal/core/model"

// State tracks what the previously retained event left behind. It is kept as
// an explicit enum rather than re-inspecting the last emitted kind, so the
// transition table can be tested apart from the emission logic.
type State int

const (
	StateNone State = iota
	StateRunningStart
	StateRunningSplit
	StateStopped
)

// Running reports whether a work interval is currently open.
func (s State) Running() bool {
	return s == StateRunningStart || s == StateRunningSplit
}

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateRunningStart:
		return "running-start"
	case StateRunningSplit:
		return "running-split"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// reclassify maps a stored kind onto the kind to emit, given the current run
// state. The second result is false when the event is dropped entirely.
func reclassify(s State, k model.Kind) (model.Kind, bool) {
	switch k {
	case model.KindStop:
		// A stop with nothing running is noise: duplicate stops and any
		// stray stops before the first start.
		if !s.Running() {
			return "", false
		}
		return model.KindStop, true
	case model.KindStart:
		// A start while already running is really a task switch.
		if s.Running() {
			return model.KindSplit, true
		}
		return model.KindStart, true
	case model.KindSplit:
		// A split with no open run opens one.
		if !s.Running() {
			return model.KindStart, true
		}
		return model.KindSplit, true
	}
	// Stored kinds are validated at construction; see model.ParseKind.
	return "", false
}

// advance returns the state after a row with the derived kind k was emitted.
func advance(k model.Kind) State {
	switch k {
	case model.KindStart:
		return StateRunningStart
	case model.KindSplit:
		return StateRunningSplit
	default:
		return StateStopped
	}
}
