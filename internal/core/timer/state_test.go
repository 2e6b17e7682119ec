package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wbx/go-timer-workbench/internal/core/model"
)

func TestReclassify(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		stored  model.Kind
		derived model.Kind
		keep    bool
	}{
		{"start_from_none", StateNone, model.KindStart, model.KindStart, true},
		{"start_from_stopped", StateStopped, model.KindStart, model.KindStart, true},
		{"start_while_running", StateRunningStart, model.KindStart, model.KindSplit, true},
		{"start_while_running_split", StateRunningSplit, model.KindStart, model.KindSplit, true},
		{"split_while_running", StateRunningStart, model.KindSplit, model.KindSplit, true},
		{"split_from_none", StateNone, model.KindSplit, model.KindStart, true},
		{"split_from_stopped", StateStopped, model.KindSplit, model.KindStart, true},
		{"stop_while_running", StateRunningStart, model.KindStop, model.KindStop, true},
		{"stop_while_running_split", StateRunningSplit, model.KindStop, model.KindStop, true},
		{"stop_from_none", StateNone, model.KindStop, "", false},
		{"stop_from_stopped", StateStopped, model.KindStop, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived, keep := reclassify(tt.state, tt.stored)
			assert.Equal(t, tt.keep, keep)
			if tt.keep {
				assert.Equal(t, tt.derived, derived)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	assert.Equal(t, StateRunningStart, advance(model.KindStart))
	assert.Equal(t, StateRunningSplit, advance(model.KindSplit))
	assert.Equal(t, StateStopped, advance(model.KindStop))
}

func TestStateRunning(t *testing.T) {
	assert.False(t, StateNone.Running())
	assert.True(t, StateRunningStart.Running())
	assert.True(t, StateRunningSplit.Running())
	assert.False(t, StateStopped.Running())
}
