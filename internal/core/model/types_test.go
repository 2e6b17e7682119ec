package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input       string
		expected    Kind
		expectError bool
	}{
		{"start", KindStart, false},
		{"split", KindSplit, false},
		{"stop", KindStop, false},
		{"", "", true},
		{"bla", "", true},
		{"START", "", true},
		{"pause", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, kind)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "start", KindStart.String())
	assert.Equal(t, "split", KindSplit.String())
	assert.Equal(t, "stop", KindStop.String())
}
