package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdHasSubcommands(t *testing.T) {
	expected := []string{"start", "split", "stop", "log", "status", "report", "import", "watch"}

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, names[name], "missing subcommand %s", name)
	}
}

func TestRequireUser(t *testing.T) {
	original := userEmail
	defer func() { userEmail = original }()

	userEmail = ""
	_, err := requireUser()
	assert.Error(t, err)

	userEmail = "a@example.ch"
	user, err := requireUser()
	assert.NoError(t, err)
	assert.Equal(t, "a@example.ch", user)
}

func TestParseAt(t *testing.T) {
	when, err := parseAt("2020-02-20T09:00:00Z")
	require.NoError(t, err)
	assert.True(t, when.Equal(time.Date(2020, 2, 20, 9, 0, 0, 0, time.UTC)))

	_, err = parseAt("yesterday")
	assert.Error(t, err)

	now, err := parseAt("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}
