package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oranginaround/bw-tui/common"
	"github.com/oranginaround/bw-tui/pretty"
)

func TestGuardLetsTrueConditionPass(t *testing.T) {
	assert.NotPanics(t, func() {
		pretty.Guard(true, 9, "never shown")
	})
}

func TestGuardPanicsWithExitCode(t *testing.T) {
	defer func() {
		status := recover()
		require.NotNil(t, status)
		exit, ok := status.(common.ExitCode)
		require.True(t, ok)
		assert.Equal(t, 3, exit.Code)
		assert.Equal(t, "missing: bw", exit.Message)
	}()
	pretty.Guard(false, 3, "missing: %s", "bw")
}

func TestNotesAndWarningsComplete(t *testing.T) {
	assert.NotPanics(t, func() {
		pretty.Note("session inherited from %s", "BW_SESSION")
		pretty.Warning("clipboard command rejected")
		common.WaitLogs()
	})
}
