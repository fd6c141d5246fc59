package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseToggle(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebugSilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	SetVerbose(false)

	Debug("should not appear %d", 1)
	assert.Empty(t, buf.String())
}

func TestLevelsWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	SetVerbose(true)
	defer SetVerbose(false)

	Debug("dbg %s", "x")
	Info("inf")
	Warn("wrn")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] dbg x\n")
	assert.Contains(t, out, "[INFO] inf\n")
	assert.Contains(t, out, "[WARN] wrn\n")
}
