package logger

import (
	"bytes"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	saved := GetLevel()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		atomic.StoreInt32(&currentLevel, int32(saved))
	})
	return &buf
}

func TestInfof_PercentInArgumentSurvives(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("info")

	Infof("📊 selected %s", "Merchandise trade (% of GDP)")

	out := buf.String()
	assert.Contains(t, out, "(% of GDP)")
	assert.NotContains(t, out, "MISSING")
	assert.Contains(t, out, "[INFO]")
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("warn")

	Infof("hidden %d", 1)
	Debugf("hidden too")
	Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 2")
}

func TestSetLevelIgnoresUnknown(t *testing.T) {
	captureOutput(t)
	SetLevel("error")
	SetLevel("loud")
	assert.Equal(t, LevelError, GetLevel())
}
