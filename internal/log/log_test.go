package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_WritesCategoryAndFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(Reset)

	Debug(CatScope, "discovered components", "count", 3, "root", "/tmp/x")

	out := buf.String()
	require.Contains(t, out, "[DEBUG] [scope] discovered components")
	require.Contains(t, out, "count=3")
	require.Contains(t, out, "root=/tmp/x")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelWarn)
	t.Cleanup(Reset)

	Info(CatCache, "hidden")
	Warn(CatCache, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(Reset)

	Info(CatConfig, "odd", "orphan")
	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(Reset)

	ErrorErr(CatConfig, "save failed", errors.New("disk full"))
	ErrorErr(CatConfig, "nil error", nil)

	require.Contains(t, buf.String(), "error=disk full")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_DisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(Reset)

	SetEnabled(false)
	Error(CatCLI, "nope")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsSafe(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Info(CatCLI, "no logger")
		SetMinLevel(LevelDebug)
		SetEnabled(true)
	})
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		cleanup()
		Reset()
	})

	Warn(CatCLI, "file entry")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "file entry")
}
