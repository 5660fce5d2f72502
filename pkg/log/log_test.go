package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestNoLoggerIsNoop(t *testing.T) {
	// Must not panic without Init
	Debug(CatBuffer, "nothing", "k", 1)
	ErrorErr(CatCLI, "nothing", nil)
	SetEnabled(false)
	SetMinLevel(LevelError)
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	Info(CatBuffer, "loaded", "name", "a.txt", "lines", 3)
	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	require.Contains(t, out, "[INFO] [buffer] loaded name=a.txt lines=3")
}

func TestOrphanField(t *testing.T) {
	var buf bytes.Buffer
	defer InitWriter(&buf)()

	Warn(CatPattern, "odd", "key")
	require.Contains(t, buf.String(), "key=<missing>")
}

func TestErrorErr(t *testing.T) {
	var buf bytes.Buffer
	defer InitWriter(&buf)()

	ErrorErr(CatConfig, "failed", os.ErrNotExist, "path", "x")
	require.Contains(t, buf.String(), "[ERROR] [config] failed path=x error=file does not exist")
}

func TestMinLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	defer InitWriter(&buf)()

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	Info(CatUI, "hidden")
	require.Empty(t, buf.String())

	Warn(CatUI, "shown")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatUI, "hidden")
	require.Empty(t, buf.String())
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)

	Debug(CatCLI, "hello", "cmd", "stat")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[DEBUG] [cli] hello cmd=stat")

	// After cleanup the logger is gone again
	Debug(CatCLI, "after")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "after")
}

func TestInitBadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	require.Error(t, err)
}
