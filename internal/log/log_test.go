package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func initTemp(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSilentWhenUninitialized(t *testing.T) {
	// Must not panic without Init.
	Debug(CatSeq, "nobody listening")
	ErrorErr(CatSeq, "still nobody", nil)
}

func TestWritesLevelCategoryAndFields(t *testing.T) {
	path := initTemp(t)

	Debug(CatResolve, "resolved", "desired", 7, "got", 5)

	out := readLog(t, path)
	require.Contains(t, out, "[DEBUG]")
	require.Contains(t, out, "[resolve]")
	require.Contains(t, out, "resolved")
	require.Contains(t, out, "desired=7")
	require.Contains(t, out, "got=5")
}

func TestMinLevelFilters(t *testing.T) {
	path := initTemp(t)
	SetMinLevel(LevelWarn)

	Debug(CatSeq, "too quiet")
	Info(CatSeq, "still too quiet")
	Warn(CatSeq, "loud enough")
	Error(CatSeq, "definitely")

	out := readLog(t, path)
	require.NotContains(t, out, "too quiet")
	require.Contains(t, out, "loud enough")
	require.Contains(t, out, "definitely")
}

func TestErrorErrAppendsError(t *testing.T) {
	path := initTemp(t)

	ErrorErr(CatWatcher, "reload failed", os.ErrNotExist)

	out := readLog(t, path)
	require.Contains(t, out, "[ERROR]")
	require.Contains(t, out, "error=file does not exist")
}

func TestOddFieldCountIsMarked(t *testing.T) {
	path := initTemp(t)

	Info(CatConfig, "loaded", "path")

	require.Contains(t, readLog(t, path), "path=<missing>")
}

func TestLevelStrings(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(99).String())
}
