package common

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestAppLogger_SetLevel(t *testing.T) {
	logger := newTestLogger(&bytes.Buffer{}, LevelInfo)

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.level)
}

func TestAppLogger_LogFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	assert.Zero(t, buf.Len(), "Debug/Info messages should be filtered when level is Warn")

	logger.Warn("warn message")
	assert.Contains(t, buf.String(), "[WARN]")

	buf.Reset()
	logger.Error("error message")
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestAppLogger_ConsoleLevelFloor(t *testing.T) {
	var buf bytes.Buffer
	logger := newAppLogger(&buf, LevelDebug, LevelWarn)
	logger.noColor = true
	logger.rebuild()

	logger.Info("only in the file")
	assert.Zero(t, buf.Len())

	logger.Error("on the console")
	assert.Contains(t, buf.String(), "on the console")
}

func TestAppLogger_LogFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelDebug)

	logger.Info("Test message with %s", "formatting")

	output := buf.String()
	assert.Contains(t, output, time.Now().Format("2006/01/02"), "Log should contain date in YYYY/MM/DD format")
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "Test message with formatting")
	assert.Contains(t, output, "logger_test.go")
}

func TestAppLogger_Zerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelDebug)

	logger.Zerolog().Info().Str("path", "/etc/wg/home.conf").Msg("structured")

	assert.Contains(t, buf.String(), "structured")
	assert.Contains(t, buf.String(), "/etc/wg/home.conf")
}

func TestDefaultLogConfig(t *testing.T) {
	assert.EqualValues(t, 5*1024*1024, defaultMaxFileSize)
	assert.Equal(t, 5, defaultMaxBackups)
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, ConfigDirName))
	assert.DirExists(t, dir)
}

func TestDefaultDatabasePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultDatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", ConfigDirName, DatabaseFileName), path)
	assert.NoDirExists(t, filepath.Dir(path), "data dir is created by the store, not here")
}

func TestFileExists(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "test")
	require.NoError(t, os.WriteFile(tempFile, nil, 0600))

	assert.True(t, FileExists(tempFile))
	assert.False(t, FileExists("/nonexistent/path/to/file"))
}

func TestWrapError(t *testing.T) {
	wrapped := WrapError(ErrStorage, "additional context")

	require.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "additional context")
	assert.Contains(t, wrapped.Error(), ErrStorage.Error())
	assert.True(t, errors.Is(wrapped, ErrStorage))

	assert.Nil(t, WrapError(nil, "context"))
}

func TestFileLogging_WritesJSONLines(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	logger := newAppLogger(nil, LevelInfo, LevelWarn)
	require.NoError(t, logger.enableFileLogging(logDir))
	logger.Info("tunnel %s up", "wg0")
	logger.Debug("dropped")
	require.NoError(t, logger.Close())

	logPath := filepath.Join(logDir, LogFileName)
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"tunnel wg0 up"`)
	assert.NotContains(t, string(data), "dropped")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileLogging_Rotation(t *testing.T) {
	logDir := t.TempDir()

	logger := newAppLogger(nil, LevelInfo, LevelWarn)
	logger.maxFileSize = 1024 * 1024
	logger.maxBackups = 2
	require.NoError(t, logger.enableFileLogging(logDir))
	defer logger.Close()

	chunk := strings.Repeat("x", 600*1024)
	logger.Info(chunk)
	logger.Info(chunk)

	assert.Eventually(t, func() bool {
		matches, _ := filepath.Glob(filepath.Join(logDir, "wg-toggle-*.log.gz"))
		return len(matches) == 1
	}, 5*time.Second, 50*time.Millisecond, "rotated log should be compressed")

	info, err := os.Stat(filepath.Join(logDir, LogFileName))
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(1024*1024))
}

func TestFileLogging_RejectsSymlinks(t *testing.T) {
	target := t.TempDir()
	link := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.Symlink(target, link))

	logger := newAppLogger(nil, LevelInfo, LevelWarn)
	err := logger.enableFileLogging(link)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlink")
}

func TestMegabytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected int
	}{
		{0, 5},
		{1, 1},
		{1024 * 1024, 1},
		{1024*1024 + 1, 2},
		{5 * 1024 * 1024, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.bytes), func(t *testing.T) {
			assert.Equal(t, tt.expected, megabytes(tt.bytes))
		})
	}
}

// Helper to create a test logger writing uncolored console lines to buf.
func newTestLogger(buf *bytes.Buffer, level LogLevel) *AppLogger {
	logger := newAppLogger(buf, level, LevelDebug)
	logger.noColor = true
	logger.rebuild()
	return logger
}
