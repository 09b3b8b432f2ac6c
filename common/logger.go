// Package common provides shared constants, types, and utilities
// used across the wg-toggle application.
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}

// AppLogger is the application logger.
// Console output is human readable; file output is JSON lines with
// automatic size-based rotation.
type AppLogger struct {
	mu           sync.Mutex
	level        LogLevel
	consoleLevel LogLevel
	noColor      bool
	zl           zerolog.Logger
	console      io.Writer
	file         *lumberjack.Logger
	maxFileSize  int64 // Maximum file size in bytes before rotation (default: 5MB)
	maxBackups   int   // Maximum number of compressed backups to keep (default: 5)
}

// LogConfig holds configuration options for the logger.
type LogConfig struct {
	Level        LogLevel
	ConsoleLevel LogLevel
	EnableFile   bool
	NoColor      bool
	MaxFileSize  int64 // in bytes, default 5MB
	MaxBackups   int   // number of rotated files to keep, default 5
}

var (
	defaultLogger *AppLogger
	loggerOnce    sync.Once
)

const (
	defaultMaxFileSize = 5 * 1024 * 1024 // 5MB
	defaultMaxBackups  = 5
	consoleTimeFormat  = "2006/01/02 15:04:05"
)

// levelFilter drops events below min before they reach w.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

// isSymlink checks if a path is a symbolic link.
// Returns false if path doesn't exist (safe to create).
func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// newAppLogger builds a logger writing human readable lines to console.
func newAppLogger(console io.Writer, level, consoleLevel LogLevel) *AppLogger {
	l := &AppLogger{
		level:        level,
		consoleLevel: consoleLevel,
		console:      console,
		maxFileSize:  defaultMaxFileSize,
		maxBackups:   defaultMaxBackups,
	}
	l.rebuild()
	return l
}

// GetLogger returns the singleton logger instance.
func GetLogger() *AppLogger {
	loggerOnce.Do(func() {
		defaultLogger = newAppLogger(os.Stderr, LevelInfo, LevelWarn)
	})
	return defaultLogger
}

// InitLogger initializes the logger with custom configuration.
// Should be called early in application startup.
func InitLogger(config LogConfig) error {
	logger := GetLogger()

	logger.mu.Lock()
	logger.level = config.Level
	logger.consoleLevel = config.ConsoleLevel
	logger.noColor = config.NoColor
	if config.MaxFileSize > 0 {
		logger.maxFileSize = config.MaxFileSize
	}
	if config.MaxBackups > 0 {
		logger.maxBackups = config.MaxBackups
	}
	logger.rebuild()
	logger.mu.Unlock()

	if config.EnableFile {
		return logger.EnableFileLogging()
	}
	return nil
}

// rebuild recreates the zerolog logger from the current writers.
// Callers must hold l.mu (or own l exclusively).
func (l *AppLogger) rebuild() {
	writers := make([]io.Writer, 0, 2)
	if l.console != nil {
		writers = append(writers, levelFilter{
			w: zerolog.ConsoleWriter{
				Out:        l.console,
				NoColor:    l.noColor,
				TimeFormat: consoleTimeFormat,
				FormatLevel: func(i interface{}) string {
					return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
				},
			},
			min: l.consoleLevel.zerolog(),
		})
	}
	if l.file != nil {
		writers = append(writers, l.file)
	}
	if len(writers) == 0 {
		l.zl = zerolog.Nop()
		return
	}
	l.zl = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(l.level.zerolog()).
		With().
		Timestamp().
		Logger()
}

// SetLevel sets the minimum log level.
func (l *AppLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// SetOutput sets the console output destination.
func (l *AppLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
	l.rebuild()
}

// EnableFileLogging enables logging to ~/.config/wg-toggle/logs in
// addition to the console.
func (l *AppLogger) EnableFileLogging() error {
	logDir := GetLogDir()
	if logDir == "" {
		return fmt.Errorf("could not determine log directory")
	}
	return l.enableFileLogging(logDir)
}

// enableFileLogging points the file writer at logDir. The file rotates
// when it exceeds maxFileSize; rotated files are gzipped and at most
// maxBackups are kept.
func (l *AppLogger) enableFileLogging(logDir string) error {
	// Security: verify logDir is not a symlink to prevent symlink attacks
	if isSymlink(logDir) {
		return fmt.Errorf("security error: log directory is a symlink")
	}

	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, LogFileName)
	if isSymlink(logPath) {
		return fmt.Errorf("security error: log file is a symlink")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
	}
	l.file = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    megabytes(l.maxFileSize),
		MaxBackups: l.maxBackups,
		Compress:   true,
	}
	l.rebuild()
	return nil
}

// megabytes converts a byte limit to lumberjack's MaxSize, rounding up.
func megabytes(n int64) int {
	const mb = 1024 * 1024
	if n <= 0 {
		return defaultMaxFileSize / mb
	}
	return int((n + mb - 1) / mb)
}

// GetLogDir returns the log directory path.
func GetLogDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", ConfigDirName, "logs")
}

// Zerolog returns a copy of the underlying zerolog logger for structured fields.
func (l *AppLogger) Zerolog() *zerolog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	zl := l.zl
	return &zl
}

// log writes a formatted log message.
func (l *AppLogger) log(level LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	// Caller of the exported wrapper
	_, file, line, ok := runtime.Caller(2)
	caller := "???"
	if ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.WithLevel(level.zerolog()).Str("caller", caller).Msg(formattedMsg)
}

// Debug logs a debug message.
func (l *AppLogger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *AppLogger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *AppLogger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *AppLogger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

// Shorthand functions for default logger.

// Log returns the default logger's zerolog instance.
func Log() *zerolog.Logger {
	return GetLogger().Zerolog()
}

// LogDebug logs a debug message to the default logger.
func LogDebug(msg string, args ...interface{}) {
	GetLogger().Debug(msg, args...)
}

// LogInfo logs an info message to the default logger.
func LogInfo(msg string, args ...interface{}) {
	GetLogger().Info(msg, args...)
}

// LogWarn logs a warning message to the default logger.
func LogWarn(msg string, args ...interface{}) {
	GetLogger().Warn(msg, args...)
}

// LogError logs an error message to the default logger.
func LogError(msg string, args ...interface{}) {
	GetLogger().Error(msg, args...)
}

// Close closes the log file. Should be called on application shutdown.
func (l *AppLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.rebuild()
	return err
}

// CloseLogger closes the default logger.
func CloseLogger() error {
	return GetLogger().Close()
}
