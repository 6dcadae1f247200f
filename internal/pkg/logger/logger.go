// Package logger implements ports.Logger on top of zap.
//
// Console output goes to stderr and stays at warn level unless verbose mode is
// on. When a log file is configured, entries are also written as JSON to a
// lumberjack-rotated file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/doeshing/texturepro/internal/ports"
)

// File rotation defaults.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Options configures the logger.
type Options struct {
	// Verbose lowers the console level to debug.
	Verbose bool
	// Level applies to the file sink ("debug", "info", "warn", "error").
	Level string
	// File enables the rotating JSON file sink when non-empty.
	File string
	// Development switches the console encoder to zap's development config.
	Development bool
}

// ZapLogger adapts a zap.Logger to ports.Logger.
type ZapLogger struct {
	zap *zap.Logger
}

// New builds a logger from opts.
func New(opts Options) (*ZapLogger, error) {
	consoleLevel := zapcore.WarnLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}

	consoleCfg := zap.NewProductionEncoderConfig()
	if opts.Development {
		consoleCfg = zap.NewDevelopmentEncoderConfig()
	}
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), consoleLevel),
	}

	if opts.File != "" {
		fileLevel, err := ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAge:     DefaultMaxAgeDays,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), writer, fileLevel))
	}

	return &ZapLogger{zap: zap.New(zapcore.NewTee(cores...))}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{zap: zap.NewNop()}
}

// ParseLevel maps a config string to a zap level. Empty means info.
func ParseLevel(raw string) (zapcore.Level, error) {
	if strings.TrimSpace(raw) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.zap.Debug(msg, toFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.zap.Info(msg, toFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.zap.Warn(msg, toFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.zap.Error(msg, append(toFields(fields), zap.Error(err))...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.zap.Sync()
}

// toFields converts the field bag in key order so output is stable.
func toFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		out = append(out, zap.Any(key, fields[key]))
	}
	return out
}

var _ ports.Logger = (*ZapLogger)(nil)
