package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI color codes
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m"

	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"
	BrightWhite   = "\033[97m"
)

// ColoredLogger wraps zap.Logger with component-tagged, optionally colored output
type ColoredLogger struct {
	*zap.Logger
	enableColors bool
}

// Component identifies the part of the system a log line comes from
type Component string

const (
	ComponentGeneral  Component = "GENERAL"
	ComponentWallet   Component = "WALLET"
	ComponentChain    Component = "CHAIN"
	ComponentContract Component = "CONTRACT"
	ComponentTracker  Component = "TRACKER"
	ComponentGateway  Component = "GATEWAY"
	ComponentCLI      Component = "CLI"
)

func getComponentColor(component Component) string {
	switch component {
	case ComponentWallet:
		return BrightMagenta
	case ComponentChain:
		return BrightCyan
	case ComponentContract:
		return BrightBlue
	case ComponentTracker:
		return BrightYellow
	case ComponentGateway:
		return BrightGreen
	case ComponentCLI:
		return Blue
	case ComponentGeneral:
		return Yellow
	default:
		return White
	}
}

func getLevelColor(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return Gray
	case zapcore.InfoLevel:
		return BrightWhite
	case zapcore.WarnLevel:
		return BrightYellow
	case zapcore.ErrorLevel:
		return BrightRed
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return Red
	default:
		return White
	}
}

var levelLetters = map[zapcore.Level]string{
	zapcore.DebugLevel: "D",
	zapcore.InfoLevel:  "I",
	zapcore.WarnLevel:  "W",
	zapcore.ErrorLevel: "E",
}

// coloredConsoleEncoder builds the compact console encoder: HH:MM:SS, one-letter level, bare file name
func coloredConsoleEncoder(enableColors bool) zapcore.Encoder {
	config := zap.NewDevelopmentEncoderConfig()

	config.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		ts := t.Format("15:04:05")
		if enableColors {
			ts = Dim + ts + Reset
		}
		enc.AppendString(ts)
	}

	config.EncodeLevel = func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		letter, ok := levelLetters[level]
		if !ok {
			letter = "?"
		}
		if enableColors {
			letter = getLevelColor(level) + Bold + letter + Reset
		}
		enc.AppendString(letter)
	}

	config.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		file := caller.File
		if idx := strings.LastIndex(file, "/"); idx >= 0 {
			file = file[idx+1:]
		}
		file = strings.TrimSuffix(file, ".go")
		if enableColors {
			file = Dim + file + Reset
		}
		enc.AppendString(file)
	}

	return zapcore.NewConsoleEncoder(config)
}

// Levels and Formats are the names accepted by the logging config section.
var (
	Levels  = []string{"debug", "info", "warn", "error"}
	Formats = []string{"console", "json"}
)

// KnownLevel reports whether ParseLevel recognizes name instead of falling back to info.
func KnownLevel(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// KnownFormat reports whether name selects one of Formats.
func KnownFormat(name string) bool {
	for _, f := range Formats {
		if strings.EqualFold(strings.TrimSpace(name), f) {
			return true
		}
	}
	return false
}

// ParseLevel maps a config level name to a zap level. Unknown names fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newLogger(w io.Writer, level zapcore.Level, enableColors bool, json bool) *ColoredLogger {
	var encoder zapcore.Encoder
	if json {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		enableColors = false
	} else {
		encoder = coloredConsoleEncoder(enableColors)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return &ColoredLogger{
		Logger:       zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		enableColors: enableColors,
	}
}

// NewColoredLogger creates a debug-level console logger on stdout
func NewColoredLogger(component Component, enableColors bool) (*ColoredLogger, error) {
	return newLogger(os.Stdout, zapcore.DebugLevel, enableColors, false), nil
}

// NewDefaultLogger creates a logger with colors enabled
func NewDefaultLogger(component Component) (*ColoredLogger, error) {
	return NewColoredLogger(component, true)
}

// Options describes the logger built from the logging config section
type Options struct {
	Level      string
	Format     string // console or json
	OutputFile string // empty for stdout
	Colors     bool
}

// New builds a logger from options. A file output never uses colors.
func New(opts Options) (*ColoredLogger, error) {
	json := strings.EqualFold(opts.Format, "json")
	level := ParseLevel(opts.Level)
	if opts.OutputFile == "" {
		return newLogger(os.Stdout, level, opts.Colors, json), nil
	}
	file, err := os.OpenFile(opts.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", opts.OutputFile, err)
	}
	return newLogger(file, level, false, json), nil
}

// NewWriterLogger creates a logger writing to w, used by tests and the CLI's stderr output
func NewWriterLogger(w io.Writer, level string) *ColoredLogger {
	return newLogger(w, ParseLevel(level), false, false)
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *ColoredLogger {
	return &ColoredLogger{Logger: zap.NewNop()}
}

func (l *ColoredLogger) tag(component Component, msg string) string {
	if l.enableColors {
		return fmt.Sprintf("%s[%s]%s %s", getComponentColor(component), component, Reset, msg)
	}
	return fmt.Sprintf("[%s] %s", component, msg)
}

func (l *ColoredLogger) ComponentInfo(component Component, msg string, fields ...zap.Field) {
	l.Info(l.tag(component, msg), fields...)
}

func (l *ColoredLogger) ComponentWarn(component Component, msg string, fields ...zap.Field) {
	l.Warn(l.tag(component, msg), fields...)
}

func (l *ColoredLogger) ComponentError(component Component, msg string, fields ...zap.Field) {
	l.Error(l.tag(component, msg), fields...)
}

func (l *ColoredLogger) ComponentDebug(component Component, msg string, fields ...zap.Field) {
	l.Debug(l.tag(component, msg), fields...)
}
