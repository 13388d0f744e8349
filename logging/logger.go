package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log line. Lines below the configured
// level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

var levelColors = [...]string{
	"\033[36m",   // debug: cyan
	"\033[32m",   // info: green
	"\033[33m",   // warn: yellow
	"\033[31m",   // error: red
	"\033[1;31m", // fatal: bold red
}

func (l Level) String() string {
	if l < LevelDebug || l > LevelFatal {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Config holds logger options.
type Config struct {
	Level       string
	Output      io.Writer
	Prefix      string
	EnableColor bool
}

// Logger writes leveled, optionally colored log lines with a
// component prefix. Safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	level  Level
	out    io.Writer
	prefix string
	color  bool
}

// New creates a logger from config. A nil Output falls back to stdout.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		level:  ParseLevel(cfg.Level),
		out:    out,
		prefix: cfg.Prefix,
		color:  cfg.EnableColor,
	}
}

// WithPrefix returns a logger that tags its lines with a component
// name, chained onto any existing prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.prefix != "" {
		prefix = l.prefix + ":" + prefix
	}
	return &Logger{
		level:  l.level,
		out:    l.out,
		prefix: prefix,
		color:  l.color,
	}
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) write(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var b strings.Builder
	if l.color {
		b.WriteString(levelColors[level])
	}
	b.WriteString(time.Now().Format("2006/01/02 15:04:05.000"))
	fmt.Fprintf(&b, " %-5s ", level.String())
	if l.prefix != "" {
		fmt.Fprintf(&b, "[%s] ", l.prefix)
	}
	b.WriteString(msg)
	if l.color {
		b.WriteString("\033[0m")
	}
	b.WriteByte('\n')

	io.WriteString(l.out, b.String())

	if level == LevelFatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(args ...interface{}) { l.write(LevelDebug, fmt.Sprint(args...)) }
func (l *Logger) Info(args ...interface{})  { l.write(LevelInfo, fmt.Sprint(args...)) }
func (l *Logger) Warn(args ...interface{})  { l.write(LevelWarn, fmt.Sprint(args...)) }
func (l *Logger) Error(args ...interface{}) { l.write(LevelError, fmt.Sprint(args...)) }
func (l *Logger) Fatal(args ...interface{}) { l.write(LevelFatal, fmt.Sprint(args...)) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(LevelError, fmt.Sprintf(format, args...))
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.write(LevelFatal, fmt.Sprintf(format, args...))
}
