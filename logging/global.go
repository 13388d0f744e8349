package logging

import "os"

// The package-level logger; reconfigured once at startup from the
// application config, usable before that via LOG_LEVEL defaults.
var global = New(Config{
	Level:       os.Getenv("LOG_LEVEL"),
	EnableColor: os.Getenv("LOG_COLOR") != "false",
})

// Configure replaces the package-level logger.
func Configure(cfg Config) {
	global = New(cfg)
}

// WithPrefix returns a component logger derived from the package-level one.
func WithPrefix(prefix string) *Logger {
	return global.WithPrefix(prefix)
}

func Debug(args ...interface{}) { global.Debug(args...) }
func Info(args ...interface{})  { global.Info(args...) }
func Warn(args ...interface{})  { global.Warn(args...) }
func Error(args ...interface{}) { global.Error(args...) }
func Fatal(args ...interface{}) { global.Fatal(args...) }

func Debugf(format string, args ...interface{}) { global.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { global.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { global.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { global.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { global.Fatalf(format, args...) }
