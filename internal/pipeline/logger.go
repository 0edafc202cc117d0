package pipeline

import "github.com/fatih/color"

type Logger interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
}

// ConsoleLogger prints colored progress lines to stdout.
type ConsoleLogger struct{}

func (ConsoleLogger) Info(format string, args ...any)    { color.Cyan(format, args...) }
func (ConsoleLogger) Success(format string, args ...any) { color.Green(format, args...) }
func (ConsoleLogger) Warn(format string, args ...any)    { color.Yellow(format, args...) }

type discardLogger struct{}

func (discardLogger) Info(string, ...any)    {}
func (discardLogger) Success(string, ...any) {}
func (discardLogger) Warn(string, ...any)    {}

func Discard() Logger { return discardLogger{} }
