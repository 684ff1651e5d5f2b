package logger

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

var (
	infoColor  = color.New(color.FgBlue)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgHiBlack)

	debugEnabled atomic.Bool
)

func init() {
	if os.Getenv("LOG_DEBUG") == "true" {
		debugEnabled.Store(true)
	}
}

// SetDebug toggles Debug output.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

func Info(format string, args ...interface{}) {
	write(infoColor, "INFO", format, args...)
}

func Warn(format string, args ...interface{}) {
	write(warnColor, "WARN", format, args...)
}

func Error(format string, args ...interface{}) {
	write(errorColor, "ERROR", format, args...)
}

// Debug only prints when debug output is enabled.
func Debug(format string, args ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	write(debugColor, "DEBUG", format, args...)
}

func write(c *color.Color, level, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	c.Fprintf(color.Output, "[%s] [%s] %s\n", timestamp, level, fmt.Sprintf(format, args...))
}
