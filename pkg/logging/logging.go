// Package logging wires up the process logger: a console writer for
// warnings and above plus a rotated log file under the storage root.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the logger. root is the storage root; the log file lives at
// <root>/surge.log with rotation. Level comes from SURGE_LOG_LEVEL when set.
func New(root string) zerolog.Logger {
	level := zerolog.InfoLevel
	if env := os.Getenv("SURGE_LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(root, "surge.log"),
		MaxSize:    5, // megabytes
		MaxAge:     30,
		MaxBackups: 3,
		LocalTime:  true,
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr}
	consoleWarnOnly := &levelWriter{w: console, min: zerolog.WarnLevel}

	return zerolog.New(zerolog.MultiLevelWriter(fileWriter, consoleWarnOnly)).
		With().
		Timestamp().
		Logger().
		Level(level)
}

// Nop returns a disabled logger for tests and library callers that do not
// care about output.
func Nop() zerolog.Logger { return zerolog.Nop() }

// levelWriter forwards only events at or above min. Keeps routine store
// chatter out of the terminal while the file gets everything.
type levelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (lw *levelWriter) Write(p []byte) (int, error) { return lw.w.Write(p) }

func (lw *levelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < lw.min {
		return len(p), nil
	}
	return lw.w.Write(p)
}
