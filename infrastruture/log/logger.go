// Package log provides the colored console logger used by every component.
// Each component gets its own prefix and prefix color, so interleaved lines
// from the simulation, the leaderboard, and the HTTP layer stay tellable
// apart on one terminal.
package log

import (
	"errors"
	"io"
	"log"

	"github.com/beka-birhanu/micromouse-api/config"
)

var (
	ErrEmptyPrefix = errors.New("logger needs a component prefix")
	ErrNilOutput   = errors.New("logger needs an output writer")
)

// Logger writes leveled, component-tagged lines to a single writer.
// Implements the application-wide Logger interface.
type Logger struct {
	out    *log.Logger
	prefix string
	color  string
}

// New creates a logger for one component. The prefix names the component
// and color is the ANSI code it is painted with.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if out == nil {
		return nil, ErrNilOutput
	}

	return &Logger{
		out:    log.New(out, "", log.LstdFlags),
		prefix: prefix,
		color:  color,
	}, nil
}

// write emits one line: timestamp, colored [PREFIX], colored [LEVEL],
// message. The underlying log.Logger serializes concurrent writes.
func (l *Logger) write(levelColor, level, msg string) {
	l.out.Printf("%s[%s]%s %s[%s]%s %s",
		l.color, l.prefix, config.ColorReset,
		levelColor, level, config.LogColorReset,
		msg)
}

// Debug records fine-grained per-step detail.
func (l *Logger) Debug(msg string) {
	l.write(config.LogDebugColor, "DEBUG", msg)
}

// Info records normal operational events.
func (l *Logger) Info(msg string) {
	l.write(config.LogInfoColor, "INFO", msg)
}

// Warning records recoverable anomalies.
func (l *Logger) Warning(msg string) {
	l.write(config.LogWarnColor, "WARNING", msg)
}

// Error records failures that need operator attention.
func (l *Logger) Error(msg string) {
	l.write(config.LogErrorColor, "ERROR", msg)
}
