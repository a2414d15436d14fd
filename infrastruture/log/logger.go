// Package log provides a prefixed, leveled, colored logger.
package log

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/gookit/color"
)

const timeLayout = "2006/01/02 15:04:05"

var ErrNilWriter = errors.New("logger needs a writer")

var _ i.Logger = &Logger{}

// Logger writes "[PREFIX] [LEVEL] time message" lines. The prefix is drawn in the logger's
// color and the level in a fixed color per severity.
type Logger struct {
	prefix string
	color  color.Color
	out    io.Writer
	mu     sync.Mutex
}

// New creates a Logger writing to w.
func New(prefix string, c color.Color, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &Logger{
		prefix: prefix,
		color:  c,
		out:    w,
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", color.FgGreen, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", color.FgYellow, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write("ERROR", color.FgRed, msg)
}

func (l *Logger) write(level string, levelColor color.Color, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, "%s %s %s %s\n",
		l.color.Sprint("["+l.prefix+"]"),
		levelColor.Sprint("["+level+"]"),
		time.Now().Format(timeLayout),
		msg,
	)
}
