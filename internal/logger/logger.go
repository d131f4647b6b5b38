package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogFileName is the file written under the configured log directory.
const LogFileName = "viewer.log"

// historySize is how many formatted lines Lines keeps for the debug overlay.
const historySize = 64

// Logger is the logging surface used across the viewer.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
}

// Log wraps a logrus logger. It writes to stdout (and a file when a directory is given)
// and keeps the most recent lines in memory.
type Log struct {
	base    *logrus.Logger
	entry   *logrus.Entry
	history *history
	level   logrus.Level
}

var _ Logger = (*Log)(nil)

// New returns a logger at the given level ("debug", "info", ...; unknown → info).
// When dir is non-empty, logs are also appended to dir/viewer.log.
func New(level, dir string) (*Log, error) {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.SetFormatter(&SimpleFormatter{TimestampFormat: "2006/01/02 15:04:05.000"})

	var out io.Writer = os.Stdout
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory %q: %w", dir, err)
		}
		path := filepath.Join(dir, LogFileName)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file %q: %w", path, err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	l.SetOutput(out)
	return fromLogrus(l), nil
}

// NewWriter returns a logger writing to w only. Used by tests and tools.
func NewWriter(w io.Writer, level string) *Log {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.SetFormatter(&SimpleFormatter{TimestampFormat: "15:04:05.000"})
	l.SetOutput(w)
	return fromLogrus(l)
}

// Discard returns a logger that drops everything.
func Discard() *Log {
	return NewWriter(io.Discard, "error")
}

func fromLogrus(l *logrus.Logger) *Log {
	h := &history{max: historySize}
	l.AddHook(h)
	return &Log{base: l, entry: logrus.NewEntry(l), history: h, level: l.GetLevel()}
}

// SetDebug raises the level to debug at runtime. Turning it off restores the level the
// logger was created with.
func (l *Log) SetDebug(on bool) {
	if on {
		l.base.SetLevel(logrus.DebugLevel)
		return
	}
	l.base.SetLevel(l.level)
}

// Lines returns a copy of the most recent log lines, oldest first.
func (l *Log) Lines() []string {
	return l.history.lines()
}

func (l *Log) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Log) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Log) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Log) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// WithField returns a logger that appends key=value to every line.
func (l *Log) WithField(key string, value interface{}) Logger {
	return &Log{base: l.base, entry: l.entry.WithField(key, value), history: l.history, level: l.level}
}

// history is a logrus hook that remembers the last max formatted lines.
type history struct {
	mu  sync.Mutex
	max int
	buf []string
}

func (h *history) Levels() []logrus.Level { return logrus.AllLevels }

func (h *history) Fire(e *logrus.Entry) error {
	line, err := e.String()
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.buf = append(h.buf, strings.TrimRight(line, "\n"))
	if len(h.buf) > h.max {
		h.buf = h.buf[len(h.buf)-h.max:]
	}
	h.mu.Unlock()
	return nil
}

func (h *history) lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.buf))
	copy(out, h.buf)
	return out
}
