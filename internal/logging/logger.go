// Package logging provides the leveled console logger used by every phase of
// a run. Lines look like "2006-01-02 15:04:05 [LEVEL] message"; the label is
// colored when the terminal allows it. Errors go to stderr, everything else
// to stdout, and an optional rotating log file receives plain copies.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/backmassage/gallerytree/internal/config"
	"github.com/backmassage/gallerytree/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// successKey marks an info entry that should be labeled SUCCESS.
const successKey = "success"

// Logger provides leveled, optionally colored logging with an optional
// rotating file sink.
type Logger struct {
	log  *logrus.Logger
	file *lumberjack.Logger
}

// NewLogger initializes colors from cfg and optionally opens cfg.LogFile.
// Call Close when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	return newLogger(cfg, os.Stdout, os.Stderr, term.Enabled())
}

func newLogger(cfg *config.Config, stdout, stderr io.Writer, color bool) (*Logger, error) {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	lg.SetFormatter(&lineFormatter{})
	lg.SetLevel(logrus.InfoLevel)
	if cfg.Verbose {
		lg.SetLevel(logrus.DebugLevel)
	}
	lg.AddHook(&writerHook{
		formatter: &lineFormatter{color: color},
		out: func(level logrus.Level) io.Writer {
			if level <= logrus.ErrorLevel {
				return stderr
			}
			return stdout
		},
	})

	l := &Logger{log: lg}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, err
		}
		l.file = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			LocalTime:  true,
		}
		file := l.file
		lg.AddHook(&writerHook{
			formatter: &lineFormatter{},
			out:       func(logrus.Level) io.Writer { return file },
		})
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Info(fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.log.WithField(successKey, true).Info(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan). Dropped unless cfg.Verbose was set.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// lineFormatter renders "ts [LEVEL] message".
type lineFormatter struct {
	color bool
}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	label := levelLabel(e)
	ts := e.Time.Format(timeLayout)
	if f.color {
		return []byte(ts + " " + term.LevelColor(label) + "[" + label + "]" + term.NC + " " + e.Message + "\n"), nil
	}
	return []byte(ts + " [" + label + "] " + e.Message + "\n"), nil
}

func levelLabel(e *logrus.Entry) string {
	if ok, _ := e.Data[successKey].(bool); ok {
		return "SUCCESS"
	}
	if e.Level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(e.Level.String())
}

// writerHook writes every entry it fires for to the writer chosen by out.
type writerHook struct {
	mu        sync.Mutex
	formatter logrus.Formatter
	out       func(logrus.Level) io.Writer
}

func (h *writerHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *writerHook) Fire(e *logrus.Entry) error {
	line, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out(e.Level).Write(line)
	return err
}
