package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cwbudde/wavey/config"
)

// newLogger writes text logs to stderr and, when log_file is set, JSON logs
// to a rotated file as well.
func newLogger(cfg *config.Config, stderr io.Writer, verbose bool) (*logrus.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}

	l := logrus.New()
	l.SetLevel(level)
	l.SetOutput(stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.LogFile == "" {
		return l, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		Compress:   true,
	}
	l.AddHook(&fileHook{w: rotator, formatter: &logrus.JSONFormatter{}})
	return l, func() { _ = rotator.Close() }, nil
}

// fileHook mirrors every entry to w in its own format.
type fileHook struct {
	w         io.Writer
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	_, err = h.w.Write(b)
	return err
}
