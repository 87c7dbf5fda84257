package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Output goes to stdout and, when file is
// set, is appended to that file as well. An unknown level falls back to info.
func New(level, file string) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if file == "" {
		log.SetOutput(os.Stdout)
		return log, nopCloser{}, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", file, err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
