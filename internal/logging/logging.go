// internal/logging/logging.go
// Structured logging for the CLI: logrus to stderr, optionally teed into a
// rotated file.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure a logger.
type Options struct {
	Level string // debug | info | warn | error
	Quiet bool   // cap console output at errors
	File  string // optional log file, rotated
}

// New builds a logger writing to console (usually stderr) per the options.
func New(console io.Writer, o Options) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(o.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", o.Level)
	}
	if o.Quiet && level > logrus.ErrorLevel {
		level = logrus.ErrorLevel
	}
	log.SetLevel(level)

	out := console
	if o.File != "" {
		out = io.MultiWriter(console, &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	log.SetOutput(out)
	return log, nil
}
