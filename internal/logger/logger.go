package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Level string
	// Logger receives a copy of everything written to stdout, usually a rotating log file
	Logger io.Writer
}

var levels = map[string]logrus.Level{
	"fatal": logrus.FatalLevel,
	"error": logrus.ErrorLevel,
	"warn":  logrus.WarnLevel,
	"info":  logrus.InfoLevel,
	"debug": logrus.DebugLevel,
	"silly": logrus.TraceLevel,
}

var log = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}

func ParseLevel(level string) (logrus.Level, error) {
	parsed, ok := levels[strings.ToLower(level)]
	if !ok {
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
	return parsed, nil
}

// Init configures the package logger. Until it is called, everything is discarded.
func Init(options Options) {
	level, err := ParseLevel(options.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	var output io.Writer = os.Stdout
	if options.Logger != nil {
		output = io.MultiWriter(os.Stdout, options.Logger)
	}

	initialized := logrus.New()
	initialized.SetOutput(output)
	initialized.SetLevel(level)
	initialized.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	log = initialized

	if err != nil {
		Warnf("Falling back to info level: %v", err)
	}
	Debugf("Initialized logger with level %s", level)
}

func Fatal(message string) {
	log.Fatal(message)
}

func Fatalf(format string, args ...any) {
	log.Fatalf(format, args...)
}

func Error(message string) {
	log.Error(message)
}

func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

func Warn(message string) {
	log.Warn(message)
}

func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

func Info(message string) {
	log.Info(message)
}

func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

func Debug(message string) {
	log.Debug(message)
}

func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func Silly(message string) {
	log.Trace(message)
}

func Sillyf(format string, args ...any) {
	log.Tracef(format, args...)
}
