package logger

import (
	"io"
	"log"
	"os"
)

// Logger is a leveled logging handle shared by all pipeline stages.
// It is constructed once per run and passed by reference, so there is
// no package-level logging state.
type Logger struct {
	info    *log.Logger
	warn    *log.Logger
	err     *log.Logger
	logFile *os.File
}

const flags = log.Ldate | log.Ltime

// New returns a Logger writing to the given sink.
func New(w io.Writer) *Logger {
	return &Logger{
		info: log.New(w, "INFO:  ", flags),
		warn: log.New(w, "WARN:  ", flags),
		err:  log.New(w, "ERROR: ", flags),
	}
}

// NewWithFile returns a Logger writing to stdout and to the given file,
// appending if it already exists.
func NewWithFile(filename string) (*Logger, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	l := New(io.MultiWriter(os.Stdout, f))
	l.logFile = f
	return l, nil
}

// Close releases the file sink, if any.
func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.info.Printf(format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.warn.Printf(format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.err.Printf(format, v...)
}
