package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Logger interface {
	Log(message string)
}

type fileLogger struct {
	mutex      sync.Mutex
	path       string
	console    io.Writer
	fileWriter *bufio.Writer
}

// NewFileLogger logs to the file specified by `path`. If the file is unavailable, writes to stderr, because stdout
// belongs to the interactive prompt.
func NewFileLogger(path string) Logger {
	return &fileLogger{
		path:    path,
		console: os.Stderr,
	}
}

func (f *fileLogger) Log(message string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	line := formatLogLine(time.Now(), message)
	if f.fileWriterReady() {
		_, err := f.fileWriter.WriteString(line)
		if err != nil {
			f.logErrorToConsole(err.Error())
			f.logMessageToConsole(line)
		}
		err = f.fileWriter.Flush()
		if err != nil {
			f.logErrorToConsole(err.Error())
		}
	} else {
		f.logMessageToConsole(line)
	}
}

func (f *fileLogger) logErrorToConsole(message string) {
	_, _ = fmt.Fprintf(f.console, "Error: %s. Logging switched to console.\n", message)
}

func (f *fileLogger) logMessageToConsole(message string) {
	_, _ = fmt.Fprint(f.console, message)
}

func (f *fileLogger) fileWriterReady() bool {
	if f.fileWriter != nil {
		return true
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		f.logErrorToConsole(err.Error())
		return false
	}
	f.fileWriter = bufio.NewWriter(file)
	return true
}

func formatLogLine(t time.Time, message string) string {
	return t.Format("2006-01-02 15:04:05.000") + " " + strings.TrimRight(message, "\n") + "\n"
}

// LoggerWriter adapts a Logger to io.Writer, one log entry per written line. Useful for capturing the console
// output of external processes.
type LoggerWriter struct {
	logger Logger
	prefix string
	buffer strings.Builder
}

func NewLoggerWriter(logger Logger, prefix string) *LoggerWriter {
	return &LoggerWriter{logger: logger, prefix: prefix}
}

func (w *LoggerWriter) Write(p []byte) (int, error) {
	w.buffer.Write(p)
	content := w.buffer.String()
	lastNewLine := strings.LastIndex(content, "\n")
	if lastNewLine == -1 {
		return len(p), nil
	}
	for _, line := range strings.Split(content[:lastNewLine], "\n") {
		if strings.TrimSpace(line) != "" {
			w.logger.Log(w.prefix + line)
		}
	}
	w.buffer.Reset()
	w.buffer.WriteString(content[lastNewLine+1:])
	return len(p), nil
}

// Flush logs whatever remains after the last newline.
func (w *LoggerWriter) Flush() {
	rest := w.buffer.String()
	w.buffer.Reset()
	if strings.TrimSpace(rest) != "" {
		w.logger.Log(w.prefix + rest)
	}
}
