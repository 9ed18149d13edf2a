package common

import (
	"fmt"
	"io"
	"sync"
)

// LogWriter collects trace and error messages during a run and flushes them
// once at the end, so output from concurrent stages does not interleave.
type LogWriter struct {
	mu     sync.Mutex
	traces []string
	errors []error
}

func (l *LogWriter) Trace(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.traces = append(l.traces, message)
}

func (l *LogWriter) Err(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, err)
}

func (l *LogWriter) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors) > 0
}

func (l *LogWriter) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]error, len(l.errors))
	copy(result, l.errors)
	return result
}

func (l *LogWriter) Flush(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.traces {
		_, _ = fmt.Fprintln(w, t)
	}
	for _, e := range l.errors {
		_, _ = fmt.Fprintf(w, "error: %v\n", e)
	}
	l.traces = nil
	l.errors = nil
}
