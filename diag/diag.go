// Package diag is the single error-reporting sink for the soundtrack engine.
// Components never drop an error silently; they hand it to a Reporter.
package diag

import (
	"log"
	"sync"
)

// Reporter receives every non-fatal failure of the audio subsystem.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) { f(err) }

// LogReporter writes reports through the standard logger.
type LogReporter struct {
	Prefix string
}

func (r LogReporter) Report(err error) {
	if err == nil {
		return
	}
	prefix := r.Prefix
	if prefix == "" {
		prefix = "[soundtrack]"
	}
	log.Printf("%s %v", prefix, err)
}

// Discard ignores reports.
var Discard Reporter = ReporterFunc(func(error) {})

// OrDefault returns r, or a LogReporter when r is nil.
func OrDefault(r Reporter) Reporter {
	if r == nil {
		return LogReporter{}
	}
	return r
}

// Recorder keeps every report in memory. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *Recorder) Report(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

// Errors returns a copy of the recorded errors in report order.
func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

// Len returns how many errors have been recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

// Tee forwards each report to all reporters.
func Tee(reporters ...Reporter) Reporter {
	return ReporterFunc(func(err error) {
		for _, r := range reporters {
			if r != nil {
				r.Report(err)
			}
		}
	})
}
