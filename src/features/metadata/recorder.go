package metadata

import "time"

// Resolution outcomes reported to a Recorder.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeCanceled = "canceled"
)

// Recorder receives one observation per resolver call.
type Recorder interface {
	ObserveResolution(resolver, operation, outcome string, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveResolution(string, string, string, time.Duration) {}

func observe(rec Recorder, resolver, operation string, start time.Time, found bool, err error) {
	outcome := OutcomeNotFound
	switch {
	case err != nil:
		outcome = OutcomeCanceled
	case found:
		outcome = OutcomeFound
	}
	rec.ObserveResolution(resolver, operation, outcome, time.Since(start))
}
