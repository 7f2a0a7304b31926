package repository

import (
	"time"

	"github.com/google/uuid"
)

// QueryObserver receives query timings; MetricsService satisfies it.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

type queryTimer struct {
	observer QueryObserver
}

func (t queryTimer) track(label string) func() {
	if t.observer == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		t.observer.ObserveDBQuery(label, time.Since(start))
	}
}

// validID reports whether id can be compared against a uuid column without
// PostgreSQL rejecting the statement.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
