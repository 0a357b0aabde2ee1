// Package metrics records operational metrics for aggregation runs behind a
// small, backend-agnostic interface.
//
// A no-op backend is installed by default, so instrumentation is always safe
// to call. Concrete systems live in subpackages (prompush for a Prometheus
// Pushgateway, datadog for DogStatsD) and are installed with SetBackend by
// the command that owns the run.
package metrics

import "time"

// Metric names shared by every backend.
const (
	StepTotal           = "dragons_step_total"
	StepDurationSeconds = "dragons_step_duration_seconds"
	RowsTotal           = "dragons_rows_total"
)

// Row kinds reported through RecordRows.
const (
	RowsRead     = "read"
	RowsSkipped  = "skipped"
	RowsFiltered = "filtered"
	RowsMerged   = "merged"
	RowsWritten  = "written"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep counts one execution of step (a category name, "commit", ...)
// and records how long it took.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}
	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRows adds delta rows of the given kind for a category. Non-positive
// deltas are ignored.
func RecordRows(job, category, kind string, delta int) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{
		"job":      job,
		"category": category,
		"kind":     kind,
	})
}
