// Package metrics provides per-run counters for a publish.
package metrics

import (
	"fmt"
	"time"
)

// RunMetrics tracks what a single publish did.
type RunMetrics struct {
	StartTime time.Time
	EndTime   time.Time

	SourcesScanned int   // markdown files seen while auto-selecting
	DestScanned    int   // markdown files seen while resolving the name
	BytesCopied    int64 // zero on dry runs
	ReusedExisting bool
	SourceRemoved  bool
}

// NewRunMetrics creates a new metrics instance.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		StartTime: time.Now(),
	}
}

// RecordEnd marks the end of the run.
func (m *RunMetrics) RecordEnd() {
	m.EndTime = time.Now()
}

// TotalDuration returns the total run duration.
func (m *RunMetrics) TotalDuration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// String returns a single-line summary.
func (m *RunMetrics) String() string {
	mode := "new"
	if m.ReusedExisting {
		mode = "reused"
	}
	return fmt.Sprintf("📊 Published %d bytes in %v (name: %s, scanned %d sources / %d posts, removed: %v)",
		m.BytesCopied,
		m.TotalDuration(),
		mode,
		m.SourcesScanned,
		m.DestScanned,
		m.SourceRemoved,
	)
}
