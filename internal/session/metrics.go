package session

import "sync/atomic"

// Metrics counts cycle outcomes. All counters are monotonically increasing.
type Metrics struct {
	requests atomic.Uint64
	applied  atomic.Uint64
	canceled atomic.Uint64
	timedOut atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Requests uint64
	Applied  uint64
	Canceled uint64
	TimedOut uint64
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests: m.requests.Load(),
		Applied:  m.applied.Load(),
		Canceled: m.canceled.Load(),
		TimedOut: m.timedOut.Load(),
	}
}
