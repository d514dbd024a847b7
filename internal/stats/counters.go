package stats

import "go.uber.org/atomic"

// Outcome classifies a finished weather request
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeValidationError
	OutcomeUpstreamError
)

// Counters tracks proxy traffic; safe for concurrent use
type Counters struct {
	requests         atomic.Int64
	successes        atomic.Int64
	validationErrors atomic.Int64
	upstreamErrors   atomic.Int64
}

// NewCounters creates an empty counter set
func NewCounters() *Counters {
	return &Counters{}
}

// Record counts one request with the given outcome. A nil receiver is a no-op.
func (c *Counters) Record(outcome Outcome) {
	if c == nil {
		return
	}
	c.requests.Inc()
	switch outcome {
	case OutcomeSuccess:
		c.successes.Inc()
	case OutcomeValidationError:
		c.validationErrors.Inc()
	case OutcomeUpstreamError:
		c.upstreamErrors.Inc()
	}
}

// Snapshot returns the current counter values
func (c *Counters) Snapshot() ProxyStats {
	if c == nil {
		return ProxyStats{}
	}
	return ProxyStats{
		Requests:         c.requests.Load(),
		Successes:        c.successes.Load(),
		ValidationErrors: c.validationErrors.Load(),
		UpstreamErrors:   c.upstreamErrors.Load(),
	}
}
