package enrich

import "time"

const (
	// DefaultMaxAttempts bounds transient-error retries of one chunk fetch.
	DefaultMaxAttempts = 5
	// DefaultBackoff is the fixed pause between retries.
	DefaultBackoff = time.Second
)

// RetryPolicy controls how a chunk fetch recovers from transient errors.
// The zero value selects the bounded defaults. A negative MaxAttempts
// selects the legacy unbounded mode, which retries forever and can stall
// the whole batch on a hung endpoint; it exists for compatibility only.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// UnboundedRetry is the legacy retry-forever policy.
func UnboundedRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: -1, Backoff: DefaultBackoff}
}

func (p RetryPolicy) maxAttempts() int {
	if p.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p RetryPolicy) backoff() time.Duration {
	if p.Backoff <= 0 {
		return DefaultBackoff
	}
	return p.Backoff
}

// exhausted reports whether attempt (1-based) was the last allowed one.
func (p RetryPolicy) exhausted(attempt int) bool {
	max := p.maxAttempts()
	return max > 0 && attempt >= max
}
