package httptransport

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// NewRetryPolicy returns the backoff policy for requests that should
// be retried until they succeed or are marked permanent. Each call
// returns a fresh instance: exponential backoff carries mutable
// interval state, so policies must not be shared between concurrent
// retry loops.
func NewRetryPolicy() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.RandomizationFactor = 0.2
	exp.MaxInterval = 60 * time.Second
	exp.MaxElapsedTime = 0
	return exp
}
