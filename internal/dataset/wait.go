package dataset

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// WaitForSource polls until path is readable or maxWait elapses. It is meant
// for process startup, when the source may be mounted after the service
// starts; loading itself never retries. A non-positive maxWait checks once.
func WaitForSource(ctx context.Context, path string, maxWait time.Duration, notify func(err error, next time.Duration)) error {
	if maxWait <= 0 {
		return Check(path)
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxWait
	return backoff.RetryNotify(func() error { return Check(path) }, backoff.WithContext(b, ctx), notify)
}
