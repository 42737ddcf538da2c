package core

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smartystreets/clock"

	"github.com/smarty/mcinstall/contracts"
)

const retryNap = time.Second * 3

// RetryFetcher repeats fetches that failed for temporary reasons. With a
// maxRetry of zero it is a pass-through.
type RetryFetcher struct {
	inner    contracts.Fetcher
	maxRetry int
	sleeper  *clock.Sleeper
	logger   logrus.FieldLogger
}

func NewRetryFetcher(inner contracts.Fetcher, maxRetry int, logger logrus.FieldLogger) *RetryFetcher {
	return &RetryFetcher{inner: inner, maxRetry: maxRetry, logger: logger}
}

func (this *RetryFetcher) Fetch(ctx context.Context, address string) (body []byte, err error) {
	for x := 0; x <= this.maxRetry; x++ {
		body, err = this.inner.Fetch(ctx, address)
		if err == nil {
			return body, nil
		}
		if !isTemporary(err) || ctx.Err() != nil {
			return nil, err
		}
		if x < this.maxRetry {
			this.logger.WithField("url", address).WithError(err).Warn("fetch failed, retry imminent")
			if !this.nap(ctx) {
				return nil, err
			}
		}
	}
	return nil, err
}

// nap reports false when ctx ends before the nap does.
func (this *RetryFetcher) nap(ctx context.Context) bool {
	if this.sleeper != nil {
		this.sleeper.Sleep(retryNap)
		return ctx.Err() == nil
	}
	timer := time.NewTimer(retryNap)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func isTemporary(err error) bool {
	var fetchErr *contracts.FetchError
	return errors.As(err, &fetchErr) && fetchErr.Temporary()
}
