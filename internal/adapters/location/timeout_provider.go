package location

import (
	"context"
	"errors"
	"fmt"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
	"time"
)

// TimeoutProvider bounds how long the wrapped provider may take. Every
// failure it returns wraps domain.ErrLocationUnavailable.
type TimeoutProvider struct {
	inner   ports.LocationProvider
	timeout time.Duration
}

var _ ports.LocationProvider = (*TimeoutProvider)(nil)

func NewTimeoutProvider(inner ports.LocationProvider, timeout time.Duration) *TimeoutProvider {
	return &TimeoutProvider{inner: inner, timeout: timeout}
}

type locateResult struct {
	coord domain.Coordinate
	err   error
}

func (p *TimeoutProvider) Locate(ctx context.Context) (domain.Coordinate, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// Buffered so a provider that ignores ctx does not leak the goroutine forever.
	ch := make(chan locateResult, 1)
	go func() {
		c, err := p.inner.Locate(ctx)
		ch <- locateResult{coord: c, err: err}
	}()

	select {
	case r := <-ch:
		if r.err == nil {
			return r.coord, nil
		}
		return domain.Coordinate{}, wrapUnavailable(r.err)
	case <-ctx.Done():
		return domain.Coordinate{}, fmt.Errorf("locate: %w: %w", domain.ErrLocationUnavailable, ctx.Err())
	}
}

func wrapUnavailable(err error) error {
	if errors.Is(err, domain.ErrLocationUnavailable) {
		return fmt.Errorf("locate: %w", err)
	}
	return fmt.Errorf("locate: %w: %w", domain.ErrLocationUnavailable, err)
}
