package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

type retrying struct {
	inner Provider
	cfg   RetryConfig

	// jitter returns a value in [-1, 1) scaling a ±20% spread.
	jitter func() float64
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p so transient failures are retried with exponential
// backoff. A malformed reply is retried once. No wait is started that
// would run past the context deadline; the last failure is returned
// instead so callers see why the request failed.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrying{
		inner:  p,
		cfg:    cfg,
		jitter: func() float64 { return 2*rand.Float64() - 1 },
		sleep:  sleep,
	}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Reply, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	malformedSeen := false

	for attempt := 0; ; attempt++ {
		reply, err := r.inner.Generate(ctx, req)
		if err == nil {
			return reply, nil
		}
		if attempt+1 >= attempts || !retryable(err) {
			return nil, err
		}
		if kind, _ := KindOf(err); kind == Malformed {
			if malformedSeen {
				return nil, err
			}
			malformedSeen = true
		}

		wait := r.wait(attempt, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			return nil, err
		}
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
}

func (r *retrying) ModelID() string {
	return r.inner.ModelID()
}

func (r *retrying) wait(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.Kind == RateLimited && e.RetryAfter > 0 {
		return e.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(max(r.cfg.Multiplier, 1), float64(attempt))
	if r.cfg.MaxWait > 0 {
		wait = min(wait, float64(r.cfg.MaxWait))
	}
	wait += wait * 0.2 * r.jitter()
	return time.Duration(max(wait, 0))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
