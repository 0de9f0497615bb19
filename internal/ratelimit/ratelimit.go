// Package ratelimit throttles raw RDB byte throughput with a token
// bucket, the same primitive the teacher uses to throttle command QPS
// on the write side (golang.org/x/time/rate).
package ratelimit

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// Limiter wraps an io.Reader so that reads are paced to a configured
// bytes-per-second ceiling. Burst is one second's worth of tokens,
// so a brief stall never has to wait out the whole bucket before the
// next read proceeds.
type Limiter struct {
	r       io.Reader
	limiter *rate.Limiter
	ctx     context.Context
}

// NewLimiter wraps r with a token bucket of bytesPerSec tokens per
// second and a burst of one second's worth. bytesPerSec <= 0 disables
// throttling entirely.
func NewLimiter(ctx context.Context, r io.Reader, bytesPerSec int) *Limiter {
	if ctx == nil {
		ctx = context.Background()
	}
	if bytesPerSec <= 0 {
		return &Limiter{r: r, limiter: rate.NewLimiter(rate.Inf, 0), ctx: ctx}
	}
	return &Limiter{
		r:       r,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
		ctx:     ctx,
	}
}

// Read reads into p, first waiting for enough tokens to cover len(p)
// when throttling is enabled. The wait is clamped to the bucket's
// burst size so a single large buffer never demands more tokens than
// the bucket can ever hold.
func (l *Limiter) Read(p []byte) (int, error) {
	if l.limiter.Limit() == rate.Inf {
		return l.r.Read(p)
	}

	n := len(p)
	burst := l.limiter.Burst()
	if n > burst {
		n = burst
	}
	if n > 0 {
		if err := l.limiter.WaitN(l.ctx, n); err != nil {
			return 0, err
		}
	}
	return l.r.Read(p[:n])
}
