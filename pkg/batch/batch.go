// Package batch provides rate-limited chunked iteration over large slices.
// It exists so fan-out code paths can throttle load on backing services
// instead of hammering them with one huge request or thousands of small ones.
package batch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultSize is the chunk size used when the caller passes a non-positive size.
const DefaultSize = 500

// Process invokes fn once per fixed-size chunk of items, strictly in order,
// enforcing a minimum interval between chunk starts. The first chunk runs
// immediately. Processing stops at the first error or when ctx is cancelled.
func Process[T any](ctx context.Context, items []T, size int, interval time.Duration, fn func(ctx context.Context, chunk []T) error) error {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultSize
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	// Burst of one with a full bucket: the first Wait returns immediately,
	// every subsequent Wait blocks until the interval has elapsed.
	limiter := rate.NewLimiter(limit, 1)

	for start := 0; start < len(items); start += size {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		end := min(start+size, len(items))
		if err := fn(ctx, items[start:end]); err != nil {
			return err
		}
	}
	return nil
}
