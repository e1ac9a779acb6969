// Package ratelimit gates mutation endpoints with a sliding-window counter
// keyed by client identifier.
//
// The window is the weighted two-bucket approximation: the count for a
// request is the hits in the current fixed bucket plus the hits of the
// previous bucket scaled by the fraction of it still inside the window.
// Every call is counted, including rejected ones.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/logging"
)

// Result describes the outcome of a single Limit call.
type Result struct {
	Success   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

type Limiter interface {
	Limit(ctx context.Context, id string) (Result, error)
}

// window math shared by both limiters.
type window struct {
	limit int
	size  time.Duration
}

func (w window) bucket(now time.Time) (idx int64, elapsed time.Duration) {
	ms := w.size.Milliseconds()
	t := now.UnixMilli()
	return t / ms, time.Duration(t%ms) * time.Millisecond
}

func (w window) result(idx int64, elapsed time.Duration, current, previous int64) Result {
	weight := 1 - float64(elapsed)/float64(w.size)
	count := float64(current) + float64(previous)*weight

	remaining := w.limit - int(math.Ceil(count))
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Success:   count <= float64(w.limit),
		Limit:     w.limit,
		Remaining: remaining,
		Reset:     time.UnixMilli((idx + 1) * w.size.Milliseconds()),
	}
}

// Guard turns a Limiter result into the error callers return.
type Guard struct {
	limiter Limiter
	logger  logging.Logger
}

func NewGuard(limiter Limiter, logger logging.Logger) *Guard {
	return &Guard{limiter: limiter, logger: logger.With("module", "ratelimit")}
}

// Check returns common.ErrorRateLimited when id is over the limit.
// A limiter failure is logged and the request is let through.
func (g *Guard) Check(ctx context.Context, id string) error {
	res, err := g.limiter.Limit(ctx, id)
	if err != nil {
		g.logger.Warn(ctx, "rate limiter unavailable, allowing request", "client", id, "error", err)
		return nil
	}
	if !res.Success {
		g.logger.Info(ctx, "rate limited", "client", id, "reset", res.Reset)
		return fmt.Errorf("%w: too many requests, try again after %s", common.ErrorRateLimited, res.Reset.UTC().Format(time.RFC3339))
	}
	return nil
}
