// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"time"
)

// A Waiter specifies how long to wait before retrying a failed attempt.
//
// Parameter attempts is the one-based number of attempts made so far,
// so the wait before the first retry is WaitInterval(1).
//
// Implementations of Waiter must be deterministic and safe for
// concurrent use by multiple goroutines.
type Waiter interface {
	WaitInterval(attempts int) time.Duration
}

// maxMillis is the largest whole number of milliseconds representable
// as a time.Duration.
const maxMillis = float64(math.MaxInt64 / int64(time.Millisecond))

// NewLinearWaiter constructs a Waiter that always returns interval
// milliseconds, rounded half up to a whole millisecond.
func NewLinearWaiter(interval float64) Waiter {
	if !(interval > 0) {
		panic("netclient/retry: interval must be positive")
	}
	return linearWaiter(millis(interval))
}

type linearWaiter time.Duration

func (w linearWaiter) WaitInterval(_ int) time.Duration {
	return time.Duration(w)
}

// NewExponentialWaiter constructs a Waiter implementing exponential
// backoff without jitter:
//
//	wait = round(base^attempts * scale * 1000) ms
//
// Scale is in seconds, so with base 2 and scale 0.5 the waits before
// the first three retries are 1s, 2s and 4s. Every wait is base times
// the previous one. Rounding is half up, so 691.2ms becomes 691ms and
// 0.5ms becomes 1ms.
// Results too large for a time.Duration are clamped to the largest
// whole number of milliseconds it can hold.
func NewExponentialWaiter(base, scale float64) Waiter {
	if !(base > 0) {
		panic("netclient/retry: base must be positive")
	}
	if !(scale > 0) {
		panic("netclient/retry: scale must be positive")
	}
	return &expWaiter{base: base, scale: scale}
}

type expWaiter struct {
	base  float64
	scale float64
}

func (w *expWaiter) WaitInterval(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return millis(math.Pow(w.base, float64(attempts)) * w.scale * 1000)
}

// millis converts a fractional millisecond count to a Duration of whole
// milliseconds, rounding half up.
func millis(ms float64) time.Duration {
	r := math.Floor(ms + 0.5)
	if math.IsNaN(r) || r > maxMillis {
		return time.Duration(maxMillis) * time.Millisecond
	}
	if r < 0 {
		return 0
	}
	return time.Duration(r) * time.Millisecond
}
