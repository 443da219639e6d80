// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"context"
	"time"
)

// A Sleeper suspends the calling goroutine between a failed attempt and
// the retry that follows it.
//
// Sleep must return nil once d has elapsed, or the context error as
// soon as ctx is done, whichever happens first. It must never block any
// goroutine other than its caller.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// The SleeperFunc type is an adapter to allow the use of ordinary
// functions as sleepers.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleeper is the default Sleeper. It waits on a timer, selecting
// against the context so that cancellation ends the wait promptly.
var TimerSleeper Sleeper = SleeperFunc(timerSleep)

func timerSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
