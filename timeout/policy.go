// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/netkit/netclient/request"
)

// A Policy defines a timeout policy which may be plugged into the
// client (netclient.Client) to direct how to set the timeout of each
// attempt, including retries.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the next attempt within
	// the plan execution e.
	Timeout(e *request.Execution) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 30 seconds on each attempt.
var DefaultPolicy Policy = Fixed(30 * time.Second)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that uses the same value to set
// every attempt timeout.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

// Seconds constructs a fixed timeout policy from a number of seconds,
// as found in session configuration. A non-positive value yields
// Infinite.
func Seconds(s float64) Policy {
	if !(s > 0) {
		return Infinite
	}
	return fixed(time.Duration(s * float64(time.Second)))
}

// PlanOverride wraps a policy so that a positive Plan.Timeout takes
// precedence over it.
func PlanOverride(p Policy) Policy {
	return planOverride{p}
}

type fixed time.Duration

func (d fixed) Timeout(_ *request.Execution) time.Duration {
	return time.Duration(d)
}

type planOverride struct {
	Policy
}

func (p planOverride) Timeout(e *request.Execution) time.Duration {
	if e.Plan != nil && e.Plan.Timeout > 0 {
		return e.Plan.Timeout
	}
	return p.Policy.Timeout(e)
}
