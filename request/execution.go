// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/netkit/netclient/transport"
)

// An Execution represents the state of a single Plan execution.
//
// When a plan is executed, an Execution is created for it. The
// Execution is updated as the execution progresses (for example when
// the HTTP response becomes available, or when a retry is needed) and
// is ultimately returned as the return value of the plan execution.
//
// Retry deciders and event handlers may store values on an Execution
// using SetValue and read them back using Value, but they should treat
// the exported fields as read-only.
//
// An Execution belongs to exactly one execution loop and is never
// shared between concurrent executions.
type Execution struct {
	// Plan specifies the HTTP request plan being executed. It is never
	// nil.
	Plan *Plan

	// ID uniquely identifies the execution. It is assigned when the
	// execution starts and is intended for correlating log entries.
	ID string

	// Start is the start time of the execution.
	Start time.Time

	// End is the end time of the execution. It contains the zero value
	// until the execution ends.
	End time.Time

	// Attempt is the one-based number of the current attempt. It is 1
	// during and after the initial attempt, 2 during and after the
	// first retry, and so on.
	//
	// When the execution has ended, Attempt is the total number of
	// attempts made.
	Attempt int

	// Waits records, in order, every wait interval computed by the
	// retry policy before a retry. Its length is the number of retries
	// started (a wait interrupted by cancellation is still recorded).
	Waits []time.Duration

	// Request is the HTTP request to be made in the current attempt,
	// or already made in the last attempt.
	Request *http.Request

	// Response is the HTTP response received in the most recent
	// attempt. It is nil if the most recent attempt ended in an error,
	// or if an attempt is underway.
	Response *http.Response

	// Err is the error from the most recent attempt, or the
	// cancellation error if the execution was cancelled while waiting
	// to retry. Whenever Err is non-nil it has the type *url.Error.
	Err error

	// Body is the complete response body read from the final
	// response. Bodies of intermediate responses that were retried are
	// discarded and never stored here.
	Body []byte

	// RetriesExhausted is nil unless retries were attempted, the retry
	// limit was reached, and the final response is still unsuccessful,
	// in which case it points to true.
	//
	// A nil value therefore distinguishes "never needed a retry" and
	// "failed without being retry-eligible" from "retried and still
	// failed".
	RetriesExhausted *bool

	data context.Context
}

// StatusCode returns the status code of the HTTP response from the
// most recent attempt. If there is no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent
// attempt, or a nil header if there is no response.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Successful reports whether the most recent attempt produced an HTTP
// response with a 2XX status code.
func (e *Execution) Successful() bool {
	s := e.StatusCode()
	return s >= 200 && s <= 299
}

// Retried reports whether at least one retry was started.
func (e *Execution) Retried() bool {
	return len(e.Waits) > 0
}

// Exhausted reports whether the RetriesExhausted marker is set.
func (e *Execution) Exhausted() bool {
	return e.RetriesExhausted != nil && *e.RetriesExhausted
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If it
// has ended, the duration is End minus Start. Otherwise, it is the
// current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err currently contains a timeout, either of
// the most recent attempt or of the whole plan.
func (e *Execution) Timeout() bool {
	return transport.Classify(e.Err) == transport.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
