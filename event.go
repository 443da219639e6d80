// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// plan execution starts.
	//
	// When Client fires BeforeExecutionStart, the execution's ID and
	// plan are set, and Attempt is 1. The plan has already been
	// prepared with the client's base URL and default headers.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// individual HTTP request attempt during the plan execution.
	//
	// When Client fires BeforeAttempt, the execution's request
	// field is set to the HTTP request that WILL BE sent after all
	// BeforeAttempt handlers have finished.
	//
	// BeforeAttempt handlers may modify the execution's request, but
	// should clone request fields which have reference types (URL and
	// Header) before changing them, as these fields initially reference
	// the same-named fields in the plan.
	BeforeAttempt
	// AfterAttempt identifies the event that occurs after an HTTP
	// request attempt is concluded, regardless of whether it concluded
	// with a response or with an error.
	//
	// When Client fires AfterAttempt, exactly one of the execution's
	// response and error fields is non-nil. The response body has not
	// been read yet.
	//
	// AfterAttempt runs before the retry policy is consulted.
	AfterAttempt
	// BeforeWait identifies the event that occurs after the retry
	// policy has decided to retry, and before the client waits.
	//
	// When Client fires BeforeWait, the last element of the execution's
	// Waits field is the interval about to be waited, and the response
	// of the failed attempt has already been discarded.
	BeforeWait
	// BeforeReadBody identifies the event that occurs once the final
	// attempt has produced an HTTP response, before its body is read
	// and buffered.
	//
	// BeforeReadBody fires at most once per execution. Bodies of
	// responses which are retried are discarded without firing it.
	BeforeReadBody
	// AfterExecutionEnd identifies the event that occurs after the plan
	// execution ends.
	//
	// When Client fires AfterExecutionEnd, the execution is complete:
	// the end time, body and RetriesExhausted marker are all set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttempt",
	"BeforeWait",
	"BeforeReadBody",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in an
// HTTP request plan execution by Client, in the order in which
// they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttempt,
		BeforeWait,
		BeforeReadBody,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
