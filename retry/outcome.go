// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import "github.com/netkit/netclient/request"

// An Outcome classifies how an ended execution finished.
type Outcome int

const (
	// Success means the final response has a 2XX status code.
	Success Outcome = iota
	// NonRetryableFailure means the final response is unsuccessful and
	// the execution stopped without exhausting its retries, either
	// because the status code or method was not retryable or because
	// no retry policy applied.
	NonRetryableFailure
	// RetriesExhausted means the final response is unsuccessful after
	// the retry limit was reached.
	RetriesExhausted
	// TransportError means no final response was produced. Cancellation
	// falls into this category.
	TransportError
)

var outcomeNames = [...]string{
	Success:             "success",
	NonRetryableFailure: "non_retryable_failure",
	RetriesExhausted:    "retries_exhausted",
	TransportError:      "transport_error",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Classify returns the outcome of an ended execution.
func Classify(e *request.Execution) Outcome {
	switch {
	case e.Err != nil || e.Response == nil:
		return TransportError
	case e.Successful():
		return Success
	case e.Exhausted():
		return RetriesExhausted
	default:
		return NonRetryableFailure
	}
}
