// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"strings"

	"github.com/netkit/netclient/request"
)

// A Decider decides if a retry should be done after an attempt.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It implements the Decider interface, and
// also provides the logical composition methods And and Or.
type DeciderFunc func(e *request.Execution) bool

// Decide returns true if a retry should be done, and false otherwise.
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And composes two retry deciders into a new decider which returns true
// if both sub-deciders return true, and false otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two retry deciders into a new decider which returns
// true if either of the two sub-deciders returns true.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Unsuccessful is a decider that returns true if the most recent
// attempt produced an HTTP response whose status code is not 2XX.
//
// It returns false if there is no response, because transport errors
// are never retried.
var Unsuccessful DeciderFunc = func(e *request.Execution) bool {
	return e.Response != nil && !e.Successful()
}

// Times constructs a decider allowing up to limit retries. The returned
// decider returns true while the one-based attempt count e.Attempt is
// at most limit.
func Times(limit int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt <= limit
	}
}

// StatusCode constructs a decider that returns true if the most recent
// attempt received an HTTP response whose status code is one of ss.
func StatusCode(ss ...int) DeciderFunc {
	set := make(map[int]struct{}, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return func(e *request.Execution) bool {
		_, ok := set[e.StatusCode()]
		return ok
	}
}

// Method constructs a decider that returns true if the plan's HTTP
// method is one of mm. Methods are compared case-insensitively.
func Method(mm ...string) DeciderFunc {
	set := make(map[string]struct{}, len(mm))
	for _, m := range mm {
		set[strings.ToUpper(m)] = struct{}{}
	}
	return func(e *request.Execution) bool {
		_, ok := set[planMethod(e)]
		return ok
	}
}

func planMethod(e *request.Execution) string {
	if e.Plan == nil || e.Plan.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(e.Plan.Method)
}
