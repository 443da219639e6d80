// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the kind of transport failure reported by Classify.
type Category int

const (
	// None indicates there was no error.
	None Category = iota
	// Canceled indicates the attempt, or the execution it belongs to,
	// was cancelled by its context.
	//
	// Classify returns Canceled if the error or any of its wrapped
	// causes is context.Canceled.
	Canceled
	// Timeout indicates a client-side timeout, either of the attempt or
	// of the whole execution.
	//
	// Classify returns Timeout if the error is not Canceled and the
	// error or any of its wrapped causes has a Timeout method that
	// reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (POSIX ECONNREFUSED).
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection (POSIX ECONNRESET).
	ConnReset
	// Other is any error not covered by the categories above.
	Other
)

var categoryNames = []string{
	"none",
	"canceled",
	"timeout",
	"conn_refused",
	"conn_reset",
	"other",
}

// String returns a short snake_case name for the category, suitable
// for use as a log field value.
func (c Category) String() string {
	if c < None || c > Other {
		return "unknown"
	}
	return categoryNames[c]
}

// Classify returns the category of err. A nil error is None.
//
// Classify looks at wrapped causes within err, not just err itself.
func Classify(err error) Category {
	if err == nil {
		return None
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var ht hasTimeout
	if errors.As(err, &ht) && ht.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	return Other
}

type hasTimeout interface {
	Timeout() bool
}
