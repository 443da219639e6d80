// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry is the retry policy engine's decision module: it
// decides, after every attempt of a request plan execution, whether a
// retry should be done and how long to wait before doing it.
//
// A Configuration is the fully resolved, immutable description of a
// retry policy. It is built from Options, the partially specified form
// accepted from configuration files and per-request overrides, with
// every unset field taking its documented default:
//
//	cfg, err := retry.NewConfiguration(retry.Options{
//		Type:        "exponential",
//		RetryLimit:  retry.Int(3),
//		StatusCodes: []int{500},
//	})
//
// A Configuration is a Decider and a Waiter. The Decider retries an
// unsuccessful response while the attempt count does not exceed the
// retry limit and both the status code and the request method are
// retryable. The Waiter returns a constant interval for the linear
// kind and base^attempts * scale seconds, rounded half up to whole
// milliseconds, for the exponential kind.
//
// Deciders and Waiters can also be used on their own, and composed
// using DeciderFunc.And and DeciderFunc.Or.
package retry
