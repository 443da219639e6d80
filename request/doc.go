// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (a replayable HTTP request)
and Execution (the state of one Plan execution, including every retry).

A Plan looks like a stripped-down http.Request with a pre-buffered
[]byte body, so the retry engine can re-issue exactly the same request
on every attempt:

	p, err := request.NewPlan("GET", "https://example.com", nil)
	...
	e, err := client.Do(p)
	...

A plan may carry a context to cancel the whole execution, including a
pending retry wait:

	p, err := request.NewPlanWithContext(ctx, "POST", "/api/v4/posts", body)

An Execution is returned by every executing method of netclient.Client
and handed to retry deciders and event handlers. Its Attempt field is
the one-based attempt counter used by the retry policy, and its
RetriesExhausted field is the marker set when retries ran out while the
response was still unsuccessful.
*/
package request
