// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting the timeout of each
// attempt during a request plan execution, including on retries.
//
// The timeout applies to one attempt, not to the execution as a whole:
// time spent waiting between retries is governed by the retry policy
// and the plan context.
package timeout
