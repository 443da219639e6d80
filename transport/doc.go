// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport classifies the errors produced when an HTTP request
// attempt fails without producing a response.
//
// The retry engine in package netclient never retries these errors: it
// works on HTTP responses only. Classification is still useful for
// telling a cancelled execution apart from a timeout or a refused
// connection, for example when logging or bucketing failures.
package transport
