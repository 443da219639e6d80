// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package config loads client and per-request configuration from JSON or
YAML data, files, or decoded maps.

A client configuration looks like this in YAML:

	baseUrl: https://chat.example.com/api/v4/
	headers:
	  X-Requested-With: XMLHttpRequest
	sessionConfiguration:
	  followRedirects: true
	  timeoutIntervalForRequest: 30        # seconds
	  timeoutIntervalForResource: 30       # seconds
	  httpMaximumConnectionsPerHost: 10
	retryPolicyConfiguration:
	  type: exponential
	  retryLimit: 2
	  exponentialBackoffBase: 2
	  exponentialBackoffScale: 0.5
	  statusCodes: [408, 500, 502, 503, 504]
	  retryMethods: [GET, POST]
	requestAdapterConfiguration:
	  bearerAuthTokenResponseHeader: token

Session settings absent from the data take their defaults. Retry
settings absent from retryPolicyConfiguration take the defaults of
package retry once the configuration is resolved; an absent
retryPolicyConfiguration means the client never retries.

Per-request options use the keys headers, body, timeoutInterval (in
milliseconds) and retryPolicyConfiguration.

Every loader validates its result. Errors wrap one of ErrUnsupportedFormat,
ErrLoad, ErrParse or ErrInvalid.
*/
package config
