// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package netclient provides an HTTP client which retries failed requests
according to a shared, immutable retry policy.

Create a Client to begin making requests. The zero value never retries:

	client := &netclient.Client{}
	e, err := client.Get("https://www.example.com")
	...

Give the client a retry policy to retry unsuccessful responses. The
default policy retries GET, PATCH, POST, PUT and DELETE requests which
receive a 408, 500, 502, 503 or 504 response, up to two times, waiting
one second and then two seconds:

	client := &netclient.Client{
		RetryPolicy: retry.Default(),
	}
	e, err := client.Post("https://www.example.com/upload",
		"application/json", &buf)
	if err != nil {
		// Transport error, unreadable body or cancelled plan.
	}
	if e.Exhausted() {
		// Every allowed retry was made and the last response still
		// failed.
	}

Build the policy from partially specified options to change it:

	policy, err := retry.NewConfiguration(retry.Options{
		Type:          "linear",
		RetryLimit:    retry.Int(3),
		RetryInterval: retry.Float(500),
	})

A single request may override the client's policy:

	p, err := request.NewPlan("PUT", "https://www.example.com/doc", body)
	...
	e, err := client.DoWithOptions(p, &retry.Options{RetryLimit: retry.Int(5)})

Clients may also be built from JSON or YAML configuration loaded with
package config, including base URL, default headers, session timeouts,
connection limits and bearer token capture:

	cfg, err := config.LoadFile("client.yaml")
	...
	client, err := netclient.New(cfg)
	...
	e, err := client.Request(ctx, "GET", "users/me", nil)

A Registry keeps one client per base URL. Default headers may be
added to a registered client at any time, and invalidating it cancels
every execution it has in flight, whether attempting or waiting:

	var reg netclient.Registry
	client, _, err := reg.GetOrCreate("https://chat.example.com", cfg)
	...
	err = reg.AddHeaders("https://chat.example.com", map[string]string{
		"X-Requested-With": "XMLHttpRequest",
	})
	...
	err = reg.Invalidate("https://chat.example.com")

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer, for example a standard library
http.Client. For control over individual attempt timeouts, set a policy
from package timeout. To observe the retry loop, install handlers:

	handlers := &netclient.HandlerGroup{}
	handlers.PushBack(netclient.BeforeWait, netclient.HandlerFunc(
		func(_ netclient.Event, e *request.Execution) {
			log.Printf("attempt %d failed, waiting %s", e.Attempt, e.Waits[len(e.Waits)-1])
		}),
	)
	client := &netclient.Client{
		RetryPolicy: retry.Default(),
		Handlers:    handlers,
	}

Package netclient provides basic interfaces for each method of the
client (Doer, Getter, Header, Poster, Putter, Patcher, Deleter,
FormPoster, and IdleCloser); a combined interface that composes all the
basic methods (Executor); and utility functions for working with a Doer
(Inflate, Get, Head, Post, Put, Patch, Delete, and PostForm).
*/
package netclient
