// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/netkit/netclient/request"
	"github.com/netkit/netclient/retry"
	"github.com/netkit/netclient/timeout"
	"github.com/netkit/netclient/transport"
)

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package.
//
// HTTPDoer is the transport adapter of the retry engine: Client makes
// every attempt through it and applies the same retry policy regardless
// of how the HTTPDoer sends the request.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the Go
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var (
	emptyHandlers = HandlerGroup{}
	nopLogger     = zerolog.Nop()
)

// A Client is a persistent HTTP client with retry support. Its zero
// value is a valid configuration which never retries.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, timeout.DefaultPolicy as the timeout policy, TimerSleeper
// to wait between attempts, no retry policy, no logging and an empty
// handler group.
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines
// provided its exported fields, other than through AddHeaders, are not
// modified once it is in use. A Client must not be copied after first
// use. Every
// execution keeps its own attempt counter, so concurrent executions
// never affect one another's retry decisions.
//
// On top of the HTTP request features provided by the HTTPDoer, Client
// resolves relative plan URLs against BaseURL, adds default headers,
// reads and buffers the entire final response body, retries failed
// attempts according to a retry.Configuration, sets individual attempt
// timeouts, and invokes handlers at designated points within the
// attempt/retry loop.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// RetryPolicy is the client-level retry configuration used by Do
	// and as the fallback of DoWithOptions.
	//
	// If RetryPolicy is nil, failed attempts are never retried.
	RetryPolicy *retry.Configuration
	// TimeoutPolicy specifies how to set timeouts on individual request
	// attempts. A positive Plan.Timeout always takes precedence.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Sleeper waits between a failed attempt and its retry.
	//
	// If Sleeper is nil, TimerSleeper is used.
	Sleeper Sleeper
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives a debug entry for every attempt and wait, and a
	// warning for every execution which exhausts its retries.
	//
	// If Logger is nil, nothing is logged.
	Logger *zerolog.Logger
	// BaseURL, if non-nil, is the URL against which relative plan URLs
	// are resolved.
	BaseURL *url.URL
	// Header contains default header fields added to every plan which
	// does not already set them. Once the client is in use, change it
	// only through AddHeaders.
	Header http.Header

	mu   sync.RWMutex
	life lifecycle
}

// Do executes an HTTP request plan using the client-level retry policy
// and returns the results. It is equivalent to
// c.Execute(p, c.RetryPolicy).
//
// For simple use cases, the Get, Head, Post, Put, Patch, Delete, and
// PostForm methods may prove easier to use than Do.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	return c.Execute(p, c.RetryPolicy)
}

// DoWithOptions executes an HTTP request plan using a request-level
// retry override, if opts is non-nil, or the client-level retry policy
// otherwise. See retry.Resolve for how the override is resolved.
//
// If opts is invalid, the plan is not executed and the returned
// Execution is nil.
func (c *Client) DoWithOptions(p *request.Plan, opts *retry.Options) (*request.Execution, error) {
	cfg, err := retry.Resolve(opts, c.RetryPolicy, p.Method)
	if err != nil {
		return nil, err
	}
	return c.Execute(p, cfg)
}

// Execute executes an HTTP request plan under the given retry
// configuration and returns the results, following the timeout policy
// set on Client and low-level policy set on the underlying HTTPDoer.
//
// Execute makes the first attempt at once. After every attempt which
// produces an unsuccessful response, cfg decides whether to retry; if
// it does, the response is discarded, the client waits for the
// interval cfg computes, and the identical request is sent again. A
// nil cfg never retries. The configuration is read once per execution
// and never modified, so the same cfg may serve any number of
// concurrent executions.
//
// The returned Execution is never nil. Its Response and Body are those
// of the final attempt, its Attempt field holds the total number of
// attempts, and its Waits field holds every interval waited. If the
// final response is unsuccessful and the execution stopped after
// retrying up to the retry limit, RetriesExhausted points to true;
// otherwise it is nil. Exhausting retries is not an error.
//
// An error is returned only if the final attempt produced no response
// (a transport error, which is never retried), if the response body
// could not be read, or if the plan context ended, either during an
// attempt or while waiting to retry. Any returned error is of type
// *url.Error and is also stored in the Execution's Err field. A
// cancelled execution never has RetriesExhausted set. Invalidating the
// client cancels its executions in the same way as the plan context.
func (c *Client) Execute(p *request.Plan, cfg *retry.Configuration) (*request.Execution, error) {
	p = c.prepare(p)
	e := &request.Execution{
		Plan:    p,
		ID:      uuid.NewString(),
		Attempt: 1,
	}

	doer := c.doer()
	timeoutPolicy := timeout.PlanOverride(c.timeoutPolicy())
	sleeper := c.sleeper()
	handlers := c.handlers()
	log := c.logger()
	ctx, release := c.bind(p.Context())
	defer release()

	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	var cancel context.CancelFunc
	for {
		cancel = sendAndReceive(ctx, p, e, doer, handlers, timeoutPolicy)
		logAttempt(log, e)
		if e.Err != nil || cfg == nil || !cfg.Decide(e) {
			break
		}

		discard(e.Response)
		cancel()
		cancel = nil
		e.Response = nil

		wait := cfg.WaitInterval(e.Attempt)
		e.Waits = append(e.Waits, wait)
		handlers.run(BeforeWait, e)
		log.Debug().
			Str("execution_id", e.ID).
			Int("attempt", e.Attempt).
			Dur("wait", wait).
			Msg("waiting to retry")
		if err := sleeper.Sleep(ctx, wait); err != nil {
			e.Err = urlErrorWrap(p, causeOf(ctx, err))
			break
		}
		e.Attempt++
	}

	if e.Err == nil {
		readBody(p, e, handlers)
	}
	if cancel != nil {
		cancel()
	}
	if e.Err == nil && cfg != nil && cfg.Exhausted(e) {
		exhausted := true
		e.RetriesExhausted = &exhausted
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, e)
	logEnd(log, e)
	return e, e.Err
}

// sendAndReceive makes one attempt. The returned function cancels the
// attempt context and must be called once the response body, if any,
// has been consumed.
func sendAndReceive(ctx context.Context, p *request.Plan, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy) context.CancelFunc {
	var cancel context.CancelFunc
	if d := timeoutPolicy.Timeout(e); d > 0 && d < math.MaxInt64 {
		ctx, cancel = context.WithTimeout(ctx, d)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	e.Request = p.ToRequest(ctx)
	handlers.run(BeforeAttempt, e)
	resp, err := doer.Do(e.Request)
	if err != nil {
		discard(resp)
		e.Response = nil
		if errors.Is(context.Cause(ctx), ErrInvalidated) {
			err = ErrInvalidated
		}
		e.Err = urlErrorWrap(p, err)
	} else {
		e.Response = resp
	}
	handlers.run(AfterAttempt, e)
	return cancel
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	handlers.run(BeforeReadBody, e)
	defer func() {
		_ = e.Response.Body.Close()
	}()
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Body = nil
		e.Err = urlErrorWrap(p, err)
	}
}

// discard drains and closes the body of a response which will not be
// returned, so the underlying connection can be reused.
func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func logAttempt(log *zerolog.Logger, e *request.Execution) {
	evt := log.Debug().
		Str("execution_id", e.ID).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL.String()).
		Int("attempt", e.Attempt)
	if e.Err != nil {
		evt.Err(e.Err).Msg("attempt failed")
		return
	}
	evt.Int("status", e.StatusCode()).Msg("attempt complete")
}

func logEnd(log *zerolog.Logger, e *request.Execution) {
	outcome := retry.Classify(e)
	var evt *zerolog.Event
	if outcome == retry.RetriesExhausted {
		evt = log.Warn()
	} else {
		evt = log.Debug()
	}
	evt = evt.
		Str("execution_id", e.ID).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL.String()).
		Int("attempts", e.Attempt).
		Str("outcome", outcome.String()).
		Dur("duration", e.Duration())
	if e.Err != nil {
		evt = evt.Err(e.Err).Str("transport", transport.Classify(e.Err).String())
	} else {
		evt = evt.Int("status", e.StatusCode())
	}
	evt.Msg("execution ended")
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
func (c *Client) Head(url string) (*request.Execution, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// Put issues a PUT to the specified URL, using the same policies
// followed by Do.
func (c *Client) Put(url, contentType string, body interface{}) (*request.Execution, error) {
	return Put(c, url, contentType, body)
}

// Patch issues a PATCH to the specified URL, using the same policies
// followed by Do.
func (c *Client) Patch(url, contentType string, body interface{}) (*request.Execution, error) {
	return Patch(c, url, contentType, body)
}

// Delete issues a DELETE to the specified URL, using the same policies
// followed by Do.
func (c *Client) Delete(url string) (*request.Execution, error) {
	return Delete(c, url)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
func (c *Client) PostForm(url string, data url.Values) (*request.Execution, error) {
	return PostForm(c, url, data)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}
	return c.HTTPDoer
}

func (c *Client) timeoutPolicy() timeout.Policy {
	if c.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}
	return c.TimeoutPolicy
}

func (c *Client) sleeper() Sleeper {
	if c.Sleeper == nil {
		return TimerSleeper
	}
	return c.Sleeper
}

func (c *Client) handlers() *HandlerGroup {
	if c.Handlers == nil {
		return &emptyHandlers
	}
	return c.Handlers
}

func (c *Client) logger() *zerolog.Logger {
	if c.Logger == nil {
		return &nopLogger
	}
	return c.Logger
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
