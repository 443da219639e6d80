// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "netclient/request: nil context"
)

// A Plan describes a logical HTTP request which can be replayed as many
// times as the retry policy requires.
//
// The field structure of Plan mirrors the client-side fields of
// http.Request, except that the body is a pre-buffered []byte so that
// every attempt sends exactly the same bytes.
//
// Like the http.Request structure, a Plan has a context which controls
// the overall execution and can be used to cancel it at any time,
// including while the client is waiting to retry.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the URL to access. A relative URL is resolved
	// against the client's base URL, if the client has one.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent. Client
	// default headers are added for any field not already present.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body
	// indicates no request body should be sent.
	Body []byte

	// Close stipulates whether to close the connection after each
	// attempt.
	Close bool

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host is sent.
	Host string

	// Timeout, if positive, overrides the client's timeout policy for
	// every attempt made while executing this plan.
	Timeout time.Duration

	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan given a method, URL, and
// optional body.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. If body is an io.Reader, it is
// read to the end and buffered into a []byte. If body is an
// io.ReadCloser, it is closed after buffering.
func NewPlanWithContext(ctx context.Context, method, url string, body interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("netclient/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// Context returns the plan's context. The returned context is always
// non-nil; it defaults to the background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// Prepare returns a copy of p ready for execution by a client with the
// given base URL and default headers.
//
// If p's URL is not absolute and base is non-nil, the copy's URL is
// resolved against base. Default headers are added to the copy's
// header for every field p does not already set. The receiver is never
// modified, so a single plan may be executed by several clients.
func (p *Plan) Prepare(base *urlpkg.URL, defaults http.Header) *Plan {
	p2 := new(Plan)
	*p2 = *p
	if p.URL != nil && !p.URL.IsAbs() && base != nil {
		p2.URL = base.ResolveReference(p.URL)
		p2.Host = p2.URL.Host
	}
	p2.Header = p.Header.Clone()
	if p2.Header == nil {
		p2.Header = make(http.Header)
	}
	for k, vv := range defaults {
		if _, ok := p2.Header[k]; !ok {
			p2.Header[k] = append([]string(nil), vv...)
		}
	}
	return p2
}

// SetBasicAuth sets the plan's Authorization header to use HTTP Basic
// Authentication with the provided username and password.
func (p *Plan) SetBasicAuth(username, password string) {
	p.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// SetBearerToken sets the plan's Authorization header to carry the
// given bearer token.
func (p *Plan) SetBearerToken(token string) {
	p.Header.Set("Authorization", "Bearer "+token)
}

// ToRequest creates an HTTP request for one attempt of the plan. The
// context of the new request is set to ctx, which may not be nil.
//
// Each call returns a request with a fresh body reader, so the result
// of one attempt never affects the next.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := (&http.Request{
		Method:     p.Method,
		URL:        p.URL,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     p.Header,
		Close:      p.Close,
		Host:       p.Host,
	}).WithContext(ctx)
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	return r
}

// basicAuth is lifted verbatim from net/http/client.go.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// validMethod reports whether method is an RFC 7230 token. The empty
// string never reaches here because it is interpreted as GET.
func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
