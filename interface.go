// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"net/http"
	"net/url"

	"github.com/netkit/netclient/request"
)

// Doer executes a request plan under some retry policy and returns the
// final execution. *Client is the reference implementation; other
// implementations should honour the same contract: a non-nil error
// means no usable response, and the returned execution, when non-nil,
// describes every attempt made.
//
// Inflate turns any Doer into an Executor.
type Doer interface {
	Do(p *request.Plan) (*request.Execution, error)
}

// Getter issues a bodiless GET.
type Getter interface {
	Get(url string) (*request.Execution, error)
}

// Header issues a bodiless HEAD.
type Header interface {
	Head(url string) (*request.Execution, error)
}

// Poster issues a POST. The body may be anything request.BodyBytes
// accepts; an empty contentType leaves Content-Type unset.
type Poster interface {
	Post(url, contentType string, body interface{}) (*request.Execution, error)
}

// Putter issues a PUT, with the same body rules as Poster.
type Putter interface {
	Put(url, contentType string, body interface{}) (*request.Execution, error)
}

// Patcher issues a PATCH, with the same body rules as Poster.
type Patcher interface {
	Patch(url, contentType string, body interface{}) (*request.Execution, error)
}

// Deleter issues a bodiless DELETE.
type Deleter interface {
	Delete(url string) (*request.Execution, error)
}

// FormPoster issues a POST whose body is data, URL-encoded, with
// Content-Type application/x-www-form-urlencoded.
type FormPoster interface {
	PostForm(url string, data url.Values) (*request.Execution, error)
}

// IdleCloser releases keep-alive connections which are not in use.
// Implementations without connection pooling treat it as a no-op.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the full method set of *Client, minus its
// configuration-specific methods (DoWithOptions, Request).
type Executor interface {
	Doer
	Getter
	Header
	Poster
	Putter
	Patcher
	Deleter
	FormPoster
	IdleCloser
}

const formContentType = "application/x-www-form-urlencoded"

// Get sends a GET through d.
func Get(d Doer, url string) (*request.Execution, error) {
	return send(d, http.MethodGet, url, "", nil)
}

// Head sends a HEAD through d.
func Head(d Doer, url string) (*request.Execution, error) {
	return send(d, http.MethodHead, url, "", nil)
}

// Post sends a POST through d. The plan is built before d is called,
// so an invalid URL or body never reaches d.
func Post(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	return send(d, http.MethodPost, url, contentType, body)
}

// Put sends a PUT through d.
func Put(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	return send(d, http.MethodPut, url, contentType, body)
}

// Patch sends a PATCH through d.
func Patch(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	return send(d, http.MethodPatch, url, contentType, body)
}

// Delete sends a DELETE through d.
func Delete(d Doer, url string) (*request.Execution, error) {
	return send(d, http.MethodDelete, url, "", nil)
}

// PostForm sends data as a form POST through d.
func PostForm(d Doer, url string, data url.Values) (*request.Execution, error) {
	return send(d, http.MethodPost, url, formContentType, data)
}

func send(d Doer, method, url, contentType string, body interface{}) (*request.Execution, error) {
	p, err := request.NewPlan(method, url, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		p.Header.Set("Content-Type", contentType)
	}
	return d.Do(p)
}

// Inflate returns d as an Executor. If d already is one it is returned
// unchanged; otherwise the convenience methods are layered over d.Do.
// It panics if d is nil.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("netclient: nil doer")
	}
	if x, ok := d.(Executor); ok {
		return x
	}
	return inflated{d}
}

type inflated struct {
	Doer
}

func (i inflated) Get(url string) (*request.Execution, error) { return Get(i.Doer, url) }

func (i inflated) Head(url string) (*request.Execution, error) { return Head(i.Doer, url) }

func (i inflated) Delete(url string) (*request.Execution, error) { return Delete(i.Doer, url) }

func (i inflated) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(i.Doer, url, contentType, body)
}

func (i inflated) Put(url, contentType string, body interface{}) (*request.Execution, error) {
	return Put(i.Doer, url, contentType, body)
}

func (i inflated) Patch(url, contentType string, body interface{}) (*request.Execution, error) {
	return Patch(i.Doer, url, contentType, body)
}

func (i inflated) PostForm(url string, data url.Values) (*request.Execution, error) {
	return PostForm(i.Doer, url, data)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.Doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
