// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"net/http"
	"sync/atomic"

	"github.com/netkit/netclient/request"
)

// A BearerToken is a Handler which captures a bearer token from a named
// response header and sends it as "Authorization: Bearer <token>" on
// every later attempt, including retries within the same execution.
//
// A plan which sets its own Authorization header keeps it. BearerToken
// is safe for concurrent use by multiple executions; the most recently
// received token wins.
type BearerToken struct {
	header string
	token  atomic.Pointer[string]
}

// NewBearerToken returns a BearerToken which reads tokens from the
// response header named responseHeader.
func NewBearerToken(responseHeader string) *BearerToken {
	return &BearerToken{header: responseHeader}
}

// Token returns the current token, or the empty string if none has
// been received yet.
func (b *BearerToken) Token() string {
	if t := b.token.Load(); t != nil {
		return *t
	}
	return ""
}

// SetToken replaces the current token.
func (b *BearerToken) SetToken(token string) {
	b.token.Store(&token)
}

// Install adds b to the BeforeAttempt and AfterAttempt chains of g.
func (b *BearerToken) Install(g *HandlerGroup) {
	g.PushBack(BeforeAttempt, b)
	g.PushBack(AfterAttempt, b)
}

// Handle implements Handler.
func (b *BearerToken) Handle(evt Event, e *request.Execution) {
	switch evt {
	case BeforeAttempt:
		token := b.Token()
		if token == "" || e.Request.Header.Get("Authorization") != "" {
			return
		}
		h := e.Request.Header.Clone()
		if h == nil {
			h = make(http.Header, 1)
		}
		h.Set("Authorization", "Bearer "+token)
		e.Request.Header = h
	case AfterAttempt:
		if e.Response == nil {
			return
		}
		if token := e.Response.Header.Get(b.header); token != "" {
			b.SetToken(token)
		}
	}
}
