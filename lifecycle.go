// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/netkit/netclient/request"
)

// ErrInvalidated is the cause of every attempt and wait ended by
// Client.Invalidate. It matches context.Canceled under errors.Is.
var ErrInvalidated = fmt.Errorf("netclient: client invalidated: %w", context.Canceled)

type lifecycle struct {
	mu          sync.Mutex
	invalidated bool
	next        uint64
	active      map[uint64]context.CancelCauseFunc
}

// Invalidate ends the client's lifetime. In-flight executions stop at
// once, whether attempting or waiting to retry, and return an error
// matching ErrInvalidated; they never have RetriesExhausted set. Any
// execution started afterwards fails on its first attempt. Idle
// connections are closed.
//
// Invalidate is idempotent and safe to call concurrently with
// executions, including from a handler.
func (c *Client) Invalidate() {
	l := &c.life
	l.mu.Lock()
	l.invalidated = true
	active := l.active
	l.active = nil
	l.mu.Unlock()
	for _, cancel := range active {
		cancel(ErrInvalidated)
	}
	c.CloseIdleConnections()
}

// Invalidated reports whether Invalidate has been called.
func (c *Client) Invalidated() bool {
	c.life.mu.Lock()
	defer c.life.mu.Unlock()
	return c.life.invalidated
}

// bind derives the execution context from the plan context. It ends
// when the plan context ends or when the client is invalidated,
// whichever comes first. release must be called when the execution is
// over.
func (c *Client) bind(parent context.Context) (ctx context.Context, release func()) {
	ctx, cancel := context.WithCancelCause(parent)
	l := &c.life
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.invalidated {
		cancel(ErrInvalidated)
		return ctx, func() { cancel(nil) }
	}
	if l.active == nil {
		l.active = make(map[uint64]context.CancelCauseFunc)
	}
	id := l.next
	l.next++
	l.active[id] = cancel
	return ctx, func() {
		l.mu.Lock()
		delete(l.active, id)
		l.mu.Unlock()
		cancel(nil)
	}
}

// causeOf returns the cause of ctx ending if err is the context error,
// and err otherwise.
func causeOf(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		if cause := context.Cause(ctx); cause != nil {
			return cause
		}
	}
	return err
}

// AddHeaders merges h into the client's default headers, replacing any
// existing values for the same keys. It is safe to call while the
// client is executing plans; executions already started keep the
// headers they began with.
func (c *Client) AddHeaders(h map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Header == nil {
		c.Header = make(http.Header, len(h))
	}
	for k, v := range h {
		c.Header.Set(k, v)
	}
}

// Headers returns a copy of the client's default headers, one value
// per key.
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := make(map[string]string, len(c.Header))
	for k := range c.Header {
		m[k] = c.Header.Get(k)
	}
	return m
}

func (c *Client) prepare(p *request.Plan) *request.Plan {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return p.Prepare(c.BaseURL, c.Header)
}
