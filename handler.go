// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"fmt"

	"github.com/netkit/netclient/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Client.
//
// Install handlers before the Client is shared between goroutines. A
// HandlerGroup is not safe for concurrent modification, but running its
// handlers is safe from any number of executions at once provided the
// handlers themselves are.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	g.init(evt, h)
	g.handlers[evt] = append(g.handlers[evt], h)
}

// PushFront adds an event handler to the front of the event handler
// chain for a specific event type, so it runs before every handler
// already installed for that event.
func (g *HandlerGroup) PushFront(evt Event, h Handler) {
	g.init(evt, h)
	g.handlers[evt] = append([]Handler{h}, g.handlers[evt]...)
}

// Len returns the number of handlers in the chain for evt.
func (g *HandlerGroup) Len(evt Event) int {
	if g == nil || int(evt) < 0 || int(evt) >= len(g.handlers) {
		return 0
	}
	return len(g.handlers[evt])
}

func (g *HandlerGroup) init(evt Event, h Handler) {
	if h == nil {
		panic("netclient: nil handler")
	}
	if int(evt) < 0 || int(evt) >= numEvents {
		panic(fmt.Sprintf("netclient: unknown event %d", int(evt)))
	}
	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	i := int(evt)
	if i < len(g.handlers) {
		for _, h := range g.handlers[i] {
			h.Handle(evt, e)
		}
	}
}

// A Handler handles the occurrence of an event during a request plan
// execution.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
