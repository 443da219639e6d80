// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// serverModes lists the flavours of test server each end-to-end test
// runs against.
var serverModes = []string{"http", "https", "http2"}

// A step is one scripted response of a scriptServer.
type step struct {
	Status int
	Pause  time.Duration
	Header http.Header
	Body   string
}

func statuses(codes ...int) []step {
	steps := make([]step, len(codes))
	for i, code := range codes {
		steps[i] = step{Status: code}
	}
	return steps
}

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// scriptServer answers the n-th request it receives with the n-th
// scripted step, repeating the last step once the script runs out, and
// records every request.
type scriptServer struct {
	*httptest.Server

	mu       sync.Mutex
	steps    []step
	requests []recordedRequest
}

func newScriptServer(t *testing.T, mode string, steps ...step) *scriptServer {
	t.Helper()
	if len(steps) == 0 {
		t.Fatal("script server needs at least one step")
	}
	s := &scriptServer{steps: steps}
	s.Server = httptest.NewUnstartedServer(http.HandlerFunc(s.serve))
	switch mode {
	case "http":
		s.Start()
	case "https":
		s.StartTLS()
	case "http2":
		s.EnableHTTP2 = true
		s.StartTLS()
	default:
		t.Fatalf("unknown server mode %q", mode)
	}
	t.Cleanup(s.Close)
	return s
}

func (s *scriptServer) serve(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()

	s.mu.Lock()
	n := len(s.requests)
	s.requests = append(s.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   b,
	})
	if n >= len(s.steps) {
		n = len(s.steps) - 1
	}
	st := s.steps[n]
	s.mu.Unlock()

	if st.Pause > 0 {
		select {
		case <-time.After(st.Pause):
		case <-r.Context().Done():
			return
		}
	}
	for k, vv := range st.Header {
		w.Header()[k] = vv
	}
	w.WriteHeader(st.Status)
	_, _ = io.WriteString(w, st.Body)
}

func (s *scriptServer) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func (s *scriptServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// recordingSleeper records every wait instead of sleeping. It honours
// cancellation like TimerSleeper.
type recordingSleeper struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.waits = append(r.waits, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *recordingSleeper) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.waits...)
}
