// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netkit/netclient/config"
	"github.com/netkit/netclient/request"
	"github.com/netkit/netclient/retry"
)

func TestRegistry(t *testing.T) {
	t.Run("get or create", func(t *testing.T) {
		var r Registry
		a, created, err := r.GetOrCreate("HTTPS://Chat.Example.com", nil)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "https://chat.example.com/", a.BaseURL.String())

		b, created, err := r.GetOrCreate("https://chat.example.com/", &config.ClientConfiguration{BaseURL: "ignored"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, a, b)

		c, err := r.Get("https://chat.example.com:")
		require.NoError(t, err)
		assert.Same(t, a, c)
		assert.Equal(t, []string{"https://chat.example.com/"}, r.BaseURLs())
	})
	t.Run("create replaces", func(t *testing.T) {
		var r Registry
		a, err := r.Create("http://localhost:8065", nil)
		require.NoError(t, err)
		cfg := config.Default()
		cfg.RetryPolicyConfiguration = &retry.Options{Type: "linear"}
		b, err := r.Create("http://localhost:8065/", cfg)
		require.NoError(t, err)

		assert.NotSame(t, a, b)
		assert.False(t, a.Invalidated())
		assert.Equal(t, retry.Linear, b.RetryPolicy.Kind())
		assert.Empty(t, cfg.BaseURL, "configuration must not be modified")
		got, err := r.Get("http://localhost:8065")
		require.NoError(t, err)
		assert.Same(t, b, got)
	})
	t.Run("errors", func(t *testing.T) {
		var r Registry
		_, err := r.Get("https://unknown.example.com")
		assert.ErrorIs(t, err, ErrUnknownClient)
		assert.ErrorIs(t, r.Invalidate("https://unknown.example.com"), ErrUnknownClient)
		assert.ErrorIs(t, r.AddHeaders("https://unknown.example.com", nil), ErrUnknownClient)
		_, err = r.Headers("https://unknown.example.com")
		assert.ErrorIs(t, err, ErrUnknownClient)
		_, err = r.Request(context.Background(), "https://unknown.example.com", "GET", "me", nil)
		assert.ErrorIs(t, err, ErrUnknownClient)

		for _, bad := range []string{"chat.example.com", "/api/v4", "http://[::1"} {
			_, _, err = r.GetOrCreate(bad, nil)
			assert.Error(t, err, bad)
		}
		_, _, err = r.GetOrCreate("https://chat.example.com", &config.ClientConfiguration{
			RetryPolicyConfiguration: &retry.Options{Type: "random"},
		})
		assert.ErrorIs(t, err, retry.ErrInvalidOptions)
		assert.Empty(t, r.BaseURLs())
	})
	t.Run("request and headers", func(t *testing.T) {
		s := newScriptServer(t, "http", step{Status: 500}, step{Status: 200, Body: "pong"})
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
		r := Registry{Logger: &logger}
		cfg := config.Default()
		cfg.RetryPolicyConfiguration = &retry.Options{
			Type:          "linear",
			RetryLimit:    retry.Int(1),
			RetryInterval: retry.Float(5),
		}
		_, _, err := r.GetOrCreate(s.URL, cfg)
		require.NoError(t, err)

		require.NoError(t, r.AddHeaders(s.URL, map[string]string{"x-requested-with": "XMLHttpRequest"}))
		h, err := r.Headers(s.URL)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"X-Requested-With": "XMLHttpRequest"}, h)

		e, err := r.Request(context.Background(), s.URL, "GET", "api/v4/system/ping", nil)

		require.NoError(t, err)
		assert.Equal(t, 200, e.StatusCode())
		assert.Equal(t, "pong", string(e.Body))
		assert.Equal(t, []time.Duration{5 * time.Millisecond}, e.Waits)
		reqs := s.recorded()
		require.Len(t, reqs, 2)
		for _, req := range reqs {
			assert.Equal(t, "/api/v4/system/ping", req.Path)
			assert.Equal(t, "XMLHttpRequest", req.Header.Get("X-Requested-With"))
		}
		assert.Contains(t, buf.String(), `"base_url":"`+s.URL+`/"`)
	})
	t.Run("invalidate", func(t *testing.T) {
		s := newScriptServer(t, "http", statuses(503)...)
		var r Registry
		cl, _, err := r.GetOrCreate(s.URL, &config.ClientConfiguration{
			RetryPolicyConfiguration: &retry.Options{},
		})
		require.NoError(t, err)
		cl.Sleeper = &recordingSleeper{}
		cl.Handlers = &HandlerGroup{}
		cl.Handlers.PushBack(BeforeWait, HandlerFunc(func(_ Event, _ *request.Execution) {
			assert.NoError(t, r.Invalidate(s.URL))
		}))

		e, err := r.Request(context.Background(), s.URL, "GET", "", nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, e.Attempt)
		assert.Nil(t, e.RetriesExhausted)
		assert.True(t, cl.Invalidated())
		_, err = r.Get(s.URL)
		assert.ErrorIs(t, err, ErrUnknownClient)
		assert.Empty(t, r.BaseURLs())
	})
}
