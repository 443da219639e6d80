// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/netkit/netclient/config"
	"github.com/netkit/netclient/request"
)

// ErrUnknownClient is returned by Registry methods given a base URL for
// which no client exists.
var ErrUnknownClient = errors.New("netclient: no client for base URL")

// A Registry holds one Client per base URL. Base URLs are compared
// after normalization: the scheme and host are lower-cased and an empty
// path becomes "/".
//
// The zero value is an empty registry ready to use. A Registry is safe
// for concurrent use.
type Registry struct {
	// Logger, if non-nil, is given to every client the registry
	// creates.
	Logger *zerolog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
}

// Create builds a client for baseURL from cfg, as New does, and
// registers it, replacing any client already registered for baseURL.
// The replaced client is not invalidated. cfg's own BaseURL is ignored
// and cfg is not modified; a nil cfg means config.Default().
func (r *Registry) Create(baseURL string, cfg *config.ClientConfiguration) (*Client, error) {
	key, err := registryKey(baseURL)
	if err != nil {
		return nil, err
	}
	c, err := r.build(key, cfg)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients == nil {
		r.clients = make(map[string]*Client)
	}
	r.clients[key] = c
	return c, nil
}

// GetOrCreate returns the client registered for baseURL, creating it
// from cfg if there is none. The boolean result reports whether a new
// client was created.
func (r *Registry) GetOrCreate(baseURL string, cfg *config.ClientConfiguration) (*Client, bool, error) {
	key, err := registryKey(baseURL)
	if err != nil {
		return nil, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[key]; ok {
		return c, false, nil
	}
	c, err := r.build(key, cfg)
	if err != nil {
		return nil, false, err
	}
	if r.clients == nil {
		r.clients = make(map[string]*Client)
	}
	r.clients[key] = c
	return c, true, nil
}

// Get returns the client registered for baseURL.
func (r *Registry) Get(baseURL string) (*Client, error) {
	key, err := registryKey(baseURL)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClient, key)
	}
	return c, nil
}

// Invalidate unregisters the client for baseURL and invalidates it,
// cancelling every execution it has in flight.
func (r *Registry) Invalidate(baseURL string) error {
	key, err := registryKey(baseURL)
	if err != nil {
		return err
	}
	r.mu.Lock()
	c, ok := r.clients[key]
	delete(r.clients, key)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClient, key)
	}
	c.Invalidate()
	if r.Logger != nil {
		r.Logger.Debug().Str("base_url", key).Msg("client invalidated")
	}
	return nil
}

// AddHeaders merges h into the default headers of the client for
// baseURL. See Client.AddHeaders.
func (r *Registry) AddHeaders(baseURL string, h map[string]string) error {
	c, err := r.Get(baseURL)
	if err != nil {
		return err
	}
	c.AddHeaders(h)
	return nil
}

// Headers returns a copy of the default headers of the client for
// baseURL.
func (r *Registry) Headers(baseURL string) (map[string]string, error) {
	c, err := r.Get(baseURL)
	if err != nil {
		return nil, err
	}
	return c.Headers(), nil
}

// Request issues a request through the client registered for baseURL.
// See Client.Request.
func (r *Registry) Request(ctx context.Context, baseURL, method, endpoint string, opts *config.RequestOptions) (*request.Execution, error) {
	c, err := r.Get(baseURL)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, method, endpoint, opts)
}

// BaseURLs returns the normalized base URLs of every registered client,
// in ascending order.
func (r *Registry) BaseURLs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.clients))
	for k := range r.clients {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry) build(key string, cfg *config.ClientConfiguration) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cp := *cfg
	cp.BaseURL = key
	c, err := New(&cp)
	if err != nil {
		return nil, err
	}
	if r.Logger != nil {
		c.WithLogger(r.Logger.With().Str("base_url", key).Logger())
	}
	return c, nil
}

func registryKey(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("netclient: invalid base URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("netclient: invalid base URL: %q is not absolute", baseURL)
	}
	u.Host = strings.TrimSuffix(strings.ToLower(u.Host), ":")
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
