// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/netkit/netclient/config"
	"github.com/netkit/netclient/request"
	"github.com/netkit/netclient/retry"
	"github.com/netkit/netclient/timeout"
)

// New builds a Client from loaded configuration. A nil cfg is the same
// as config.Default().
//
// The client sends requests through its own http.Client, whose
// transport is limited to HTTPMaximumConnectionsPerHost connections per
// host and whose overall timeout is TimeoutIntervalForResource. The
// per-attempt timeout policy is TimeoutIntervalForRequest. If
// retryPolicyConfiguration is present it is resolved against the retry
// defaults; otherwise the client never retries. If a bearer token
// response header is configured, a BearerToken handler is installed.
//
// The returned client has no logger; set Logger to enable logging.
func New(cfg *config.ClientConfiguration) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Client{Header: cfg.Header()}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("netclient: invalid base URL: %w", err)
		}
		c.BaseURL = u
	}

	s := cfg.SessionConfiguration
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxConnsPerHost = s.HTTPMaximumConnectionsPerHost
	hc := &http.Client{
		Transport: tr,
		Timeout:   s.ResourceTimeout(),
	}
	if !s.FollowRedirects {
		hc.CheckRedirect = func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	c.HTTPDoer = hc
	c.TimeoutPolicy = timeout.Seconds(s.TimeoutIntervalForRequest)

	if cfg.RetryPolicyConfiguration != nil {
		rc, err := retry.NewConfiguration(*cfg.RetryPolicyConfiguration)
		if err != nil {
			return nil, err
		}
		c.RetryPolicy = rc
	}

	if h := cfg.RequestAdapterConfiguration.BearerAuthTokenResponseHeader; h != "" {
		c.Handlers = &HandlerGroup{}
		NewBearerToken(h).Install(c.Handlers)
	}

	return c, nil
}

// WithLogger sets the client's logger and returns the client.
func (c *Client) WithLogger(l zerolog.Logger) *Client {
	c.Logger = &l
	return c
}

// Request issues a request for endpoint, which is usually relative to
// the client's base URL, with optional per-request options. The
// options' headers, body and timeout are applied to the plan, and their
// retry override, if any, is resolved as by DoWithOptions.
func (c *Client) Request(ctx context.Context, method, endpoint string, opts *config.RequestOptions) (*request.Execution, error) {
	p, err := request.NewPlanWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if err = opts.Apply(p); err != nil {
		return nil, err
	}
	var override *retry.Options
	if opts != nil {
		override = opts.RetryPolicyConfiguration
	}
	return c.DoWithOptions(p, override)
}
