// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/netkit/netclient/request"
	"github.com/netkit/netclient/retry"
)

// Session defaults applied before any loaded configuration.
const (
	DefaultFollowRedirects               = true
	DefaultTimeoutIntervalForRequest     = 30.0
	DefaultTimeoutIntervalForResource    = 30.0
	DefaultHTTPMaximumConnectionsPerHost = 10
)

var (
	// ErrUnsupportedFormat is returned when a configuration format is
	// neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("netclient/config: unsupported format")
	// ErrLoad is returned when a configuration file cannot be read.
	ErrLoad = errors.New("netclient/config: failed to load configuration")
	// ErrParse is returned when configuration data cannot be parsed or
	// decoded into the configuration structure.
	ErrParse = errors.New("netclient/config: failed to parse configuration")
	// ErrInvalid is returned when decoded configuration fails
	// validation. The wrapped error is a validator.ValidationErrors.
	ErrInvalid = errors.New("netclient/config: invalid configuration")
)

var validate = validator.New()

// SessionConfiguration holds connection-level settings shared by every
// request a client makes.
type SessionConfiguration struct {
	// FollowRedirects controls whether redirect responses are followed.
	FollowRedirects bool `koanf:"followRedirects" json:"followRedirects"`
	// TimeoutIntervalForRequest is the per-attempt timeout, in seconds.
	// Zero means no per-attempt timeout.
	TimeoutIntervalForRequest float64 `koanf:"timeoutIntervalForRequest" json:"timeoutIntervalForRequest" validate:"gte=0"`
	// TimeoutIntervalForResource bounds each attempt including the
	// reading of its response body, in seconds. Zero means no limit.
	TimeoutIntervalForResource float64 `koanf:"timeoutIntervalForResource" json:"timeoutIntervalForResource" validate:"gte=0"`
	// HTTPMaximumConnectionsPerHost limits concurrent connections to a
	// single host. Zero means no limit.
	HTTPMaximumConnectionsPerHost int `koanf:"httpMaximumConnectionsPerHost" json:"httpMaximumConnectionsPerHost" validate:"gte=0"`
}

// ResourceTimeout returns TimeoutIntervalForResource as a duration.
func (s SessionConfiguration) ResourceTimeout() time.Duration {
	return seconds(s.TimeoutIntervalForResource)
}

// RequestAdapterConfiguration holds settings applied to every outgoing
// request.
type RequestAdapterConfiguration struct {
	// BearerAuthTokenResponseHeader names a response header carrying a
	// bearer token. When set, the client remembers the most recent token
	// it receives and sends it as "Authorization: Bearer <token>" on
	// every later attempt.
	BearerAuthTokenResponseHeader string `koanf:"bearerAuthTokenResponseHeader" json:"bearerAuthTokenResponseHeader,omitempty"`
}

// ClientConfiguration is the loaded configuration of one client.
type ClientConfiguration struct {
	BaseURL                     string                      `koanf:"baseUrl" json:"baseUrl,omitempty" validate:"omitempty,url"`
	Headers                     map[string]string           `koanf:"headers" json:"headers,omitempty" validate:"omitempty,dive,keys,required,endkeys"`
	SessionConfiguration        SessionConfiguration        `koanf:"sessionConfiguration" json:"sessionConfiguration"`
	RetryPolicyConfiguration    *retry.Options              `koanf:"retryPolicyConfiguration" json:"retryPolicyConfiguration,omitempty"`
	RequestAdapterConfiguration RequestAdapterConfiguration `koanf:"requestAdapterConfiguration" json:"requestAdapterConfiguration"`
}

// Header returns Headers as an http.Header with canonical keys.
func (c *ClientConfiguration) Header() http.Header {
	return header(c.Headers)
}

// RequestOptions are per-request settings. Every field is optional.
type RequestOptions struct {
	Headers map[string]string `koanf:"headers" json:"headers,omitempty" validate:"omitempty,dive,keys,required,endkeys"`
	// Body is either a string, sent as is, or a JSON object, sent
	// encoded as application/json.
	Body interface{} `koanf:"body" json:"body,omitempty"`
	// TimeoutInterval is the per-attempt timeout, in milliseconds.
	TimeoutInterval float64 `koanf:"timeoutInterval" json:"timeoutInterval,omitempty" validate:"gte=0"`
	// RetryPolicyConfiguration overrides the client-level retry policy
	// for this request only.
	RetryPolicyConfiguration *retry.Options `koanf:"retryPolicyConfiguration" json:"retryPolicyConfiguration,omitempty"`
}

// Apply copies headers, body and timeout from o into p. The retry
// override is not part of the plan; pass o.RetryPolicyConfiguration to
// the client separately.
func (o *RequestOptions) Apply(p *request.Plan) error {
	if o == nil {
		return nil
	}
	if p.Header == nil {
		p.Header = make(http.Header)
	}
	for k, v := range o.Headers {
		p.Header.Set(k, v)
	}
	switch b := o.Body.(type) {
	case nil:
	case string, []byte:
		body, err := request.BodyBytes(b)
		if err != nil {
			return err
		}
		p.Body = body
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("netclient/config: cannot encode body: %w", err)
		}
		p.Body = encoded
		if p.Header.Get("Content-Type") == "" {
			p.Header.Set("Content-Type", "application/json")
		}
	}
	if o.TimeoutInterval > 0 {
		p.Timeout = time.Duration(o.TimeoutInterval * float64(time.Millisecond))
	}
	return nil
}

func header(m map[string]string) http.Header {
	if len(m) == 0 {
		return nil
	}
	h := make(http.Header, len(m))
	for k, v := range m {
		h.Set(k, v)
	}
	return h
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
