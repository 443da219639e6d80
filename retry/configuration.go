// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/netkit/netclient/request"
)

// A Kind selects the wait interval algorithm of a retry policy.
type Kind string

const (
	// Linear waits a constant interval before every retry.
	Linear Kind = "linear"
	// Exponential multiplies the wait interval by a constant base
	// before every retry after the first.
	Exponential Kind = "exponential"
)

// Default values for every field of Options.
const (
	DefaultKind                    = Exponential
	DefaultRetryLimit              = 2
	DefaultRetryInterval           = 2000.0
	DefaultExponentialBackoffBase  = 2.0
	DefaultExponentialBackoffScale = 0.5
)

// DefaultStatusCodes returns the status codes retried when Options do
// not name any.
func DefaultStatusCodes() []int {
	return []int{http.StatusRequestTimeout, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}
}

// DefaultMethods returns the HTTP methods retried when Options do not
// name any.
func DefaultMethods() []string {
	return []string{http.MethodGet, http.MethodPatch, http.MethodPost, http.MethodPut, http.MethodDelete}
}

// ErrInvalidOptions is wrapped by every error NewConfiguration returns.
var ErrInvalidOptions = errors.New("netclient/retry: invalid options")

var validate = validator.New()

// Options is the partially specified form of a retry policy, as
// accepted from configuration files, client configuration and
// per-request overrides. A nil pointer or nil slice means "use the
// default".
//
// The koanf and json keys match the keys of the client configuration
// surface, so Options can be loaded directly by package config.
type Options struct {
	// Type selects the algorithm: "linear" or "exponential". Empty
	// means exponential.
	Type string `koanf:"type" json:"type,omitempty" validate:"omitempty,oneof=linear exponential"`
	// RetryLimit is the maximum number of retries after the first
	// attempt.
	RetryLimit *int `koanf:"retryLimit" json:"retryLimit,omitempty" validate:"omitempty,min=0"`
	// RetryInterval is the linear wait interval in milliseconds.
	RetryInterval *float64 `koanf:"retryInterval" json:"retryInterval,omitempty" validate:"omitempty,gt=0"`
	// ExponentialBackoffBase is the exponential multiplier.
	ExponentialBackoffBase *float64 `koanf:"exponentialBackoffBase" json:"exponentialBackoffBase,omitempty" validate:"omitempty,gt=0"`
	// ExponentialBackoffScale is the first exponential wait interval,
	// in seconds.
	ExponentialBackoffScale *float64 `koanf:"exponentialBackoffScale" json:"exponentialBackoffScale,omitempty" validate:"omitempty,gt=0"`
	// StatusCodes lists the retryable HTTP status codes.
	StatusCodes []int `koanf:"statusCodes" json:"statusCodes,omitempty" validate:"omitempty,dive,min=100,max=599"`
	// RetryMethods lists the retryable HTTP methods, in any case.
	RetryMethods []string `koanf:"retryMethods" json:"retryMethods,omitempty" validate:"omitempty,dive,required"`
}

// Int returns a pointer to v, for populating Options.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for populating Options.
func Float(v float64) *float64 { return &v }

// A Configuration is a fully resolved, immutable retry policy.
//
// Construct a Configuration with NewConfiguration or Default. A
// Configuration is safe for concurrent use by any number of executions;
// none of its methods modify it.
type Configuration struct {
	kind        Kind
	retryLimit  int
	interval    float64
	base        float64
	scale       float64
	statusCodes map[int]struct{}
	methods     map[string]struct{}

	decider DeciderFunc
	waiter  Waiter
}

// Default returns the configuration obtained from empty Options: an
// exponential policy with a retry limit of 2, base 2 and scale 0.5s,
// retrying 408, 500, 502, 503 and 504 for GET, PATCH, POST, PUT and
// DELETE.
func Default() *Configuration {
	c, err := NewConfiguration(Options{})
	if err != nil {
		panic(err)
	}
	return c
}

// NewConfiguration validates o and resolves it into a Configuration,
// filling every unset field with its default.
//
// The returned error wraps ErrInvalidOptions and, when a field failed
// validation, validator.ValidationErrors.
func NewConfiguration(o Options) (*Configuration, error) {
	if err := validate.Struct(o); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	c := &Configuration{
		kind:       DefaultKind,
		retryLimit: DefaultRetryLimit,
		interval:   DefaultRetryInterval,
		base:       DefaultExponentialBackoffBase,
		scale:      DefaultExponentialBackoffScale,
	}
	if o.Type != "" {
		c.kind = Kind(o.Type)
	}
	if o.RetryLimit != nil {
		c.retryLimit = *o.RetryLimit
	}
	if o.RetryInterval != nil {
		c.interval = *o.RetryInterval
	}
	if o.ExponentialBackoffBase != nil {
		c.base = *o.ExponentialBackoffBase
	}
	if o.ExponentialBackoffScale != nil {
		c.scale = *o.ExponentialBackoffScale
	}

	codes := o.StatusCodes
	if codes == nil {
		codes = DefaultStatusCodes()
	}
	c.statusCodes = make(map[int]struct{}, len(codes))
	for _, s := range codes {
		c.statusCodes[s] = struct{}{}
	}

	methods := o.RetryMethods
	if methods == nil {
		methods = DefaultMethods()
	}
	c.methods = make(map[string]struct{}, len(methods))
	for _, m := range methods {
		c.methods[strings.ToUpper(m)] = struct{}{}
	}

	c.decider = Unsuccessful.
		And(Times(c.retryLimit)).
		And(StatusCode(codes...)).
		And(Method(methods...))
	if c.kind == Linear {
		c.waiter = NewLinearWaiter(c.interval)
	} else {
		c.waiter = NewExponentialWaiter(c.base, c.scale)
	}

	return c, nil
}

// Resolve returns the configuration governing one execution of a plan
// with the given method.
//
// A request-level override takes precedence over the client-level
// configuration. An override that leaves retry methods unset applies
// only to the method of the request it was given for; an explicitly
// empty list retries no method, as in NewConfiguration. If there is no
// override, clientLevel is returned as is, and may be nil, meaning no
// retries.
func Resolve(requestLevel *Options, clientLevel *Configuration, method string) (*Configuration, error) {
	if requestLevel == nil {
		return clientLevel, nil
	}
	o := *requestLevel
	if o.RetryMethods == nil {
		if method == "" {
			method = http.MethodGet
		}
		o.RetryMethods = []string{method}
	}
	return NewConfiguration(o)
}

// Kind returns the wait interval algorithm.
func (c *Configuration) Kind() Kind { return c.kind }

// RetryLimit returns the maximum number of retries after the first
// attempt.
func (c *Configuration) RetryLimit() int { return c.retryLimit }

// RetryInterval returns the linear wait interval in milliseconds.
func (c *Configuration) RetryInterval() float64 { return c.interval }

// ExponentialBackoffBase returns the exponential multiplier.
func (c *Configuration) ExponentialBackoffBase() float64 { return c.base }

// ExponentialBackoffScale returns the exponential scale in seconds.
func (c *Configuration) ExponentialBackoffScale() float64 { return c.scale }

// StatusCodes returns the retryable status codes in ascending order.
// The result is a copy.
func (c *Configuration) StatusCodes() []int {
	ss := make([]int, 0, len(c.statusCodes))
	for s := range c.statusCodes {
		ss = append(ss, s)
	}
	sort.Ints(ss)
	return ss
}

// Methods returns the retryable methods, upper-cased, in ascending
// order. The result is a copy.
func (c *Configuration) Methods() []string {
	mm := make([]string, 0, len(c.methods))
	for m := range c.methods {
		mm = append(mm, m)
	}
	sort.Strings(mm)
	return mm
}

// Retryable reports whether an unsuccessful response with the given
// status code to a request with the given method is eligible for retry,
// ignoring the retry limit.
func (c *Configuration) Retryable(method string, statusCode int) bool {
	if method == "" {
		method = http.MethodGet
	}
	_, okCode := c.statusCodes[statusCode]
	_, okMethod := c.methods[strings.ToUpper(method)]
	return okCode && okMethod
}

// Decide reports whether the execution should be retried: the most
// recent response is unsuccessful, e.Attempt does not exceed the retry
// limit, and both the status code and the method are retryable.
func (c *Configuration) Decide(e *request.Execution) bool {
	return c.decider(e)
}

// WaitInterval returns how long to wait before the next attempt, given
// the one-based number of attempts made so far.
func (c *Configuration) WaitInterval(attempts int) time.Duration {
	return c.waiter.WaitInterval(attempts)
}

// Exhausted reports whether an execution which has stopped retrying
// must be marked as having exhausted its retries: at least one retry
// was made, the final response is unsuccessful, and the attempt count
// has reached the retry limit.
func (c *Configuration) Exhausted(e *request.Execution) bool {
	return e.Response != nil && !e.Successful() && e.Attempt > 1 && e.Attempt >= c.retryLimit
}

// Options returns fully populated Options equivalent to c.
func (c *Configuration) Options() Options {
	return Options{
		Type:                    string(c.kind),
		RetryLimit:              Int(c.retryLimit),
		RetryInterval:           Float(c.interval),
		ExponentialBackoffBase:  Float(c.base),
		ExponentialBackoffScale: Float(c.scale),
		StatusCodes:             c.StatusCodes(),
		RetryMethods:            c.Methods(),
	}
}
