// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netkit/netclient"
	"github.com/netkit/netclient/config"
	"github.com/netkit/netclient/internal/logging"
	"github.com/netkit/netclient/request"
	"github.com/netkit/netclient/retry"
)

type cmd struct {
	configPath string
	logLevel   string
	pretty     bool

	headers []string
	data    string
	timeout float64

	retryType     string
	retryLimit    int
	retryInterval float64
	backoffBase   float64
	backoffScale  float64
	statusCodes   []int
	retryMethods  []string

	showBody bool
}

func newRootCmd() *cobra.Command {
	c := &cmd{}

	root := &cobra.Command{
		Use:          "netclient",
		Short:        "Retrying HTTP client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "",
		"client configuration file (.json, .yaml or .yml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info",
		"log level: trace, debug, info, warn, error or disabled")
	root.PersistentFlags().BoolVar(&c.pretty, "pretty", false,
		"human readable log output instead of JSON")

	req := &cobra.Command{
		Use:   "request METHOD URL",
		Short: "Issue one request and report its retry outcome",
		Long: "Issue one request and report its retry outcome.\n\n" +
			"Retry flags build a request-level override of the configured\n" +
			"retry policy. Retry settings not given on the command line take\n" +
			"their defaults.",
		Args: cobra.ExactArgs(2),
		RunE: c.run,
	}
	f := req.Flags()
	f.SortFlags = false
	f.StringArrayVarP(&c.headers, "header", "H", nil, `request header as "Name: value"; repeatable`)
	f.StringVarP(&c.data, "data", "d", "", "request body")
	f.Float64Var(&c.timeout, "timeout", 0, "per-attempt timeout in milliseconds")
	f.StringVar(&c.retryType, "retry-type", "", "retry policy type: linear or exponential")
	f.IntVar(&c.retryLimit, "retry-limit", retry.DefaultRetryLimit, "maximum number of retries")
	f.Float64Var(&c.retryInterval, "retry-interval", retry.DefaultRetryInterval, "linear retry interval in milliseconds")
	f.Float64Var(&c.backoffBase, "backoff-base", retry.DefaultExponentialBackoffBase, "exponential backoff base")
	f.Float64Var(&c.backoffScale, "backoff-scale", retry.DefaultExponentialBackoffScale, "exponential backoff scale in seconds")
	f.IntSliceVar(&c.statusCodes, "status-codes", nil, "status codes to retry (default 408,500,502,503,504)")
	f.StringSliceVar(&c.retryMethods, "retry-methods", nil, "methods to retry (default: the request method)")
	f.BoolVar(&c.showBody, "body", false, "print the final response body")

	root.AddCommand(req)
	return root
}

func (c *cmd) run(cc *cobra.Command, args []string) error {
	logger := logging.New(c.logLevel, c.pretty, cc.ErrOrStderr())

	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(c.configPath); err != nil {
			return err
		}
	}
	cl, err := netclient.New(cfg)
	if err != nil {
		return err
	}
	cl.WithLogger(logger)
	defer cl.CloseIdleConnections()

	opts, err := c.requestOptions(cc)
	if err != nil {
		return err
	}

	e, err := cl.Request(cc.Context(), strings.ToUpper(args[0]), args[1], opts)
	if e != nil {
		report(cc.OutOrStdout(), e, c.showBody)
	}
	return err
}

func (c *cmd) requestOptions(cc *cobra.Command) (*config.RequestOptions, error) {
	opts := &config.RequestOptions{TimeoutInterval: c.timeout}
	if c.data != "" {
		opts.Body = c.data
	}
	if len(c.headers) > 0 {
		opts.Headers = make(map[string]string, len(c.headers))
		for _, h := range c.headers {
			name, value, ok := strings.Cut(h, ":")
			if !ok || strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("invalid header %q: want \"Name: value\"", h)
			}
			opts.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
	}

	f := cc.Flags()
	var o retry.Options
	changed := false
	if f.Changed("retry-type") {
		o.Type, changed = c.retryType, true
	}
	if f.Changed("retry-limit") {
		o.RetryLimit, changed = retry.Int(c.retryLimit), true
	}
	if f.Changed("retry-interval") {
		o.RetryInterval, changed = retry.Float(c.retryInterval), true
	}
	if f.Changed("backoff-base") {
		o.ExponentialBackoffBase, changed = retry.Float(c.backoffBase), true
	}
	if f.Changed("backoff-scale") {
		o.ExponentialBackoffScale, changed = retry.Float(c.backoffScale), true
	}
	if f.Changed("status-codes") {
		o.StatusCodes, changed = c.statusCodes, true
	}
	if f.Changed("retry-methods") {
		o.RetryMethods, changed = c.retryMethods, true
	}
	if changed {
		opts.RetryPolicyConfiguration = &o
	}
	return opts, nil
}

func report(w io.Writer, e *request.Execution, showBody bool) {
	if e.Response != nil {
		fmt.Fprintf(w, "status: %d\n", e.StatusCode())
	}
	fmt.Fprintf(w, "attempts: %d\n", e.Attempt)
	fmt.Fprintf(w, "waits: %v\n", e.Waits)
	if e.RetriesExhausted == nil {
		fmt.Fprintln(w, "retriesExhausted: absent")
	} else {
		fmt.Fprintf(w, "retriesExhausted: %t\n", *e.RetriesExhausted)
	}
	fmt.Fprintf(w, "outcome: %s\n", retry.Classify(e))
	if showBody && len(e.Body) > 0 {
		fmt.Fprintf(w, "\n%s\n", e.Body)
	}
}
