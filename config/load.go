// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const delim = "."

// Format is the encoding of configuration data.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// DetectFormat returns the format implied by a file extension.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

func parser(format Format) (koanf.Parser, error) {
	switch format {
	case JSON:
		return json.Parser(), nil
	case YAML:
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"sessionConfiguration.followRedirects":               DefaultFollowRedirects,
		"sessionConfiguration.timeoutIntervalForRequest":     DefaultTimeoutIntervalForRequest,
		"sessionConfiguration.timeoutIntervalForResource":    DefaultTimeoutIntervalForResource,
		"sessionConfiguration.httpMaximumConnectionsPerHost": DefaultHTTPMaximumConnectionsPerHost,
	}
}

// Default returns the client configuration obtained from loading empty
// data: session defaults, no base URL, no headers and no retry policy.
func Default() *ClientConfiguration {
	cfg, err := FromMap(nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load parses client configuration data in the given format on top of
// the session defaults and validates the result. Empty data yields the
// defaults.
func Load(data []byte, format Format) (*ClientConfiguration, error) {
	p, err := parser(format)
	if err != nil {
		return nil, err
	}
	k, err := withDefaults()
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err = k.Load(rawbytes.Provider(data), p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	}
	return clientConfiguration(k)
}

// LoadFile reads client configuration from a JSON or YAML file, chosen
// by the file extension.
func LoadFile(path string) (*ClientConfiguration, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	p, err := parser(format)
	if err != nil {
		return nil, err
	}
	k, err := withDefaults()
	if err != nil {
		return nil, err
	}
	if err = k.Load(file.Provider(path), p); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return clientConfiguration(k)
}

// FromMap builds client configuration from an already decoded map, as
// produced by a JSON or YAML decoder. Keys may be nested maps or
// dot-separated paths.
func FromMap(m map[string]interface{}) (*ClientConfiguration, error) {
	k, err := withDefaults()
	if err != nil {
		return nil, err
	}
	if len(m) > 0 {
		if err = k.Load(confmap.Provider(m, delim), nil); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	}
	return clientConfiguration(k)
}

// LoadRequestOptions parses per-request options. Request options have
// no defaults: absent fields keep their zero value.
func LoadRequestOptions(data []byte, format Format) (*RequestOptions, error) {
	p, err := parser(format)
	if err != nil {
		return nil, err
	}
	k := koanf.New(delim)
	if len(data) > 0 {
		if err = k.Load(rawbytes.Provider(data), p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	}
	var opts RequestOptions
	if err = unmarshal(k, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

func withDefaults() (*koanf.Koanf, error) {
	k := koanf.New(delim)
	if err := k.Load(confmap.Provider(defaults(), delim), nil); err != nil {
		return nil, fmt.Errorf("%w: defaults: %w", ErrParse, err)
	}
	return k, nil
}

func clientConfiguration(k *koanf.Koanf) (*ClientConfiguration, error) {
	var cfg ClientConfiguration
	if err := unmarshal(k, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func unmarshal(k *koanf.Koanf, target interface{}) error {
	if err := k.UnmarshalWithConf("", target, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
