// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
	"net/url"
)

const badBodyTypeMsg = "netclient/request: invalid type (for body use nil, " +
	"string, []byte, url.Values, io.Reader or io.ReadCloser)"

// BodyBytes converts a generic body parameter to a byte slice for use
// as a plan body.
//
// The body parameter may be nil, or it may be a string, []byte,
// url.Values, io.Reader, or io.ReadCloser:
//
// • nil yields a nil byte slice;
//
// • a string or []byte is converted directly;
//
// • url.Values is URL-encoded;
//
// • a reader is read to the end (and closed if it is an
// io.ReadCloser), and any read or close error is returned with a nil
// byte slice.
//
// Any other type is an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case url.Values:
		return []byte(x.Encode()), nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		err = x.Close()
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
