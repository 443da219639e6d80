// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package netclient

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/netkit/netclient/request"
)

func TestGet(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		expected := &request.Execution{}
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
			return p.Method == "GET" && p.URL.String() == "foo"
		})).Return(expected, nil).Once()
		e, err := Get(m, "foo")
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("error invalid URL", func(t *testing.T) {
		m := newMockDoer(t)
		e, err := Get(m, ":::")
		assert.Nil(t, e)
		assert.Error(t, err)
		m.AssertNotCalled(t, "Do", mock.Anything)
	})
}

func TestHead(t *testing.T) {
	expected := &request.Execution{}
	m := newMockDoer(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "HEAD" && p.URL.String() == "bar"
	})).Return(expected, nil).Once()
	e, err := Head(m, "bar")
	assert.Same(t, expected, e)
	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestBodyMethods(t *testing.T) {
	methods := []struct {
		name string
		f    func(Doer, string, string, interface{}) (*request.Execution, error)
	}{
		{"POST", Post},
		{"PUT", Put},
		{"PATCH", Patch},
	}
	for _, method := range methods {
		t.Run(method.name, func(t *testing.T) {
			t.Run("OK", func(t *testing.T) {
				expected := &request.Execution{}
				m := newMockDoer(t)
				m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
					return p.Method == method.name && p.URL.String() == "baz" &&
						p.Header.Get("Content-Type") == "ham" &&
						bytes.Equal(p.Body, []byte("eggs"))
				})).Return(expected, nil).Once()
				e, err := method.f(m, "baz", "ham", "eggs")
				assert.Same(t, expected, e)
				assert.NoError(t, err)
				m.AssertExpectations(t)
			})
			t.Run("no content type", func(t *testing.T) {
				m := newMockDoer(t)
				m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
					_, ok := p.Header["Content-Type"]
					return !ok
				})).Return(&request.Execution{}, nil).Once()
				_, err := method.f(m, "baz", "", nil)
				assert.NoError(t, err)
				m.AssertExpectations(t)
			})
			t.Run("error invalid URL", func(t *testing.T) {
				m := newMockDoer(t)
				e, err := method.f(m, ":::", "text/plain", []byte{'a', 'b', 'c'})
				assert.Nil(t, e)
				assert.Error(t, err)
				m.AssertNotCalled(t, "Do", mock.Anything)
			})
			t.Run("error invalid body", func(t *testing.T) {
				m := newMockDoer(t)
				e, err := method.f(m, "baz", "text/plain", 123)
				assert.Nil(t, e)
				assert.EqualError(t, err, "netclient/request: invalid type (for body use nil, "+
					"string, []byte, url.Values, io.Reader or io.ReadCloser)")
				m.AssertNotCalled(t, "Do", mock.Anything)
			})
		})
	}
}

func TestDelete(t *testing.T) {
	expected := &request.Execution{}
	m := newMockDoer(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "DELETE" && p.URL.String() == "widgets/1" && p.Body == nil
	})).Return(expected, nil).Once()
	e, err := Delete(m, "widgets/1")
	assert.Same(t, expected, e)
	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestPostForm(t *testing.T) {
	expected := &request.Execution{}
	m := newMockDoer(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "POST" && p.URL.String() == "poster%20boy" &&
			p.Header.Get("Content-Type") == "application/x-www-form-urlencoded" &&
			len(p.Body) == 0
	})).Return(expected, nil).Once()
	e, err := PostForm(m, "poster boy", url.Values{})
	assert.Same(t, expected, e)
	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestInflate(t *testing.T) {
	t.Run("Inflate", func(t *testing.T) {
		t.Run("nil doer", func(t *testing.T) {
			assert.PanicsWithValue(t, "netclient: nil doer", func() {
				Inflate(nil)
			})
		})
		t.Run("already an Executor", func(t *testing.T) {
			cl := &Client{}
			x := Inflate(cl)
			assert.Same(t, cl, x)
		})
		t.Run("not yet an Executor", func(t *testing.T) {
			m := newMockDoer(t)
			x := Inflate(m)
			require.IsType(t, inflated{}, x)
			assert.Same(t, m, x.(inflated).Doer)
		})
	})
	expected := &request.Execution{}
	t.Run("Do", func(t *testing.T) {
		p, err := request.NewPlan("PUT", "http://www.example.com/widgets/1", "foo")
		require.NoError(t, err)
		m := newMockDoer(t)
		m.On("Do", p).Return(expected, nil).Once()
		e, err := Inflate(m).Do(p)
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	simple := []struct {
		method string
		call   func(x Executor) (*request.Execution, error)
	}{
		{"GET", func(x Executor) (*request.Execution, error) { return x.Get("u") }},
		{"HEAD", func(x Executor) (*request.Execution, error) { return x.Head("u") }},
		{"DELETE", func(x Executor) (*request.Execution, error) { return x.Delete("u") }},
		{"POST", func(x Executor) (*request.Execution, error) { return x.Post("u", "t", "b") }},
		{"PUT", func(x Executor) (*request.Execution, error) { return x.Put("u", "t", "b") }},
		{"PATCH", func(x Executor) (*request.Execution, error) { return x.Patch("u", "t", "b") }},
	}
	for _, s := range simple {
		t.Run(s.method, func(t *testing.T) {
			m := newMockDoer(t)
			m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
				return p.Method == s.method && p.URL.String() == "u"
			})).Return(expected, nil).Once()
			e, err := s.call(Inflate(m))
			assert.Same(t, expected, e)
			assert.NoError(t, err)
			m.AssertExpectations(t)
		})
	}
	t.Run("PostForm", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
			return p.Method == "POST" && p.URL.String() == "form" &&
				p.Header.Get("Content-Type") == "application/x-www-form-urlencoded" &&
				bytes.Equal(p.Body, []byte("x=y"))
		})).Return(expected, nil).Once()
		e, err := Inflate(m).PostForm("form", url.Values{"x": []string{"y"}})
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("CloseIdleConnections", func(t *testing.T) {
		t.Run("Doer does not implement IdleCloser", func(t *testing.T) {
			m := newMockDoer(t)
			Inflate(m).CloseIdleConnections()
			m.AssertNotCalled(t, "CloseIdleConnections")
		})
		t.Run("Doer implements IdleCloser", func(t *testing.T) {
			m := newMockDoerWithCloseIdleConnections(t)
			m.On("CloseIdleConnections").Once()
			Inflate(m).CloseIdleConnections()
			m.AssertExpectations(t)
		})
	})
}

type mockDoer struct {
	mock.Mock
}

func newMockDoer(t *testing.T) *mockDoer {
	m := &mockDoer{}
	m.Test(t)
	return m
}

func (m *mockDoer) Do(p *request.Plan) (*request.Execution, error) {
	args := m.Called(p)
	e := args.Get(0)
	err := args.Error(1)
	if e == nil {
		return nil, err
	}
	return e.(*request.Execution), err
}

type mockDoerWithCloseIdleConnections struct {
	mockDoer
}

func newMockDoerWithCloseIdleConnections(t *testing.T) *mockDoerWithCloseIdleConnections {
	m := &mockDoerWithCloseIdleConnections{}
	m.Test(t)
	return m
}

func (m *mockDoerWithCloseIdleConnections) CloseIdleConnections() {
	m.Called()
}
