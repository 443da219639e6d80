// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLinearWaiter(t *testing.T) {
	t.Run("invalid interval", func(t *testing.T) {
		assert.PanicsWithValue(t, "netclient/retry: interval must be positive", func() {
			NewLinearWaiter(0)
		})
		assert.Panics(t, func() { NewLinearWaiter(-1) })
		assert.Panics(t, func() { NewLinearWaiter(math.NaN()) })
	})
	t.Run("constant", func(t *testing.T) {
		w := NewLinearWaiter(2000)
		for attempts := 0; attempts < 10; attempts++ {
			assert.Equal(t, 2*time.Second, w.WaitInterval(attempts), "attempts=%d", attempts)
		}
		assert.Equal(t, 2*time.Second, w.WaitInterval(math.MaxInt32))
	})
	t.Run("rounding", func(t *testing.T) {
		assert.Equal(t, 63*time.Millisecond, NewLinearWaiter(62.5).WaitInterval(1))
		assert.Equal(t, 62*time.Millisecond, NewLinearWaiter(62.49).WaitInterval(1))
		assert.Equal(t, time.Millisecond, NewLinearWaiter(0.5).WaitInterval(1))
		assert.Equal(t, time.Duration(0), NewLinearWaiter(0.25).WaitInterval(1))
	})
}

func TestNewExponentialWaiter(t *testing.T) {
	t.Run("invalid base", func(t *testing.T) {
		assert.PanicsWithValue(t, "netclient/retry: base must be positive", func() {
			NewExponentialWaiter(0, 0.5)
		})
		assert.Panics(t, func() { NewExponentialWaiter(-2, 0.5) })
		assert.Panics(t, func() { NewExponentialWaiter(math.NaN(), 0.5) })
	})
	t.Run("invalid scale", func(t *testing.T) {
		assert.PanicsWithValue(t, "netclient/retry: scale must be positive", func() {
			NewExponentialWaiter(2, 0)
		})
		assert.Panics(t, func() { NewExponentialWaiter(2, -0.5) })
	})
	testCases := []struct {
		base  float64
		scale float64
		waits []time.Duration
	}{
		{2, 0.5, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond, 4000 * time.Millisecond}},
		{1.2, 0.4, []time.Duration{480 * time.Millisecond, 576 * time.Millisecond, 691 * time.Millisecond}},
		{1, 0.0625, []time.Duration{63 * time.Millisecond, 63 * time.Millisecond, 63 * time.Millisecond}},
		{0.5, 0.125, []time.Duration{63 * time.Millisecond, 31 * time.Millisecond, 16 * time.Millisecond}},
		{3, 1, []time.Duration{3 * time.Second, 9 * time.Second, 27 * time.Second}},
	}
	for _, testCase := range testCases {
		t.Run(fmt.Sprintf("base=%g,scale=%g", testCase.base, testCase.scale), func(t *testing.T) {
			w := NewExponentialWaiter(testCase.base, testCase.scale)
			for i, want := range testCase.waits {
				assert.Equal(t, want, w.WaitInterval(i+1), "attempts=%d", i+1)
			}
		})
	}
	t.Run("attempts below one", func(t *testing.T) {
		w := NewExponentialWaiter(2, 0.5)
		assert.Equal(t, time.Second, w.WaitInterval(0))
		assert.Equal(t, time.Second, w.WaitInterval(-5))
	})
	t.Run("clamped", func(t *testing.T) {
		max := time.Duration(math.MaxInt64/int64(time.Millisecond)) * time.Millisecond
		w := NewExponentialWaiter(10, 1)
		assert.Equal(t, max, w.WaitInterval(400))
		assert.Equal(t, max, w.WaitInterval(math.MaxInt32))
		assert.Equal(t, time.Duration(1e12)*time.Millisecond, w.WaitInterval(9))
		assert.Less(t, w.WaitInterval(9), max)
	})
	t.Run("concurrent", func(t *testing.T) {
		w := NewExponentialWaiter(2, 0.5)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for attempts := 1; attempts <= 3; attempts++ {
					assert.Equal(t, time.Duration(1<<(attempts-1))*time.Second, w.WaitInterval(attempts))
				}
			}()
		}
		wg.Wait()
	})
}

func TestMillis(t *testing.T) {
	testCases := []struct {
		in   float64
		want time.Duration
	}{
		{0, 0},
		{-3, 0},
		{0.49, 0},
		{0.5, time.Millisecond},
		{1.5, 2 * time.Millisecond},
		{2.5, 3 * time.Millisecond},
		{691.2, 691 * time.Millisecond},
		{math.Inf(1), time.Duration(maxMillis) * time.Millisecond},
		{math.NaN(), time.Duration(maxMillis) * time.Millisecond},
	}
	for _, testCase := range testCases {
		t.Run(fmt.Sprintf("%g", testCase.in), func(t *testing.T) {
			assert.Equal(t, testCase.want, millis(testCase.in))
		})
	}
}
