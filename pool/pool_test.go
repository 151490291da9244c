// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pool

import (
	"sync/atomic"
	"testing"
)

func TestParallelForVisitsEveryIndex(t *testing.T) {
	p := New(4)
	defer p.Close()

	const n = 100000
	arr := make([]int, n)
	p.ParallelFor(0, n, func(i int) { arr[i] = i })
	for i := range arr {
		if arr[i] != i {
			t.Fatalf("arr[%d] = %d, want %d", i, arr[i], i)
		}
	}
}

func TestParallelForCounts(t *testing.T) {
	p := New(8)
	defer p.Close()

	var calls int64
	const n = 1000
	p.ParallelFor(0, n, func(i int) { atomic.AddInt64(&calls, 1) })
	if calls != n {
		t.Fatalf("fn invoked %d times, want %d", calls, n)
	}
}

func TestSubmitFutureWaits(t *testing.T) {
	p := New(2)
	defer p.Close()

	done := false
	f := p.Submit(func() { done = true })
	f.Wait()
	if !done {
		t.Fatal("Future.Wait returned before task ran")
	}
}

func TestParallelForEmptyRange(t *testing.T) {
	p := New(2)
	defer p.Close()

	called := false
	p.ParallelFor(5, 5, func(i int) { called = true })
	if called {
		t.Fatal("fn should not be called for an empty range")
	}
}
