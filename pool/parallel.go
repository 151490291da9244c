// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pool

import "sync"

// ParallelFor partitions [begin,end) into WorkerCount contiguous
// sub-ranges, one per worker, or one per index when the range is
// shorter than that (remainder distributed one-to-a-range
// starting from the front), and invokes fn(i) for every i in the
// range. ParallelFor blocks until every sub-range has completed; there
// is no ordering guarantee between indices, and fn must be safe to
// call concurrently for distinct i (§4.4, §5).
func (p *Pool) ParallelFor(begin, end int, fn func(i int)) {
	if end <= begin {
		return
	}
	total := end - begin
	workers := p.workers
	if workers > total {
		workers = total
	}
	perWorker := total / workers
	remainder := total - perWorker*workers

	var wg sync.WaitGroup
	cursor := begin
	for i := 0; i < workers; i++ {
		lo := cursor
		hi := lo + perWorker
		if remainder > 0 {
			hi++
			remainder--
		}
		cursor = hi

		wg.Add(1)
		p.tasks <- func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}
	}
	wg.Wait()
}

// ParallelForEach applies fn to every element of items in parallel,
// using the same partitioning scheme as ParallelFor.
func ParallelForEach[T any](p *Pool, items []T, fn func(item *T)) {
	p.ParallelFor(0, len(items), func(i int) {
		fn(&items[i])
	})
}
