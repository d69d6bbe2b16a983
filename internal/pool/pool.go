// Package pool provides a bounded-concurrency ordered map over a slice.
package pool

import (
	"sync"
	"sync/atomic"
)

// Map applies fn to every item using at most max(1, concurrency)
// workers. Each worker pulls the next unclaimed index from a shared
// cursor, so results land in index-addressed slots and the output order
// always matches the input order regardless of completion order.
//
// onDone, when non-nil, is invoked after each item with the number of
// completed items and the total; invocations are serialized and the
// completed count increases by one each call. It is for progress
// reporting only, never control flow.
//
// There is no early exit: per-item failure policy belongs to fn's result
// type. Map never drops or reorders entries.
func Map[T, R any](items []T, concurrency int, fn func(i int, item T) R, onDone func(done, total int)) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}

	var cursor atomic.Int64
	var mu sync.Mutex
	done := 0

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(items) {
					return
				}
				results[i] = fn(i, items[i])
				if onDone != nil {
					mu.Lock()
					done++
					onDone(done, len(items))
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	return results
}
