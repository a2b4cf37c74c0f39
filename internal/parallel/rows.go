// Package parallel splits bitmap rows across goroutines.
//
// Work is partitioned into contiguous, non-overlapping row bands that
// together cover the whole bitmap. Each band is handed to exactly one
// goroutine, so callers that only write inside their band need no locking.
package parallel

import (
	"runtime"
	"sync"
)

// Band is a half-open range of rows [Start, End).
type Band struct {
	Start, End int
}

// Len returns the number of rows in the band.
func (b Band) Len() int {
	return b.End - b.Start
}

// Workers resolves a requested worker count: zero or negative selects
// GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Bands partitions [0, rows) into at most workers contiguous bands whose
// sizes differ by at most one row. It returns nil when rows <= 0.
func Bands(rows, workers int) []Band {
	if rows <= 0 {
		return nil
	}
	workers = min(Workers(workers), rows)

	bands := make([]Band, workers)
	base, extra := rows/workers, rows%workers
	start := 0
	for i := range bands {
		size := base
		if i < extra {
			size++
		}
		bands[i] = Band{Start: start, End: start + size}
		start += size
	}
	return bands
}

// Rows calls fn once per band of [0, rows) and waits for all calls to
// return. A single band runs on the calling goroutine.
func Rows(rows, workers int, fn func(b Band)) {
	bands := Bands(rows, workers)
	switch len(bands) {
	case 0:
		return
	case 1:
		fn(bands[0])
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(bands))
	for _, b := range bands {
		go func() {
			defer wg.Done()
			fn(b)
		}()
	}
	wg.Wait()
}
