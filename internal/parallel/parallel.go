// Package parallel provides the fork-join fan-out used by the per-tick pool
// updates and the pixel conversion pass.
//
// Work is split into fixed-size blocks so block boundaries depend only on
// the input length, never on the number of cores. Each block is owned by
// exactly one goroutine for the duration of a call.
package parallel

import (
	"runtime"
	"sync"
)

// Blocks returns the number of blocks [0, n) splits into.
func Blocks(n, block int) int {
	if n <= 0 {
		return 0
	}
	if block <= 0 {
		return 1
	}
	return (n + block - 1) / block
}

// For executes fn over [0, n) in blocks of at most block elements. Blocks
// are strided across GOMAXPROCS workers and For returns once all of them
// are done. Small inputs run inline on the caller.
func For(n, block int, fn func(start, end int)) {
	blocks := Blocks(n, block)
	if blocks == 0 {
		return
	}
	if blocks == 1 {
		fn(0, n)
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > blocks {
		workers = blocks
	}
	if workers <= 1 {
		for b := 0; b < blocks; b++ {
			start, end := bounds(b, block, n)
			fn(start, end)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(worker int) {
			defer wg.Done()
			for b := worker; b < blocks; b += workers {
				start, end := bounds(b, block, n)
				fn(start, end)
			}
		}(w)
	}

	wg.Wait()
}

// Do runs every fn concurrently and waits for all of them.
func Do(fns ...func()) {
	switch len(fns) {
	case 0:
		return
	case 1:
		fns[0]()
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(fns) - 1)
	for _, fn := range fns[1:] {
		go func(f func()) {
			defer wg.Done()
			f()
		}(fn)
	}
	fns[0]()
	wg.Wait()
}

func bounds(b, block, n int) (int, int) {
	start := b * block
	end := start + block
	if end > n {
		end = n
	}
	return start, end
}
