package escarp

import (
	"runtime"
	"sync"
)

// parChunks splits [0,n) across the available processors and blocks until
// every chunk completes. The step kernels use it for their embarrassingly
// parallel sweeps; drainage routing stays serial (topological order).
func parChunks(n int, fn func(i0, i1 int)) {
	nw := runtime.GOMAXPROCS(0)
	if nw > n {
		nw = n
	}
	if nw <= 1 {
		fn(0, n)
		return
	}
	var wg sync.WaitGroup
	sz := (n + nw - 1) / nw
	for i0 := 0; i0 < n; i0 += sz {
		i1 := i0 + sz
		if i1 > n {
			i1 = n
		}
		wg.Add(1)
		go func(i0, i1 int) {
			fn(i0, i1)
			wg.Done()
		}(i0, i1)
	}
	wg.Wait()
}
