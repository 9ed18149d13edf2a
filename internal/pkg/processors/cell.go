package processors

import (
	"api-commonizer/internal/pkg/common"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

type cellState int

const (
	cellIdle cellState = iota
	cellEvaluating
	cellDone
)

// cell is a single-flight memo slot with three states: idle, evaluating and
// done. The first reader runs the computation; later readers from other
// goroutines block until it finishes and then see the cached result. A
// reentrant read from the evaluating goroutine never blocks; it reports
// recursion instead, and that sighting is never cached.
type cell[R any] struct {
	mu        sync.Mutex
	state     cellState
	evaluator uint64
	done      chan struct{}
	compute   func() (R, bool)
	value     R
	ok        bool
}

func newCell[R any](compute func() (R, bool)) *cell[R] {
	return &cell[R]{compute: compute}
}

// force returns (value, ok, recursion). ok is false for an absent result;
// recursion is true only for a reentrant read of an evaluation in progress.
func (c *cell[R]) force() (R, bool, bool) {
	c.mu.Lock()
	switch c.state {
	case cellDone:
		value, ok := c.value, c.ok
		c.mu.Unlock()
		return value, ok, false
	case cellEvaluating:
		if c.evaluator == goid() {
			c.mu.Unlock()
			var marker R
			return marker, false, true
		}
		done := c.done
		c.mu.Unlock()
		<-done
		c.mu.Lock()
		value, ok := c.value, c.ok
		c.mu.Unlock()
		return value, ok, false
	}

	c.state = cellEvaluating
	c.evaluator = goid()
	c.done = make(chan struct{})
	compute := c.compute
	c.mu.Unlock()

	value, ok := compute()

	c.mu.Lock()
	c.value, c.ok = value, ok
	c.state = cellDone
	c.compute = nil
	close(c.done)
	c.mu.Unlock()
	return value, ok, false
}

// goid parses the current goroutine's id from the runtime.Stack header
// ("goroutine N [...]"). Cheap enough here: it runs once per node evaluation
// and once per reentrant probe.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	end := strings.IndexByte(header, ' ')
	if end < 0 {
		panic(common.SystemError{Message: "unexpected goroutine stack header"})
	}
	id, err := strconv.ParseUint(header[:end], 10, 64)
	if err != nil {
		panic(common.SystemError{Message: "unexpected goroutine stack header"})
	}
	return id
}
