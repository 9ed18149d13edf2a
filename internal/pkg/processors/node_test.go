package processors

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// staticCommonizer resolves every group to a fixed value, or fails.
type staticCommonizer struct {
	value string
	fail  bool
}

func (c *staticCommonizer) Initialize(string) {}

func (c *staticCommonizer) CommonizeWith(string) bool {
	return !c.fail
}

func (c *staticCommonizer) Result() string {
	return c.value
}

func Test_Node_MemoizesSingleEvaluation(t *testing.T) {
	var factoryCalls int
	node := NewNode(fullGroup("a", "b"), nil, func() Commonizer[string, string] {
		factoryCalls++
		return &staticCommonizer{value: "common"}
	})

	first, resolution := node.Common()
	if resolution != Resolved || first != "common" {
		t.Fatalf("first read: %v %v", first, resolution)
	}
	second, resolution := node.Common()
	if resolution != Resolved || second != first {
		t.Fatalf("second read differs: %v %v", second, resolution)
	}
	if factoryCalls != 1 {
		t.Fatalf("commonizer factory invoked %d times, want 1", factoryCalls)
	}
}

func Test_Node_AbsenceIsMemoizedToo(t *testing.T) {
	var factoryCalls int
	node := NewNode(fullGroup("a", "b"), nil, func() Commonizer[string, string] {
		factoryCalls++
		return &staticCommonizer{fail: true}
	})

	if _, resolution := node.Common(); resolution != Absent {
		t.Fatalf("want Absent, got %v", resolution)
	}
	if _, resolution := node.Common(); resolution != Absent {
		t.Fatalf("want Absent on re-read, got %v", resolution)
	}
	if factoryCalls != 1 {
		t.Fatalf("commonizer factory invoked %d times, want 1", factoryCalls)
	}
}

func Test_Node_ParentFailureShortCircuits(t *testing.T) {
	parentGroup := NewTargetGroup[string](2)
	parentGroup.Set(0, "a")
	parent := NewNode(parentGroup, nil, func() Commonizer[string, string] {
		return &staticCommonizer{value: "parent"}
	})

	childFactoryCalled := false
	child := NewNode(fullGroup("x", "y"), parent, func() Commonizer[string, string] {
		childFactoryCalled = true
		return &staticCommonizer{value: "child"}
	})

	if _, resolution := child.Common(); resolution != Absent {
		t.Fatalf("want Absent child, got %v", resolution)
	}
	if childFactoryCalled {
		t.Fatalf("child commonizer factory must not run under a failed parent")
	}
}

func Test_Node_ParentSuccessLetsChildEvaluate(t *testing.T) {
	parent := NewNode(fullGroup("a", "a"), nil, func() Commonizer[string, string] {
		return &staticCommonizer{value: "parent"}
	})
	child := NewNode(fullGroup("x", "y"), parent, func() Commonizer[string, string] {
		return &staticCommonizer{value: "child"}
	})

	value, resolution := child.Common()
	if resolution != Resolved || value != "child" {
		t.Fatalf("child read: %v %v", value, resolution)
	}
}

func Test_Node_ConcurrentReadersObserveOneEvaluation(t *testing.T) {
	var evaluations int32
	node := newNodeWith(fullGroup("a"), nil, func() (string, bool) {
		atomic.AddInt32(&evaluations, 1)
		time.Sleep(20 * time.Millisecond)
		return "common", true
	})

	const readers = 8
	results := make([]string, readers)
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			value, resolution := node.Common()
			if resolution != Resolved {
				t.Errorf("reader %d: resolution %v", i, resolution)
				return
			}
			results[i] = value
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(&evaluations); n != 1 {
		t.Fatalf("%d evaluations, want 1", n)
	}
	for i, r := range results {
		if r != "common" {
			t.Fatalf("reader %d observed `%s`", i, r)
		}
	}
}

func Test_Node_ReentrantReadReturnsRecursionMarker(t *testing.T) {
	var node *Node[string, string]
	var reentrant Resolution

	node = newNodeWith(fullGroup("a"), nil, func() (string, bool) {
		// re-enter our own evaluation, as a self-referential declaration does
		_, reentrant = node.Common()
		return "common", true
	})

	value, resolution := node.Common()
	if reentrant != InProgress {
		t.Fatalf("reentrant read resolution = %v, want InProgress", reentrant)
	}
	if resolution != Resolved || value != "common" {
		t.Fatalf("outer evaluation: %v %v", value, resolution)
	}

	// the marker must never be cached as the final result
	if again, resolution := node.Common(); resolution != Resolved || again != "common" {
		t.Fatalf("re-read after recursion: %v %v", again, resolution)
	}
}
