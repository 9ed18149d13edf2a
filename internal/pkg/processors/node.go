package processors

// Resolution is the outcome of reading a node's common declaration.
type Resolution int

const (
	// Resolved: the targets unified into a common declaration.
	Resolved Resolution = iota
	// Absent: the targets failed to unify, or the parent resolved absent.
	Absent
	// InProgress: recursion marker, seen only by a reentrant read of an
	// evaluation that has not finished yet. Normal during cyclic
	// declarations, never cached.
	InProgress
)

// parentHandle gives a child read access to its parent's resolved state.
type parentHandle interface {
	resolvedAbsent() bool
}

// Node pairs a target group with a lazily computed, memoized, possibly-absent
// common declaration.
type Node[T, R any] struct {
	group  *TargetGroup[T]
	common *cell[R]
}

// NewNode builds a node whose common declaration is reduced with a fresh
// commonizer from factory. If parent resolves absent the node resolves absent
// without the factory ever being invoked.
func NewNode[T, R any](group *TargetGroup[T], parent parentHandle, factory func() Commonizer[T, R]) *Node[T, R] {
	return newNodeWith(group, parent, func() (R, bool) {
		return Reduce(group, factory())
	})
}

func newNodeWith[T, R any](group *TargetGroup[T], parent parentHandle, compute func() (R, bool)) *Node[T, R] {
	n := &Node[T, R]{group: group}
	n.common = newCell(func() (R, bool) {
		if parent != nil && parent.resolvedAbsent() {
			var absent R
			return absent, false
		}
		return compute()
	})
	return n
}

func (n *Node[T, R]) Group() *TargetGroup[T] {
	return n.group
}

// Common forces the node's evaluation on first read and returns the memoized
// result afterwards.
func (n *Node[T, R]) Common() (R, Resolution) {
	value, ok, recursion := n.common.force()
	if recursion {
		var marker R
		return marker, InProgress
	}
	if !ok {
		var absent R
		return absent, Absent
	}
	return value, Resolved
}

func (n *Node[T, R]) resolvedAbsent() bool {
	_, ok, recursion := n.common.force()
	return !ok && !recursion
}
