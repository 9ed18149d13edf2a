package processors

import (
	"api-commonizer/internal/pkg/api"
)

// TargetGroup holds one slot per target platform, each either a per-target
// declaration or absent (the platform lacks this declaration). Groups are
// populated once, before any derived value is read.
type TargetGroup[T any] struct {
	slots   []T
	present []bool
}

func NewTargetGroup[T any](size int) *TargetGroup[T] {
	return &TargetGroup[T]{
		slots:   make([]T, size),
		present: make([]bool, size),
	}
}

func (g *TargetGroup[T]) Size() int {
	return len(g.slots)
}

func (g *TargetGroup[T]) Set(index int, declaration T) {
	g.slots[index] = declaration
	g.present[index] = true
}

func (g *TargetGroup[T]) Get(index int) (T, bool) {
	return g.slots[index], g.present[index]
}

// Commonizer reduces a sequence of per-target declarations to one common
// declaration. Initialize is called exactly once with the first target's
// declaration; CommonizeWith once per subsequent target in index order, and
// not again after it returns false; Result is valid only if every call
// succeeded.
type Commonizer[T, R any] interface {
	Initialize(first T)
	CommonizeWith(next T) bool
	Result() R
}

// Reduce drives a commonizer over a target group. An absent slot or a failed
// CommonizeWith stops the reduction immediately; remaining targets are never
// visited.
func Reduce[T, R any](group *TargetGroup[T], commonizer Commonizer[T, R]) (R, bool) {
	for i := 0; i < group.Size(); i++ {
		declaration, ok := group.Get(i)
		if !ok {
			var absent R
			return absent, false
		}
		if i == 0 {
			commonizer.Initialize(declaration)
		} else if !commonizer.CommonizeWith(declaration) {
			var absent R
			return absent, false
		}
	}
	return commonizer.Result(), true
}

// TypeCommonizer keeps the first type as the running representative and checks
// every subsequent type for structural equality against it. The representative
// is never widened or altered.
type TypeCommonizer struct {
	registry       *ClassifierRegistry
	representative api.Type
}

func NewTypeCommonizer(registry *ClassifierRegistry) *TypeCommonizer {
	return &TypeCommonizer{registry: registry}
}

func (c *TypeCommonizer) Initialize(first api.Type) {
	c.representative = first
}

func (c *TypeCommonizer) CommonizeWith(next api.Type) bool {
	return TypesEqual(c.registry, c.representative, next)
}

func (c *TypeCommonizer) Result() api.Type {
	return c.representative
}
