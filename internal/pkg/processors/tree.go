package processors

import (
	"api-commonizer/internal/pkg/api"
	"api-commonizer/internal/pkg/common"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// MemberKey approximates a member declaration's identity inside its package:
// the name alone for properties, name plus parameter-type rendering for
// functions and constructors.
type MemberKey string

type MergeTree struct {
	Registry *ClassifierRegistry
	Root     *RootNode
}

type RootNode struct {
	*Node[*api.Root, *api.Root]
	Modules map[api.ModuleName]*ModuleNode
}

type ModuleNode struct {
	*Node[*api.Module, *api.Module]
	Packages map[api.PackageName]*PackageNode
}

type PackageNode struct {
	*Node[*api.Package, *api.Package]
	Properties  map[MemberKey]*PropertyNode
	Functions   map[MemberKey]*FunctionNode
	Classes     map[api.FullName]*ClassNode
	TypeAliases map[api.FullName]*TypeAliasNode
}

type PropertyNode = Node[*api.Property, *api.Property]

type FunctionNode = Node[*api.Function, *api.Function]

type ClassNode struct {
	*Node[*api.Class, *api.Class]
	Constructors map[MemberKey]*ConstructorNode
}

type ConstructorNode = Node[*api.Constructor, *api.Constructor]

type TypeAliasNode = Node[*api.TypeAlias, *api.TypeAlias]

// BuildTree constructs the whole merge tree top-down. Construction registers
// every classifier before any common declaration is evaluated; evaluation
// happens lazily, bottom-up, on first read.
func BuildTree(targets []*api.Root) *MergeTree {
	registry := NewClassifierRegistry()
	size := len(targets)
	group := NewTargetGroup[*api.Root](size)
	for i, t := range targets {
		group.Set(i, t)
	}
	b := &treeBuilder{
		registry:    registry,
		size:        size,
		classifiers: map[api.FullName]func() Resolution{},
	}
	return &MergeTree{Registry: registry, Root: b.buildRoot(group)}
}

type treeBuilder struct {
	registry    *ClassifierRegistry
	size        int
	classifiers map[api.FullName]func() Resolution
}

func (b *treeBuilder) buildRoot(group *TargetGroup[*api.Root]) *RootNode {
	root := &RootNode{
		Node: NewNode(group, nil, func() Commonizer[*api.Root, *api.Root] {
			return NewRootCommonizer()
		}),
		Modules: map[api.ModuleName]*ModuleNode{},
	}

	modules := newGrouping[api.ModuleName, *api.Module](b.size)
	for i := 0; i < b.size; i++ {
		target, ok := group.Get(i)
		if !ok {
			continue
		}
		for _, m := range target.Modules {
			modules.add(i, m.Name, m)
		}
	}
	for _, name := range modules.sortedKeys() {
		root.Modules[name] = b.buildModule(modules.groups[name], root.Node)
	}
	return root
}

func (b *treeBuilder) buildModule(group *TargetGroup[*api.Module], parent parentHandle) *ModuleNode {
	module := &ModuleNode{
		Node: NewNode(group, parent, func() Commonizer[*api.Module, *api.Module] {
			return NewModuleCommonizer()
		}),
		Packages: map[api.PackageName]*PackageNode{},
	}

	packages := newGrouping[api.PackageName, *api.Package](b.size)
	for i := 0; i < b.size; i++ {
		m, ok := group.Get(i)
		if !ok {
			continue
		}
		for _, p := range m.Packages {
			packages.add(i, p.Name, p)
		}
	}
	for _, name := range packages.sortedKeys() {
		module.Packages[name] = b.buildPackage(packages.groups[name], module.Node)
	}
	return module
}

func (b *treeBuilder) buildPackage(group *TargetGroup[*api.Package], parent parentHandle) *PackageNode {
	pkg := &PackageNode{
		Node: NewNode(group, parent, func() Commonizer[*api.Package, *api.Package] {
			return NewPackageCommonizer()
		}),
		Properties:  map[MemberKey]*PropertyNode{},
		Functions:   map[MemberKey]*FunctionNode{},
		Classes:     map[api.FullName]*ClassNode{},
		TypeAliases: map[api.FullName]*TypeAliasNode{},
	}

	properties := newGrouping[MemberKey, *api.Property](b.size)
	functions := newGrouping[MemberKey, *api.Function](b.size)
	classes := newGrouping[api.FullName, *api.Class](b.size)
	aliases := newGrouping[api.FullName, *api.TypeAlias](b.size)
	for i := 0; i < b.size; i++ {
		p, ok := group.Get(i)
		if !ok {
			continue
		}
		for _, x := range p.Properties {
			properties.add(i, MemberKey(x.Name), x)
		}
		for _, x := range p.Functions {
			functions.add(i, functionKey(x), x)
		}
		for _, x := range p.Classes {
			classes.add(i, x.Name, x)
		}
		for _, x := range p.TypeAliases {
			aliases.add(i, x.Name, x)
		}
	}

	for _, key := range properties.sortedKeys() {
		g := properties.groups[key]
		pkg.Properties[key] = NewNode(g, pkg.Node, func() Commonizer[*api.Property, *api.Property] {
			return NewPropertyCommonizer(b.registry)
		})
	}
	for _, key := range functions.sortedKeys() {
		g := functions.groups[key]
		pkg.Functions[key] = NewNode(g, pkg.Node, func() Commonizer[*api.Function, *api.Function] {
			return NewFunctionCommonizer(b.registry)
		})
	}
	for _, name := range classes.sortedKeys() {
		pkg.Classes[name] = b.buildClass(name, classes.groups[name], pkg.Node)
	}
	for _, name := range aliases.sortedKeys() {
		pkg.TypeAliases[name] = b.buildTypeAlias(name, aliases.groups[name], pkg.Node)
	}
	return pkg
}

// buildClass registers the class name before the node's lazy cell can be
// read, so sibling equality checks see the classifier while this node's
// commonization is still pending.
func (b *treeBuilder) buildClass(name api.FullName, group *TargetGroup[*api.Class], parent parentHandle) *ClassNode {
	b.registry.RegisterClass(name)

	node := newNodeWith(group, parent, func() (*api.Class, bool) {
		commonized, ok := Reduce(group, NewClassCommonizer(b.registry))
		if !ok {
			return nil, false
		}
		// Supertypes whose own classifier node failed to commonize are
		// dropped from the common declaration. A supertype still being
		// evaluated reports the recursion marker and is kept; that happens
		// when a class's supertype arguments refer back to the class itself.
		commonized.Supertypes = common.MapIf(func(t api.Type) (api.Type, bool) {
			return t, b.supertypeSurvives(t)
		}, commonized.Supertypes)
		return commonized, true
	})

	class := &ClassNode{Node: node, Constructors: map[MemberKey]*ConstructorNode{}}
	b.classifiers[name] = func() Resolution {
		_, resolution := node.Common()
		return resolution
	}

	constructors := newGrouping[MemberKey, *api.Constructor](b.size)
	for i := 0; i < b.size; i++ {
		c, ok := group.Get(i)
		if !ok {
			continue
		}
		for _, x := range c.Constructors {
			constructors.add(i, constructorKey(x), x)
		}
	}
	for _, key := range constructors.sortedKeys() {
		g := constructors.groups[key]
		class.Constructors[key] = NewNode(g, node, func() Commonizer[*api.Constructor, *api.Constructor] {
			return NewConstructorCommonizer(b.registry)
		})
	}
	return class
}

func (b *treeBuilder) buildTypeAlias(name api.FullName, group *TargetGroup[*api.TypeAlias], parent parentHandle) *TypeAliasNode {
	b.registry.RegisterTypeAlias(name)

	node := NewNode(group, parent, func() Commonizer[*api.TypeAlias, *api.TypeAlias] {
		return NewTypeAliasCommonizer(b.registry)
	})
	b.classifiers[name] = func() Resolution {
		_, resolution := node.Common()
		return resolution
	}
	return node
}

// supertypeSurvives walks every classifier mentioned by the supertype,
// including type arguments, and forces its node. A classifier that resolved
// absent poisons the supertype; one that reports the recursion marker is an
// evaluation already running further up the stack and is fine.
func (b *treeBuilder) supertypeSurvives(t api.Type) bool {
	switch x := t.(type) {
	case *api.SimpleType:
		if x.IsClassOrTypeAlias() {
			// classifiers from dependency libraries are not in this tree and
			// survive unconditionally
			if force, ok := b.classifiers[x.Name]; ok && force() == Absent {
				return false
			}
		}
		return !common.Any(func(a api.TypeArgument) bool {
			return !a.IsStar && !b.supertypeSurvives(a.Type)
		}, x.Arguments)
	case *api.FlexibleType:
		return b.supertypeSurvives(x.Lower) && b.supertypeSurvives(x.Upper)
	default:
		panic(common.SystemError{Message: "invalid type case"})
	}
}

func functionKey(f *api.Function) MemberKey {
	return MemberKey(fmt.Sprintf("%s(%s)", f.Name, renderParameterTypes(f.Parameters)))
}

func constructorKey(c *api.Constructor) MemberKey {
	return MemberKey(fmt.Sprintf("constructor(%s)", renderParameterTypes(c.Parameters)))
}

func renderParameterTypes(params []*api.Parameter) string {
	return strings.Join(common.Map(func(p *api.Parameter) string {
		return p.Type.String()
	}, params), ", ")
}

type grouping[K ~string, T any] struct {
	size   int
	keys   []K
	groups map[K]*TargetGroup[T]
}

func newGrouping[K ~string, T any](size int) *grouping[K, T] {
	return &grouping[K, T]{size: size, groups: map[K]*TargetGroup[T]{}}
}

func (g *grouping[K, T]) add(index int, key K, declaration T) {
	target, ok := g.groups[key]
	if !ok {
		target = NewTargetGroup[T](g.size)
		g.groups[key] = target
		g.keys = append(g.keys, key)
	}
	target.Set(index, declaration)
}

func (g *grouping[K, T]) sortedKeys() []K {
	keys := make([]K, len(g.keys))
	copy(keys, g.keys)
	slices.Sort(keys)
	return keys
}
