package processors

import (
	"api-commonizer/internal/pkg/api"
)

// Declaration-kind commonizers. Each follows the same shape as TypeCommonizer:
// the first target's declaration becomes the representative, every later
// target is checked against it, and the result is a fresh common declaration.
// Container results (root, module, package, class) are shells; their members
// are commonized by child nodes, not inherited from the representative.

type RootCommonizer struct{}

func NewRootCommonizer() *RootCommonizer {
	return &RootCommonizer{}
}

func (c *RootCommonizer) Initialize(*api.Root) {}

func (c *RootCommonizer) CommonizeWith(*api.Root) bool {
	return true
}

func (c *RootCommonizer) Result() *api.Root {
	return &api.Root{Target: "common"}
}

type ModuleCommonizer struct {
	first *api.Module
}

func NewModuleCommonizer() *ModuleCommonizer {
	return &ModuleCommonizer{}
}

func (c *ModuleCommonizer) Initialize(first *api.Module) {
	c.first = first
}

func (c *ModuleCommonizer) CommonizeWith(next *api.Module) bool {
	return next.Name == c.first.Name
}

func (c *ModuleCommonizer) Result() *api.Module {
	return &api.Module{Name: c.first.Name}
}

type PackageCommonizer struct {
	first *api.Package
}

func NewPackageCommonizer() *PackageCommonizer {
	return &PackageCommonizer{}
}

func (c *PackageCommonizer) Initialize(first *api.Package) {
	c.first = first
}

func (c *PackageCommonizer) CommonizeWith(next *api.Package) bool {
	return next.Name == c.first.Name
}

func (c *PackageCommonizer) Result() *api.Package {
	return &api.Package{Name: c.first.Name}
}

type PropertyCommonizer struct {
	registry *ClassifierRegistry
	first    *api.Property
}

func NewPropertyCommonizer(registry *ClassifierRegistry) *PropertyCommonizer {
	return &PropertyCommonizer{registry: registry}
}

func (c *PropertyCommonizer) Initialize(first *api.Property) {
	c.first = first
}

func (c *PropertyCommonizer) CommonizeWith(next *api.Property) bool {
	return next.Name == c.first.Name &&
		next.IsVar == c.first.IsVar &&
		TypesEqual(c.registry, c.first.Type, next.Type)
}

func (c *PropertyCommonizer) Result() *api.Property {
	return &api.Property{Name: c.first.Name, IsVar: c.first.IsVar, Type: c.first.Type}
}

type FunctionCommonizer struct {
	registry *ClassifierRegistry
	first    *api.Function
}

func NewFunctionCommonizer(registry *ClassifierRegistry) *FunctionCommonizer {
	return &FunctionCommonizer{registry: registry}
}

func (c *FunctionCommonizer) Initialize(first *api.Function) {
	c.first = first
}

func (c *FunctionCommonizer) CommonizeWith(next *api.Function) bool {
	return next.Name == c.first.Name &&
		TypeParameterListsCompatible(c.registry, c.first.TypeParameters, next.TypeParameters) &&
		parameterListsEqual(c.registry, c.first.Parameters, next.Parameters) &&
		TypesEqual(c.registry, c.first.ReturnType, next.ReturnType)
}

func (c *FunctionCommonizer) Result() *api.Function {
	return &api.Function{
		Name:           c.first.Name,
		TypeParameters: c.first.TypeParameters,
		Parameters:     c.first.Parameters,
		ReturnType:     c.first.ReturnType,
	}
}

type ClassCommonizer struct {
	registry *ClassifierRegistry
	first    *api.Class
}

func NewClassCommonizer(registry *ClassifierRegistry) *ClassCommonizer {
	return &ClassCommonizer{registry: registry}
}

func (c *ClassCommonizer) Initialize(first *api.Class) {
	c.first = first
}

func (c *ClassCommonizer) CommonizeWith(next *api.Class) bool {
	if next.Name != c.first.Name ||
		next.Kind != c.first.Kind ||
		next.Modality != c.first.Modality {
		return false
	}
	if !TypeParameterListsCompatible(c.registry, c.first.TypeParameters, next.TypeParameters) {
		return false
	}
	if len(next.Supertypes) != len(c.first.Supertypes) {
		return false
	}
	for i := range c.first.Supertypes {
		if !TypesEqual(c.registry, c.first.Supertypes[i], next.Supertypes[i]) {
			return false
		}
	}
	return true
}

func (c *ClassCommonizer) Result() *api.Class {
	return &api.Class{
		Name:           c.first.Name,
		Kind:           c.first.Kind,
		Modality:       c.first.Modality,
		TypeParameters: c.first.TypeParameters,
		Supertypes:     c.first.Supertypes,
	}
}

type ConstructorCommonizer struct {
	registry *ClassifierRegistry
	first    *api.Constructor
}

func NewConstructorCommonizer(registry *ClassifierRegistry) *ConstructorCommonizer {
	return &ConstructorCommonizer{registry: registry}
}

func (c *ConstructorCommonizer) Initialize(first *api.Constructor) {
	c.first = first
}

func (c *ConstructorCommonizer) CommonizeWith(next *api.Constructor) bool {
	return parameterListsEqual(c.registry, c.first.Parameters, next.Parameters)
}

func (c *ConstructorCommonizer) Result() *api.Constructor {
	return &api.Constructor{Parameters: c.first.Parameters}
}

type TypeAliasCommonizer struct {
	registry *ClassifierRegistry
	first    *api.TypeAlias
}

func NewTypeAliasCommonizer(registry *ClassifierRegistry) *TypeAliasCommonizer {
	return &TypeAliasCommonizer{registry: registry}
}

func (c *TypeAliasCommonizer) Initialize(first *api.TypeAlias) {
	c.first = first
}

func (c *TypeAliasCommonizer) CommonizeWith(next *api.TypeAlias) bool {
	return next.Name == c.first.Name &&
		TypeParameterListsCompatible(c.registry, c.first.TypeParameters, next.TypeParameters) &&
		TypesEqual(c.registry, c.first.Underlying, next.Underlying)
}

func (c *TypeAliasCommonizer) Result() *api.TypeAlias {
	return &api.TypeAlias{
		Name:           c.first.Name,
		TypeParameters: c.first.TypeParameters,
		Underlying:     c.first.Underlying,
	}
}

// TypeParameterListsCompatible is the dedicated type-parameter check: the
// TYPE_PARAMETER branch of the equality algorithm relies on name equality
// alone and defers the structural part to this.
func TypeParameterListsCompatible(registry *ClassifierRegistry, a []*api.TypeParameter, b []*api.TypeParameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Variance != b[i].Variance {
			return false
		}
		if len(a[i].UpperBounds) != len(b[i].UpperBounds) {
			return false
		}
		for j := range a[i].UpperBounds {
			if !TypesEqual(registry, a[i].UpperBounds[j], b[i].UpperBounds[j]) {
				return false
			}
		}
	}
	return true
}

func parameterListsEqual(registry *ClassifierRegistry, a []*api.Parameter, b []*api.Parameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !TypesEqual(registry, a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}
