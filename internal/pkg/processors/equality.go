package processors

import (
	"api-commonizer/internal/pkg/api"
	"api-commonizer/internal/pkg/common"
	"strings"
)

// Classifiers under these namespaces are present on every platform and are
// always considered mergeable, registered or not.
var standardNamespaces = []api.PackageName{"std", "stdx"}

// TypesEqual reports whether two platform types denote the same type for
// merging purposes. It is a one-shot compatibility test, not a general
// equality relation; it never writes to the registry.
func TypesEqual(registry *ClassifierRegistry, a api.Type, b api.Type) bool {
	switch x := a.(type) {
	case *api.SimpleType:
		y, ok := b.(*api.SimpleType)
		if !ok {
			return false
		}
		return simpleTypesEqual(registry, x, y)
	case *api.FlexibleType:
		y, ok := b.(*api.FlexibleType)
		if !ok {
			return false
		}
		return simpleTypesEqual(registry, x.Lower, y.Lower) &&
			simpleTypesEqual(registry, x.Upper, y.Upper)
	default:
		panic(common.SystemError{Message: "invalid type case"})
	}
}

func simpleTypesEqual(registry *ClassifierRegistry, a *api.SimpleType, b *api.SimpleType) bool {
	if a == b {
		return true
	}
	if len(a.Arguments) != len(b.Arguments) ||
		a.MarkedNullable != b.MarkedNullable ||
		a.DefinitelyNotNull != b.DefinitelyNotNull ||
		a.Name != b.Name {
		return false
	}
	if !canBeCommonized(registry, a, b) {
		return false
	}
	for i := range a.Arguments {
		if !argumentsEqual(registry, a.Arguments[i], b.Arguments[i]) {
			return false
		}
	}
	return true
}

func canBeCommonized(registry *ClassifierRegistry, a *api.SimpleType, b *api.SimpleType) bool {
	if a.IsClassOrTypeAlias() && b.IsClassOrTypeAlias() && underStandardNamespace(a.Name) {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case api.KindClass:
		return registry.IsClassRegistered(a.Name)
	case api.KindTypeAlias:
		return registry.IsTypeAliasRegistered(a.Name)
	case api.KindTypeParameter:
		// name equality is checked by the caller; deeper compatibility is the
		// type-parameter checker's job
		return true
	default:
		panic(common.SystemError{Message: "invalid type kind"})
	}
}

func underStandardNamespace(name api.FullName) bool {
	return common.Any(func(ns api.PackageName) bool {
		return strings.HasPrefix(string(name), string(ns)+".")
	}, standardNamespaces)
}

func argumentsEqual(registry *ClassifierRegistry, a api.TypeArgument, b api.TypeArgument) bool {
	if a.IsStar != b.IsStar {
		return false
	}
	if a.IsStar {
		return true
	}
	return a.Variance == b.Variance && TypesEqual(registry, a.Type, b.Type)
}
