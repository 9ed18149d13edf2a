package processors

import (
	"api-commonizer/internal/pkg/api"
	"testing"
)

func Test_PropertyCommonizer_MutabilityMismatch(t *testing.T) {
	registry := registryWithClass("pkg.Foo")
	c := NewPropertyCommonizer(registry)
	c.Initialize(&api.Property{Name: "x", IsVar: false, Type: classType("pkg.Foo")})

	if c.CommonizeWith(&api.Property{Name: "x", IsVar: true, Type: classType("pkg.Foo")}) {
		t.Fatalf("val/var mismatch accepted")
	}
}

func Test_FunctionCommonizer_Matches(t *testing.T) {
	registry := registryWithClass("pkg.Foo")
	makeFunction := func() *api.Function {
		return &api.Function{
			Name:       "run",
			Parameters: []*api.Parameter{{Name: "x", Type: classType("pkg.Foo")}},
			ReturnType: classType("std.Unit"),
		}
	}

	c := NewFunctionCommonizer(registry)
	c.Initialize(makeFunction())
	if !c.CommonizeWith(makeFunction()) {
		t.Fatalf("identical function rejected")
	}

	result := c.Result()
	if result.Name != "run" || len(result.Parameters) != 1 {
		t.Fatalf("unexpected result %v", result)
	}
}

func Test_FunctionCommonizer_ParameterNameMismatch(t *testing.T) {
	registry := registryWithClass("pkg.Foo")
	c := NewFunctionCommonizer(registry)
	c.Initialize(&api.Function{
		Name:       "run",
		Parameters: []*api.Parameter{{Name: "x", Type: classType("pkg.Foo")}},
		ReturnType: classType("std.Unit"),
	})

	if c.CommonizeWith(&api.Function{
		Name:       "run",
		Parameters: []*api.Parameter{{Name: "y", Type: classType("pkg.Foo")}},
		ReturnType: classType("std.Unit"),
	}) {
		t.Fatalf("parameter rename accepted")
	}
}

func Test_FunctionCommonizer_ReturnTypeMismatch(t *testing.T) {
	registry := registryWithClass("pkg.Foo")
	c := NewFunctionCommonizer(registry)
	c.Initialize(&api.Function{Name: "run", ReturnType: classType("std.Int")})

	if c.CommonizeWith(&api.Function{Name: "run", ReturnType: classType("std.String")}) {
		t.Fatalf("return type mismatch accepted")
	}
}

func Test_ClassCommonizer_KindMismatch(t *testing.T) {
	registry := NewClassifierRegistry()
	c := NewClassCommonizer(registry)
	c.Initialize(&api.Class{Name: "pkg.Foo", Kind: api.ClassKindClass})

	if c.CommonizeWith(&api.Class{Name: "pkg.Foo", Kind: api.ClassKindInterface}) {
		t.Fatalf("class/interface mismatch accepted")
	}
}

func Test_ClassCommonizer_ResultIsShell(t *testing.T) {
	registry := NewClassifierRegistry()
	c := NewClassCommonizer(registry)
	c.Initialize(&api.Class{
		Name:         "pkg.Foo",
		Constructors: []*api.Constructor{{}},
	})
	if !c.CommonizeWith(&api.Class{Name: "pkg.Foo"}) {
		t.Fatalf("identical class rejected")
	}

	// constructors are commonized by child nodes, never inherited
	if len(c.Result().Constructors) != 0 {
		t.Fatalf("result carries per-target constructors")
	}
}

func Test_ConstructorCommonizer_ParameterTypes(t *testing.T) {
	registry := registryWithClass("pkg.Foo")
	c := NewConstructorCommonizer(registry)
	c.Initialize(&api.Constructor{
		Parameters: []*api.Parameter{{Name: "x", Type: classType("pkg.Foo")}},
	})

	if !c.CommonizeWith(&api.Constructor{
		Parameters: []*api.Parameter{{Name: "x", Type: classType("pkg.Foo")}},
	}) {
		t.Fatalf("identical constructor rejected")
	}
	if c.CommonizeWith(&api.Constructor{Parameters: nil}) {
		t.Fatalf("arity mismatch accepted")
	}
}

func Test_TypeAliasCommonizer_UnderlyingMismatch(t *testing.T) {
	registry := registryWithClass("pkg.Foo", "pkg.Bar")
	c := NewTypeAliasCommonizer(registry)
	c.Initialize(&api.TypeAlias{Name: "pkg.A", Underlying: classType("pkg.Foo")})

	if c.CommonizeWith(&api.TypeAlias{Name: "pkg.A", Underlying: classType("pkg.Bar")}) {
		t.Fatalf("underlying type mismatch accepted")
	}
}

func Test_TypeParameterListsCompatible(t *testing.T) {
	registry := NewClassifierRegistry()

	a := []*api.TypeParameter{{Name: "T", Variance: api.Out, UpperBounds: []api.Type{classType("std.Any")}}}
	b := []*api.TypeParameter{{Name: "T", Variance: api.Out, UpperBounds: []api.Type{classType("std.Any")}}}
	if !TypeParameterListsCompatible(registry, a, b) {
		t.Fatalf("identical lists incompatible")
	}

	renamed := []*api.TypeParameter{{Name: "R", Variance: api.Out, UpperBounds: []api.Type{classType("std.Any")}}}
	if TypeParameterListsCompatible(registry, a, renamed) {
		t.Fatalf("renamed parameter accepted")
	}

	variance := []*api.TypeParameter{{Name: "T", Variance: api.In, UpperBounds: []api.Type{classType("std.Any")}}}
	if TypeParameterListsCompatible(registry, a, variance) {
		t.Fatalf("variance mismatch accepted")
	}

	bounds := []*api.TypeParameter{{Name: "T", Variance: api.Out}}
	if TypeParameterListsCompatible(registry, a, bounds) {
		t.Fatalf("bound count mismatch accepted")
	}
}

func Test_ModuleAndPackageCommonizers_NameOnly(t *testing.T) {
	m := NewModuleCommonizer()
	m.Initialize(&api.Module{Name: "lib", Packages: []*api.Package{{Name: "pkg"}}})
	if !m.CommonizeWith(&api.Module{Name: "lib"}) {
		t.Fatalf("same module name rejected")
	}
	if m.CommonizeWith(&api.Module{Name: "other"}) {
		t.Fatalf("different module name accepted")
	}
	if len(m.Result().Packages) != 0 {
		t.Fatalf("module result carries per-target packages")
	}

	p := NewPackageCommonizer()
	p.Initialize(&api.Package{Name: "pkg"})
	if !p.CommonizeWith(&api.Package{Name: "pkg"}) {
		t.Fatalf("same package name rejected")
	}
	if p.CommonizeWith(&api.Package{Name: "other"}) {
		t.Fatalf("different package name accepted")
	}
}
