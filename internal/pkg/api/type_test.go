package api

import (
	"testing"
)

func Test_SimpleType_String(t *testing.T) {
	cases := []struct {
		typ  Type
		want string
	}{
		{&SimpleType{Name: "std.Int", Kind: KindClass}, "std.Int"},
		{&SimpleType{Name: "std.Int", Kind: KindClass, MarkedNullable: true}, "std.Int?"},
		{&SimpleType{Name: "T", Kind: KindTypeParameter, DefinitelyNotNull: true}, "T!!"},
		{
			&SimpleType{Name: "std.List", Kind: KindClass, Arguments: []TypeArgument{
				{Variance: Out, Type: &SimpleType{Name: "std.Int", Kind: KindClass}},
				StarProjection(),
			}},
			"std.List[out std.Int, *]",
		},
		{
			&FlexibleType{
				Lower: &SimpleType{Name: "std.String", Kind: KindClass},
				Upper: &SimpleType{Name: "std.String", Kind: KindClass, MarkedNullable: true},
			},
			"std.String..std.String?",
		},
	}

	for _, c := range cases {
		if got := c.typ.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func Test_FullName_Split(t *testing.T) {
	name := FullName("pkg.sub.Foo")
	if name.Package() != "pkg.sub" {
		t.Fatalf("Package() = %q", name.Package())
	}
	if name.Identifier() != "Foo" {
		t.Fatalf("Identifier() = %q", name.Identifier())
	}

	bare := FullName("T")
	if bare.Package() != "" || bare.Identifier() != "T" {
		t.Fatalf("bare name split: %q %q", bare.Package(), bare.Identifier())
	}
}
