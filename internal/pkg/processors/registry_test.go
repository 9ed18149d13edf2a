package processors

import (
	"testing"
)

func Test_Registry_ClassAndAliasAreSeparate(t *testing.T) {
	registry := NewClassifierRegistry()

	registry.RegisterClass("pkg.Foo")
	registry.RegisterTypeAlias("pkg.A")

	if !registry.IsClassRegistered("pkg.Foo") {
		t.Fatalf("pkg.Foo not visible as class")
	}
	if registry.IsTypeAliasRegistered("pkg.Foo") {
		t.Fatalf("pkg.Foo visible as type alias")
	}
	if !registry.IsTypeAliasRegistered("pkg.A") {
		t.Fatalf("pkg.A not visible as type alias")
	}
	if registry.IsClassRegistered("pkg.Bar") {
		t.Fatalf("unregistered name visible")
	}
}

func Test_Registry_RepeatedRegistrationIsHarmless(t *testing.T) {
	registry := NewClassifierRegistry()
	registry.RegisterClass("pkg.Foo")
	registry.RegisterClass("pkg.Foo")
	if !registry.IsClassRegistered("pkg.Foo") {
		t.Fatalf("pkg.Foo lost after re-registration")
	}
}
